package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio/internal/auth"
	"portfolio/internal/domain/model"
	"portfolio/internal/handler"
	"portfolio/internal/infra/db"
	"portfolio/internal/infra/memory"
	"portfolio/internal/middleware"
	"portfolio/internal/usecase"
	vld "portfolio/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

// =====================
// レスポンス確認用
// =====================

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// =====================
// fixture
// =====================

type apiFixture struct {
	e        *echo.Echo
	adminTok string
	userTok  string
}

// newAPIFixture はメモリストアでAPI一式を組み立てる。
func newAPIFixture(t *testing.T) apiFixture {
	t.Helper()

	store := memory.NewStore()
	roles := memory.NewRoleMemoryRepository(store)
	users := memory.NewUserMemoryRepository(store)
	posts := memory.NewBlogPostMemoryRepository(store)
	projects := memory.NewProjectMemoryRepository(store)
	comments := memory.NewCommentMemoryRepository(store)
	contacts := memory.NewContactMemoryRepository(store)

	ctx := context.Background()
	require.NoError(t, db.SeedRoles(ctx, roles))

	adminRole, err := roles.FindByName(ctx, model.RoleNameAdmin)
	require.NoError(t, err)
	userRole, err := roles.FindByName(ctx, model.RoleNameUser)
	require.NoError(t, err)

	admin := model.User{ExternalID: "sub-admin", Email: "admin@example.com", Username: "admin", RoleID: adminRole.ID}
	require.NoError(t, users.Create(ctx, &admin))
	regular := model.User{ExternalID: "sub-user", Email: "user@example.com", Username: "user", RoleID: userRole.ID}
	require.NoError(t, users.Create(ctx, &regular))

	verifier := auth.NewHMACVerifier(testSecret)
	authorizer := auth.NewAuthorizer(roles)
	authMW := middleware.AuthJWT(verifier)
	contentMW := middleware.RequireCapability(users, authorizer, auth.CapContentManage)
	inboxMW := middleware.RequireCapability(users, authorizer, auth.CapMessagesRead)

	e := echo.New()
	e.Validator = vld.New()

	blogH := handler.NewBlogHandler(usecase.NewBlogUsecase(posts))
	blogH.RegisterRoutes(e, authMW, contentMW)

	projectH := handler.NewProjectHandler(usecase.NewProjectUsecase(projects))
	projectH.RegisterRoutes(e, authMW, contentMW)

	commentH := handler.NewCommentHandler(usecase.NewCommentUsecase(comments, posts, users, authorizer))
	commentH.RegisterRoutes(e, authMW)

	contactH := handler.NewContactHandler(usecase.NewContactUsecase(contacts))
	noop := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	contactH.RegisterRoutes(e, authMW, inboxMW, noop)

	exp := time.Now().Add(time.Hour)
	return apiFixture{
		e:        e,
		adminTok: mintToken(t, "sub-admin", exp),
		userTok:  mintToken(t, "sub-user", exp),
	}
}

func mintToken(t *testing.T, sub string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":      sub,
		"email":    sub + "@example.com",
		"username": sub,
		"iat":      time.Now().Unix(),
		"exp":      expiresAt.Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var b errorBody
	_ = json.NewDecoder(rec.Body).Decode(&b)
	return b
}

// =====================
// 記事作成のゲート（認証→権限→作成）
// =====================

// トークンなし => 401 / 期限切れ => 401 token expired / 一般ユーザー => 403 / 管理者 => 201
func TestBlogCreate_GateLadder(t *testing.T) {
	fx := newAPIFixture(t)
	body := `{"title":"My First Post","content":"<p>hello</p>","published":true}`

	rec := doJSON(t, fx.e, http.MethodPost, "/api/blog/posts", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeError(t, rec).Error)

	expired := mintToken(t, "sub-admin", time.Now().Add(-time.Hour))
	rec = doJSON(t, fx.e, http.MethodPost, "/api/blog/posts", expired, body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token expired", decodeError(t, rec).Error)

	rec = doJSON(t, fx.e, http.MethodPost, "/api/blog/posts", fx.userTok, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeError(t, rec).Error)

	rec = doJSON(t, fx.e, http.MethodPost, "/api/blog/posts", fx.adminTok, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.BlogPost
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "my-first-post", created.Slug) // slug省略時はtitleから導出
	assert.NotZero(t, created.AuthorID)
}

// 同じslugの2件目 => 409
func TestBlogCreate_Conflict(t *testing.T) {
	fx := newAPIFixture(t)
	body := `{"title":"Same Title","content":"x","published":true}`

	rec := doJSON(t, fx.e, http.MethodPost, "/api/blog/posts", fx.adminTok, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, fx.e, http.MethodPost, "/api/blog/posts", fx.adminTok, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

// 公開一覧に下書きは出ない。/allは管理者だけが見られる
func TestBlogList_DraftVisibility(t *testing.T) {
	fx := newAPIFixture(t)

	rec := doJSON(t, fx.e, http.MethodPost, "/api/blog/posts", fx.adminTok, `{"title":"Pub","content":"a","published":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, fx.e, http.MethodPost, "/api/blog/posts", fx.adminTok, `{"title":"Draft","content":"b","published":false}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, fx.e, http.MethodGet, "/api/blog/posts", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list usecase.PostListOutput
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, int64(1), list.Total)

	rec = doJSON(t, fx.e, http.MethodGet, "/api/blog/posts/all", fx.userTok, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, fx.e, http.MethodGet, "/api/blog/posts/all", fx.adminTok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, int64(2), list.Total)
}

// バリデーション違反 => 400 + fields
func TestBlogCreate_ValidationError(t *testing.T) {
	fx := newAPIFixture(t)

	rec := doJSON(t, fx.e, http.MethodPost, "/api/blog/posts", fx.adminTok, `{"title":"","content":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "validation error", body.Error)
	assert.Contains(t, body.Fields, "title")
	assert.Contains(t, body.Fields, "content")
}

// =====================
// プロジェクト
// =====================

// 作成したプロジェクトはGET /api/projects/:idでそのまま返る
func TestProjectCreateThenGet_RoundTrip(t *testing.T) {
	fx := newAPIFixture(t)
	body := `{"title":"Geo Quiz","slug":"geo-quiz","description":"location quiz game","content":"built with echo","repo_url":"https://github.com/taro/geo-quiz","demo_url":"https://geo.example.com","tech":["go","postgres"],"featured":true,"sort_order":2}`

	rec := doJSON(t, fx.e, http.MethodPost, "/api/projects", fx.adminTok, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Project
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotZero(t, created.ID)

	rec = doJSON(t, fx.e, http.MethodGet, "/api/projects/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Project
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Geo Quiz", got.Title)
	assert.Equal(t, "geo-quiz", got.Slug)
	assert.Equal(t, "location quiz game", got.Description)
	assert.Equal(t, "built with echo", got.Content)
	assert.Equal(t, "https://github.com/taro/geo-quiz", got.RepoURL)
	assert.Equal(t, "https://geo.example.com", got.DemoURL)
	assert.Equal(t, "go,postgres", got.Tech)
	assert.True(t, got.Featured)
	assert.Equal(t, 2, got.SortOrder)
}

// 作成は権限ゲートの内側。同じslugの2件目 => 409
func TestProjectCreate_GateAndConflict(t *testing.T) {
	fx := newAPIFixture(t)
	body := `{"title":"Dup Project"}`

	rec := doJSON(t, fx.e, http.MethodPost, "/api/projects", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, fx.e, http.MethodPost, "/api/projects", fx.userTok, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, fx.e, http.MethodPost, "/api/projects", fx.adminTok, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, fx.e, http.MethodPost, "/api/projects", fx.adminTok, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "slug already exists", decodeError(t, rec).Error)
}

// =====================
// コメント
// =====================

// 一般ユーザーは公開記事にコメントでき、他人のコメントは消せない
func TestComments_Flow(t *testing.T) {
	fx := newAPIFixture(t)

	rec := doJSON(t, fx.e, http.MethodPost, "/api/blog/posts", fx.adminTok, `{"title":"Post","content":"a","published":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var post model.BlogPost
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&post))

	rec = doJSON(t, fx.e, http.MethodPost, "/api/blog/posts/1/comments", fx.userTok, `{"content":"nice post"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var comment model.Comment
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&comment))

	// 管理者（content:manage）は他人のコメントも消せる
	rec = doJSON(t, fx.e, http.MethodDelete, "/api/comments/1", fx.adminTok, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

// =====================
// 問い合わせ
// =====================

// 不正なメール＋短すぎる本文 => 両方のフィールドエラー
func TestContactCreate_ValidationError(t *testing.T) {
	fx := newAPIFixture(t)

	rec := doJSON(t, fx.e, http.MethodPost, "/api/contact", "", `{"name":"Taro","email":"bad","message":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "validation error", body.Error)
	assert.Contains(t, body.Fields["email"], "valid email")
	assert.Contains(t, body.Fields["message"], "at least 10")
}

// 送信は匿名OK。受信箱はmessages:readが要る
func TestContactInbox_Gate(t *testing.T) {
	fx := newAPIFixture(t)

	rec := doJSON(t, fx.e, http.MethodPost, "/api/contact", "", `{"name":"Taro","email":"taro@example.com","subject":"hi","message":"I want to work with you"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, fx.e, http.MethodGet, "/api/contact/messages", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, fx.e, http.MethodGet, "/api/contact/messages", fx.userTok, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, fx.e, http.MethodGet, "/api/contact/messages", fx.adminTok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list usecase.ContactListOutput
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Equal(t, int64(1), list.Total)

	// 既読にして未読フィルタから消えることを確認
	rec = doJSON(t, fx.e, http.MethodPut, "/api/contact/messages/1/read", fx.adminTok, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, fx.e, http.MethodGet, "/api/contact/messages?unread=1", fx.adminTok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, int64(0), list.Total)
}
