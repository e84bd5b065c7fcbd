package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"portfolio/internal/domain/model"
	"portfolio/internal/infra/db"
	infraid "portfolio/internal/infra/identity"
	"portfolio/internal/infra/memory"
	"portfolio/internal/logger"
	"portfolio/internal/repository"
	"portfolio/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// helper
// =====================

type authFixture struct {
	uc    *usecase.AuthUsecase
	users repository.UserRepository
	roles repository.RoleRepository
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()

	store := memory.NewStore()
	users := memory.NewUserMemoryRepository(store)
	roles := memory.NewRoleMemoryRepository(store)
	require.NoError(t, db.SeedRoles(context.Background(), roles))

	provider := infraid.NewLocalProvider("test-secret")
	uc := usecase.NewAuthUsecase(users, roles, provider, logger.New("dev"))

	return authFixture{uc: uc, users: users, roles: roles}
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	return he.Status
}

// =====================
// SignUp / Login
// =====================

// サインアップでローカルユーザーがuserロールで作られる
func TestAuthUsecase_SignUp_CreatesLocalUser(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	user, err := fx.uc.SignUp(ctx, usecase.SignUpInput{
		Email:    "taro@example.com",
		Username: "taro",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.ExternalID)

	role, err := fx.roles.FindByID(ctx, user.RoleID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleNameUser, role.Name)
}

// 同じメールで2回サインアップ => 409
func TestAuthUsecase_SignUp_Duplicate(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	in := usecase.SignUpInput{Email: "taro@example.com", Password: "password123"}
	_, err := fx.uc.SignUp(ctx, in)
	require.NoError(t, err)

	_, err = fx.uc.SignUp(ctx, in)
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
}

// ログイン成功でトークンと最終ログイン時刻が返る
func TestAuthUsecase_Login_Success(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, err := fx.uc.SignUp(ctx, usecase.SignUpInput{Email: "taro@example.com", Password: "password123"})
	require.NoError(t, err)

	out, err := fx.uc.Login(ctx, "taro@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token.IDToken)
	assert.NotEmpty(t, out.Token.AccessToken)
	assert.NotNil(t, out.User.LastLoginAt)
}

// パスワード違い => 401
func TestAuthUsecase_Login_InvalidCredentials(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, err := fx.uc.SignUp(ctx, usecase.SignUpInput{Email: "taro@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = fx.uc.Login(ctx, "taro@example.com", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))

	_, err = fx.uc.Login(ctx, "nobody@example.com", "password123")
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

// 2回ログインしてもローカルユーザーは1行のまま
func TestAuthUsecase_Login_ResolveIsIdempotent(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	created, err := fx.uc.SignUp(ctx, usecase.SignUpInput{Email: "taro@example.com", Password: "password123"})
	require.NoError(t, err)

	first, err := fx.uc.Login(ctx, "taro@example.com", "password123")
	require.NoError(t, err)
	second, err := fx.uc.Login(ctx, "taro@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, created.ID, first.User.ID)
	assert.Equal(t, first.User.ID, second.User.ID)
}

// =====================
// Profile
// =====================

// 不明なsub => 404
func TestAuthUsecase_GetProfile_Unknown(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.uc.GetProfile(context.Background(), "no-such-sub")
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

// プロフィール更新でソーシャルリンクが置き換わる
func TestAuthUsecase_UpdateProfile_ReplacesLinks(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	created, err := fx.uc.SignUp(ctx, usecase.SignUpInput{Email: "taro@example.com", Password: "password123"})
	require.NoError(t, err)

	updated, err := fx.uc.UpdateProfile(ctx, created.ExternalID, usecase.UpdateProfileInput{
		Username:  "taro2",
		FirstName: "Taro",
		LastName:  "Yamada",
		SocialLinks: []model.SocialLink{
			{Provider: "github", ProfileURL: "https://github.com/taro"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "taro2", updated.Username)
	require.Len(t, updated.SocialLinks, 1)
	assert.Equal(t, "github", updated.SocialLinks[0].Provider)

	// 空スライスで全削除
	updated, err = fx.uc.UpdateProfile(ctx, created.ExternalID, usecase.UpdateProfileInput{
		Username:    "taro2",
		SocialLinks: []model.SocialLink{},
	})
	require.NoError(t, err)
	assert.Len(t, updated.SocialLinks, 0)
}
