package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"portfolio/internal/auth"
	"portfolio/internal/domain/model"
	"portfolio/internal/infra/db"
	"portfolio/internal/infra/memory"
	"portfolio/internal/repository"
	"portfolio/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// helper
// =====================

type commentFixture struct {
	uc      *usecase.CommentUsecase
	posts   repository.BlogPostRepository
	admin   model.User
	alice   model.User
	bob     model.User
	pubPost model.BlogPost
	draft   model.BlogPost
}

func newCommentFixture(t *testing.T) commentFixture {
	t.Helper()

	store := memory.NewStore()
	roles := memory.NewRoleMemoryRepository(store)
	users := memory.NewUserMemoryRepository(store)
	posts := memory.NewBlogPostMemoryRepository(store)
	comments := memory.NewCommentMemoryRepository(store)

	ctx := context.Background()
	require.NoError(t, db.SeedRoles(ctx, roles))

	adminRole, err := roles.FindByName(ctx, model.RoleNameAdmin)
	require.NoError(t, err)
	userRole, err := roles.FindByName(ctx, model.RoleNameUser)
	require.NoError(t, err)

	admin := model.User{ExternalID: "sub-admin", Email: "admin@example.com", Username: "admin", RoleID: adminRole.ID}
	require.NoError(t, users.Create(ctx, &admin))
	alice := model.User{ExternalID: "sub-alice", Email: "alice@example.com", Username: "alice", RoleID: userRole.ID}
	require.NoError(t, users.Create(ctx, &alice))
	bob := model.User{ExternalID: "sub-bob", Email: "bob@example.com", Username: "bob", RoleID: userRole.ID}
	require.NoError(t, users.Create(ctx, &bob))

	pubPost, err := posts.Create(ctx, model.BlogPost{Title: "Pub", Slug: "pub", Content: "a", Published: true, AuthorID: admin.ID})
	require.NoError(t, err)
	draft, err := posts.Create(ctx, model.BlogPost{Title: "Draft", Slug: "draft", Content: "b", Published: false, AuthorID: admin.ID})
	require.NoError(t, err)

	uc := usecase.NewCommentUsecase(comments, posts, users, auth.NewAuthorizer(roles))

	return commentFixture{
		uc:      uc,
		posts:   posts,
		admin:   admin,
		alice:   alice,
		bob:     bob,
		pubPost: pubPost,
		draft:   draft,
	}
}

// =====================
// Create / ListByPost
// =====================

// 公開記事にはコメントできる。内容はサニタイズされる
func TestCommentUsecase_Create_OnPublishedPost(t *testing.T) {
	fx := newCommentFixture(t)
	ctx := context.Background()

	c, err := fx.uc.Create(ctx, fx.alice.ExternalID, usecase.CreateCommentInput{
		PostID:  fx.pubPost.ID,
		Content: `nice <script>alert("x")</script>post`,
	})
	require.NoError(t, err)
	assert.Equal(t, fx.alice.ID, c.UserID)
	assert.NotContains(t, c.Content, "<script>")

	list, err := fx.uc.ListByPost(ctx, fx.pubPost.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

// 非公開記事へのコメント => 404
func TestCommentUsecase_Create_OnDraft(t *testing.T) {
	fx := newCommentFixture(t)

	_, err := fx.uc.Create(context.Background(), fx.alice.ExternalID, usecase.CreateCommentInput{
		PostID:  fx.draft.ID,
		Content: "hello",
	})
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

// ローカルに記録のないsub => 403
func TestCommentUsecase_Create_UnknownSubject(t *testing.T) {
	fx := newCommentFixture(t)

	_, err := fx.uc.Create(context.Background(), "sub-ghost", usecase.CreateCommentInput{
		PostID:  fx.pubPost.ID,
		Content: "hello",
	})
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
}

// =====================
// Update / Delete（本人か管理権限）
// =====================

// 本人は編集できる
func TestCommentUsecase_Update_ByOwner(t *testing.T) {
	fx := newCommentFixture(t)
	ctx := context.Background()

	c, err := fx.uc.Create(ctx, fx.alice.ExternalID, usecase.CreateCommentInput{PostID: fx.pubPost.ID, Content: "v1"})
	require.NoError(t, err)

	updated, err := fx.uc.Update(ctx, fx.alice.ExternalID, c.ID, "v2")
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)
}

// 他人の一般ユーザー => 403
func TestCommentUsecase_Update_ByOtherUser(t *testing.T) {
	fx := newCommentFixture(t)
	ctx := context.Background()

	c, err := fx.uc.Create(ctx, fx.alice.ExternalID, usecase.CreateCommentInput{PostID: fx.pubPost.ID, Content: "v1"})
	require.NoError(t, err)

	_, err = fx.uc.Update(ctx, fx.bob.ExternalID, c.ID, "hijack")
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
}

// content:manage持ちは他人のコメントも消せる
func TestCommentUsecase_Delete_ByAdmin(t *testing.T) {
	fx := newCommentFixture(t)
	ctx := context.Background()

	c, err := fx.uc.Create(ctx, fx.alice.ExternalID, usecase.CreateCommentInput{PostID: fx.pubPost.ID, Content: "spam"})
	require.NoError(t, err)

	require.NoError(t, fx.uc.Delete(ctx, fx.admin.ExternalID, c.ID))

	list, err := fx.uc.ListByPost(ctx, fx.pubPost.ID)
	require.NoError(t, err)
	assert.Len(t, list, 0)
}

// 他人の一般ユーザーによる削除 => 403
func TestCommentUsecase_Delete_ByOtherUser(t *testing.T) {
	fx := newCommentFixture(t)
	ctx := context.Background()

	c, err := fx.uc.Create(ctx, fx.alice.ExternalID, usecase.CreateCommentInput{PostID: fx.pubPost.ID, Content: "keep"})
	require.NoError(t, err)

	err = fx.uc.Delete(ctx, fx.bob.ExternalID, c.ID)
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
}
