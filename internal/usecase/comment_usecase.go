package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"portfolio/internal/auth"
	"portfolio/internal/domain/model"
	repo "portfolio/internal/repository"

	"github.com/microcosm-cc/bluemonday"
)

type CommentUsecase struct {
	comments   repo.CommentRepository
	posts      repo.BlogPostRepository
	users      repo.UserRepository
	authorizer *auth.Authorizer
	sanitizer  *bluemonday.Policy
}

// DI
func NewCommentUsecase(
	comments repo.CommentRepository,
	posts repo.BlogPostRepository,
	users repo.UserRepository,
	authorizer *auth.Authorizer,
) *CommentUsecase {
	return &CommentUsecase{
		comments:   comments,
		posts:      posts,
		users:      users,
		authorizer: authorizer,
		sanitizer:  bluemonday.UGCPolicy(),
	}
}

// ListByPost は公開記事に紐づくコメントを返す。
func (u *CommentUsecase) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if postID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid post id")
	}

	p, err := u.posts.FindByID(ctx, postID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.Published {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}

	comments, err := u.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}

type CreateCommentInput struct {
	PostID  int64
	Content string
}

// Create は認証済みユーザーのコメントを作成する。
func (u *CommentUsecase) Create(ctx context.Context, subject string, in CreateCommentInput) (model.Comment, error) {
	user, err := u.resolveUser(ctx, subject)
	if err != nil {
		return model.Comment{}, err
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return model.Comment{}, NewHTTPError(http.StatusBadRequest, "content required")
	}
	if len(content) > 2000 {
		return model.Comment{}, NewHTTPError(http.StatusBadRequest, "content too long")
	}

	p, err := u.posts.FindByID(ctx, in.PostID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Comment{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Comment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.Published {
		return model.Comment{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	c, err := u.comments.Create(ctx, model.Comment{
		PostID:  in.PostID,
		UserID:  user.ID,
		Content: u.sanitizer.Sanitize(content),
	})
	if err != nil {
		return model.Comment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// Update は本人または管理権限のあるユーザーだけが行える。
func (u *CommentUsecase) Update(ctx context.Context, subject string, commentID int64, content string) (model.Comment, error) {
	user, err := u.resolveUser(ctx, subject)
	if err != nil {
		return model.Comment{}, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return model.Comment{}, NewHTTPError(http.StatusBadRequest, "content required")
	}

	c, err := u.comments.FindByID(ctx, commentID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Comment{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Comment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.requireOwnerOrManager(ctx, user, c); err != nil {
		return model.Comment{}, err
	}

	c.Content = u.sanitizer.Sanitize(content)
	if err := u.comments.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Comment{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Comment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// Delete は本人または管理権限のあるユーザーだけが行える。
func (u *CommentUsecase) Delete(ctx context.Context, subject string, commentID int64) error {
	user, err := u.resolveUser(ctx, subject)
	if err != nil {
		return err
	}

	c, err := u.comments.FindByID(ctx, commentID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.requireOwnerOrManager(ctx, user, c); err != nil {
		return err
	}

	if err := u.comments.SoftDelete(ctx, commentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// resolveUser はsubからローカルユーザーを引く。不在は403。
func (u *CommentUsecase) resolveUser(ctx context.Context, subject string) (*model.User, error) {
	if subject == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByExternalID(ctx, subject)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return user, nil
}

// requireOwnerOrManager は本人か、content:manage権限を要求する。
func (u *CommentUsecase) requireOwnerOrManager(ctx context.Context, user *model.User, c model.Comment) error {
	if c.UserID == user.ID {
		return nil
	}

	identity := auth.Identity{
		UserID:   user.ID,
		Subject:  user.ExternalID,
		Email:    user.Email,
		Username: user.Username,
		RoleID:   user.RoleID,
	}
	err := u.authorizer.Require(ctx, identity, auth.CapContentManage)
	if errors.Is(err, auth.ErrForbidden) {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return nil
}
