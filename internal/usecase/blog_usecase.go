package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"portfolio/internal/domain/model"
	repo "portfolio/internal/repository"

	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
)

type BlogUsecase struct {
	posts     repo.BlogPostRepository
	sanitizer *bluemonday.Policy
}

// DI
func NewBlogUsecase(posts repo.BlogPostRepository) *BlogUsecase {
	return &BlogUsecase{
		posts:     posts,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// GET /api/blog/posts の入力DTO
type ListPostsInput struct {
	Page          int
	Limit         int
	Tag           string
	IncludeDrafts bool
}

type PostListOutput struct {
	Items []model.BlogPost `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (u *BlogUsecase) ListPosts(ctx context.Context, in ListPostsInput) (PostListOutput, error) {
	if in.Page < 1 {
		return PostListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return PostListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Tag) > 50 {
		return PostListOutput{}, NewHTTPError(http.StatusBadRequest, "tag too long")
	}

	items, total, err := u.posts.List(ctx, repo.BlogPostListQuery{
		Page:          in.Page,
		Limit:         in.Limit,
		Tag:           strings.TrimSpace(in.Tag),
		PublishedOnly: !in.IncludeDrafts,
	})
	if err != nil {
		return PostListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return PostListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// GetPost は記事を1件返す。非公開記事はincludeDraftsのときだけ見える。
func (u *BlogUsecase) GetPost(ctx context.Context, postID int64, includeDrafts bool) (model.BlogPost, error) {
	if postID <= 0 {
		return model.BlogPost{}, NewHTTPError(http.StatusBadRequest, "invalid post id")
	}

	p, err := u.posts.FindByID(ctx, postID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.BlogPost{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.BlogPost{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !p.Published && !includeDrafts {
		return model.BlogPost{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}

type CreatePostInput struct {
	Title     string
	Slug      string
	Excerpt   string
	Content   string
	Tags      []string
	Published bool
}

// CreatePost は記事を作成する。slug省略時はtitleから導出する。
func (u *BlogUsecase) CreatePost(ctx context.Context, authorID int64, in CreatePostInput) (model.BlogPost, error) {
	if authorID <= 0 {
		return model.BlogPost{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.BlogPost{}, NewHTTPError(http.StatusBadRequest, "title required")
	}

	postSlug := strings.TrimSpace(in.Slug)
	if postSlug == "" {
		postSlug = slug.Make(title)
	}

	// slug重複は409
	if _, err := u.posts.FindBySlug(ctx, postSlug); err == nil {
		return model.BlogPost{}, NewHTTPError(http.StatusConflict, "slug already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.BlogPost{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.posts.Create(ctx, model.BlogPost{
		Title:     title,
		Slug:      postSlug,
		Excerpt:   strings.TrimSpace(in.Excerpt),
		Content:   u.sanitizer.Sanitize(in.Content),
		Tags:      joinTags(in.Tags),
		Published: in.Published,
		AuthorID:  authorID,
	})
	if err != nil {
		return model.BlogPost{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// UpdatePost は記事を更新する。slug省略時は既存のslugを維持する。
func (u *BlogUsecase) UpdatePost(ctx context.Context, postID int64, in CreatePostInput) (model.BlogPost, error) {
	if postID <= 0 {
		return model.BlogPost{}, NewHTTPError(http.StatusBadRequest, "invalid post id")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.BlogPost{}, NewHTTPError(http.StatusBadRequest, "title required")
	}

	cur, err := u.posts.FindByID(ctx, postID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.BlogPost{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.BlogPost{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	postSlug := strings.TrimSpace(in.Slug)
	if postSlug == "" {
		postSlug = cur.Slug
	}

	// 別記事が同じslugを使っていたら409
	if other, err := u.posts.FindBySlug(ctx, postSlug); err == nil && other.ID != postID {
		return model.BlogPost{}, NewHTTPError(http.StatusConflict, "slug already exists")
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return model.BlogPost{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cur.Title = title
	cur.Slug = postSlug
	cur.Excerpt = strings.TrimSpace(in.Excerpt)
	cur.Content = u.sanitizer.Sanitize(in.Content)
	cur.Tags = joinTags(in.Tags)
	cur.Published = in.Published

	if err := u.posts.Update(ctx, cur); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.BlogPost{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.BlogPost{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cur, nil
}

func (u *BlogUsecase) DeletePost(ctx context.Context, postID int64) error {
	if postID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid post id")
	}

	err := u.posts.SoftDelete(ctx, postID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// joinTags はタグをカンマ区切りへ正規化する。
func joinTags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ",")
}
