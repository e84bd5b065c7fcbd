package repository

import (
	"context"

	"portfolio/internal/domain/model"
)

// 記事一覧の検索条件
type BlogPostListQuery struct {
	Page          int
	Limit         int
	Tag           string
	PublishedOnly bool
}

// ブログ記事の保存・取得を約束
type BlogPostRepository interface {
	// 一覧＋総件数
	List(ctx context.Context, q BlogPostListQuery) ([]model.BlogPost, int64, error)
	// IDから1件取得する。
	FindByID(ctx context.Context, postID int64) (model.BlogPost, error)
	// slugから1件取得する。
	FindBySlug(ctx context.Context, slug string) (model.BlogPost, error)
	//記事作成
	Create(ctx context.Context, post model.BlogPost) (model.BlogPost, error)
	//記事更新
	Update(ctx context.Context, post model.BlogPost) error
	//記事削除（ソフトデリート）
	SoftDelete(ctx context.Context, postID int64) error
}
