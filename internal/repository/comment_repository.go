package repository

import (
	"context"

	"portfolio/internal/domain/model"
)

// コメントの保存・取得を約束
type CommentRepository interface {
	// 記事に紐づくコメント一覧（作成日時昇順）
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	// IDから1件取得する。
	FindByID(ctx context.Context, commentID int64) (model.Comment, error)
	//コメント作成
	Create(ctx context.Context, c model.Comment) (model.Comment, error)
	//コメント更新
	Update(ctx context.Context, c model.Comment) error
	//コメント削除（ソフトデリート）
	SoftDelete(ctx context.Context, commentID int64) error
}
