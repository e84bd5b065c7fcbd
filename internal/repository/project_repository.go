package repository

import (
	"context"

	"portfolio/internal/domain/model"
)

// プロジェクト一覧の検索条件
type ProjectListQuery struct {
	Page         int
	Limit        int
	FeaturedOnly bool
}

// プロジェクトの保存・取得を約束
type ProjectRepository interface {
	// 一覧＋総件数（sort_order昇順）
	List(ctx context.Context, q ProjectListQuery) ([]model.Project, int64, error)
	// IDから1件取得する。
	FindByID(ctx context.Context, projectID int64) (model.Project, error)
	// slugから1件取得する。
	FindBySlug(ctx context.Context, slug string) (model.Project, error)
	//プロジェクト作成
	Create(ctx context.Context, p model.Project) (model.Project, error)
	//プロジェクト更新
	Update(ctx context.Context, p model.Project) error
	//プロジェクト削除（ソフトデリート）
	SoftDelete(ctx context.Context, projectID int64) error
}
