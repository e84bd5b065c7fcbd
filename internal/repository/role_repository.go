package repository

import (
	"context"

	"portfolio/internal/domain/model"
)

// ロールの取得・シードを約束
type RoleRepository interface {
	// 全ロールを返す（小さいテーブルなので毎回読む）
	List(ctx context.Context) ([]model.Role, error)
	// IDからロールを1件取得する。
	FindByID(ctx context.Context, roleID int64) (*model.Role, error)
	// 名前からロールを1件取得する。
	FindByName(ctx context.Context, name string) (*model.Role, error)
	//件数（シードのinsert-if-emptyガードに使う）
	Count(ctx context.Context) (int64, error)
	//ロール作成（シード用）
	Create(ctx context.Context, role *model.Role) error
}
