package repository

import (
	"context"
	"time"

	"portfolio/internal/domain/model"
)

// ユーザーの保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	// IdPのsubからユーザーを1件取得する。
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// プロフィール更新など
	Update(ctx context.Context, user *model.User) error
	//最終ログイン時刻を更新
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}
