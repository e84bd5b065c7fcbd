package repository

import (
	"context"

	"portfolio/internal/domain/model"
)

// 問い合わせ一覧の検索条件
type ContactListQuery struct {
	Page       int
	Limit      int
	UnreadOnly bool
}

// 問い合わせメッセージの保存・取得を約束
type ContactRepository interface {
	//問い合わせ作成
	Create(ctx context.Context, m model.ContactMessage) (model.ContactMessage, error)
	// 一覧＋総件数（新しい順）
	List(ctx context.Context, q ContactListQuery) ([]model.ContactMessage, int64, error)
	// IDから1件取得する。
	FindByID(ctx context.Context, messageID int64) (model.ContactMessage, error)
	//既読にする
	MarkRead(ctx context.Context, messageID int64) error
	//問い合わせ削除
	Delete(ctx context.Context, messageID int64) error
}
