package auth

import (
	"context"
	"errors"

	"portfolio/internal/repository"
)

// Capability は列挙された権限。ロール名の文字列比較はしない。
type Capability string

const (
	CapContentManage Capability = "content:manage" // 記事・プロジェクト・コメントの管理
	CapMessagesRead  Capability = "messages:read"  // 問い合わせ受信箱の閲覧・操作
	CapCommentsWrite Capability = "comments:write" // コメント投稿
	CapProfileWrite  Capability = "profile:write"  // 自分のプロフィール更新
	CapAIGenerate    Capability = "ai:generate"    // LLMによる文章生成
)

// 認証済みだが権限が足りない
var ErrForbidden = errors.New("forbidden")

// Identity はリクエストに紐づく本人情報（クレーム＋ローカルユーザー）。
// リクエストの寿命を超えて保持しない。
type Identity struct {
	UserID   int64
	Subject  string
	Email    string
	Username string
	RoleID   int64
}

// Authorizer は (identity, capability) -> allow/deny の単一の判定器。
// ロールは小さいテーブルなので判定のたびに読み直す。
type Authorizer struct {
	roles repository.RoleRepository
}

// DI
func NewAuthorizer(roles repository.RoleRepository) *Authorizer {
	return &Authorizer{roles: roles}
}

// Require は権限がなければErrForbiddenを返す。
func (a *Authorizer) Require(ctx context.Context, identity Identity, cap Capability) error {
	role, err := a.roles.FindByID(ctx, identity.RoleID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return err
	}

	if !role.HasPermission(string(cap)) {
		return ErrForbidden
	}
	return nil
}
