package identity

import (
	"context"
	"errors"
)

var (
	// メール・パスワードが一致しない
	ErrInvalidCredentials = errors.New("invalid credentials")
	// 同じメールのアカウントが既にある
	ErrAccountExists = errors.New("account already exists")
	// アカウントが見つからない
	ErrAccountNotFound = errors.New("account not found")
)

// Account はIdPが保証する本人情報。
type Account struct {
	Subject   string // IdPが発行する安定ID（sub）
	Email     string
	Username  string
	FirstName string
	LastName  string
}

// Tokens はIdPが発行したトークン一式。
type Tokens struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // 秒
}

type SignUpInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// Provider はホスト型IdPの管理APIを抽象化する。
// 実装はCognito（本番）とlocal（dev/test）の2つで、起動時にどちらかを選ぶ。
type Provider interface {
	// アカウント作成＋確認（サインアップ）
	SignUp(ctx context.Context, in SignUpInput) (Account, error)
	// メール・パスワード認証。成功したらトークンとアカウントを返す。
	Authenticate(ctx context.Context, email string, password string) (Tokens, Account, error)
	// メールでアカウントを取得する。
	FetchAccount(ctx context.Context, email string) (Account, error)
	// 氏名属性をIdP側へ反映する。
	UpdateAttributes(ctx context.Context, email string, firstName string, lastName string) error
}
