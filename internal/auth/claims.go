package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// トークンが不正（欠落・改ざん・形式不備）
	ErrTokenInvalid = errors.New("token invalid")
	// トークンの有効期限切れ（401は同じ、メッセージだけ区別する）
	ErrTokenExpired = errors.New("token expired")
)

// Claims は検証済みトークンから取り出す正規化済みの本人情報。
// 1リクエストの間だけ生きる。
type Claims struct {
	Subject   string
	Email     string
	Username  string
	Groups    []string
	ExpiresAt time.Time
}

// claimsFromMap はMapClaimsからClaimsを組み立てる。subとexpがなければ不正。
func claimsFromMap(mc jwt.MapClaims) (*Claims, error) {
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return nil, ErrTokenInvalid
	}

	// expなしのトークンは無期限に通ってしまうので拒否する
	exp, ok := mc["exp"].(float64)
	if !ok || exp <= 0 {
		return nil, ErrTokenInvalid
	}

	email, _ := mc["email"].(string)

	// username → cognito:username → emailの順で採用
	username, _ := mc["username"].(string)
	if username == "" {
		username, _ = mc["cognito:username"].(string)
	}
	if username == "" {
		username = email
	}

	var groups []string
	if raw, ok := mc["cognito:groups"].([]interface{}); ok {
		for _, g := range raw {
			if s, ok := g.(string); ok {
				groups = append(groups, s)
			}
		}
	}

	return &Claims{
		Subject:   sub,
		Email:     email,
		Username:  username,
		Groups:    groups,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}
