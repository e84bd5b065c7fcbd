package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

// TokenVerifier は生トークンを検証してクレームを返す。
// 署名検証は必須。未検証のペイロードを信用してはいけない。
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

// HMACVerifier は共有シークレットのHS256検証（localプロバイダ用）。
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if token == nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return claimsFromMap(mc)
}
