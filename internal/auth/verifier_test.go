package auth_test

import (
	"context"
	"testing"
	"time"

	"portfolio/internal/auth"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

// =====================
// helper
// =====================

func mustSignHMAC(t *testing.T, secret string, claims jwt.MapClaims, method jwt.SigningMethod) string {
	t.Helper()

	token := jwt.NewWithClaims(method, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func baseClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":      "sub-123",
		"email":    "taro@example.com",
		"username": "taro",
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
}

// =====================
// HMACVerifier
// =====================

// 正常：クレームが取り出せる
func TestHMACVerifier_Success(t *testing.T) {
	v := auth.NewHMACVerifier("test-secret")
	raw := mustSignHMAC(t, "test-secret", baseClaims(), jwt.SigningMethodHS256)

	claims, err := v.Verify(context.Background(), raw)
	assert.NoError(t, err)
	assert.Equal(t, "sub-123", claims.Subject)
	assert.Equal(t, "taro@example.com", claims.Email)
	assert.Equal(t, "taro", claims.Username)
}

// 署名違い => ErrTokenInvalid
func TestHMACVerifier_BadSignature(t *testing.T) {
	v := auth.NewHMACVerifier("correct-secret")
	raw := mustSignHMAC(t, "wrong-secret", baseClaims(), jwt.SigningMethodHS256)

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

// アルゴリズム違い（HS512）=> ErrTokenInvalid
func TestHMACVerifier_WrongAlg(t *testing.T) {
	v := auth.NewHMACVerifier("test-secret")
	raw := mustSignHMAC(t, "test-secret", baseClaims(), jwt.SigningMethodHS512)

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

// 期限切れ => ErrTokenExpired（401のメッセージ分岐に使う）
func TestHMACVerifier_Expired(t *testing.T) {
	v := auth.NewHMACVerifier("test-secret")

	claims := baseClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	raw := mustSignHMAC(t, "test-secret", claims, jwt.SigningMethodHS256)

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

// subなし => ErrTokenInvalid
func TestHMACVerifier_MissingSub(t *testing.T) {
	v := auth.NewHMACVerifier("test-secret")

	claims := baseClaims()
	delete(claims, "sub")
	raw := mustSignHMAC(t, "test-secret", claims, jwt.SigningMethodHS256)

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

// expなし => ErrTokenInvalid（無期限トークンを許さない）
func TestHMACVerifier_MissingExp(t *testing.T) {
	v := auth.NewHMACVerifier("test-secret")

	claims := baseClaims()
	delete(claims, "exp")
	raw := mustSignHMAC(t, "test-secret", claims, jwt.SigningMethodHS256)

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

// username不在ならcognito:username、それも無ければemailへ落ちる
func TestHMACVerifier_UsernameFallback(t *testing.T) {
	v := auth.NewHMACVerifier("test-secret")

	claims := baseClaims()
	delete(claims, "username")
	claims["cognito:username"] = "taro-cognito"
	raw := mustSignHMAC(t, "test-secret", claims, jwt.SigningMethodHS256)

	got, err := v.Verify(context.Background(), raw)
	assert.NoError(t, err)
	assert.Equal(t, "taro-cognito", got.Username)

	delete(claims, "cognito:username")
	raw = mustSignHMAC(t, "test-secret", claims, jwt.SigningMethodHS256)

	got, err = v.Verify(context.Background(), raw)
	assert.NoError(t, err)
	assert.Equal(t, "taro@example.com", got.Username)
}
