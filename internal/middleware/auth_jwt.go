package middleware

import (
	"errors"
	"net/http"
	"strings"

	"portfolio/internal/auth"

	"github.com/labstack/echo/v4"
)

const (
	CtxSubjectKey  = "auth_subject"  // string
	CtxEmailKey    = "auth_email"    // string
	CtxUsernameKey = "auth_username" // string
	CtxUserIDKey   = "user_id"       // int64（RequireCapability以降）
	CtxRoleIDKey   = "role_id"       // int64（RequireCapability以降）
)

// bearerAuth用のトークン検証ミドルウェア。
// 検証に通ったクレームをcontextへ入れて次へ渡す。DBには触らない。
func AuthJWT(verifier auth.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//署名・期限を検証する
			claims, err := verifier.Verify(c.Request().Context(), rawToken)
			if err != nil {
				// 期限切れはステータス同じでメッセージだけ分ける
				if errors.Is(err, auth.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, errorJSON("token expired"))
				}
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxSubjectKey, claims.Subject)
			c.Set(CtxEmailKey, claims.Email)
			c.Set(CtxUsernameKey, claims.Username)

			return next(c)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// SubjectFromContext はAuthJWTが入れたsubを取り出す。
func SubjectFromContext(c echo.Context) (string, bool) {
	sub, ok := c.Get(CtxSubjectKey).(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}
