package middleware

import (
	"errors"
	"net/http"

	"portfolio/internal/auth"
	"portfolio/internal/repository"

	"github.com/labstack/echo/v4"
)

// RequireCapability はsubをローカルユーザーに引き当てて権限を確認する。
// AuthJWTの後ろに置くこと。ユーザー不在・権限不足は403。
func RequireCapability(users repository.UserRepository, authorizer *auth.Authorizer, capability auth.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたsubを取得する
			subject, ok := SubjectFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBからユーザーを取得する
			user, err := users.FindByExternalID(c.Request().Context(), subject)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			if user == nil {
				// 認証は通っているがローカルに記録がない
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}

			identity := auth.Identity{
				UserID:   user.ID,
				Subject:  subject,
				Email:    user.Email,
				Username: user.Username,
				RoleID:   user.RoleID,
			}

			if err := authorizer.Require(c.Request().Context(), identity, capability); err != nil {
				if errors.Is(err, auth.ErrForbidden) {
					return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
				}
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, user.ID)
			c.Set(CtxRoleIDKey, user.RoleID)

			return next(c)
		}
	}
}
