package handler

import (
	"net/http"

	"portfolio/internal/middleware"
	"portfolio/internal/usecase"
	vld "portfolio/internal/validator"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// writeError はエラー種別をHTTPレスポンスへ落とす唯一の場所。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	// スキーマ検証の失敗はフィールド別に返す
	if fields, ok := vld.AsFieldErrors(err); ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  "validation error",
			Fields: fields,
		})
	}

	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// bindAndValidate はボディのデコードとスキーマ検証をまとめる。
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	return c.Validate(req)
}

// getUserIDFromContext はRequireCapabilityが入れたローカルIDを取り出す。
func getUserIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
