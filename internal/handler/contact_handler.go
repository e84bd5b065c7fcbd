package handler

import (
	"net/http"
	"strconv"

	"portfolio/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 問い合わせフォームと管理用の受信箱。
type ContactHandler struct {
	uc *usecase.ContactUsecase
}

// DI
func NewContactHandler(uc *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// 送信だけ公開。受信箱はmessages:read権限が必要。
func (h *ContactHandler) RegisterRoutes(e *echo.Echo, authMW, inboxMW echo.MiddlewareFunc, limitMW echo.MiddlewareFunc) {
	e.POST("/api/contact", h.create, limitMW)

	e.GET("/api/contact/messages", h.list, authMW, inboxMW)
	e.PUT("/api/contact/messages/:id/read", h.markRead, authMW, inboxMW)
	e.DELETE("/api/contact/messages/:id", h.delete, authMW, inboxMW)
}

// /api/contact のリクエストボディ。
type contactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

func (h *ContactHandler) create(c echo.Context) error {
	var req contactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	m, err := h.uc.Create(c.Request().Context(), usecase.CreateContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *ContactHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListContactInput{
		Page:       page,
		Limit:      limit,
		UnreadOnly: c.QueryParam("unread") == "1",
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ContactHandler) markRead(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.MarkRead(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "marked as read"})
}

func (h *ContactHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
