package handler

import (
	"net/http"
	"strconv"

	"portfolio/internal/middleware"
	"portfolio/internal/usecase"

	"github.com/labstack/echo/v4"
)

// コメント関連のルートをまとめる
type CommentHandler struct {
	uc *usecase.CommentUsecase
}

// DI
func NewCommentHandler(uc *usecase.CommentUsecase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

// 所有者チェックはユースケース側で行うので、ここでは認証だけ要求する。
func (h *CommentHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.GET("/api/blog/posts/:id/comments", h.listByPost)
	e.POST("/api/blog/posts/:id/comments", h.create, authMW)

	e.PUT("/api/comments/:id", h.update, authMW)
	e.DELETE("/api/comments/:id", h.delete, authMW)
}

func (h *CommentHandler) listByPost(c echo.Context) error {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	comments, err := h.uc.ListByPost(c.Request().Context(), postID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, comments)
}

type commentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (h *CommentHandler) create(c echo.Context) error {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	subject, ok := middleware.SubjectFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	comment, err := h.uc.Create(c.Request().Context(), subject, usecase.CreateCommentInput{
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) update(c echo.Context) error {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	subject, ok := middleware.SubjectFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	comment, err := h.uc.Update(c.Request().Context(), subject, commentID, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) delete(c echo.Context) error {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	subject, ok := middleware.SubjectFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Delete(c.Request().Context(), subject, commentID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
