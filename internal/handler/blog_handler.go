package handler

import (
	"net/http"
	"strconv"

	"portfolio/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/blog をまとめる
type BlogHandler struct {
	uc *usecase.BlogUsecase
}

// DI
func NewBlogHandler(uc *usecase.BlogUsecase) *BlogHandler {
	return &BlogHandler{uc: uc}
}

// ブログのルートを登録。書き込み系は管理権限ゲート付き。
func (h *BlogHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc, contentMW echo.MiddlewareFunc) {
	e.GET("/api/blog/posts", h.list)
	e.GET("/api/blog/posts/all", h.listAll, authMW, contentMW)
	e.GET("/api/blog/posts/:id", h.detail)

	e.POST("/api/blog/posts", h.create, authMW, contentMW)
	e.PUT("/api/blog/posts/:id", h.update, authMW, contentMW)
	e.DELETE("/api/blog/posts/:id", h.delete, authMW, contentMW)
}

func (h *BlogHandler) list(c echo.Context) error {
	in, err := listPostsInputFromQuery(c, false)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ListPosts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// listAll は下書きも含めて返す（管理用）。
func (h *BlogHandler) listAll(c echo.Context) error {
	in, err := listPostsInputFromQuery(c, true)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ListPosts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func listPostsInputFromQuery(c echo.Context, includeDrafts bool) (usecase.ListPostsInput, error) {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return usecase.ListPostsInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid page")
		}
		page = p
	}

	// limit（default 20）
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return usecase.ListPostsInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = l
	}

	return usecase.ListPostsInput{
		Page:          page,
		Limit:         limit,
		Tag:           c.QueryParam("tag"),
		IncludeDrafts: includeDrafts,
	}, nil
}

func (h *BlogHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetPost(c.Request().Context(), id, false)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// ブログ記事のリクエストボディ。slug省略時はtitleから導出される。
type postRequest struct {
	Title     string   `json:"title" validate:"required,max=255"`
	Slug      string   `json:"slug" validate:"omitempty,max=255"`
	Excerpt   string   `json:"excerpt" validate:"max=500"`
	Content   string   `json:"content" validate:"required"`
	Tags      []string `json:"tags" validate:"omitempty,dive,max=50"`
	Published bool     `json:"published"`
}

func (h *BlogHandler) create(c echo.Context) error {
	var req postRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	authorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	p, err := h.uc.CreatePost(c.Request().Context(), authorID, usecase.CreatePostInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Tags:      req.Tags,
		Published: req.Published,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

func (h *BlogHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req postRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.UpdatePost(c.Request().Context(), id, usecase.CreatePostInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Tags:      req.Tags,
		Published: req.Published,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *BlogHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeletePost(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
