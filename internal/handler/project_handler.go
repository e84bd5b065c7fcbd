package handler

import (
	"net/http"
	"strconv"

	"portfolio/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/projects をまとめる
type ProjectHandler struct {
	uc *usecase.ProjectUsecase
}

// DI
func NewProjectHandler(uc *usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc, contentMW echo.MiddlewareFunc) {
	e.GET("/api/projects", h.list)
	e.GET("/api/projects/:id", h.detail)

	e.POST("/api/projects", h.create, authMW, contentMW)
	e.PUT("/api/projects/:id", h.update, authMW, contentMW)
	e.DELETE("/api/projects/:id", h.delete, authMW, contentMW)
}

func (h *ProjectHandler) list(c echo.Context) error {
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

	out, err := h.uc.ListProjects(c.Request().Context(), usecase.ListProjectsInput{
		Page:         page,
		Limit:        limit,
		FeaturedOnly: c.QueryParam("featured") == "1",
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProjectHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetProject(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// プロジェクトのリクエストボディ。
type projectRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Slug        string   `json:"slug" validate:"omitempty,max=255"`
	Description string   `json:"description" validate:"max=500"`
	Content     string   `json:"content"`
	RepoURL     string   `json:"repo_url" validate:"omitempty,url"`
	DemoURL     string   `json:"demo_url" validate:"omitempty,url"`
	Tech        []string `json:"tech" validate:"omitempty,dive,max=50"`
	Featured    bool     `json:"featured"`
	SortOrder   int      `json:"sort_order" validate:"gte=0"`
}

func (r projectRequest) toInput() usecase.CreateProjectInput {
	return usecase.CreateProjectInput{
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		Content:     r.Content,
		RepoURL:     r.RepoURL,
		DemoURL:     r.DemoURL,
		Tech:        r.Tech,
		Featured:    r.Featured,
		SortOrder:   r.SortOrder,
	}
}

func (h *ProjectHandler) create(c echo.Context) error {
	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.CreateProject(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProjectHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.UpdateProject(c.Request().Context(), id, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteProject(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
