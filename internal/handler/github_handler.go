package handler

import (
	"net/http"

	"portfolio/internal/usecase"

	"github.com/labstack/echo/v4"
)

type GitHubHandler struct {
	uc *usecase.GitHubUsecase
}

// DI
func NewGitHubHandler(uc *usecase.GitHubUsecase) *GitHubHandler {
	return &GitHubHandler{uc: uc}
}

func (h *GitHubHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/github/repos", h.listRepos)
}

func (h *GitHubHandler) listRepos(c echo.Context) error {
	out, err := h.uc.ListRepos(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
