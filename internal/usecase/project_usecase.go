package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"portfolio/internal/domain/model"
	repo "portfolio/internal/repository"

	"github.com/gosimple/slug"
)

type ProjectUsecase struct {
	projects repo.ProjectRepository
}

// DI
func NewProjectUsecase(projects repo.ProjectRepository) *ProjectUsecase {
	return &ProjectUsecase{projects: projects}
}

// GET /api/projects の入力DTO
type ListProjectsInput struct {
	Page         int
	Limit        int
	FeaturedOnly bool
}

type ProjectListOutput struct {
	Items []model.Project `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProjectUsecase) ListProjects(ctx context.Context, in ListProjectsInput) (ProjectListOutput, error) {
	if in.Page < 1 {
		return ProjectListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProjectListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.projects.List(ctx, repo.ProjectListQuery{
		Page:         in.Page,
		Limit:        in.Limit,
		FeaturedOnly: in.FeaturedOnly,
	})
	if err != nil {
		return ProjectListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProjectListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProjectUsecase) GetProject(ctx context.Context, projectID int64) (model.Project, error) {
	if projectID <= 0 {
		return model.Project{}, NewHTTPError(http.StatusBadRequest, "invalid project id")
	}

	p, err := u.projects.FindByID(ctx, projectID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Project{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Project{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type CreateProjectInput struct {
	Title       string
	Slug        string
	Description string
	Content     string
	RepoURL     string
	DemoURL     string
	Tech        []string
	Featured    bool
	SortOrder   int
}

func (u *ProjectUsecase) CreateProject(ctx context.Context, in CreateProjectInput) (model.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Project{}, NewHTTPError(http.StatusBadRequest, "title required")
	}
	if in.SortOrder < 0 {
		return model.Project{}, NewHTTPError(http.StatusBadRequest, "sort_order must be >= 0")
	}

	projectSlug := strings.TrimSpace(in.Slug)
	if projectSlug == "" {
		projectSlug = slug.Make(title)
	}

	// slug重複は409
	if _, err := u.projects.FindBySlug(ctx, projectSlug); err == nil {
		return model.Project{}, NewHTTPError(http.StatusConflict, "slug already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.Project{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.projects.Create(ctx, model.Project{
		Title:       title,
		Slug:        projectSlug,
		Description: strings.TrimSpace(in.Description),
		Content:     in.Content,
		RepoURL:     strings.TrimSpace(in.RepoURL),
		DemoURL:     strings.TrimSpace(in.DemoURL),
		Tech:        joinTags(in.Tech),
		Featured:    in.Featured,
		SortOrder:   in.SortOrder,
	})
	if err != nil {
		return model.Project{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProjectUsecase) UpdateProject(ctx context.Context, projectID int64, in CreateProjectInput) (model.Project, error) {
	if projectID <= 0 {
		return model.Project{}, NewHTTPError(http.StatusBadRequest, "invalid project id")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Project{}, NewHTTPError(http.StatusBadRequest, "title required")
	}
	if in.SortOrder < 0 {
		return model.Project{}, NewHTTPError(http.StatusBadRequest, "sort_order must be >= 0")
	}

	cur, err := u.projects.FindByID(ctx, projectID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Project{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Project{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	projectSlug := strings.TrimSpace(in.Slug)
	if projectSlug == "" {
		projectSlug = cur.Slug
	}

	// 別プロジェクトが同じslugを使っていたら409
	if other, err := u.projects.FindBySlug(ctx, projectSlug); err == nil && other.ID != projectID {
		return model.Project{}, NewHTTPError(http.StatusConflict, "slug already exists")
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return model.Project{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cur.Title = title
	cur.Slug = projectSlug
	cur.Description = strings.TrimSpace(in.Description)
	cur.Content = in.Content
	cur.RepoURL = strings.TrimSpace(in.RepoURL)
	cur.DemoURL = strings.TrimSpace(in.DemoURL)
	cur.Tech = joinTags(in.Tech)
	cur.Featured = in.Featured
	cur.SortOrder = in.SortOrder

	if err := u.projects.Update(ctx, cur); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Project{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Project{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cur, nil
}

func (u *ProjectUsecase) DeleteProject(ctx context.Context, projectID int64) error {
	if projectID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid project id")
	}

	err := u.projects.SoftDelete(ctx, projectID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
