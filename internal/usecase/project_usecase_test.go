package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"portfolio/internal/infra/memory"
	"portfolio/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectUsecase() *usecase.ProjectUsecase {
	return usecase.NewProjectUsecase(memory.NewProjectMemoryRepository(memory.NewStore()))
}

// =====================
// CreateProject / GetProject
// =====================

// 作成直後にIDで引くと、入力した値がそのまま返る
func TestProjectUsecase_CreateThenGet_RoundTrip(t *testing.T) {
	uc := newProjectUsecase()
	ctx := context.Background()

	in := usecase.CreateProjectInput{
		Title:       "Portfolio Site",
		Slug:        "portfolio-site",
		Description: "My personal site",
		Content:     "Built with Go.",
		RepoURL:     "https://github.com/taro/portfolio",
		DemoURL:     "https://taro.example.com",
		Tech:        []string{"go", "echo", "postgres"},
		Featured:    true,
		SortOrder:   3,
	}

	created, err := uc.CreateProject(ctx, in)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := uc.GetProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Slug, got.Slug)
	assert.Equal(t, in.Description, got.Description)
	assert.Equal(t, in.Content, got.Content)
	assert.Equal(t, in.RepoURL, got.RepoURL)
	assert.Equal(t, in.DemoURL, got.DemoURL)
	assert.Equal(t, "go,echo,postgres", got.Tech)
	assert.Equal(t, in.Featured, got.Featured)
	assert.Equal(t, in.SortOrder, got.SortOrder)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

// slug省略時はtitleから導出される
func TestProjectUsecase_CreateProject_DerivesSlug(t *testing.T) {
	uc := newProjectUsecase()

	p, err := uc.CreateProject(context.Background(), usecase.CreateProjectInput{
		Title: "Geo Based Quiz!",
	})
	require.NoError(t, err)
	assert.Equal(t, "geo-based-quiz", p.Slug)
}

// slug重複 => 409（メモリ実装でもDB実装と同じ応答になる）
func TestProjectUsecase_CreateProject_DuplicateSlug(t *testing.T) {
	uc := newProjectUsecase()
	ctx := context.Background()

	_, err := uc.CreateProject(ctx, usecase.CreateProjectInput{Title: "Same Name"})
	require.NoError(t, err)

	_, err = uc.CreateProject(ctx, usecase.CreateProjectInput{Title: "Same Name"})
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))

	// 明示slugでも同じ
	_, err = uc.CreateProject(ctx, usecase.CreateProjectInput{Title: "Other", Slug: "same-name"})
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
}

// =====================
// UpdateProject / DeleteProject
// =====================

// slug省略なら既存を維持。別プロジェクトのslugへは変えられない
func TestProjectUsecase_UpdateProject_SlugRules(t *testing.T) {
	uc := newProjectUsecase()
	ctx := context.Background()

	a, err := uc.CreateProject(ctx, usecase.CreateProjectInput{Title: "First"})
	require.NoError(t, err)
	_, err = uc.CreateProject(ctx, usecase.CreateProjectInput{Title: "Second"})
	require.NoError(t, err)

	updated, err := uc.UpdateProject(ctx, a.ID, usecase.CreateProjectInput{Title: "First v2"})
	require.NoError(t, err)
	assert.Equal(t, "first", updated.Slug)

	_, err = uc.UpdateProject(ctx, a.ID, usecase.CreateProjectInput{Title: "First v3", Slug: "second"})
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
}

// 削除後はslugが再利用できる
func TestProjectUsecase_DeleteProject_FreesSlug(t *testing.T) {
	uc := newProjectUsecase()
	ctx := context.Background()

	p, err := uc.CreateProject(ctx, usecase.CreateProjectInput{Title: "Reusable"})
	require.NoError(t, err)
	require.NoError(t, uc.DeleteProject(ctx, p.ID))

	again, err := uc.CreateProject(ctx, usecase.CreateProjectInput{Title: "Reusable"})
	require.NoError(t, err)
	assert.Equal(t, "reusable", again.Slug)
	assert.NotEqual(t, p.ID, again.ID)
}
