package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"portfolio/external/githubapi"
	"portfolio/internal/logger"
	"portfolio/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// fakes
// =====================

type fakeRepoLister struct {
	repos []githubapi.Repo
	err   error
}

func (f *fakeRepoLister) ListPublicRepos(ctx context.Context, user string) ([]githubapi.Repo, error) {
	return f.repos, f.err
}

type fakeGenerator struct {
	text string
	err  error
	got  string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.got = prompt
	return f.text, f.err
}

// =====================
// GitHubUsecase
// =====================

// 正常：取得結果をそのまま返す
func TestGitHubUsecase_ListRepos(t *testing.T) {
	lister := &fakeRepoLister{repos: []githubapi.Repo{{Name: "portfolio", Stars: 3}}}
	uc := usecase.NewGitHubUsecase(lister, "taro", logger.New("dev"))

	out, err := uc.ListRepos(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "portfolio", out.Items[0].Name)
}

// 上流の失敗 => 呼び出し元には一般メッセージの500だけ
func TestGitHubUsecase_ListRepos_UpstreamFailure(t *testing.T) {
	lister := &fakeRepoLister{err: errors.New("rate limited")}
	uc := usecase.NewGitHubUsecase(lister, "taro", logger.New("dev"))

	_, err := uc.ListRepos(context.Background())
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
	assert.NotContains(t, he.Message, "rate limited")
}

// リポジトリ0件でもnilではなく空配列
func TestGitHubUsecase_ListRepos_Empty(t *testing.T) {
	uc := usecase.NewGitHubUsecase(&fakeRepoLister{}, "taro", logger.New("dev"))

	out, err := uc.ListRepos(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Len(t, out.Items, 0)
}

// =====================
// AIUsecase
// =====================

// 正常：前後の空白を落としてから渡す
func TestAIUsecase_Generate(t *testing.T) {
	gen := &fakeGenerator{text: "generated"}
	uc := usecase.NewAIUsecase(gen, logger.New("dev"))

	out, err := uc.Generate(context.Background(), usecase.GenerateInput{Prompt: "  write an intro  "})
	require.NoError(t, err)
	assert.Equal(t, "generated", out.Text)
	assert.Equal(t, "write an intro", gen.got)
}

// 空プロンプト => 400
func TestAIUsecase_Generate_EmptyPrompt(t *testing.T) {
	uc := usecase.NewAIUsecase(&fakeGenerator{}, logger.New("dev"))

	_, err := uc.Generate(context.Background(), usecase.GenerateInput{Prompt: "   "})
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

// 長すぎるプロンプト => 400
func TestAIUsecase_Generate_TooLong(t *testing.T) {
	uc := usecase.NewAIUsecase(&fakeGenerator{}, logger.New("dev"))

	_, err := uc.Generate(context.Background(), usecase.GenerateInput{Prompt: strings.Repeat("a", 4001)})
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

// 生成失敗 => 詳細を隠した500
func TestAIUsecase_Generate_UpstreamFailure(t *testing.T) {
	uc := usecase.NewAIUsecase(&fakeGenerator{err: errors.New("model overloaded")}, logger.New("dev"))

	_, err := uc.Generate(context.Background(), usecase.GenerateInput{Prompt: "hello"})
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
	assert.NotContains(t, he.Message, "overloaded")
}
