package usecase

import (
	"context"
	"net/http"

	"portfolio/external/githubapi"

	"github.com/sirupsen/logrus"
)

// RepoLister はGitHubクライアントの利用面。
type RepoLister interface {
	ListPublicRepos(ctx context.Context, user string) ([]githubapi.Repo, error)
}

type GitHubUsecase struct {
	lister   RepoLister
	username string
	log      *logrus.Logger
}

// DI
func NewGitHubUsecase(lister RepoLister, username string, log *logrus.Logger) *GitHubUsecase {
	return &GitHubUsecase{
		lister:   lister,
		username: username,
		log:      log,
	}
}

type RepoListOutput struct {
	Items []githubapi.Repo `json:"items"`
}

// ListRepos は設定されたユーザーの公開リポジトリを返す。
// 上流の失敗は詳細をログに残し、呼び出し元には一般メッセージだけ返す。
func (u *GitHubUsecase) ListRepos(ctx context.Context) (RepoListOutput, error) {
	repos, err := u.lister.ListPublicRepos(ctx, u.username)
	if err != nil {
		u.log.WithError(err).WithField("username", u.username).Error("github repo listing failed")
		return RepoListOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if repos == nil {
		repos = []githubapi.Repo{}
	}
	return RepoListOutput{Items: repos}, nil
}
