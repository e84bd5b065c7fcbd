// Package githubapi はGitHub公開APIの読み取り専用クライアント。
package githubapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-github/github"
)

// Repo はAPIレスポンスに載せる形に整えたリポジトリ情報。
type Repo struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Language    string    `json:"language"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Topics      []string  `json:"topics"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Client struct {
	gh *github.Client
}

// NewClient を作る。tokenは任意（あればレート制限が緩くなる）。
func NewClient(token string) *Client {
	hc := &http.Client{Timeout: 10 * time.Second}
	if token != "" {
		hc.Transport = &tokenTransport{token: token}
	}
	return &Client{gh: github.NewClient(hc)}
}

// ListPublicRepos はユーザーの公開リポジトリを更新順で返す。
func (c *Client) ListPublicRepos(ctx context.Context, user string) ([]Repo, error) {
	opts := &github.RepositoryListOptions{
		Type: "owner",
		Sort: "updated",
		ListOptions: github.ListOptions{
			PerPage: 50,
		},
	}

	repos, _, err := c.gh.Repositories.List(ctx, user, opts)
	if err != nil {
		return nil, err
	}

	out := make([]Repo, 0, len(repos))
	for _, r := range repos {
		if r.GetPrivate() {
			continue
		}
		out = append(out, Repo{
			Name:        r.GetName(),
			FullName:    r.GetFullName(),
			Description: r.GetDescription(),
			HTMLURL:     r.GetHTMLURL(),
			Language:    r.GetLanguage(),
			Stars:       r.GetStargazersCount(),
			Forks:       r.GetForksCount(),
			Topics:      r.Topics,
			UpdatedAt:   r.GetUpdatedAt().Time,
		})
	}

	return out, nil
}

// tokenTransport はAuthorizationヘッダを付けるだけのRoundTripper。
type tokenTransport struct {
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "token "+t.token)
	return http.DefaultTransport.RoundTrip(clone)
}
