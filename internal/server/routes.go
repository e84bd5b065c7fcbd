package server

import (
	"portfolio/internal/handler"

	"github.com/labstack/echo/v4"
)

// 各ハンドラと、それに掛けるミドルウェアの組。
// ミドルウェアの生成（検証器・権限）はmain側で済ませておく。
type AuthDeps struct {
	Handler *handler.AuthHandler
	AuthMW  echo.MiddlewareFunc
}

type BlogDeps struct {
	Handler   *handler.BlogHandler
	AuthMW    echo.MiddlewareFunc
	ContentMW echo.MiddlewareFunc
}

type ProjectDeps struct {
	Handler   *handler.ProjectHandler
	AuthMW    echo.MiddlewareFunc
	ContentMW echo.MiddlewareFunc
}

type CommentDeps struct {
	Handler *handler.CommentHandler
	AuthMW  echo.MiddlewareFunc
}

type ContactDeps struct {
	Handler *handler.ContactHandler
	AuthMW  echo.MiddlewareFunc
	InboxMW echo.MiddlewareFunc
}

type GitHubDeps struct {
	Handler *handler.GitHubHandler
}

type AIDeps struct {
	Handler    *handler.AIHandler
	AuthMW     echo.MiddlewareFunc
	GenerateMW echo.MiddlewareFunc
}

func registerRoutes(e *echo.Echo, deps Deps) {
	deps.Auth.Handler.RegisterRoutes(e, deps.Auth.AuthMW)
	deps.Blog.Handler.RegisterRoutes(e, deps.Blog.AuthMW, deps.Blog.ContentMW)
	deps.Project.Handler.RegisterRoutes(e, deps.Project.AuthMW, deps.Project.ContentMW)
	deps.Comment.Handler.RegisterRoutes(e, deps.Comment.AuthMW)

	// 問い合わせ送信は1秒1件・バースト5まで
	deps.Contact.Handler.RegisterRoutes(e, deps.Contact.AuthMW, deps.Contact.InboxMW, rateLimiter(1, 5))

	deps.GitHub.Handler.RegisterRoutes(e)

	// 生成は重いので絞る
	deps.AI.Handler.RegisterRoutes(e, deps.AI.AuthMW, deps.AI.GenerateMW, rateLimiter(0.5, 2))
}
