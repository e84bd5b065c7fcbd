package main

import (
	"context"

	"portfolio/external/githubapi"
	"portfolio/external/openai"
	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/handler"
	"portfolio/internal/identity"
	"portfolio/internal/infra/db"
	infraid "portfolio/internal/infra/identity"
	"portfolio/internal/infra/memory"
	infraRepo "portfolio/internal/infra/repository"
	"portfolio/internal/logger"
	"portfolio/internal/middleware"
	"portfolio/internal/repository"
	"portfolio/internal/server"
	"portfolio/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

// repos はストア1種類ぶんのリポジトリ一式。
type repos struct {
	users    repository.UserRepository
	roles    repository.RoleRepository
	posts    repository.BlogPostRepository
	projects repository.ProjectRepository
	comments repository.CommentRepository
	contacts repository.ContactRepository
}

func main() {
	// .envはローカル用。無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.GoEnv)

	// ストア選択（起動時に一度だけ）
	var r repos
	switch cfg.StoreDriver {
	case config.StorePostgres:
		gormDB, err := db.Connect(cfg)
		if err != nil {
			log.WithError(err).Fatal("db connect failed")
		}
		if err := db.Migrate(gormDB); err != nil {
			log.WithError(err).Fatal("db migrate failed")
		}
		r = repos{
			users:    infraRepo.NewUserGormRepository(gormDB),
			roles:    infraRepo.NewRoleGormRepository(gormDB),
			posts:    infraRepo.NewBlogPostGormRepository(gormDB),
			projects: infraRepo.NewProjectGormRepository(gormDB),
			comments: infraRepo.NewCommentGormRepository(gormDB),
			contacts: infraRepo.NewContactGormRepository(gormDB),
		}
	case config.StoreMemory:
		store := memory.NewStore()
		r = repos{
			users:    memory.NewUserMemoryRepository(store),
			roles:    memory.NewRoleMemoryRepository(store),
			posts:    memory.NewBlogPostMemoryRepository(store),
			projects: memory.NewProjectMemoryRepository(store),
			comments: memory.NewCommentMemoryRepository(store),
			contacts: memory.NewContactMemoryRepository(store),
		}
	}

	// ロール投入（冪等）。リッスン開始前に済ませる
	if err := db.SeedRoles(context.Background(), r.roles); err != nil {
		log.WithError(err).Fatal("role seeding failed")
	}

	// 認証プロバイダ選択
	var provider identity.Provider
	var verifier auth.TokenVerifier
	switch cfg.AuthProvider {
	case config.AuthProviderCognito:
		p, err := infraid.NewCognitoProvider(cfg.CognitoRegion, cfg.CognitoUserPoolID, cfg.CognitoClientID)
		if err != nil {
			log.WithError(err).Fatal("cognito init failed")
		}
		provider = p
		verifier = auth.NewJWKSVerifier(cfg.CognitoIssuerURL)
	case config.AuthProviderLocal:
		provider = infraid.NewLocalProvider(cfg.JWTSecret)
		verifier = auth.NewHMACVerifier(cfg.JWTSecret)
	}

	authorizer := auth.NewAuthorizer(r.roles)

	// 外部クライアント
	githubClient := githubapi.NewClient(cfg.GitHubToken)
	openaiClient, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	if err != nil {
		log.WithError(err).Fatal("openai init failed")
	}

	// Usecase生成
	authUC := usecase.NewAuthUsecase(r.users, r.roles, provider, log)
	blogUC := usecase.NewBlogUsecase(r.posts)
	projectUC := usecase.NewProjectUsecase(r.projects)
	commentUC := usecase.NewCommentUsecase(r.comments, r.posts, r.users, authorizer)
	contactUC := usecase.NewContactUsecase(r.contacts)
	githubUC := usecase.NewGitHubUsecase(githubClient, cfg.GitHubUsername, log)
	aiUC := usecase.NewAIUsecase(openaiClient, log)

	// ミドルウェア生成
	authMW := middleware.AuthJWT(verifier)
	contentMW := middleware.RequireCapability(r.users, authorizer, auth.CapContentManage)
	inboxMW := middleware.RequireCapability(r.users, authorizer, auth.CapMessagesRead)
	generateMW := middleware.RequireCapability(r.users, authorizer, auth.CapAIGenerate)

	deps := server.Deps{
		Auth:    &server.AuthDeps{Handler: handler.NewAuthHandler(authUC), AuthMW: authMW},
		Blog:    &server.BlogDeps{Handler: handler.NewBlogHandler(blogUC), AuthMW: authMW, ContentMW: contentMW},
		Project: &server.ProjectDeps{Handler: handler.NewProjectHandler(projectUC), AuthMW: authMW, ContentMW: contentMW},
		Comment: &server.CommentDeps{Handler: handler.NewCommentHandler(commentUC), AuthMW: authMW},
		Contact: &server.ContactDeps{Handler: handler.NewContactHandler(contactUC), AuthMW: authMW, InboxMW: inboxMW},
		GitHub:  &server.GitHubDeps{Handler: handler.NewGitHubHandler(githubUC)},
		AI:      &server.AIDeps{Handler: handler.NewAIHandler(aiUC), AuthMW: authMW, GenerateMW: generateMW},
	}

	reg := prometheus.NewRegistry()
	e := server.New(cfg, log, reg, deps)

	log.WithField("port", cfg.Port).Info("server starting")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
