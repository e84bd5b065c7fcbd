package config

import (
	"fmt"
	"os"
	"strconv"
)

// ストア種別
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// 認証プロバイダ種別
const (
	AuthProviderCognito = "cognito"
	AuthProviderLocal   = "local"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	StoreDriver string // postgres / memory

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート
	PostgresSSLMode  string // disable など

	AuthProvider string // cognito / local
	JWTSecret    string // localプロバイダのHS256シークレット

	CognitoRegion     string // Cognitoリージョン
	CognitoUserPoolID string // ユーザープールID
	CognitoClientID   string // アプリクライアントID
	CognitoIssuerURL  string // IDトークンのissuer（JWKS取得に使う）

	GitHubUsername string // 公開リポジトリ一覧の対象ユーザー
	GitHubToken    string // 任意（レート制限緩和用）

	OpenAIAPIKey  string // LLM APIキー
	OpenAIBaseURL string // LLMエンドポイント（省略時は本家）
	OpenAIModel   string // 使用モデル

	GoEnv string // dev/prod
	FEURL string // フロントURL（CORSで使う）
}

// Loadは環境変数から設定を読み込む
func Load() (Config, error) {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		StoreDriver: getenv("STORE_DRIVER", StorePostgres),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		AuthProvider: getenv("AUTH_PROVIDER", AuthProviderLocal),
		JWTSecret:    os.Getenv("JWT_SECRET"),

		CognitoRegion:     os.Getenv("COGNITO_REGION"),
		CognitoUserPoolID: os.Getenv("COGNITO_USER_POOL_ID"),
		CognitoClientID:   os.Getenv("COGNITO_CLIENT_ID"),
		CognitoIssuerURL:  os.Getenv("COGNITO_ISSUER_URL"),

		GitHubUsername: os.Getenv("GITHUB_USERNAME"),
		GitHubToken:    os.Getenv("GITHUB_TOKEN"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getenv("OPENAI_MODEL", "gpt-4o-mini"),

		GoEnv: getenv("GO_ENV", "dev"),
		FEURL: getenv("FE_URL", "http://localhost:3000"),
	}

	//ストア種別チェック
	switch cfg.StoreDriver {
	case StorePostgres, StoreMemory:
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER must be postgres or memory")
	}

	//postgres利用時の必須チェック（DATABASE_URLがあればそちら優先）
	if cfg.StoreDriver == StorePostgres && os.Getenv("DATABASE_URL") == "" {
		if cfg.PostgresUser == "" {
			return Config{}, fmt.Errorf("POSTGRES_USER is required")
		}
		if cfg.PostgresPassword == "" {
			return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
		}
		if cfg.PostgresDB == "" {
			return Config{}, fmt.Errorf("POSTGRES_DB is required")
		}
		pgPort, err := mustAtoi("POSTGRES_PORT")
		if err != nil {
			return Config{}, err
		}
		cfg.PostgresPort = pgPort
	}

	//認証プロバイダの必須チェック
	switch cfg.AuthProvider {
	case AuthProviderLocal:
		if cfg.JWTSecret == "" {
			return Config{}, fmt.Errorf("JWT_SECRET is required")
		}
	case AuthProviderCognito:
		if cfg.CognitoRegion == "" {
			return Config{}, fmt.Errorf("COGNITO_REGION is required")
		}
		if cfg.CognitoUserPoolID == "" {
			return Config{}, fmt.Errorf("COGNITO_USER_POOL_ID is required")
		}
		if cfg.CognitoClientID == "" {
			return Config{}, fmt.Errorf("COGNITO_CLIENT_ID is required")
		}
		if cfg.CognitoIssuerURL == "" {
			return Config{}, fmt.Errorf("COGNITO_ISSUER_URL is required")
		}
	default:
		return Config{}, fmt.Errorf("AUTH_PROVIDER must be cognito or local")
	}

	if cfg.GitHubUsername == "" {
		return Config{}, fmt.Errorf("GITHUB_USERNAME is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
