package server

import (
	"net/http"

	"portfolio/internal/config"
	"portfolio/internal/metrics"
	vld "portfolio/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Deps はルート登録に必要なハンドラとミドルウェア一式。
type Deps struct {
	Auth    *AuthDeps
	Blog    *BlogDeps
	Project *ProjectDeps
	Comment *CommentDeps
	Contact *ContactDeps
	GitHub  *GitHubDeps
	AI      *AIDeps
}

// New はミドルウェアを積んだechoインスタンスを組み立てる。
func New(cfg config.Config, log *logrus.Logger, reg *prometheus.Registry, deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = vld.New()

	e.Use(echomw.Recover())
	e.Use(requestLogger(log))

	//CORS（フロントのoriginだけ許可）
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	collector := metrics.NewCollector(reg)
	e.Use(collector.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(reg)))

	registerRoutes(e, deps)

	return e
}

// requestLogger はリクエストごとに構造化ログを1行出す。
func requestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:     true,
		LogMethod:  true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}

// rateLimiter は公開フォーム用のIPベースのレート制限。
func rateLimiter(rps float64, burst int) echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(rps),
			Burst: burst,
		}),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		},
	})
}
