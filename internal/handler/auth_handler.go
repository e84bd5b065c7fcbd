package handler

import (
	"net/http"

	"portfolio/internal/domain/model"
	"portfolio/internal/middleware"
	"portfolio/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/auth をまとめる
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// 認証ルートを登録
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	g := e.Group("/api/auth")

	g.POST("/signup", h.signup)
	g.POST("/login", h.login)

	g.GET("/profile", h.getProfile, authMW)
	g.PUT("/profile", h.updateProfile, authMW)
}

// /api/auth/signup のリクエストボディ。
type signupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"omitempty,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=8,max=100"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

// /api/auth/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	user, err := h.uc.SignUp(c.Request().Context(), usecase.SignUpInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) getProfile(c echo.Context) error {
	subject, ok := middleware.SubjectFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	user, err := h.uc.GetProfile(c.Request().Context(), subject)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// /api/auth/profile のリクエストボディ。
type updateProfileRequest struct {
	Username    string              `json:"username" validate:"omitempty,min=3,max=50"`
	FirstName   string              `json:"first_name" validate:"max=100"`
	LastName    string              `json:"last_name" validate:"max=100"`
	SocialLinks []socialLinkRequest `json:"social_links" validate:"omitempty,dive"`
}

type socialLinkRequest struct {
	Provider   string `json:"provider" validate:"required,max=50"`
	ProfileURL string `json:"profile_url" validate:"required,url"`
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	subject, ok := middleware.SubjectFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	var links []model.SocialLink
	if req.SocialLinks != nil {
		links = make([]model.SocialLink, 0, len(req.SocialLinks))
		for _, l := range req.SocialLinks {
			links = append(links, model.SocialLink{
				Provider:   l.Provider,
				ProfileURL: l.ProfileURL,
			})
		}
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), subject, usecase.UpdateProfileInput{
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		SocialLinks: links,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}
