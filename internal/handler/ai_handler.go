package handler

import (
	"net/http"

	"portfolio/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AIHandler struct {
	uc *usecase.AIUsecase
}

// DI
func NewAIHandler(uc *usecase.AIUsecase) *AIHandler {
	return &AIHandler{uc: uc}
}

// 生成はai:generate権限とレート制限の両方を通す。
func (h *AIHandler) RegisterRoutes(e *echo.Echo, authMW, generateMW echo.MiddlewareFunc, limitMW echo.MiddlewareFunc) {
	e.POST("/api/ai/generate", h.generate, limitMW, authMW, generateMW)
}

type generateRequest struct {
	Prompt string `json:"prompt" validate:"required,max=4000"`
}

func (h *AIHandler) generate(c echo.Context) error {
	var req generateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Generate(c.Request().Context(), usecase.GenerateInput{Prompt: req.Prompt})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
