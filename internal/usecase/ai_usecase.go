package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// TextGenerator はLLMクライアントの利用面。
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type AIUsecase struct {
	generator TextGenerator
	log       *logrus.Logger
}

// DI
func NewAIUsecase(generator TextGenerator, log *logrus.Logger) *AIUsecase {
	return &AIUsecase{
		generator: generator,
		log:       log,
	}
}

type GenerateInput struct {
	Prompt string
}

type GenerateOutput struct {
	Text string `json:"text"`
}

// Generate はプロンプトから文章を生成する。リトライはしない。
func (u *AIUsecase) Generate(ctx context.Context, in GenerateInput) (GenerateOutput, error) {
	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return GenerateOutput{}, NewHTTPError(http.StatusBadRequest, "prompt required")
	}
	if len(prompt) > 4000 {
		return GenerateOutput{}, NewHTTPError(http.StatusBadRequest, "prompt too long")
	}

	text, err := u.generator.Generate(ctx, prompt)
	if err != nil {
		u.log.WithError(err).Error("text generation failed")
		return GenerateOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return GenerateOutput{Text: text}, nil
}
