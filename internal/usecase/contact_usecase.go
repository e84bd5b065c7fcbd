package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"portfolio/internal/domain/model"
	repo "portfolio/internal/repository"
)

type ContactUsecase struct {
	contacts repo.ContactRepository
}

// DI
func NewContactUsecase(contacts repo.ContactRepository) *ContactUsecase {
	return &ContactUsecase{contacts: contacts}
}

type CreateContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Create は問い合わせを保存する。スキーマ検証はハンドラ側で済んでいる。
func (u *ContactUsecase) Create(ctx context.Context, in CreateContactInput) (model.ContactMessage, error) {
	m, err := u.contacts.Create(ctx, model.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	})
	if err != nil {
		return model.ContactMessage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return m, nil
}

// 受信箱一覧の入力DTO
type ListContactInput struct {
	Page       int
	Limit      int
	UnreadOnly bool
}

type ContactListOutput struct {
	Items []model.ContactMessage `json:"items"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

func (u *ContactUsecase) List(ctx context.Context, in ListContactInput) (ContactListOutput, error) {
	if in.Page < 1 {
		return ContactListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ContactListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.contacts.List(ctx, repo.ContactListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		UnreadOnly: in.UnreadOnly,
	})
	if err != nil {
		return ContactListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ContactListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ContactUsecase) MarkRead(ctx context.Context, messageID int64) error {
	if messageID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid message id")
	}

	err := u.contacts.MarkRead(ctx, messageID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ContactUsecase) Delete(ctx context.Context, messageID int64) error {
	if messageID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid message id")
	}

	err := u.contacts.Delete(ctx, messageID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
