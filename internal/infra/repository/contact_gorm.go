package repository

import (
	"context"
	"errors"

	"portfolio/internal/domain/model"
	repo "portfolio/internal/repository"

	"gorm.io/gorm"
)

type ContactGormRepository struct {
	db *gorm.DB
}

// DI
func NewContactGormRepository(db *gorm.DB) *ContactGormRepository {
	return &ContactGormRepository{db: db}
}

// 問い合わせの作成
func (r *ContactGormRepository) Create(ctx context.Context, m model.ContactMessage) (model.ContactMessage, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.ContactMessage{}, err
	}
	return m, nil
}

// 問い合わせを新しい順・ページング付きで返す。
func (r *ContactGormRepository) List(ctx context.Context, q repo.ContactListQuery) ([]model.ContactMessage, int64, error) {
	var messages []model.ContactMessage
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.ContactMessage{})

	if q.UnreadOnly {
		tx = tx.Where("read = ?", false)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.ContactMessage{}, 0, err
	}

	tx = tx.Order("created_at desc").Order("id desc")

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&messages).Error; err != nil {
		return []model.ContactMessage{}, 0, err
	}

	return messages, total, nil
}

// IDで問い合わせを取得
func (r *ContactGormRepository) FindByID(ctx context.Context, id int64) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ContactMessage{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ContactMessage{}, err
	}
	return m, nil
}

// 既読にします。
func (r *ContactGormRepository) MarkRead(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.ContactMessage{}).
		Where("id = ?", id).
		UpdateColumn("read", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 問い合わせ削除（物理削除）
func (r *ContactGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.ContactMessage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
