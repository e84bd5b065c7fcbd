package repository

import (
	"context"
	"errors"

	"portfolio/internal/domain/model"
	repo "portfolio/internal/repository"

	"gorm.io/gorm"
)

type CommentGormRepository struct {
	db *gorm.DB
}

// DI
func NewCommentGormRepository(db *gorm.DB) *CommentGormRepository {
	return &CommentGormRepository{db: db}
}

// 記事に紐づくコメントを古い順で返す。
func (r *CommentGormRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	var comments []model.Comment

	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at asc").Order("id asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return comments, nil
}

// IDでコメントを取得
func (r *CommentGormRepository) FindByID(ctx context.Context, id int64) (model.Comment, error) {
	var c model.Comment
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Comment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

// コメントの作成
func (r *CommentGormRepository) Create(ctx context.Context, c model.Comment) (model.Comment, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

// コメントの更新
func (r *CommentGormRepository) Update(ctx context.Context, c model.Comment) error {
	res := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"content": c.Content,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// コメント削除
func (r *CommentGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
