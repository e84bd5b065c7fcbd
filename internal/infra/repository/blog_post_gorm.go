package repository

import (
	"context"
	"errors"
	"strings"

	"portfolio/internal/domain/model"
	repo "portfolio/internal/repository"

	"gorm.io/gorm"
)

type BlogPostGormRepository struct {
	db *gorm.DB
}

// DI
func NewBlogPostGormRepository(db *gorm.DB) *BlogPostGormRepository {
	return &BlogPostGormRepository{db: db}
}

// 記事をタグ絞り込み・ページング付きで返す。
func (r *BlogPostGormRepository) List(ctx context.Context, q repo.BlogPostListQuery) ([]model.BlogPost, int64, error) {
	var posts []model.BlogPost
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.BlogPost{})

	// 匿名アクセスは公開済みのみ
	if q.PublishedOnly {
		tx = tx.Where("published = ?", true)
	}

	// タグはカンマ区切り文字列への部分一致
	if strings.TrimSpace(q.Tag) != "" {
		like := "%" + strings.TrimSpace(q.Tag) + "%"
		tx = tx.Where("tags ILIKE ?", like)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.BlogPost{}, 0, err
	}

	tx = tx.Order("created_at desc").Order("id desc")

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&posts).Error; err != nil {
		return []model.BlogPost{}, 0, err
	}

	return posts, total, nil
}

// IDで記事を取得
func (r *BlogPostGormRepository) FindByID(ctx context.Context, id int64) (model.BlogPost, error) {
	var p model.BlogPost
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BlogPost{}, repo.ErrNotFound
	}
	if err != nil {
		return model.BlogPost{}, err
	}
	return p, nil
}

// slugで記事を取得
func (r *BlogPostGormRepository) FindBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	var p model.BlogPost
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BlogPost{}, repo.ErrNotFound
	}
	if err != nil {
		return model.BlogPost{}, err
	}
	return p, nil
}

// 記事の作成
func (r *BlogPostGormRepository) Create(ctx context.Context, p model.BlogPost) (model.BlogPost, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.BlogPost{}, err
	}
	return p, nil
}

// 記事の更新
func (r *BlogPostGormRepository) Update(ctx context.Context, p model.BlogPost) error {
	res := r.db.WithContext(ctx).Model(&model.BlogPost{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"title":     p.Title,
		"slug":      p.Slug,
		"excerpt":   p.Excerpt,
		"content":   p.Content,
		"tags":      p.Tags,
		"published": p.Published,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 記事削除
func (r *BlogPostGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.BlogPost{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
