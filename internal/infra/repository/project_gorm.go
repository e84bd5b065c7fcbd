package repository

import (
	"context"
	"errors"

	"portfolio/internal/domain/model"
	repo "portfolio/internal/repository"

	"gorm.io/gorm"
)

type ProjectGormRepository struct {
	db *gorm.DB
}

// DI
func NewProjectGormRepository(db *gorm.DB) *ProjectGormRepository {
	return &ProjectGormRepository{db: db}
}

// プロジェクトをsort_order昇順・ページング付きで返す。
func (r *ProjectGormRepository) List(ctx context.Context, q repo.ProjectListQuery) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Project{})

	if q.FeaturedOnly {
		tx = tx.Where("featured = ?", true)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Project{}, 0, err
	}

	tx = tx.Order("sort_order asc").Order("id asc")

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&projects).Error; err != nil {
		return []model.Project{}, 0, err
	}

	return projects, total, nil
}

// IDでプロジェクトを取得
func (r *ProjectGormRepository) FindByID(ctx context.Context, id int64) (model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Project{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// slugでプロジェクトを取得
func (r *ProjectGormRepository) FindBySlug(ctx context.Context, slug string) (model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Project{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// プロジェクトの作成
func (r *ProjectGormRepository) Create(ctx context.Context, p model.Project) (model.Project, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// プロジェクトの更新
func (r *ProjectGormRepository) Update(ctx context.Context, p model.Project) error {
	res := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"title":       p.Title,
		"slug":        p.Slug,
		"description": p.Description,
		"content":     p.Content,
		"repo_url":    p.RepoURL,
		"demo_url":    p.DemoURL,
		"tech":        p.Tech,
		"featured":    p.Featured,
		"sort_order":  p.SortOrder,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// プロジェクト削除
func (r *ProjectGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Project{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
