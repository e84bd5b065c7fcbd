package repository

import (
	"context"
	"errors"

	"portfolio/internal/domain/model"
	domainrepo "portfolio/internal/repository"

	"gorm.io/gorm"
)

type roleGormRepository struct {
	db *gorm.DB
}

// DI
func NewRoleGormRepository(db *gorm.DB) domainrepo.RoleRepository {
	return &roleGormRepository{db: db}
}

// 全ロールを返す
func (r *roleGormRepository) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := r.db.WithContext(ctx).Order("id asc").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// IDでロールを1件取得
func (r *roleGormRepository) FindByID(ctx context.Context, id int64) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainrepo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// 名前でロールを1件取得
func (r *roleGormRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainrepo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// ロール件数
func (r *roleGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Role{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ロール作成（シード用）
func (r *roleGormRepository) Create(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}
