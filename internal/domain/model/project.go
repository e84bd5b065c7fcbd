package model

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	// 一意制約はソフトデリート済みを除く（削除したプロジェクトのslugは再利用できる）
	Slug        string         `gorm:"type:varchar(255);uniqueIndex:idx_projects_slug,where:deleted_at IS NULL;not null" json:"slug"`
	Description string         `gorm:"type:varchar(500)" json:"description"`
	Content     string         `gorm:"type:text" json:"content"`
	RepoURL     string         `gorm:"type:varchar(255)" json:"repo_url"`
	DemoURL     string         `gorm:"type:varchar(255)" json:"demo_url"`
	Tech        string         `gorm:"type:varchar(255)" json:"tech"` // カンマ区切り
	Featured    bool           `gorm:"not null;default:false" json:"featured"`
	SortOrder   int            `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
