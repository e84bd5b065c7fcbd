package model

import (
	"time"

	"gorm.io/gorm"
)

type BlogPost struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	// 一意制約はソフトデリート済みを除く（削除した記事のslugは再利用できる）
	Slug      string         `gorm:"type:varchar(255);uniqueIndex:idx_blog_posts_slug,where:deleted_at IS NULL;not null" json:"slug"`
	Excerpt   string         `gorm:"type:varchar(500)" json:"excerpt"`
	Content   string         `gorm:"type:text" json:"content"`
	Tags      string         `gorm:"type:varchar(255)" json:"tags"` // カンマ区切り
	Published bool           `gorm:"not null;default:false" json:"published"`
	AuthorID  int64          `gorm:"index;not null" json:"author_id"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
