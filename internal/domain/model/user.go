package model

import "time"

type User struct {
	ID          int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalID  string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"external_id"` // IdPのsub
	Email       string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username    string       `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	FirstName   string       `gorm:"type:varchar(100)" json:"first_name"`
	LastName    string       `gorm:"type:varchar(100)" json:"last_name"`
	RoleID      int64        `gorm:"not null" json:"role_id"`
	Role        Role         `gorm:"foreignKey:RoleID" json:"role"`
	LastLoginAt *time.Time   `json:"last_login_at"`
	SocialLinks []SocialLink `gorm:"foreignKey:UserID" json:"social_links"`
	CreatedAt   time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// SocialLinkはユーザーに紐づく外部プロフィール
type SocialLink struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64  `gorm:"index;not null" json:"user_id"`
	Provider   string `gorm:"type:varchar(50);not null" json:"provider"` // github / x / linkedin など
	ProfileURL string `gorm:"type:varchar(255);not null" json:"profile_url"`
}
