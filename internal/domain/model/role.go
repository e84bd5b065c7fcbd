package model

import "strings"

// ロール名（シード用。認可判定はPermissionsのみを見る）
const (
	RoleNameAdmin = "admin"
	RoleNameUser  = "user"
)

type Role struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
	Permissions string `gorm:"type:text;not null;default:''" json:"permissions"` // カンマ区切り
}

// PermissionListはPermissionsをスライスに展開する
func (r Role) PermissionList() []string {
	if strings.TrimSpace(r.Permissions) == "" {
		return nil
	}
	parts := strings.Split(r.Permissions, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasPermissionは指定の権限を持つかを返す
func (r Role) HasPermission(perm string) bool {
	for _, p := range r.PermissionList() {
		if p == perm {
			return true
		}
	}
	return false
}

// DefaultRolesはシード投入するロール一覧
func DefaultRoles() []Role {
	return []Role{
		{
			Name:        RoleNameAdmin,
			Description: "Site owner with full management access",
			Permissions: "content:manage,messages:read,comments:write,profile:write,ai:generate",
		},
		{
			Name:        RoleNameUser,
			Description: "Registered visitor",
			Permissions: "comments:write,profile:write",
		},
	}
}
