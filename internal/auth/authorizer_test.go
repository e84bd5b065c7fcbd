package auth_test

import (
	"context"
	"testing"

	"portfolio/internal/auth"
	"portfolio/internal/domain/model"
	"portfolio/internal/infra/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// Authorizer
// =====================

func seedRole(t *testing.T, store *memory.Store, name string, permissions string) model.Role {
	t.Helper()

	roles := memory.NewRoleMemoryRepository(store)
	role := model.Role{Name: name, Permissions: permissions}
	require.NoError(t, roles.Create(context.Background(), &role))
	return role
}

// 権限を持つロール => 許可
func TestAuthorizer_Require_Allowed(t *testing.T) {
	store := memory.NewStore()
	admin := seedRole(t, store, "admin", "content:manage,messages:read")

	a := auth.NewAuthorizer(memory.NewRoleMemoryRepository(store))
	identity := auth.Identity{UserID: 1, Subject: "sub-1", RoleID: admin.ID}

	assert.NoError(t, a.Require(context.Background(), identity, auth.CapContentManage))
	assert.NoError(t, a.Require(context.Background(), identity, auth.CapMessagesRead))
}

// 権限がないロール => ErrForbidden
func TestAuthorizer_Require_Denied(t *testing.T) {
	store := memory.NewStore()
	user := seedRole(t, store, "user", "comments:write,profile:write")

	a := auth.NewAuthorizer(memory.NewRoleMemoryRepository(store))
	identity := auth.Identity{UserID: 2, Subject: "sub-2", RoleID: user.ID}

	assert.ErrorIs(t, a.Require(context.Background(), identity, auth.CapContentManage), auth.ErrForbidden)
	assert.NoError(t, a.Require(context.Background(), identity, auth.CapCommentsWrite))
}

// ロール不在 => ErrForbidden（500にはしない）
func TestAuthorizer_Require_UnknownRole(t *testing.T) {
	store := memory.NewStore()

	a := auth.NewAuthorizer(memory.NewRoleMemoryRepository(store))
	identity := auth.Identity{UserID: 3, Subject: "sub-3", RoleID: 999}

	assert.ErrorIs(t, a.Require(context.Background(), identity, auth.CapProfileWrite), auth.ErrForbidden)
}

// ロール名は判定に使われない。Permissionsが全て
func TestAuthorizer_Require_NameDoesNotMatter(t *testing.T) {
	store := memory.NewStore()
	odd := seedRole(t, store, "admin", "") // 名前がadminでも権限が空なら拒否

	a := auth.NewAuthorizer(memory.NewRoleMemoryRepository(store))
	identity := auth.Identity{UserID: 4, Subject: "sub-4", RoleID: odd.ID}

	assert.ErrorIs(t, a.Require(context.Background(), identity, auth.CapContentManage), auth.ErrForbidden)
}
