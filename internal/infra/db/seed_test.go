package db_test

import (
	"context"
	"testing"

	"portfolio/internal/domain/model"
	"portfolio/internal/infra/db"
	"portfolio/internal/infra/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 空のストアにはデフォルトロールが入る
func TestSeedRoles_EmptyStore(t *testing.T) {
	roles := memory.NewRoleMemoryRepository(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, db.SeedRoles(ctx, roles))

	admin, err := roles.FindByName(ctx, model.RoleNameAdmin)
	require.NoError(t, err)
	assert.True(t, admin.HasPermission("content:manage"))
	assert.True(t, admin.HasPermission("messages:read"))

	user, err := roles.FindByName(ctx, model.RoleNameUser)
	require.NoError(t, err)
	assert.False(t, user.HasPermission("content:manage"))
	assert.True(t, user.HasPermission("comments:write"))
}

// 2回呼んでも増えない（冪等）
func TestSeedRoles_Idempotent(t *testing.T) {
	roles := memory.NewRoleMemoryRepository(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, db.SeedRoles(ctx, roles))
	first, err := roles.Count(ctx)
	require.NoError(t, err)

	require.NoError(t, db.SeedRoles(ctx, roles))
	second, err := roles.Count(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// 既にロールがあるストアには触らない
func TestSeedRoles_ExistingRolesUntouched(t *testing.T) {
	roles := memory.NewRoleMemoryRepository(memory.NewStore())
	ctx := context.Background()

	custom := model.Role{Name: "editor", Permissions: "content:manage"}
	require.NoError(t, roles.Create(ctx, &custom))

	require.NoError(t, db.SeedRoles(ctx, roles))

	n, err := roles.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
