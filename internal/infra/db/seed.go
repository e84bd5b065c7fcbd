package db

import (
	"context"

	"portfolio/internal/domain/model"
	"portfolio/internal/repository"
)

// SeedRoles はロールを投入する。
// insert-if-emptyガード付きで冪等。リッスン開始前にmainから一度だけ呼ぶ。
func SeedRoles(ctx context.Context, roles repository.RoleRepository) error {
	n, err := roles.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, r := range model.DefaultRoles() {
		role := r
		if err := roles.Create(ctx, &role); err != nil {
			return err
		}
	}
	return nil
}
