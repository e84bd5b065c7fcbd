package memory

import (
	"context"
	"sort"

	"portfolio/internal/domain/model"
	domainrepo "portfolio/internal/repository"
)

type roleMemoryRepository struct {
	store *Store
}

// DI
func NewRoleMemoryRepository(store *Store) domainrepo.RoleRepository {
	return &roleMemoryRepository{store: store}
}

func (r *roleMemoryRepository) List(ctx context.Context) ([]model.Role, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	roles := make([]model.Role, 0, len(s.roles))
	for _, role := range s.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].ID < roles[j].ID })
	return roles, nil
}

func (r *roleMemoryRepository) FindByID(ctx context.Context, id int64) (*model.Role, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.roles[id]
	if !ok {
		return nil, domainrepo.ErrNotFound
	}
	return &role, nil
}

func (r *roleMemoryRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, role := range s.roles {
		if role.Name == name {
			out := role
			return &out, nil
		}
	}
	return nil, domainrepo.ErrNotFound
}

func (r *roleMemoryRepository) Count(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.roles)), nil
}

func (r *roleMemoryRepository) Create(ctx context.Context, role *model.Role) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	role.ID = s.nextID("roles")
	s.roles[role.ID] = *role
	return nil
}
