package memory

import (
	"context"
	"time"

	"portfolio/internal/domain/model"
	domainrepo "portfolio/internal/repository"
)

type userMemoryRepository struct {
	store *Store
}

// DI
func NewUserMemoryRepository(store *Store) domainrepo.UserRepository {
	return &userMemoryRepository{store: store}
}

func (r *userMemoryRepository) Create(ctx context.Context, user *model.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	user.ID = s.nextID("users")
	user.CreatedAt = now
	user.UpdatedAt = now

	// ロールを引き当てて埋める（Preload相当）
	if role, ok := s.roles[user.RoleID]; ok {
		user.Role = role
	}

	s.users[user.ID] = *user
	return nil
}

func (r *userMemoryRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userMemoryRepository) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ExternalID == externalID {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *userMemoryRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *userMemoryRepository) Update(ctx context.Context, user *model.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return domainrepo.ErrNotFound
	}

	user.UpdatedAt = time.Now()
	if role, ok := s.roles[user.RoleID]; ok {
		user.Role = role
	}
	s.users[user.ID] = *user
	return nil
}

func (r *userMemoryRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domainrepo.ErrNotFound
	}
	t := at
	u.LastLoginAt = &t
	s.users[id] = u
	return nil
}
