package memory

import (
	"context"
	"sort"
	"time"

	"portfolio/internal/domain/model"
	repo "portfolio/internal/repository"
)

type contactMemoryRepository struct {
	store *Store
}

// DI
func NewContactMemoryRepository(store *Store) repo.ContactRepository {
	return &contactMemoryRepository{store: store}
}

func (r *contactMemoryRepository) Create(ctx context.Context, m model.ContactMessage) (model.ContactMessage, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.nextID("contact_messages")
	m.CreatedAt = time.Now()
	s.contacts[m.ID] = m
	return m, nil
}

func (r *contactMemoryRepository) List(ctx context.Context, q repo.ContactListQuery) ([]model.ContactMessage, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var messages []model.ContactMessage
	for _, m := range s.contacts {
		if q.UnreadOnly && m.Read {
			continue
		}
		messages = append(messages, m)
	}

	// 新しい順
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID > messages[j].ID
		}
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})

	total := int64(len(messages))
	return paginate(messages, q.Page, q.Limit), total, nil
}

func (r *contactMemoryRepository) FindByID(ctx context.Context, id int64) (model.ContactMessage, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.contacts[id]
	if !ok {
		return model.ContactMessage{}, repo.ErrNotFound
	}
	return m, nil
}

func (r *contactMemoryRepository) MarkRead(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.contacts[id]
	if !ok {
		return repo.ErrNotFound
	}
	m.Read = true
	s.contacts[id] = m
	return nil
}

func (r *contactMemoryRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.contacts, id)
	return nil
}
