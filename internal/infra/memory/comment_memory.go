package memory

import (
	"context"
	"sort"
	"time"

	"portfolio/internal/domain/model"
	repo "portfolio/internal/repository"
)

type commentMemoryRepository struct {
	store *Store
}

// DI
func NewCommentMemoryRepository(store *Store) repo.CommentRepository {
	return &commentMemoryRepository{store: store}
}

func (r *commentMemoryRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var comments []model.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}

	// 古い順
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *commentMemoryRepository) FindByID(ctx context.Context, id int64) (model.Comment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return model.Comment{}, repo.ErrNotFound
	}
	return c, nil
}

func (r *commentMemoryRepository) Create(ctx context.Context, c model.Comment) (model.Comment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c.ID = s.nextID("comments")
	c.CreatedAt = now
	c.UpdatedAt = now
	s.comments[c.ID] = c
	return c, nil
}

func (r *commentMemoryRepository) Update(ctx context.Context, c model.Comment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.comments[c.ID]
	if !ok {
		return repo.ErrNotFound
	}

	cur.Content = c.Content
	cur.UpdatedAt = time.Now()
	s.comments[cur.ID] = cur
	return nil
}

func (r *commentMemoryRepository) SoftDelete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}
