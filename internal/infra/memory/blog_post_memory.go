package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"portfolio/internal/domain/model"
	repo "portfolio/internal/repository"
)

type blogPostMemoryRepository struct {
	store *Store
}

// DI
func NewBlogPostMemoryRepository(store *Store) repo.BlogPostRepository {
	return &blogPostMemoryRepository{store: store}
}

func (r *blogPostMemoryRepository) List(ctx context.Context, q repo.BlogPostListQuery) ([]model.BlogPost, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var posts []model.BlogPost
	for _, p := range s.posts {
		if q.PublishedOnly && !p.Published {
			continue
		}
		if strings.TrimSpace(q.Tag) != "" &&
			!strings.Contains(strings.ToLower(p.Tags), strings.ToLower(strings.TrimSpace(q.Tag))) {
			continue
		}
		posts = append(posts, p)
	}

	// 新しい順
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	total := int64(len(posts))
	return paginate(posts, q.Page, q.Limit), total, nil
}

func (r *blogPostMemoryRepository) FindByID(ctx context.Context, id int64) (model.BlogPost, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return model.BlogPost{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *blogPostMemoryRepository) FindBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.BlogPost{}, repo.ErrNotFound
}

func (r *blogPostMemoryRepository) Create(ctx context.Context, p model.BlogPost) (model.BlogPost, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p.ID = s.nextID("blog_posts")
	p.CreatedAt = now
	p.UpdatedAt = now
	s.posts[p.ID] = p
	return p, nil
}

func (r *blogPostMemoryRepository) Update(ctx context.Context, p model.BlogPost) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.posts[p.ID]
	if !ok {
		return repo.ErrNotFound
	}

	cur.Title = p.Title
	cur.Slug = p.Slug
	cur.Excerpt = p.Excerpt
	cur.Content = p.Content
	cur.Tags = p.Tags
	cur.Published = p.Published
	cur.UpdatedAt = time.Now()
	s.posts[cur.ID] = cur
	return nil
}

func (r *blogPostMemoryRepository) SoftDelete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}
