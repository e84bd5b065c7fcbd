package memory

import (
	"context"
	"sort"
	"time"

	"portfolio/internal/domain/model"
	repo "portfolio/internal/repository"
)

type projectMemoryRepository struct {
	store *Store
}

// DI
func NewProjectMemoryRepository(store *Store) repo.ProjectRepository {
	return &projectMemoryRepository{store: store}
}

func (r *projectMemoryRepository) List(ctx context.Context, q repo.ProjectListQuery) ([]model.Project, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var projects []model.Project
	for _, p := range s.projects {
		if q.FeaturedOnly && !p.Featured {
			continue
		}
		projects = append(projects, p)
	}

	sort.Slice(projects, func(i, j int) bool {
		if projects[i].SortOrder == projects[j].SortOrder {
			return projects[i].ID < projects[j].ID
		}
		return projects[i].SortOrder < projects[j].SortOrder
	})

	total := int64(len(projects))
	return paginate(projects, q.Page, q.Limit), total, nil
}

func (r *projectMemoryRepository) FindByID(ctx context.Context, id int64) (model.Project, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return model.Project{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *projectMemoryRepository) FindBySlug(ctx context.Context, slug string) (model.Project, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.Project{}, repo.ErrNotFound
}

func (r *projectMemoryRepository) Create(ctx context.Context, p model.Project) (model.Project, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p.ID = s.nextID("projects")
	p.CreatedAt = now
	p.UpdatedAt = now
	s.projects[p.ID] = p
	return p, nil
}

func (r *projectMemoryRepository) Update(ctx context.Context, p model.Project) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.projects[p.ID]
	if !ok {
		return repo.ErrNotFound
	}

	cur.Title = p.Title
	cur.Slug = p.Slug
	cur.Description = p.Description
	cur.Content = p.Content
	cur.RepoURL = p.RepoURL
	cur.DemoURL = p.DemoURL
	cur.Tech = p.Tech
	cur.Featured = p.Featured
	cur.SortOrder = p.SortOrder
	cur.UpdatedAt = time.Now()
	s.projects[cur.ID] = cur
	return nil
}

func (r *projectMemoryRepository) SoftDelete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}
