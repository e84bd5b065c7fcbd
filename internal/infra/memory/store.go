// Package memory はDBなしで動くインメモリ実装。
// 起動時にpostgres実装とどちらか一方を選び、混在させない。
package memory

import (
	"sync"

	"portfolio/internal/domain/model"
)

// Store は全エンティティを保持する。各リポジトリはこれを共有する。
type Store struct {
	mu sync.RWMutex

	users    map[int64]model.User
	roles    map[int64]model.Role
	posts    map[int64]model.BlogPost
	projects map[int64]model.Project
	comments map[int64]model.Comment
	contacts map[int64]model.ContactMessage

	seq map[string]int64 // テーブルごとの採番
}

// NewStore は空のストアを返す。
func NewStore() *Store {
	return &Store{
		users:    make(map[int64]model.User),
		roles:    make(map[int64]model.Role),
		posts:    make(map[int64]model.BlogPost),
		projects: make(map[int64]model.Project),
		comments: make(map[int64]model.Comment),
		contacts: make(map[int64]model.ContactMessage),
		seq:      make(map[string]int64),
	}
}

// nextID は採番する。呼び出し側がmuを保持していること。
func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func paginate[T any](items []T, page int, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return []T{}
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
