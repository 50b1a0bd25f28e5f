package store

import "github.com/dmitrijs2005/zheye/internal/client/models"

// Selectors return fresh slices in map iteration order; callers must not
// rely on ordering.

func (s *Store) Columns() []models.Column {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Column, 0, len(s.columns))
	for _, c := range s.columns {
		out = append(out, c)
	}
	return out
}

func (s *Store) ColumnByID(id string) (models.Column, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.columns[id]
	return c, ok
}

func (s *Store) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	return out
}

// PostsByColumn returns the cached posts whose column is columnID.
func (s *Store) PostsByColumn(columnID string) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, 0)
	for _, p := range s.posts {
		if p.Column == columnID {
			out = append(out, p)
		}
	}
	return out
}

// PostByID returns the cached post, list-only or not.
func (s *Store) PostByID(id string) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	return p, ok
}
