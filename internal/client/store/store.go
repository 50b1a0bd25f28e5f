// Package store is the normalized entity cache of the column client.
//
// Columns and posts are kept once, keyed by identifier, and every remote
// response is merged in per entity (insert or overwrite). Next to the maps
// the store tracks pagination of the column list and which columns already
// had their posts loaded, which lets callers skip fetches the cache already
// satisfies.
//
// The store never fails: it only merges data a successful call handed it.
// It is safe for concurrent use; when two responses for overlapping data
// land, the one merged last wins per entity.
package store

import (
	"sync"

	"github.com/dmitrijs2005/zheye/internal/client/models"
)

// Store holds the cached entities and the session user.
type Store struct {
	mu sync.RWMutex

	columns map[string]models.Column
	posts   map[string]models.Post

	// loadedColumns lists, in first-load order, the columns whose posts were
	// merged; loadedSet mirrors it for lookups and dedup.
	loadedColumns []string
	loadedSet     map[string]struct{}

	currentPage int
	total       int

	user models.User
}

func New() *Store {
	return &Store{
		columns:   make(map[string]models.Column),
		posts:     make(map[string]models.Post),
		loadedSet: make(map[string]struct{}),
	}
}

// MergeColumnsPage merges one page of the column list and records it as the
// latest page seen. Re-merging the same page yields the same state.
func (s *Store) MergeColumnsPage(list []models.Column, total, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range list {
		s.columns[c.ID] = c
	}
	s.total = total
	s.currentPage = page
}

// MergeColumn inserts or replaces a single column.
func (s *Store) MergeColumn(c models.Column) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.columns[c.ID] = c
}

// NeedColumnsPage reports whether page is beyond the last merged page.
// Pages are assumed to be requested in non-decreasing order: an earlier page
// is never refetched once a later one has loaded.
func (s *Store) NeedColumnsPage(page int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage < page
}

// NeedColumn reports whether the column is missing. There is no freshness
// check.
func (s *Store) NeedColumn(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.columns[id]
	return !ok
}

// MergePostsForColumn merges the posts and marks columnID as loaded, even
// when list is empty. Marking twice is a no-op.
func (s *Store) MergePostsForColumn(list []models.Post, columnID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range list {
		s.mergePost(p)
	}
	if _, ok := s.loadedSet[columnID]; !ok {
		s.loadedSet[columnID] = struct{}{}
		s.loadedColumns = append(s.loadedColumns, columnID)
	}
}

// NeedPostsForColumn reports whether the posts of columnID were never loaded.
func (s *Store) NeedPostsForColumn(columnID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loadedSet[columnID]
	return !ok
}

// PostDetail returns the post only when it is fully loaded. A list-only
// record (no content) is reported as missing so callers fetch the detail.
func (s *Store) PostDetail(id string) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok || !p.IsFullyLoaded() {
		return models.Post{}, false
	}
	return p, true
}

// UpsertPost inserts or replaces a single post.
func (s *Store) UpsertPost(p models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mergePost(p)
}

// DeletePost removes exactly the post with id, if present.
func (s *Store) DeletePost(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
}

// mergePost overwrites wholesale: a later list-only record replaces an
// earlier detail, so the next detail view fetches again.
func (s *Store) mergePost(p models.Post) {
	s.posts[p.ID] = p
}

func (s *Store) CurrentPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage
}

func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// LoadedColumns returns the columns whose posts were merged, in load order.
func (s *Store) LoadedColumns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.loadedColumns...)
}

// SetUser records the session user; the user is logged in by definition.
func (s *Store) SetUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.IsLogin = true
	s.user = u
}

// User returns the session user. While logged out it is the zero user, so
// stale fields from an earlier session never leak.
func (s *Store) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.user.IsLogin {
		return models.User{}
	}
	return s.user
}

func (s *Store) IsLogin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsLogin
}

// ResetUser logs the session user out.
func (s *Store) ResetUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = models.User{}
}
