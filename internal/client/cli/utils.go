package cli

import (
	"sort"

	"github.com/dmitrijs2005/zheye/internal/client/models"
)

// The store returns map order; listings are sorted for a stable screen.

func sortedColumns(cols []models.Column) []models.Column {
	sort.Slice(cols, func(i, j int) bool { return cols[i].ID < cols[j].ID })
	return cols
}

func sortedPosts(posts []models.Post) []models.Post {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt != posts[j].CreatedAt {
			return posts[i].CreatedAt > posts[j].CreatedAt
		}
		return posts[i].ID < posts[j].ID
	})
	return posts
}
