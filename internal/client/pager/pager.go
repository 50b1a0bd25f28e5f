// Package pager implements "load more" pagination on top of a page loader.
package pager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/zheye/internal/client/models"
)

const (
	// DefaultFirstPage is the page fetched by the first Next call: page 1 is
	// loaded by the initial list view.
	DefaultFirstPage = 2
	DefaultPageSize  = 5
)

// LoadFunc loads one page.
type LoadFunc func(ctx context.Context, params models.PageParams) error

type LoadMore struct {
	load        LoadFunc
	currentPage int
	pageSize    int
}

// New returns a pager. Non-positive currentPage or pageSize fall back to the
// defaults.
func New(load LoadFunc, currentPage, pageSize int) *LoadMore {
	if currentPage <= 0 {
		currentPage = DefaultFirstPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &LoadMore{load: load, currentPage: currentPage, pageSize: pageSize}
}

func (l *LoadMore) CurrentPage() int { return l.currentPage }

func (l *LoadMore) PageSize() int { return l.pageSize }

// Next loads the current page and advances on success.
func (l *LoadMore) Next(ctx context.Context) error {
	params := models.PageParams{CurrentPage: l.currentPage, PageSize: l.pageSize}
	if err := l.load(ctx, params); err != nil {
		return fmt.Errorf("load page %d: %w", params.CurrentPage, err)
	}
	l.currentPage++
	return nil
}

// IsLastPage reports whether every page of total items has been requested.
func (l *LoadMore) IsLastPage(total int) bool {
	pages := (total + l.pageSize - 1) / l.pageSize
	return pages < l.currentPage
}
