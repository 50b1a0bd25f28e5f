package pager

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/zheye/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	l := New(nil, 0, 0)
	assert.Equal(t, DefaultFirstPage, l.CurrentPage())
	assert.Equal(t, DefaultPageSize, l.PageSize())
}

func TestNext_AdvancesOnlyOnSuccess(t *testing.T) {
	var got []models.PageParams
	fail := false
	l := New(func(ctx context.Context, p models.PageParams) error {
		got = append(got, p)
		if fail {
			return errors.New("offline")
		}
		return nil
	}, 0, 3)

	require.NoError(t, l.Next(context.Background()))
	assert.Equal(t, 3, l.CurrentPage())

	fail = true
	require.Error(t, l.Next(context.Background()))
	assert.Equal(t, 3, l.CurrentPage(), "failed page is retried next time")

	assert.Equal(t, []models.PageParams{{CurrentPage: 2, PageSize: 3}, {CurrentPage: 3, PageSize: 3}}, got)
}

func TestIsLastPage(t *testing.T) {
	tests := []struct {
		name        string
		currentPage int
		total       int
		want        bool
	}{
		{"more pages remain", 2, 11, false},
		{"exact multiple, last page pending", 2, 10, false},
		{"exact multiple, all requested", 3, 10, true},
		{"partial last page pending", 3, 11, false},
		{"single page", 2, 4, true},
		{"empty list", 2, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(nil, tt.currentPage, 5)
			assert.Equal(t, tt.want, l.IsLastPage(tt.total))
		})
	}
}
