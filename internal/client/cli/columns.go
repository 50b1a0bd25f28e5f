package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/zheye/internal/client/guard"
	"github.com/dmitrijs2005/zheye/internal/client/models"
)

// Home loads the first page of columns.
func (a *App) Home(ctx context.Context) error {
	if !a.navigate(ctx, guard.RouteHome) {
		return nil
	}
	return a.showColumns(ctx)
}

func (a *App) showColumns(ctx context.Context) error {
	if err := a.content.FetchColumns(ctx, models.PageParams{CurrentPage: 1}); err != nil {
		return err
	}
	a.printColumns()
	return nil
}

// More loads the next page of columns.
func (a *App) More(ctx context.Context) error {
	if !a.navigate(ctx, guard.RouteHome) {
		return nil
	}
	if a.more.IsLastPage(a.store.Total()) {
		fmt.Fprintln(a.out, "No more columns.")
		return nil
	}
	if err := a.more.Next(ctx); err != nil {
		return err
	}
	a.printColumns()
	return nil
}

func (a *App) printColumns() {
	cols := sortedColumns(a.store.Columns())
	for _, c := range cols {
		fmt.Fprintf(a.out, "[%s] %s\n", c.ID, c.Title)
	}
	fmt.Fprintf(a.out, "%d of %d columns\n", len(cols), a.store.Total())
	if !a.more.IsLastPage(a.store.Total()) {
		fmt.Fprintln(a.out, "Type 'more' to load more.")
	}
}

// Column shows one column and its posts.
func (a *App) Column(ctx context.Context, id string) error {
	if id == "" {
		fmt.Fprintln(a.out, "Usage: column <id>")
		return nil
	}
	if !a.navigate(ctx, guard.RouteColumn) {
		return nil
	}
	if err := a.content.FetchColumn(ctx, id); err != nil {
		return err
	}
	if err := a.content.FetchPosts(ctx, id, models.PageParams{}); err != nil {
		return err
	}

	c, _ := a.store.ColumnByID(id)
	fmt.Fprintln(a.out, c.Title)
	if c.Description != "" {
		fmt.Fprintln(a.out, c.Description)
	}
	posts := sortedPosts(a.store.PostsByColumn(id))
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet.")
	}
	for _, p := range posts {
		fmt.Fprintf(a.out, "  [%s] %s\n", p.ID, p.Title)
		if p.Excerpt != "" {
			fmt.Fprintf(a.out, "      %s\n", p.Excerpt)
		}
	}
	return nil
}
