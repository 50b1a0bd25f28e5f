package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/zheye/internal/client/guard"
	"github.com/dmitrijs2005/zheye/internal/client/models"
)

// Post shows a post with its full content.
func (a *App) Post(ctx context.Context, id string) error {
	if id == "" {
		fmt.Fprintln(a.out, "Usage: post <id>")
		return nil
	}
	if !a.navigate(ctx, guard.RoutePost) {
		return nil
	}
	p, err := a.content.FetchPost(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, p.Title)
	if p.Author != nil && p.Author.User != nil {
		fmt.Fprintf(a.out, "by %s", p.Author.User.NickName)
		if p.CreatedAt != "" {
			fmt.Fprintf(a.out, " at %s", p.CreatedAt)
		}
		fmt.Fprintln(a.out)
	}
	if p.Image != nil && p.Image.URL != "" {
		fmt.Fprintln(a.out, "Image:", p.Image.URL)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, p.Content)
	return nil
}

// Create publishes a new post in the user's column.
func (a *App) Create(ctx context.Context) error {
	if !a.navigate(ctx, guard.RouteCreate) {
		return nil
	}
	in, err := a.inputPost(ctx)
	if err != nil {
		return a.report(err)
	}
	p, err := a.content.CreatePost(ctx, in)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Published [%s] %s\n", p.ID, p.Title)
	return nil
}

// Edit replaces the title and content of one of the user's posts.
func (a *App) Edit(ctx context.Context, id string) error {
	if id == "" {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return nil
	}
	if !a.navigate(ctx, guard.RouteEdit) {
		return nil
	}
	current, err := a.content.FetchPost(ctx, id)
	if err != nil {
		return err
	}
	if !a.ownsPost(current) {
		fmt.Fprintln(a.out, "You can only edit your own posts.")
		return nil
	}

	in, err := a.inputPost(ctx)
	if err != nil {
		return a.report(err)
	}
	p, err := a.content.UpdatePost(ctx, id, in)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Updated [%s] %s\n", p.ID, p.Title)
	return nil
}

// Delete removes one of the user's posts.
func (a *App) Delete(ctx context.Context, id string) error {
	if id == "" {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return nil
	}
	if !a.navigate(ctx, guard.RouteEdit) {
		return nil
	}
	if err := a.content.DeletePost(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted", id)
	return nil
}

func (a *App) ownsPost(p models.Post) bool {
	u := a.store.User()
	return u.IsLogin && p.Author.AuthorID() == u.ID
}

// inputPost prompts for the post fields and uploads the optional cover image.
func (a *App) inputPost(ctx context.Context) (models.PostInput, error) {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return models.PostInput{}, err
	}
	content, err := GetMultiline(a.reader, "Enter content", a.out)
	if err != nil {
		return models.PostInput{}, err
	}
	imagePath, err := getSimpleText(a.reader, "Cover image file (empty for none)", a.out)
	if err != nil {
		return models.PostInput{}, err
	}

	in := models.PostInput{Title: title, Content: content}
	if imagePath != "" {
		img, err := a.upload(ctx, imagePath)
		if err != nil {
			return models.PostInput{}, err
		}
		in.Image = img.ID
	}
	return in, nil
}

func (a *App) upload(ctx context.Context, path string) (models.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return models.Image{}, err
	}
	defer f.Close()
	return a.content.UploadImage(ctx, filepath.Base(path), f)
}
