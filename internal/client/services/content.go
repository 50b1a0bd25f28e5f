package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/zheye/internal/client/models"
	"github.com/dmitrijs2005/zheye/internal/client/orchestrator"
	"github.com/dmitrijs2005/zheye/internal/client/store"
	"github.com/dmitrijs2005/zheye/internal/client/transport"
	"github.com/dmitrijs2005/zheye/internal/common"
	"github.com/dmitrijs2005/zheye/internal/logging"
)

// ContentService loads and edits columns and posts.
//
// Fetch* methods are cache-aware and return a nil error without a network
// call when the store already satisfies the request.
type ContentService interface {
	FetchColumns(ctx context.Context, params models.PageParams) error
	FetchColumn(ctx context.Context, id string) error
	FetchPosts(ctx context.Context, columnID string, params models.PageParams) error
	FetchPost(ctx context.Context, id string) (models.Post, error)
	CreatePost(ctx context.Context, in models.PostInput) (models.Post, error)
	UpdatePost(ctx context.Context, id string, in models.PostInput) (models.Post, error)
	DeletePost(ctx context.Context, id string) error
	UploadImage(ctx context.Context, fileName string, content io.Reader) (models.Image, error)
}

type contentService struct {
	orch     *orchestrator.Orchestrator
	store    *store.Store
	logger   logging.Logger
	pageSize int
}

// NewContentService wires the content operations. pageSize fills in
// PageParams that leave it at zero.
func NewContentService(orch *orchestrator.Orchestrator, s *store.Store, logger logging.Logger, pageSize int) ContentService {
	return &contentService{orch: orch, store: s, logger: logger, pageSize: pageSize}
}

func (c *contentService) params(p models.PageParams) models.PageParams {
	if p.CurrentPage <= 0 {
		p.CurrentPage = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = c.pageSize
	}
	return p
}

func (c *contentService) FetchColumns(ctx context.Context, params models.PageParams) error {
	params = c.params(params)
	if !c.store.NeedColumnsPage(params.CurrentPage) {
		c.logger.Debug(ctx, "columns page cached", "page", params.CurrentPage)
		return nil
	}

	req := &transport.Request{Method: http.MethodGet, Path: "columns", Query: params.Query()}
	_, err := orchestrator.Run(ctx, c.orch, req, func(page models.ListPage[models.Column]) error {
		c.store.MergeColumnsPage(page.List, page.Count, params.CurrentPage)
		return nil
	})
	return err
}

func (c *contentService) FetchColumn(ctx context.Context, id string) error {
	if !c.store.NeedColumn(id) {
		c.logger.Debug(ctx, "column cached", "column", id)
		return nil
	}

	req := &transport.Request{Method: http.MethodGet, Path: "columns/" + url.PathEscape(id)}
	_, err := orchestrator.Run(ctx, c.orch, req, func(col models.Column) error {
		c.store.MergeColumn(col)
		return nil
	})
	return err
}

func (c *contentService) FetchPosts(ctx context.Context, columnID string, params models.PageParams) error {
	if !c.store.NeedPostsForColumn(columnID) {
		c.logger.Debug(ctx, "column posts cached", "column", columnID)
		return nil
	}

	// No default page size here: a column's posts are loaded once, so a
	// truncated first page would stick for the whole session.
	req := &transport.Request{
		Method: http.MethodGet,
		Path:   "columns/" + url.PathEscape(columnID) + "/posts",
		Query:  params.Query(),
	}
	_, err := orchestrator.Run(ctx, c.orch, req, func(page models.ListPage[models.Post]) error {
		c.store.MergePostsForColumn(page.List, columnID)
		return nil
	})
	return err
}

// FetchPost returns the fully loaded post, fetching it when the cache only
// holds a list-only record or nothing at all.
func (c *contentService) FetchPost(ctx context.Context, id string) (models.Post, error) {
	if p, ok := c.store.PostDetail(id); ok {
		c.logger.Debug(ctx, "post detail cached", "post", id)
		return p, nil
	}

	req := &transport.Request{Method: http.MethodGet, Path: "posts/" + url.PathEscape(id)}
	return orchestrator.Run(ctx, c.orch, req, func(p models.Post) error {
		c.store.UpsertPost(p)
		return nil
	})
}

// CreatePost publishes a post. Column and author default to the session
// user's column and id.
func (c *contentService) CreatePost(ctx context.Context, in models.PostInput) (models.Post, error) {
	if u := c.store.User(); u.IsLogin {
		if in.Column == "" {
			in.Column = u.Column
		}
		if in.Author == "" {
			in.Author = u.ID
		}
	}
	if err := in.Validate(); err != nil {
		return models.Post{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	req := &transport.Request{Method: http.MethodPost, Path: "posts", Body: in}
	return orchestrator.Run(ctx, c.orch, req, func(p models.Post) error {
		c.store.UpsertPost(p)
		return nil
	})
}

func (c *contentService) UpdatePost(ctx context.Context, id string, in models.PostInput) (models.Post, error) {
	if err := in.Validate(); err != nil {
		return models.Post{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	req := &transport.Request{Method: http.MethodPatch, Path: "posts/" + url.PathEscape(id), Body: in}
	return orchestrator.Run(ctx, c.orch, req, func(p models.Post) error {
		c.store.UpsertPost(p)
		return nil
	})
}

func (c *contentService) DeletePost(ctx context.Context, id string) error {
	req := &transport.Request{Method: http.MethodDelete, Path: "posts/" + url.PathEscape(id)}
	_, err := orchestrator.Run(ctx, c.orch, req, func(json.RawMessage) error {
		c.store.DeletePost(id)
		return nil
	})
	return err
}

// UploadImage sends a picture as multipart form data and returns its
// descriptor, ready to be used as a post image or avatar.
func (c *contentService) UploadImage(ctx context.Context, fileName string, content io.Reader) (models.Image, error) {
	req := &transport.Request{
		Method: http.MethodPost,
		Path:   "upload",
		Upload: &transport.File{FieldName: "file", FileName: fileName, Content: content},
	}
	return orchestrator.Run[models.Image](ctx, c.orch, req, nil)
}
