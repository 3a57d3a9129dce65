// Package blog turns raw WordPress records into what the frontend renders:
// posts with their media, author and categories resolved, and pages of posts
// with a pagination summary.
package blog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/KingAbe1/wp-next-blog/internal/metrics"
	"github.com/KingAbe1/wp-next-blog/internal/models"
	"github.com/KingAbe1/wp-next-blog/internal/wordpress"
)

// maxConcurrentPosts bounds how many posts are enriched at once.
const maxConcurrentPosts = 10

// Source is the subset of the WordPress API the engine reads from.
type Source interface {
	ListPosts(ctx context.Context, query url.Values) ([]models.Post, wordpress.Meta, error)
	PostsBySlug(ctx context.Context, slug string) ([]models.Post, error)
	Media(ctx context.Context, id int64) (*models.Media, error)
	User(ctx context.Context, id int64) (*models.Author, error)
	CategoriesForPost(ctx context.Context, postID int64) ([]models.Category, error)
	Categories(ctx context.Context) ([]models.Category, error)
	CategoriesBySlug(ctx context.Context, slug string) ([]models.Category, error)
}

var _ Source = (*wordpress.Client)(nil)

// Engine fetches and enriches blog content.
type Engine struct {
	source      Source
	metrics     *metrics.Metrics
	concurrency int
}

// NewEngine creates an Engine reading from source. m may be nil.
func NewEngine(source Source, m *metrics.Metrics) *Engine {
	return &Engine{
		source:      source,
		metrics:     m,
		concurrency: maxConcurrentPosts,
	}
}

// FetchPosts fetches one page of posts, enriches it and attaches the
// pagination summary. Only the posts request itself can fail the call.
func (e *Engine) FetchPosts(ctx context.Context, q PostsQuery) (*models.PostPage, error) {
	posts, meta, err := e.source.ListPosts(ctx, q.Values())
	if err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}

	enriched, _ := e.Enrich(ctx, posts)
	page := Paginate(enriched, q.page(), q.perPage(), meta.Total)
	return &page, nil
}

// FetchPostBySlug fetches and enriches the post with the given slug. It
// returns an error wrapping wordpress.ErrNotFound when no post matches.
func (e *Engine) FetchPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("post with empty slug: %w", wordpress.ErrNotFound)
	}

	posts, err := e.source.PostsBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("fetching post %q: %w", slug, err)
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("post %q: %w", slug, wordpress.ErrNotFound)
	}

	enriched, _ := e.Enrich(ctx, posts[:1])
	return &enriched[0], nil
}

// FetchCategories returns the full category list.
func (e *Engine) FetchCategories(ctx context.Context) ([]models.Category, error) {
	cats, err := e.source.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	if cats == nil {
		cats = []models.Category{}
	}
	return cats, nil
}

// FetchCategoryBySlug returns the category with the given slug, or an error
// wrapping wordpress.ErrNotFound.
func (e *Engine) FetchCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("category with empty slug: %w", wordpress.ErrNotFound)
	}

	cats, err := e.source.CategoriesBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("fetching category %q: %w", slug, err)
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("category %q: %w", slug, wordpress.ErrNotFound)
	}
	return &cats[0], nil
}

// FetchPostsByCategory fetches one page of a category's posts.
func (e *Engine) FetchPostsByCategory(ctx context.Context, categoryID int64, page int) (*models.PostPage, error) {
	return e.FetchPosts(ctx, PostsQuery{
		Page:       page,
		PerPage:    CategoryPageSize,
		Categories: []int64{categoryID},
		Embed:      true,
	})
}
