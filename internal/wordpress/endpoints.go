package wordpress

import (
	"context"
	"net/url"
	"strconv"

	"github.com/KingAbe1/wp-next-blog/internal/models"
)

// allCategoriesPageSize is the largest page WordPress serves; the blog's
// category list is expected to fit in one page.
const allCategoriesPageSize = 100

// ListPosts fetches one page of posts. The query is sent as-is; building it
// is the caller's job.
func (c *Client) ListPosts(ctx context.Context, query url.Values) ([]models.Post, Meta, error) {
	var posts []models.Post
	meta, err := c.Get(ctx, c.postsPath, query, &posts)
	if err != nil {
		return nil, Meta{}, err
	}
	return posts, meta, nil
}

// PostsBySlug fetches the posts whose slug matches, normally zero or one.
func (c *Client) PostsBySlug(ctx context.Context, slug string) ([]models.Post, error) {
	q := url.Values{}
	q.Set("slug", slug)
	q.Set("_embed", "true")

	var posts []models.Post
	if _, err := c.Get(ctx, c.postsPath, q, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Media fetches a single media item.
func (c *Client) Media(ctx context.Context, id int64) (*models.Media, error) {
	var media models.Media
	if _, err := c.Get(ctx, "/media/"+strconv.FormatInt(id, 10), nil, &media); err != nil {
		return nil, err
	}
	return &media, nil
}

// User fetches a single author.
func (c *Client) User(ctx context.Context, id int64) (*models.Author, error) {
	var author models.Author
	if _, err := c.Get(ctx, "/users/"+strconv.FormatInt(id, 10), nil, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// CategoriesForPost fetches the categories assigned to a post.
func (c *Client) CategoriesForPost(ctx context.Context, postID int64) ([]models.Category, error) {
	q := url.Values{}
	q.Set("post", strconv.FormatInt(postID, 10))
	return c.categories(ctx, q)
}

// Categories fetches the full flat category list.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(allCategoriesPageSize))
	return c.categories(ctx, q)
}

// CategoriesBySlug fetches the categories whose slug matches, normally zero
// or one.
func (c *Client) CategoriesBySlug(ctx context.Context, slug string) ([]models.Category, error) {
	q := url.Values{}
	q.Set("slug", slug)
	return c.categories(ctx, q)
}

func (c *Client) categories(ctx context.Context, q url.Values) ([]models.Category, error) {
	var cats []models.Category
	if _, err := c.Get(ctx, "/categories", q, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}
