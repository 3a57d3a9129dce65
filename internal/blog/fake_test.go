package blog

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"

	"github.com/KingAbe1/wp-next-blog/internal/models"
	"github.com/KingAbe1/wp-next-blog/internal/wordpress"
)

var errUpstream = errors.New("upstream unavailable")

// fakeSource is an in-memory Source that records every call.
type fakeSource struct {
	mu sync.Mutex

	posts      []models.Post
	total      *int
	media      map[int64]models.Media
	users      map[int64]models.Author
	postCats   map[int64][]models.Category
	categories []models.Category

	listErr  error
	mediaErr error
	userErr  error
	catsErr  error

	queries []url.Values
	calls   map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		media:    map[int64]models.Media{},
		users:    map[int64]models.Author{},
		postCats: map[int64][]models.Category{},
		calls:    map[string]int{},
	}
}

func (f *fakeSource) record(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeSource) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeSource) relationCalls() int {
	return f.count("media") + f.count("user") + f.count("categoriesForPost")
}

func (f *fakeSource) ListPosts(_ context.Context, q url.Values) ([]models.Post, wordpress.Meta, error) {
	f.record("list")
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.listErr != nil {
		return nil, wordpress.Meta{}, f.listErr
	}

	perPage, _ := strconv.Atoi(q.Get("per_page"))
	page, _ := strconv.Atoi(q.Get("page"))
	start := (page - 1) * perPage
	if start > len(f.posts) {
		start = len(f.posts)
	}
	end := min(start+perPage, len(f.posts))

	out := make([]models.Post, end-start)
	copy(out, f.posts[start:end])
	return out, wordpress.Meta{Total: f.total}, nil
}

func (f *fakeSource) PostsBySlug(_ context.Context, slug string) ([]models.Post, error) {
	f.record("bySlug")
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Post
	for _, p := range f.posts {
		if p.Slug == slug {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSource) Media(_ context.Context, id int64) (*models.Media, error) {
	f.record("media")
	if f.mediaErr != nil {
		return nil, f.mediaErr
	}
	m, ok := f.media[id]
	if !ok {
		return nil, &wordpress.HTTPStatusError{StatusCode: 404, Status: "Not Found"}
	}
	return &m, nil
}

func (f *fakeSource) User(_ context.Context, id int64) (*models.Author, error) {
	f.record("user")
	if f.userErr != nil {
		return nil, f.userErr
	}
	a, ok := f.users[id]
	if !ok {
		return nil, &wordpress.HTTPStatusError{StatusCode: 404, Status: "Not Found"}
	}
	return &a, nil
}

func (f *fakeSource) CategoriesForPost(_ context.Context, postID int64) ([]models.Category, error) {
	f.record("categoriesForPost")
	if f.catsErr != nil {
		return nil, f.catsErr
	}
	return f.postCats[postID], nil
}

func (f *fakeSource) Categories(_ context.Context) ([]models.Category, error) {
	f.record("categories")
	if f.catsErr != nil {
		return nil, f.catsErr
	}
	return f.categories, nil
}

func (f *fakeSource) CategoriesBySlug(_ context.Context, slug string) ([]models.Category, error) {
	f.record("categoriesBySlug")
	if f.catsErr != nil {
		return nil, f.catsErr
	}
	var out []models.Category
	for _, c := range f.categories {
		if c.Slug == slug {
			out = append(out, c)
		}
	}
	return out, nil
}

// rawPost builds an unembedded post with an image, an author and one
// category.
func rawPost(id int64) models.Post {
	return models.Post{
		ID:            id,
		Title:         models.Rendered{Rendered: "Post " + strconv.FormatInt(id, 10)},
		Slug:          "post-" + strconv.FormatInt(id, 10),
		Author:        7,
		FeaturedMedia: 100 + id,
		Categories:    []int64{3},
	}
}

// seededSource returns a fake holding n raw posts whose relations all
// resolve.
func seededSource(n int) *fakeSource {
	f := newFakeSource()
	f.users[7] = models.Author{ID: 7, Name: "Ada Lovelace", Slug: "ada", Description: "bio"}
	f.categories = []models.Category{{ID: 3, Name: "Go", Slug: "go", Count: n}}
	for i := 1; i <= n; i++ {
		p := rawPost(int64(i))
		f.posts = append(f.posts, p)
		f.media[p.FeaturedMedia] = models.Media{ID: p.FeaturedMedia, SourceURL: "https://cdn.example.com/" + p.Slug + ".jpg"}
		f.postCats[p.ID] = []models.Category{{ID: 3, Name: "Go", Slug: "go"}}
	}
	return f
}
