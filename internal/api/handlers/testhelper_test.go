package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/KingAbe1/wp-next-blog/internal/blog"
	"github.com/KingAbe1/wp-next-blog/internal/models"
	"github.com/KingAbe1/wp-next-blog/internal/wordpress"
)

// fakeWordPress serves a small WordPress REST API: 25 posts in category 3
// ("go"), one author and one image per post. Posts are returned without
// embeds so every relation goes through enrichment.
type fakeWordPress struct {
	posts      []models.Post
	categories []models.Category
	sendTotal  bool
}

func newFakeWordPress() *fakeWordPress {
	wp := &fakeWordPress{
		categories: []models.Category{
			{ID: 3, Name: "Go", Slug: "go", Count: 25},
			{ID: 4, Name: "Empty", Slug: "empty"},
		},
		sendTotal: true,
	}
	for i := int64(1); i <= 25; i++ {
		id := strconv.FormatInt(i, 10)
		wp.posts = append(wp.posts, models.Post{
			ID:            i,
			Title:         models.Rendered{Rendered: "Post " + id},
			Content:       models.Rendered{Rendered: "<p>Body of post " + id + ".</p>"},
			Excerpt:       &models.Rendered{Rendered: "<p>Excerpt " + id + "</p>"},
			Date:          "2025-03-01T09:30:00",
			Slug:          "post-" + id,
			Status:        "publish",
			Author:        7,
			FeaturedMedia: 100 + i,
			Categories:    []int64{3},
		})
	}
	return wp
}

func (wp *fakeWordPress) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path := strings.TrimPrefix(r.URL.Path, "/wp-json/wp/v2")

	switch {
	case path == "/article" && q.Get("slug") != "":
		var out []models.Post
		for _, p := range wp.posts {
			if p.Slug == q.Get("slug") {
				out = append(out, p)
			}
		}
		respondJSON(w, nonNil(out))

	case path == "/article":
		var filtered []models.Post
		for _, p := range wp.posts {
			if c := q.Get("categories"); c != "" && c != "3" {
				continue
			}
			if s := q.Get("search"); s != "" && !strings.Contains(p.Title.Rendered, s) {
				continue
			}
			filtered = append(filtered, p)
		}
		perPage, _ := strconv.Atoi(q.Get("per_page"))
		page, _ := strconv.Atoi(q.Get("page"))
		start := min((page-1)*perPage, len(filtered))
		end := min(start+perPage, len(filtered))
		if wp.sendTotal {
			w.Header().Set("X-WP-Total", strconv.Itoa(len(filtered)))
		}
		respondJSON(w, nonNil(filtered[start:end]))

	case strings.HasPrefix(path, "/media/"):
		id := strings.TrimPrefix(path, "/media/")
		respondJSON(w, models.Media{ID: mustInt(id), SourceURL: "https://cdn.example.com/" + id + ".jpg"})

	case path == "/users/7":
		respondJSON(w, models.Author{ID: 7, Name: "Ada Lovelace", Slug: "ada"})

	case path == "/categories" && q.Get("post") != "":
		respondJSON(w, wp.categories[:1])

	case path == "/categories" && q.Get("slug") != "":
		var out []models.Category
		for _, c := range wp.categories {
			if c.Slug == q.Get("slug") {
				out = append(out, c)
			}
		}
		respondJSON(w, nonNil(out))

	case path == "/categories":
		respondJSON(w, wp.categories)

	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"rest_no_route"}`))
	}
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	_ = json.NewEncoder(w).Encode(v)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func mustInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

// newTestEngine starts handler as the upstream API and returns an engine
// reading from it.
func newTestEngine(t *testing.T, handler http.Handler) *blog.Engine {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := wordpress.NewClient(server.URL+"/wp-json/wp/v2", wordpress.Options{})
	return blog.NewEngine(client, nil)
}

// withSlug attaches a chi route context carrying the slug URL parameter.
func withSlug(r *http.Request, slug string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", slug)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
