package handlers

import (
	"net/http"

	"github.com/KingAbe1/wp-next-blog/internal/blog"
)

// ListPosts handles GET /api/posts. Query parameters: page, per_page,
// categories (comma-separated ids, only the first is used) and search.
func ListPosts(engine *blog.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := queryInt(r, "page", 1, 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		perPage, err := queryInt(r, "per_page", blog.DefaultPerPage, maxPerPage)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		categories, err := queryIDs(r, "categories")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := engine.FetchPosts(r.Context(), blog.PostsQuery{
			Page:       page,
			PerPage:    perPage,
			Categories: categories,
			Search:     r.URL.Query().Get("search"),
			Embed:      true,
		})
		if err != nil {
			writeFetchError(w, err, "posts")
			return
		}

		writeJSON(w, http.StatusOK, newPageView(result))
	}
}

// GetPost handles GET /api/posts/{slug}. It returns the enriched post with
// its summary.
func GetPost(engine *blog.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug, err := slugParam(r, "slug")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		post, err := engine.FetchPostBySlug(r.Context(), slug)
		if err != nil {
			writeFetchError(w, err, "post")
			return
		}

		writeJSON(w, http.StatusOK, newPostView(*post))
	}
}
