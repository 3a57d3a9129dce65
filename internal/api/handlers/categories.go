package handlers

import (
	"net/http"

	"github.com/KingAbe1/wp-next-blog/internal/blog"
)

// ListCategories handles GET /api/categories.
func ListCategories(engine *blog.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := engine.FetchCategories(r.Context())
		if err != nil {
			writeFetchError(w, err, "categories")
			return
		}
		writeJSON(w, http.StatusOK, cats)
	}
}

// GetCategory handles GET /api/categories/{slug}.
func GetCategory(engine *blog.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug, err := slugParam(r, "slug")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		cat, err := engine.FetchCategoryBySlug(r.Context(), slug)
		if err != nil {
			writeFetchError(w, err, "category")
			return
		}
		writeJSON(w, http.StatusOK, cat)
	}
}

// ListCategoryPosts handles GET /api/categories/{slug}/posts. The category is
// resolved by slug first, then one page of its posts is fetched.
func ListCategoryPosts(engine *blog.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug, err := slugParam(r, "slug")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		page, err := queryInt(r, "page", 1, 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		ctx := r.Context()

		cat, err := engine.FetchCategoryBySlug(ctx, slug)
		if err != nil {
			writeFetchError(w, err, "category")
			return
		}

		result, err := engine.FetchPostsByCategory(ctx, cat.ID, page)
		if err != nil {
			writeFetchError(w, err, "posts")
			return
		}

		view := newPageView(result)
		view.Category = cat
		writeJSON(w, http.StatusOK, view)
	}
}
