package blog

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPerPage is the page size when the caller asks for none.
	DefaultPerPage = 10
	// CategoryPageSize is the page size of category listings.
	CategoryPageSize = 12
)

// PostsQuery selects one page of posts.
type PostsQuery struct {
	Page    int
	PerPage int
	// Categories filters by category id. Only the first id is sent.
	Categories []int64
	Search     string
	// Embed is accepted for compatibility with callers that set it; related
	// resources are always embedded.
	Embed bool
}

func (q PostsQuery) page() int {
	if q.Page < 1 {
		return 1
	}
	return q.Page
}

func (q PostsQuery) perPage() int {
	if q.PerPage < 1 {
		return DefaultPerPage
	}
	return q.PerPage
}

// Values encodes the query for the posts collection endpoint.
func (q PostsQuery) Values() url.Values {
	v := url.Values{}
	v.Set("per_page", strconv.Itoa(q.perPage()))
	v.Set("page", strconv.Itoa(q.page()))
	v.Set("_embed", "true")

	if len(q.Categories) > 0 {
		v.Set("categories", strconv.FormatInt(q.Categories[0], 10))
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		v.Set("search", search)
	}
	return v
}
