package models

// Rendered wraps a WordPress field that is delivered as rendered HTML.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Post is a WordPress post record as returned by the REST API. Date and
// Modified are kept verbatim; WordPress sends them in site-local time
// without a zone offset.
type Post struct {
	ID            int64     `json:"id"`
	Title         Rendered  `json:"title"`
	Content       Rendered  `json:"content"`
	Excerpt       *Rendered `json:"excerpt,omitempty"`
	Date          string    `json:"date"`
	Modified      string    `json:"modified"`
	Slug          string    `json:"slug"`
	Status        string    `json:"status"`
	Link          string    `json:"link"`
	Author        int64     `json:"author"`
	FeaturedMedia int64     `json:"featured_media"`
	Categories    []int64   `json:"categories"`
	Tags          []int64   `json:"tags"`
	Embedded      *Embedded `json:"_embedded,omitempty"`
}

// Embedded holds the resolved relations of a post in the same layout
// WordPress uses for _embed=true responses.
//
// Once a post has been enriched the bag is always present: FeaturedMedia is
// empty when the post has no image (or it could not be resolved), Author is
// empty when the author is unknown, and Terms holds exactly one category
// list, which may be empty.
type Embedded struct {
	FeaturedMedia []Media  `json:"wp:featuredmedia,omitempty"`
	Author        []Author `json:"author,omitempty"`
	Terms         [][]Term `json:"wp:term"`
}

// Media is the subset of a WordPress media item needed to render a
// featured image.
type Media struct {
	ID        int64  `json:"id"`
	SourceURL string `json:"source_url"`
	AltText   string `json:"alt_text"`
}

// Author is a WordPress user as exposed on /users/{id}.
type Author struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Term is a taxonomy term attached to a post.
type Term struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Taxonomy string `json:"taxonomy"`
}

// TaxonomyCategory is the taxonomy label of category terms.
const TaxonomyCategory = "category"
