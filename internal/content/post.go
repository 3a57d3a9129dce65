package content

import (
	"strings"
	"time"

	"github.com/KingAbe1/wp-next-blog/internal/models"
)

// DateLayout is how post dates are shown, e.g. "March 1, 2025".
const DateLayout = "January 2, 2006"

// wpDateLayouts are the forms WordPress uses for date and date_gmt.
var wpDateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// FeaturedImageURL returns the source URL of the post's featured image, or
// "" when it has none.
func FeaturedImageURL(post models.Post) string {
	if post.Embedded == nil || len(post.Embedded.FeaturedMedia) == 0 {
		return ""
	}
	return post.Embedded.FeaturedMedia[0].SourceURL
}

// FeaturedImageAlt returns the image alt text, falling back to the post
// title.
func FeaturedImageAlt(post models.Post) string {
	if post.Embedded != nil && len(post.Embedded.FeaturedMedia) > 0 {
		if alt := post.Embedded.FeaturedMedia[0].AltText; alt != "" {
			return alt
		}
	}
	return post.Title.Rendered
}

// PostCategories returns the post's category terms. It never returns nil.
func PostCategories(post models.Post) []models.Term {
	if post.Embedded == nil {
		return []models.Term{}
	}
	for _, list := range post.Embedded.Terms {
		if len(list) > 0 && list[0].Taxonomy == models.TaxonomyCategory {
			return list
		}
	}
	return []models.Term{}
}

// PostAuthor returns the embedded author, or nil.
func PostAuthor(post models.Post) *models.Author {
	if post.Embedded == nil || len(post.Embedded.Author) == 0 {
		return nil
	}
	a := post.Embedded.Author[0]
	return &a
}

// FormatDate renders a WordPress date as "January 2, 2006". Input that does
// not parse is returned unchanged.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range wpDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	return s
}
