package content

import "github.com/KingAbe1/wp-next-blog/internal/models"

// excerptWords matches the WordPress default excerpt length.
const excerptWords = 55

// Summary holds what a post card shows.
type Summary struct {
	Excerpt        string   `json:"excerpt"`
	ReadingMinutes int      `json:"readingMinutes"`
	Date           string   `json:"date"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	ImageAlt       string   `json:"imageAlt"`
	AuthorName     string   `json:"authorName,omitempty"`
	Categories     []string `json:"categories"`
}

// Summarize builds the card summary of an enriched post. The excerpt is the
// post's own excerpt as plain text, or the opening words of the body when
// the post has none.
func Summarize(post models.Post) Summary {
	body := PlainText(post.Content.Rendered, post.Link)

	excerpt := ""
	if post.Excerpt != nil {
		excerpt = StripHTML(post.Excerpt.Rendered)
	}
	if excerpt == "" {
		excerpt = truncateWords(body, excerptWords)
	}

	s := Summary{
		Excerpt:        excerpt,
		ReadingMinutes: ReadingTime(body),
		Date:           FormatDate(post.Date),
		ImageURL:       FeaturedImageURL(post),
		ImageAlt:       FeaturedImageAlt(post),
		Categories:     []string{},
	}
	if a := PostAuthor(post); a != nil {
		s.AuthorName = a.Name
	}
	for _, term := range PostCategories(post) {
		s.Categories = append(s.Categories, term.Name)
	}
	return s
}
