// Package content derives display values from enriched posts: image and
// author accessors, plain-text excerpts, dates and reading times.
package content

import (
	"math"
	"net/url"
	"strings"
	"unicode"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// wpmTechnical is the average words-per-minute reading speed for technical
// content, based on research suggesting ~238 WPM for technical material.
const wpmTechnical = 238

// fallbackPageURL resolves relative links when a post has no permalink.
var fallbackPageURL = &url.URL{Scheme: "https", Host: "localhost", Path: "/"}

// blockElements end a run of text; a space is emitted after them so words
// in adjacent paragraphs do not run together.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "figure": true, "figcaption": true,
	"tr": true, "td": true, "th": true,
}

// StripHTML removes tags from s, unescapes entities and collapses whitespace.
// Script and style bodies are dropped.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or malformed input; either way keep what was read.
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tt == html.StartTagToken && (tag == "script" || tag == "style") {
				skip++
			}
			if tag == "br" {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
			if blockElements[tag] {
				b.WriteByte(' ')
			}
		}
	}
}

// PlainText extracts the readable text of a post body. go-readability does
// the extraction; when it fails or finds nothing the markup is stripped
// instead. pageURL resolves relative links and may be empty.
func PlainText(body, pageURL string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	base := fallbackPageURL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		base = u
	}

	doc := "<html><body><article>" + body + "</article></body></html>"
	article, err := readability.FromReader(strings.NewReader(doc), base)
	if err == nil {
		if text := strings.Join(strings.Fields(article.TextContent), " "); text != "" {
			return text
		}
	}
	return StripHTML(body)
}

// ReadingTime estimates reading time in minutes for the given text.
// Uses 238 WPM for technical content. Returns a minimum of 1 minute.
// Returns 0 for empty text.
func ReadingTime(text string) int {
	words := countWords(text)
	if words == 0 {
		return 0
	}

	minutes := math.Ceil(float64(words) / wpmTechnical)
	if minutes < 1 {
		minutes = 1
	}
	return int(minutes)
}

// countWords counts words separated by whitespace or punctuation.
func countWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) || strings.ContainsRune(".,;:!?\"'()[]{}—–-", r) {
			if inWord {
				count++
				inWord = false
			}
		} else {
			inWord = true
		}
	}
	if inWord {
		count++
	}
	return count
}

// truncateWords returns the first maxWords words of s followed by an
// ellipsis. Shorter input is returned unchanged.
func truncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "…"
}
