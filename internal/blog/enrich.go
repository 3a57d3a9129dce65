package blog

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/KingAbe1/wp-next-blog/internal/models"
)

// Enrich resolves the featured media, author and categories of every post.
//
// Relations the API already embedded are kept as they are; only missing ones
// are fetched. Posts are processed concurrently and returned in input order.
// A relation that cannot be resolved is left empty and reported as a
// warning, so Enrich itself never fails.
func (e *Engine) Enrich(ctx context.Context, posts []models.Post) ([]models.Post, []RelationWarning) {
	out := make([]models.Post, len(posts))
	perPost := make([][]RelationWarning, len(posts))

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	for i := range posts {
		g.Go(func() error {
			out[i], perPost[i] = e.enrichPost(ctx, posts[i])
			return nil
		})
	}
	_ = g.Wait()

	var warnings []RelationWarning
	for _, ws := range perPost {
		for _, w := range ws {
			slog.Warn("failed to resolve post relation",
				"post_id", w.PostID,
				"relation", string(w.Relation),
				"error", w.Err,
			)
			e.metrics.RelationFailed(string(w.Relation))
			warnings = append(warnings, w)
		}
	}
	return out, warnings
}

func (e *Engine) enrichPost(ctx context.Context, post models.Post) (models.Post, []RelationWarning) {
	var (
		media      Relation[models.Media]
		author     Relation[models.Author]
		categories Relation[[]models.Term]
	)

	var g errgroup.Group
	g.Go(func() error {
		media = e.resolveMedia(ctx, post)
		return nil
	})
	g.Go(func() error {
		author = e.resolveAuthor(ctx, post)
		return nil
	})
	g.Go(func() error {
		categories = e.resolveCategories(ctx, post)
		return nil
	})
	_ = g.Wait()

	embedded := &models.Embedded{Terms: [][]models.Term{{}}}
	if m, ok := media.Get(); ok {
		embedded.FeaturedMedia = []models.Media{m}
	}
	if a, ok := author.Get(); ok {
		embedded.Author = []models.Author{a}
	}
	if terms, ok := categories.Get(); ok {
		embedded.Terms = [][]models.Term{terms}
	}
	post.Embedded = embedded

	var warnings []RelationWarning
	if err := media.Err(); err != nil {
		warnings = append(warnings, RelationWarning{PostID: post.ID, Relation: RelationMedia, Err: err})
	}
	if err := author.Err(); err != nil {
		warnings = append(warnings, RelationWarning{PostID: post.ID, Relation: RelationAuthor, Err: err})
	}
	if err := categories.Err(); err != nil {
		warnings = append(warnings, RelationWarning{PostID: post.ID, Relation: RelationCategories, Err: err})
	}
	return post, warnings
}

func (e *Engine) resolveMedia(ctx context.Context, post models.Post) Relation[models.Media] {
	if m, ok := embeddedMedia(post); ok {
		return Resolved(withAltFallback(m, post))
	}
	if post.FeaturedMedia == 0 {
		return Unresolved[models.Media](nil)
	}

	m, err := e.source.Media(ctx, post.FeaturedMedia)
	if err != nil {
		return Unresolved[models.Media](err)
	}
	return Resolved(withAltFallback(models.Media{
		ID:        m.ID,
		SourceURL: m.SourceURL,
		AltText:   m.AltText,
	}, post))
}

func (e *Engine) resolveAuthor(ctx context.Context, post models.Post) Relation[models.Author] {
	if a, ok := embeddedAuthor(post); ok {
		return Resolved(a)
	}
	if post.Author == 0 {
		return Unresolved[models.Author](nil)
	}

	a, err := e.source.User(ctx, post.Author)
	if err != nil {
		return Unresolved[models.Author](err)
	}
	return Resolved(models.Author{ID: a.ID, Name: a.Name, Slug: a.Slug})
}

func (e *Engine) resolveCategories(ctx context.Context, post models.Post) Relation[[]models.Term] {
	if terms, ok := embeddedCategories(post); ok {
		return Resolved(terms)
	}
	if len(post.Categories) == 0 {
		return Resolved([]models.Term{})
	}

	cats, err := e.source.CategoriesForPost(ctx, post.ID)
	if err != nil {
		return Unresolved[[]models.Term](err)
	}
	terms := make([]models.Term, 0, len(cats))
	for _, c := range cats {
		terms = append(terms, models.Term{
			ID:       c.ID,
			Name:     c.Name,
			Slug:     c.Slug,
			Taxonomy: models.TaxonomyCategory,
		})
	}
	return Resolved(terms)
}

// embeddedMedia returns the featured media the API embedded. WordPress
// embeds an error object (id 0) when the media is not viewable; that counts
// as not embedded.
func embeddedMedia(post models.Post) (models.Media, bool) {
	if post.Embedded == nil || len(post.Embedded.FeaturedMedia) == 0 {
		return models.Media{}, false
	}
	m := post.Embedded.FeaturedMedia[0]
	return m, m.ID != 0
}

func embeddedAuthor(post models.Post) (models.Author, bool) {
	if post.Embedded == nil || len(post.Embedded.Author) == 0 {
		return models.Author{}, false
	}
	a := post.Embedded.Author[0]
	return a, a.ID != 0
}

// embeddedCategories returns the first non-empty embedded term list made of
// category terms. Tag lists are skipped.
func embeddedCategories(post models.Post) ([]models.Term, bool) {
	if post.Embedded == nil {
		return nil, false
	}
	for _, list := range post.Embedded.Terms {
		if len(list) > 0 && list[0].Taxonomy == models.TaxonomyCategory {
			return list, true
		}
	}
	return nil, false
}

func withAltFallback(m models.Media, post models.Post) models.Media {
	if m.AltText == "" {
		m.AltText = post.Title.Rendered
	}
	return m
}
