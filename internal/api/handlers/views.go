package handlers

import (
	"github.com/KingAbe1/wp-next-blog/internal/content"
	"github.com/KingAbe1/wp-next-blog/internal/models"
)

// postView is an enriched post with its card summary.
type postView struct {
	models.Post
	Summary content.Summary `json:"summary"`
}

// pageView is a page of posts as served to the frontend.
type pageView struct {
	Category    *models.Category `json:"category,omitempty"`
	Posts       []postView       `json:"posts"`
	CurrentPage int              `json:"currentPage"`
	PerPage     int              `json:"perPage"`
	TotalPages  int              `json:"totalPages"`
	TotalPosts  int              `json:"totalPosts"`
	TotalKnown  bool             `json:"totalKnown"`
}

func newPostView(p models.Post) postView {
	return postView{Post: p, Summary: content.Summarize(p)}
}

func newPageView(page *models.PostPage) pageView {
	views := make([]postView, 0, len(page.Posts))
	for _, p := range page.Posts {
		views = append(views, newPostView(p))
	}
	return pageView{
		Posts:       views,
		CurrentPage: page.CurrentPage,
		PerPage:     page.PerPage,
		TotalPages:  page.TotalPages,
		TotalPosts:  page.TotalPosts,
		TotalKnown:  page.TotalKnown,
	}
}
