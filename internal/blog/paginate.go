package blog

import "github.com/KingAbe1/wp-next-blog/internal/models"

// Paginate builds the pagination summary for one page of posts.
//
// With an authoritative total the page count is ceil(total/perPage). Without
// one, a full page is taken to mean another page follows. That guess is
// wrong when the last page happens to be exactly full; the UI relies on the
// current shape, so it stays.
func Paginate(posts []models.Post, currentPage, perPage int, total *int) models.PostPage {
	if currentPage < 1 {
		currentPage = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if posts == nil {
		posts = []models.Post{}
	}

	page := models.PostPage{
		Posts:       posts,
		CurrentPage: currentPage,
		PerPage:     perPage,
	}

	if total != nil {
		page.TotalKnown = true
		page.TotalPosts = *total
		page.TotalPages = (*total + perPage - 1) / perPage
		return page
	}

	page.TotalPosts = (currentPage-1)*perPage + len(posts)
	page.TotalPages = currentPage
	if len(posts) == perPage {
		page.TotalPages = currentPage + 1
	}
	return page
}
