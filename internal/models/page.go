package models

// PostPage is one page of enriched posts with its pagination summary.
//
// TotalKnown reports whether TotalPosts and TotalPages come from the API's
// own total count. When it is false they are estimates.
type PostPage struct {
	Posts       []Post `json:"posts"`
	CurrentPage int    `json:"currentPage"`
	PerPage     int    `json:"perPage"`
	TotalPages  int    `json:"totalPages"`
	TotalPosts  int    `json:"totalPosts"`
	TotalKnown  bool   `json:"totalKnown"`
}
