package errmsg

import "net/http"

var (
	PostNotFound = NewStatusError(
		http.StatusNotFound,
		"post not found",
	)
	FeedInvalidPagination = NewStatusError(
		http.StatusBadRequest,
		"page and per_page must be positive integers",
	)
)

type _PostNotFound struct {
	StatusCode int    `json:"statusCode" example:"404"`
	Message    string `json:"message" example:"post not found"`
}

type _FeedInvalidPagination struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Message    string `json:"message" example:"page and per_page must be positive integers"`
}
