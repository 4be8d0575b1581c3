package errmsg

import (
	"fmt"
	"net/http"
)

var (
	ProjectSyncInvalidRequest = NewStatusError(
		http.StatusBadRequest,
		"username must be provided",
	)
	ProjectSyncFailed = NewStatusError(
		http.StatusInternalServerError,
		"failed to sync projects",
	)
)

// ProjectProfileNotFound reports a sync request for a username with no profile.
func ProjectProfileNotFound(username string) StatusError {
	return NewStatusError(
		http.StatusNotFound,
		fmt.Sprintf("profile not found for username: %s", username),
	)
}

type _ProjectSyncInvalidRequest struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Message    string `json:"message" example:"username must be provided"`
}

type _ProjectProfileNotFound struct {
	StatusCode int    `json:"statusCode" example:"404"`
	Message    string `json:"message" example:"profile not found for username: octocat"`
}
