package githubhooks

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const mainBranchRef = "refs/heads/main"

// pushEventPayload models just the fields we rely on from a GitHub push hook.
type pushEventPayload struct {
	Ref        string            `json:"ref"`
	Repository pushRepository    `json:"repository"`
	Sender     pushSender        `json:"sender"`
	Commits    []pushEventCommit `json:"commits"`
}

type pushRepository struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
	HTMLURL  string `json:"html_url"`
	PushedAt int64  `json:"pushed_at"`
}

type pushSender struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// pushEventCommit mirrors the subset of commit data we persist.
type pushEventCommit struct {
	ID        string   `json:"id"`
	Message   string   `json:"message"`
	Timestamp string   `json:"timestamp"`
	Added     []string `json:"added"`
	Modified  []string `json:"modified"`
	Removed   []string `json:"removed"`
}

var (
	errMissingRef        = errors.New("missing ref")
	errMissingRepository = errors.New("missing repository id")
)

// parsePushPayload decodes the push event strictly enough to fail fast on
// the fields the pipeline depends on. An absent commits array becomes an
// empty list; commit order is kept exactly as delivered.
func parsePushPayload(body []byte) (pushEventPayload, error) {
	var payload pushEventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return pushEventPayload{}, err
	}

	payload.Ref = strings.TrimSpace(payload.Ref)
	if payload.Ref == "" {
		return pushEventPayload{}, errMissingRef
	}

	if payload.Repository.ID == 0 {
		return pushEventPayload{}, errMissingRepository
	}

	if payload.Commits == nil {
		payload.Commits = []pushEventCommit{}
	}

	return payload, nil
}

// isMainBranch reports whether the push landed on the main branch.
func isMainBranch(payload pushEventPayload) bool {
	return payload.Ref == mainBranchRef
}

// isPublicRepository reports whether the repository is visible to everyone.
func isPublicRepository(payload pushEventPayload) bool {
	return !payload.Repository.Private
}

// committedAt parses a commit's ISO timestamp, falling back to the push time
// when absent or malformed so one bad field never aborts persistence.
func committedAt(commit pushEventCommit, pushedAt time.Time) time.Time {
	ts := strings.TrimSpace(commit.Timestamp)
	if ts == "" {
		return pushedAt
	}

	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return pushedAt
	}

	return parsed
}

// pushedAt derives the push time from the repository metadata, defaulting to
// now when the hook omits it.
func pushedAt(payload pushEventPayload) time.Time {
	if payload.Repository.PushedAt > 0 {
		return time.Unix(payload.Repository.PushedAt, 0).UTC()
	}

	return time.Now().UTC()
}
