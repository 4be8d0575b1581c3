package githubhooks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const minimalPush = `{
	"ref": "refs/heads/main",
	"repository": {"id": 42, "name": "crax", "full_name": "crax-ai/crax", "private": false, "pushed_at": 1700000000},
	"sender": {"login": "octocat"},
	"commits": [
		{"id": "aaa111", "message": "first", "timestamp": "2023-11-14T10:00:00Z", "added": ["a.go"]},
		{"id": "bbb222", "message": "second", "timestamp": "2023-11-14T11:00:00Z", "modified": ["b.go"]}
	]
}`

func TestParsePushPayloadKeepsCommitOrder(t *testing.T) {
	payload, err := parsePushPayload([]byte(minimalPush))
	require.NoError(t, err)

	require.Equal(t, "refs/heads/main", payload.Ref)
	require.Equal(t, int64(42), payload.Repository.ID)
	require.Len(t, payload.Commits, 2)
	require.Equal(t, "aaa111", payload.Commits[0].ID)
	require.Equal(t, "bbb222", payload.Commits[1].ID)
}

func TestParsePushPayloadRejectsMalformedJSON(t *testing.T) {
	_, err := parsePushPayload([]byte(`{"ref": `))
	require.Error(t, err)
}

func TestParsePushPayloadRequiresRef(t *testing.T) {
	_, err := parsePushPayload([]byte(`{"repository": {"id": 42}}`))
	require.ErrorIs(t, err, errMissingRef)
}

func TestParsePushPayloadRequiresRepositoryID(t *testing.T) {
	_, err := parsePushPayload([]byte(`{"ref": "refs/heads/main", "repository": {"name": "crax"}}`))
	require.ErrorIs(t, err, errMissingRepository)
}

func TestParsePushPayloadDefaultsAbsentCommits(t *testing.T) {
	payload, err := parsePushPayload([]byte(`{"ref": "refs/heads/main", "repository": {"id": 42}}`))
	require.NoError(t, err)
	require.NotNil(t, payload.Commits)
	require.Empty(t, payload.Commits)
}

func TestBranchAndVisibilityPredicates(t *testing.T) {
	payload, err := parsePushPayload([]byte(minimalPush))
	require.NoError(t, err)

	require.True(t, isMainBranch(payload))
	require.True(t, isPublicRepository(payload))

	payload.Ref = "refs/heads/feature-x"
	require.False(t, isMainBranch(payload))

	payload.Repository.Private = true
	require.False(t, isPublicRepository(payload))
}

func TestCommittedAtFallsBackToPushTime(t *testing.T) {
	pushTime := time.Date(2023, 11, 14, 12, 0, 0, 0, time.UTC)

	require.Equal(t, pushTime, committedAt(pushEventCommit{Timestamp: ""}, pushTime))
	require.Equal(t, pushTime, committedAt(pushEventCommit{Timestamp: "not-a-time"}, pushTime))

	parsed := committedAt(pushEventCommit{Timestamp: "2023-11-14T10:00:00Z"}, pushTime)
	require.Equal(t, time.Date(2023, 11, 14, 10, 0, 0, 0, time.UTC), parsed)
}

func TestPushedAtFromRepositoryMetadata(t *testing.T) {
	payload, err := parsePushPayload([]byte(minimalPush))
	require.NoError(t, err)

	require.Equal(t, time.Unix(1700000000, 0).UTC(), pushedAt(payload))

	payload.Repository.PushedAt = 0
	require.WithinDuration(t, time.Now().UTC(), pushedAt(payload), time.Minute)
}
