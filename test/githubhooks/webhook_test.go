package githubhooks

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Crax-AI/crax.app/internal/env"
	"github.com/Crax-AI/crax.app/internal/errmsg"
	"github.com/Crax-AI/crax.app/internal/models"
	"github.com/Crax-AI/crax.app/test/helpers"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

const webhookPath = "/webhooks/github"

// pushPayload builds a minimal GitHub push event body.
func pushPayload(ref string, repoID int64, private bool, login string, messages ...string) map[string]any {
	commits := make([]map[string]any, len(messages))
	for i, msg := range messages {
		commits[i] = map[string]any{
			"id":        fmt.Sprintf("sha-%d-%d", repoID, i),
			"message":   msg,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"added":     []string{fmt.Sprintf("file_%d.go", i)},
			"modified":  []string{},
			"removed":   []string{},
		}
	}

	return map[string]any{
		"ref": ref,
		"repository": map[string]any{
			"id":        repoID,
			"name":      "crax-demo",
			"full_name": "octocat/crax-demo",
			"private":   private,
			"pushed_at": time.Now().Unix(),
		},
		"sender":  map[string]any{"login": login},
		"commits": commits,
	}
}

// deliver signs the payload with the configured secret and posts it.
func deliver(t *testing.T, payload map[string]any) (bodyBytes []byte, statusCode int) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, webhookPath, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "push")
	req.Header.Set("X-GitHub-Delivery", fmt.Sprintf("delivery-%d", time.Now().UnixNano()))

	mac := hmac.New(sha256.New, []byte(env.GITHUB_WEBHOOK_SECRET))
	mac.Write(body)
	req.Header.Set("X-Hub-Signature-256", fmt.Sprintf("sha256=%x", mac.Sum(nil)))

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 30 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	return buf.Bytes(), resp.StatusCode
}

func cleanRepo(t *testing.T, repoID int64) {
	t.Helper()
	_, err := res.Store.Commits.DeleteMany(res.Store.Ctx, bson.M{"repository_id": repoID})
	require.NoError(t, err)
}

func commitRows(t *testing.T, repoID int64) []models.Commit {
	t.Helper()
	cursor, err := res.Store.Commits.Find(res.Store.Ctx, bson.M{"repository_id": repoID})
	require.NoError(t, err)

	var rows []models.Commit
	require.NoError(t, cursor.All(res.Store.Ctx, &rows))
	return rows
}

func TestPushToFeatureBranchIsSkipped(t *testing.T) {
	const repoID = 9001
	cleanRepo(t, repoID)

	body, status := deliver(t, pushPayload("refs/heads/feature-x", repoID, false, "octocat", "anything"))
	require.Equal(t, http.StatusOK, status)

	var parsed struct {
		Message string `json:"message"`
		Ref     string `json:"ref"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Equal(t, "Skipped - not a push to main branch", parsed.Message)
	require.Equal(t, "refs/heads/feature-x", parsed.Ref)

	require.Empty(t, commitRows(t, repoID))
}

func TestPushToPrivateRepositoryIsSkipped(t *testing.T) {
	const repoID = 9002
	cleanRepo(t, repoID)

	body, status := deliver(t, pushPayload("refs/heads/main", repoID, true, "octocat", "secret work"))
	require.Equal(t, http.StatusOK, status)

	var parsed struct {
		Message    string `json:"message"`
		Repository string `json:"repository"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Equal(t, "Skipped - private repository", parsed.Message)
	require.Equal(t, "octocat/crax-demo", parsed.Repository)

	require.Empty(t, commitRows(t, repoID))
}

func TestUnknownPusherAbortsBeforeStoring(t *testing.T) {
	const repoID = 9003
	cleanRepo(t, repoID)
	_, err := res.Store.Profiles.DeleteMany(res.Store.Ctx, bson.M{"github_url": models.GithubProfileURL("ghost")})
	require.NoError(t, err)

	body, status := deliver(t, pushPayload("refs/heads/main", repoID, false, "ghost", "orphan commit"))

	helpers.ResponseErrorCheck(t, app, errmsg.WebhookPusherUnknown("ghost"), body, status)
	require.Empty(t, commitRows(t, repoID))
}

func TestMissingSignatureIsRejected(t *testing.T) {
	body, err := json.Marshal(pushPayload("refs/heads/main", 9004, false, "octocat", "x"))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, webhookPath, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	helpers.ResponseErrorCheck(t, app, errmsg.WebhookSignatureMissing, buf.Bytes(), resp.StatusCode)
}

func TestInvalidSignatureIsRejected(t *testing.T) {
	body, err := json.Marshal(pushPayload("refs/heads/main", 9005, false, "octocat", "x"))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, webhookPath, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Hub-Signature-256", "sha256=0000000000000000000000000000000000000000000000000000000000000000")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	helpers.ResponseErrorCheck(t, app, errmsg.WebhookSignatureInvalid, buf.Bytes(), resp.StatusCode)
}

func TestMalformedPayloadIsRejected(t *testing.T) {
	raw := []byte(`{"repository": {"id": 1}}`)

	req, err := http.NewRequest(http.MethodPost, webhookPath, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	mac := hmac.New(sha256.New, []byte(env.GITHUB_WEBHOOK_SECRET))
	mac.Write(raw)
	req.Header.Set("X-Hub-Signature-256", fmt.Sprintf("sha256=%x", mac.Sum(nil)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	helpers.ResponseErrorCheck(t, app, errmsg.WebhookInvalidPayload, buf.Bytes(), resp.StatusCode)
}

func TestPostWorthyPushCreatesAndLinksPost(t *testing.T) {
	const repoID = 9006
	cleanRepo(t, repoID)
	profile := helpers.SeedProfile(t, res.Store, "octocat", "octocat")
	_, err := res.Store.Posts.DeleteMany(res.Store.Ctx, bson.M{"author_id": profile.ID})
	require.NoError(t, err)

	previous := script
	script = func(string) (string, error) {
		return `{"should_post": true, "post": "Built a caching layer today, eviction tests and all!", "reasoning": "substantial feature work"}`, nil
	}
	defer func() { script = previous }()

	body, status := deliver(t, pushPayload(
		"refs/heads/main", repoID, false, "octocat",
		"fix typo", "wip", "add caching layer with eviction tests",
	))
	require.Equal(t, http.StatusOK, status)

	var parsed struct {
		Message          string `json:"message"`
		PostID           string `json:"post_id"`
		Content          string `json:"content"`
		CommitsProcessed int    `json:"commits_processed"`
		CommitsLinked    int    `json:"commits_linked"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Equal(t, "Post created successfully", parsed.Message)
	require.NotEmpty(t, parsed.PostID)
	require.Equal(t, "Built a caching layer today, eviction tests and all!", parsed.Content)
	require.Equal(t, 3, parsed.CommitsProcessed)
	require.Equal(t, 3, parsed.CommitsLinked)

	var post models.Post
	require.NoError(t, res.Store.Posts.FindOne(res.Store.Ctx, bson.M{"id": parsed.PostID}).Decode(&post))
	require.Equal(t, parsed.Content, post.Description)
	require.Equal(t, models.PostTypePush, post.Type)
	require.Equal(t, profile.ID, post.AuthorID)

	rows := commitRows(t, repoID)
	require.Len(t, rows, 3)
	for _, row := range rows {
		require.NotNil(t, row.PostID)
		require.Equal(t, parsed.PostID, *row.PostID)
		require.Equal(t, profile.ID, row.UserID)
	}
}

func TestTrivialPushIsStoredWithoutPost(t *testing.T) {
	const repoID = 9007
	cleanRepo(t, repoID)
	helpers.SeedProfile(t, res.Store, "octocat", "octocat")

	previous := script
	script = func(string) (string, error) {
		return `{"should_post": false, "post": "", "reasoning": "dependency bump only"}`, nil
	}
	defer func() { script = previous }()

	body, status := deliver(t, pushPayload("refs/heads/main", repoID, false, "octocat", "bump lodash to 4.17.21"))
	require.Equal(t, http.StatusOK, status)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Equal(t, "Commits stored - not post-worthy", parsed["message"])
	require.EqualValues(t, 1, parsed["commits_stored"])
	require.Equal(t, "dependency bump only", parsed["reasoning"])
	require.NotContains(t, parsed, "post_id")

	rows := commitRows(t, repoID)
	require.Len(t, rows, 1)
	require.Nil(t, rows[0].PostID)
}

func TestRedeliveryDoesNotDuplicateCommits(t *testing.T) {
	const repoID = 9008
	cleanRepo(t, repoID)
	helpers.SeedProfile(t, res.Store, "octocat", "octocat")

	payload := pushPayload("refs/heads/main", repoID, false, "octocat", "one", "two")

	_, status := deliver(t, payload)
	require.Equal(t, http.StatusOK, status)

	first := commitRows(t, repoID)
	require.Len(t, first, 2)

	_, status = deliver(t, payload)
	require.Equal(t, http.StatusOK, status)

	second := commitRows(t, repoID)
	require.Len(t, second, 2)

	// Redelivery landed on the same rows: internal ids are unchanged.
	ids := map[string]bool{}
	for _, row := range first {
		ids[row.ID] = true
	}
	for _, row := range second {
		require.True(t, ids[row.ID])
	}
}

func TestEvaluatorFailureFailsClosed(t *testing.T) {
	const repoID = 9009
	cleanRepo(t, repoID)
	profile := helpers.SeedProfile(t, res.Store, "octocat", "octocat")
	_, err := res.Store.Posts.DeleteMany(res.Store.Ctx, bson.M{"author_id": profile.ID})
	require.NoError(t, err)

	previous := script
	script = func(string) (string, error) {
		return "", fmt.Errorf("provider unavailable")
	}
	defer func() { script = previous }()

	body, status := deliver(t, pushPayload("refs/heads/main", repoID, false, "octocat", "real work"))
	require.Equal(t, http.StatusInternalServerError, status)

	var parsed struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Contains(t, parsed.Message, "failed to generate post summary")

	// Commits stay persisted and unlinked; no post was created.
	rows := commitRows(t, repoID)
	require.Len(t, rows, 1)
	require.Nil(t, rows[0].PostID)

	count, err := res.Store.Posts.CountDocuments(res.Store.Ctx, bson.M{"author_id": profile.ID})
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestEmptyPushStoresNothing(t *testing.T) {
	const repoID = 9010
	cleanRepo(t, repoID)

	body, status := deliver(t, pushPayload("refs/heads/main", repoID, false, "octocat"))
	require.Equal(t, http.StatusOK, status)

	var parsed struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Equal(t, "No commits found in push event", parsed.Message)
	require.Empty(t, commitRows(t, repoID))
}
