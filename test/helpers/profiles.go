package helpers

import (
	"testing"
	"time"

	"github.com/Crax-AI/crax.app/internal/db"
	"github.com/Crax-AI/crax.app/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SeedProfile upserts a profile linked to a GitHub login and returns it.
// Profile creation is the main app's job in production; tests plant rows
// directly.
func SeedProfile(t *testing.T, store *db.Store, username, githubLogin string) models.Profile {
	t.Helper()

	profile := models.Profile{
		ID:        uuid.NewString(),
		Username:  username,
		GithubURL: models.GithubProfileURL(githubLogin),
		CreatedAt: time.Now().UTC(),
	}

	_, err := store.Profiles.UpdateOne(
		store.Ctx,
		bson.M{"username": username},
		bson.M{
			"$set": bson.M{
				"github_url": profile.GithubURL,
				"created_at": profile.CreatedAt,
			},
			"$setOnInsert": bson.M{
				"id":       profile.ID,
				"username": profile.Username,
			},
		},
		options.Update().SetUpsert(true),
	)
	require.NoError(t, err)

	// Re-read so callers get the persisted id even when the row existed.
	require.NoError(t, store.Profiles.FindOne(store.Ctx, bson.M{
		"username": username,
	}).Decode(&profile))

	return profile
}
