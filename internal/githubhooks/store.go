package githubhooks

import (
	"time"

	"github.com/Crax-AI/crax.app/internal/db"
	"github.com/Crax-AI/crax.app/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// resolveAuthor maps the pusher's GitHub login to a profile via the stored
// github_url link. mongo.ErrNoDocuments means no profile claims the login.
func resolveAuthor(store *db.Store, login string) (models.Profile, error) {
	var profile models.Profile
	err := store.Profiles.FindOne(store.Ctx, bson.M{
		"github_url": models.GithubProfileURL(login),
	}).Decode(&profile)

	return profile, err
}

// storeCommits persists one row per pushed commit, keyed on
// (repository_id, commit_id) so a redelivered push lands on the same rows.
// $setOnInsert keeps the internal id and post_id stable across redeliveries;
// the unique index in db.Open is the backstop under concurrent duplicates.
// Returns the persisted rows in push order.
func storeCommits(store *db.Store, userID string, payload pushEventPayload) ([]models.Commit, error) {
	pushTime := pushedAt(payload)

	stored := make([]models.Commit, 0, len(payload.Commits))
	for _, commit := range payload.Commits {
		row := models.Commit{
			ID:             uuid.NewString(),
			UserID:         userID,
			RepositoryID:   payload.Repository.ID,
			RepositoryName: payload.Repository.Name,
			CommitID:       commit.ID,
			Message:        commit.Message,
			CommittedAt:    committedAt(commit, pushTime),
			PushedAt:       pushTime,
			AddedFiles:     emptyIfNil(commit.Added),
			ModifiedFiles:  emptyIfNil(commit.Modified),
			RemovedFiles:   emptyIfNil(commit.Removed),
		}

		filter := bson.M{
			"repository_id": row.RepositoryID,
			"commit_id":     row.CommitID,
		}

		opts := options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After)

		var persisted models.Commit
		err := store.Commits.FindOneAndUpdate(
			store.Ctx,
			filter,
			bson.M{"$setOnInsert": row},
			opts,
		).Decode(&persisted)
		if err != nil {
			return nil, err
		}

		stored = append(stored, persisted)
	}

	return stored, nil
}

// createPost inserts the generated feed entry for the delivery.
func createPost(store *db.Store, authorID, description string) (models.Post, error) {
	now := time.Now().UTC()
	post := models.Post{
		ID:          uuid.NewString(),
		AuthorID:    authorID,
		Description: description,
		Type:        models.PostTypePush,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := store.Posts.InsertOne(store.Ctx, post)

	return post, err
}

// linkCommits points the delivery's commit rows at the new post and reports
// how many rows were actually updated so partial linkage is visible to the
// caller.
func linkCommits(store *db.Store, postID string, commitIDs []string) (int64, error) {
	res, err := store.Commits.UpdateMany(
		store.Ctx,
		bson.M{"id": bson.M{"$in": commitIDs}},
		bson.M{"$set": bson.M{"post_id": postID}},
	)
	if err != nil {
		return 0, err
	}

	return res.ModifiedCount, nil
}

func emptyIfNil(files []string) []string {
	if files == nil {
		return []string{}
	}
	return files
}
