package feed

import (
	"github.com/Crax-AI/crax.app/internal/db"
	"github.com/Crax-AI/crax.app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostEntry is one feed item: the post plus how many commit rows it links.
type PostEntry struct {
	models.Post   `bson:",inline"`
	CommitsLinked int64 `json:"commits_linked" bson:"-"`
}

// listPosts returns one newest-first page of posts with their linked commit
// counts.
func listPosts(store *db.Store, page, perPage int) ([]PostEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cursor, err := store.Posts.Find(store.Ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	if err := cursor.All(store.Ctx, &posts); err != nil {
		return nil, err
	}

	entries := make([]PostEntry, len(posts))
	for i, post := range posts {
		linked, err := store.Commits.CountDocuments(store.Ctx, bson.M{"post_id": post.ID})
		if err != nil {
			return nil, err
		}
		entries[i] = PostEntry{Post: post, CommitsLinked: linked}
	}

	return entries, nil
}

// getPost loads one post and the commit rows linked to it, push order first.
func getPost(store *db.Store, id string) (models.Post, []models.Commit, error) {
	var post models.Post
	if err := store.Posts.FindOne(store.Ctx, bson.M{"id": id}).Decode(&post); err != nil {
		return models.Post{}, nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "committed_at", Value: 1}})
	cursor, err := store.Commits.Find(store.Ctx, bson.M{"post_id": post.ID}, opts)
	if err != nil {
		return models.Post{}, nil, err
	}

	commits := []models.Commit{}
	if err := cursor.All(store.Ctx, &commits); err != nil {
		return models.Post{}, nil, err
	}

	return post, commits, nil
}
