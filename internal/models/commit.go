package models

import "time"

// Commit is one pushed commit persisted from a webhook delivery. Rows are
// written for every push to the main branch of a public repository, whether
// or not a post comes out of it; PostID is set once if one does.
type Commit struct {
	ID             string     `json:"id" bson:"id"`
	UserID         string     `json:"user_id" bson:"user_id"`
	RepositoryID   int64      `json:"repository_id" bson:"repository_id"`
	RepositoryName string     `json:"repository_name" bson:"repository_name"`
	CommitID       string     `json:"commit_id" bson:"commit_id"`
	Message        string     `json:"message" bson:"message"`
	CommittedAt    time.Time  `json:"committed_at" bson:"committed_at"`
	PushedAt       time.Time  `json:"pushed_at" bson:"pushed_at"`
	AddedFiles     []string   `json:"added_files" bson:"added_files"`
	ModifiedFiles  []string   `json:"modified_files" bson:"modified_files"`
	RemovedFiles   []string   `json:"removed_files" bson:"removed_files"`
	PostID         *string    `json:"post_id" bson:"post_id"`
}
