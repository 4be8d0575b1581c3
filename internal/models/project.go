package models

import "time"

// ProjectTypeCodebase tags projects imported from GitHub repositories.
const ProjectTypeCodebase = "codebase"

// Project is a portfolio entry imported from a user's public GitHub
// repositories, keyed naturally on (user_id, github_url) so repeated syncs
// land on the same rows.
type Project struct {
	ID           string    `json:"id" bson:"id"`
	UserID       string    `json:"user_id" bson:"user_id"`
	Title        string    `json:"title" bson:"title"`
	Tagline      string    `json:"tagline" bson:"tagline"`
	GithubURL    string    `json:"github_url" bson:"github_url"`
	ThumbnailURL string    `json:"thumbnail_url" bson:"thumbnail_url"`
	StartedAt    time.Time `json:"started_at" bson:"started_at"`
	Type         string    `json:"type" bson:"type"`
	IsPublic     bool      `json:"is_public" bson:"is_public"`
}
