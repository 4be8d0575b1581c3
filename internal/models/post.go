package models

import "time"

// PostTypePush tags posts generated from webhook push deliveries.
const PostTypePush = "push"

// Post is one build-in-public feed entry. Rows of type "push" are created by
// the webhook pipeline when the evaluator decides a commit batch is worth
// sharing; likes and comments live in the main app's store and are not
// written by this service.
type Post struct {
	ID          string    `json:"id" bson:"id"`
	AuthorID    string    `json:"author_id" bson:"author_id"`
	Description string    `json:"description" bson:"description"`
	Type        string    `json:"type" bson:"type"`
	ImageURL    *string   `json:"image_url" bson:"image_url"`
	VideoURL    *string   `json:"video_url" bson:"video_url"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
