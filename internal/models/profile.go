package models

import "time"

// Profile is a Crax user. Rows are created by the first-login flow of the
// main app; this service only ever reads them.
type Profile struct {
	ID         string    `json:"id" bson:"id"`
	Username   string    `json:"username" bson:"username"`
	FullName   string    `json:"full_name,omitempty" bson:"full_name,omitempty"`
	GithubURL  string    `json:"github_url" bson:"github_url"`
	DevpostURL string    `json:"devpost_url,omitempty" bson:"devpost_url,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// GithubProfileURL renders the canonical profile URL stored on Profile rows
// for a GitHub login, the key the identity resolver matches on.
func GithubProfileURL(login string) string {
	return "https://github.com/" + login
}
