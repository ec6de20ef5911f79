package models

import "time"

// Profile is a GitHub account as returned by GET /users/{username}.
// Optional fields are pointers because the API sends null for them.
type Profile struct {
	AvatarURL       string    `json:"avatar_url"`
	Name            *string   `json:"name"`
	Login           string    `json:"login"`
	Bio             *string   `json:"bio"`
	PublicRepos     int       `json:"public_repos"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	Company         *string   `json:"company"`
	Location        *string   `json:"location"`
	TwitterUsername *string   `json:"twitter_username"`
	CreatedAt       time.Time `json:"created_at"`
}

// StringValue dereferences an optional field, treating nil as empty.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
