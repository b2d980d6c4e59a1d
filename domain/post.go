package domain

import "time"

// Post is a single user-authored micro-message. Posts are append-only:
// created through the write path, never updated or deleted.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// IdentityRecord is the account metadata the identity directory holds for
// an author. Owned externally, read-only here, never persisted locally.
// Username and ProfileImageURL are nullable on the directory side.
type IdentityRecord struct {
	ID              string  `json:"id"`
	Username        *string `json:"username"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// EnrichedPost is a Post with its author's identity denormalized onto it.
// Built fresh per request for display; never cached.
type EnrichedPost struct {
	Post
	AuthorName            *string `json:"author_name"`
	AuthorProfileImageURL *string `json:"author_profile_image_url"`
}
