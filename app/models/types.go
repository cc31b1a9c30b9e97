package models

import "time"

// BlogPost is persisted as one JSON object per "/{slug}.json" storage key.
// Slug and CreatedAt are immutable after creation.
type BlogPost struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Published bool      `json:"published"`
}

// PostSummary is the list projection of a post: content is replaced by a
// short excerpt.
type PostSummary struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Author    string    `json:"author"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Published bool      `json:"published"`
}

// CreatePostRequest is the body of POST /api/blog/posts.
type CreatePostRequest struct {
	Slug      string   `json:"slug" validate:"required"`
	Title     string   `json:"title" validate:"required"`
	Content   string   `json:"content" validate:"required"`
	Author    string   `json:"author"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

// UpdatePostRequest is the body of PUT /api/blog/posts/{slug}. Only fields
// present in the body are overlaid onto the stored post; slug and createdAt
// are never taken from the body.
type UpdatePostRequest struct {
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Author    *string   `json:"author"`
	Tags      *[]string `json:"tags"`
	Published *bool     `json:"published"`
}

// Backup describes one archived snapshot of the blog store.
type Backup struct {
	Label    string    `json:"label"`
	Date     time.Time `json:"date"`
	Size     int64     `json:"size"`
	Checksum string    `json:"checksum,omitempty"`
}
