package services

import "errors"

var (
	// ErrInvalidSlug means the slug fails the format or length rules.
	ErrInvalidSlug = errors.New("invalid slug")

	// ErrNotFound means no post exists at the slug.
	ErrNotFound = errors.New("post not found")

	// ErrConflict means a post already exists at the slug.
	ErrConflict = errors.New("a post with this slug already exists")
)
