package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"homebase/app/models"
	"homebase/app/storage"
)

const postSuffix = ".json"

// postKey maps a slug to its storage key in the flat blog namespace.
func postKey(slug string) string {
	return "/" + slug + postSuffix
}

// BlogService implements blog post operations over a blob store.
type BlogService struct {
	store storage.BlobStore
	now   func() time.Time
}

// NewBlogService creates a BlogService backed by store.
func NewBlogService(store storage.BlobStore) *BlogService {
	return &BlogService{store: store, now: time.Now}
}

// ListPosts returns summaries of all published posts, newest first. Records
// that fail to parse are skipped so one corrupt blob cannot take down the
// whole listing.
func (s *BlogService) ListPosts(ctx context.Context) ([]models.PostSummary, error) {
	keys, err := s.store.List(ctx, "/")
	if err != nil {
		return nil, fmt.Errorf("list blog keys: %w", err)
	}

	summaries := []models.PostSummary{}
	for _, key := range keys {
		if !strings.HasSuffix(key, postSuffix) {
			continue
		}
		raw, err := s.store.Read(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		var post models.BlogPost
		if err := json.Unmarshal(raw, &post); err != nil {
			log.Warn().Str("key", key).Err(err).Msg("skipping unparsable post record")
			continue
		}
		if !post.Published {
			continue
		}
		summaries = append(summaries, post.Summary())
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// GetPost returns the full post at slug, including unpublished drafts:
// direct-link access deliberately bypasses the published gate that ListPosts
// applies.
func (s *BlogService) GetPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	if !models.IsValidSlug(slug) {
		return nil, ErrInvalidSlug
	}
	raw, err := s.store.Read(ctx, postKey(slug))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read post %s: %w", slug, err)
	}
	var post models.BlogPost
	if err := json.Unmarshal(raw, &post); err != nil {
		return nil, fmt.Errorf("parse post %s: %w", slug, err)
	}
	return &post, nil
}

// CreatePost stores a new post, refusing slugs that are already taken.
// The existence check and the write are not atomic: two concurrent creates
// of the same slug can both pass the check and the second write wins.
func (s *BlogService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.BlogPost, error) {
	if !models.IsValidSlug(req.Slug) {
		return nil, ErrInvalidSlug
	}

	_, err := s.store.Read(ctx, postKey(req.Slug))
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("check slug %s: %w", req.Slug, err)
	}

	now := s.now().UTC()
	post := &models.BlogPost{
		Slug:      req.Slug,
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
		Published: req.Published,
	}
	if post.Author == "" {
		post.Author = "Anonymous"
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if err := s.writePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost overlays the fields present in req onto the stored post. Slug
// and createdAt are immutable; updatedAt is bumped to now.
func (s *BlogService) UpdatePost(ctx context.Context, slug string, req *models.UpdatePostRequest) (*models.BlogPost, error) {
	post, err := s.GetPost(ctx, slug)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(post)
	post.Slug = slug
	post.UpdatedAt = s.now().UTC()

	if err := s.writePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post at slug. Deleting a slug that has no post is
// still a success, so the operation is idempotent.
func (s *BlogService) DeletePost(ctx context.Context, slug string) error {
	if !models.IsValidSlug(slug) {
		return ErrInvalidSlug
	}
	if err := s.store.Remove(ctx, postKey(slug)); err != nil {
		return fmt.Errorf("remove post %s: %w", slug, err)
	}
	return nil
}

func (s *BlogService) writePost(ctx context.Context, post *models.BlogPost) error {
	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal post %s: %w", post.Slug, err)
	}
	if err := s.store.Write(ctx, postKey(post.Slug), data); err != nil {
		return fmt.Errorf("write post %s: %w", post.Slug, err)
	}
	return nil
}
