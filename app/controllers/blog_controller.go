package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"homebase/app/models"
	"homebase/app/services"
)

// BlogController handles HTTP requests for blog posts.
type BlogController struct {
	blog *services.BlogService
}

// NewBlogController creates a BlogController on top of blog.
func NewBlogController(blog *services.BlogService) *BlogController {
	return &BlogController{blog: blog}
}

// List handles GET /api/blog/posts.
func (bc *BlogController) List(w http.ResponseWriter, r *http.Request) {
	posts, err := bc.blog.ListPosts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("listing blog posts")
		sendError(w, http.StatusInternalServerError, "Failed to list posts")
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// Show handles GET /api/blog/posts/{slug}. Unpublished posts are returned
// here even though List hides them.
func (bc *BlogController) Show(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	post, err := bc.blog.GetPost(r.Context(), slug)
	switch {
	case errors.Is(err, services.ErrInvalidSlug):
		sendError(w, http.StatusBadRequest, "Invalid slug")
	case errors.Is(err, services.ErrNotFound):
		sendError(w, http.StatusNotFound, "Post not found")
	case err != nil:
		log.Error().Err(err).Str("slug", slug).Msg("fetching blog post")
		sendError(w, http.StatusInternalServerError, "Failed to fetch post")
	default:
		sendJSON(w, http.StatusOK, map[string]interface{}{"post": post})
	}
}

// Create handles POST /api/blog/posts.
func (bc *BlogController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		sendError(w, http.StatusBadRequest, "slug, title, and content are required")
		return
	}

	post, err := bc.blog.CreatePost(r.Context(), &req)
	switch {
	case errors.Is(err, services.ErrInvalidSlug):
		sendError(w, http.StatusBadRequest, "Invalid slug. Use lowercase alphanumeric and hyphens only.")
	case errors.Is(err, services.ErrConflict):
		sendError(w, http.StatusConflict, "A post with this slug already exists")
	case err != nil:
		log.Error().Err(err).Str("slug", req.Slug).Msg("creating blog post")
		sendError(w, http.StatusInternalServerError, "Failed to create post")
	default:
		sendJSON(w, http.StatusCreated, map[string]interface{}{"post": post})
	}
}

// Update handles PUT /api/blog/posts/{slug}.
func (bc *BlogController) Update(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	post, err := bc.blog.UpdatePost(r.Context(), slug, &req)
	switch {
	case errors.Is(err, services.ErrInvalidSlug):
		sendError(w, http.StatusBadRequest, "Invalid slug")
	case errors.Is(err, services.ErrNotFound):
		sendError(w, http.StatusNotFound, "Post not found")
	case err != nil:
		log.Error().Err(err).Str("slug", slug).Msg("updating blog post")
		sendError(w, http.StatusInternalServerError, "Failed to update post")
	default:
		sendJSON(w, http.StatusOK, map[string]interface{}{"post": post})
	}
}

// Delete handles DELETE /api/blog/posts/{slug}. The remove is unconditional,
// so a missing post still reports deleted.
func (bc *BlogController) Delete(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	err := bc.blog.DeletePost(r.Context(), slug)
	switch {
	case errors.Is(err, services.ErrInvalidSlug):
		sendError(w, http.StatusBadRequest, "Invalid slug")
	case err != nil:
		log.Error().Err(err).Str("slug", slug).Msg("deleting blog post")
		sendError(w, http.StatusInternalServerError, "Failed to delete post")
	default:
		sendJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}
