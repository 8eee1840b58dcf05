// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/storage"
	"inkwell/internal/store"
)

// defaultPageSize is the listing window when the caller sends no limit.
const defaultPageSize = 10

// Posts groups the post, comment, and search endpoints.
type Posts struct {
	posts     *store.PostStore
	listCache *cache.ListCache // nil when Valkey is unavailable
	objects   *storage.Client  // nil when object storage is unconfigured
}

// NewPosts creates a new Posts handler group. listCache may be nil;
// listings then always hit the database. objects may be nil; deleted
// posts then leave their featured images in place.
func NewPosts(posts *store.PostStore, listCache *cache.ListCache, objects *storage.Client) *Posts {
	return &Posts{posts: posts, listCache: listCache, objects: objects}
}

// List returns a page of published posts, optionally filtered by
// category slug. Responses are served from the listing cache when warm.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	page := intQuery(r, "page", 1)
	limit := intQuery(r, "limit", defaultPageSize)
	categorySlug := r.URL.Query().Get("category")

	cacheKey := cache.ListKey(page, limit, categorySlug)
	if h.listCache != nil {
		if body, ok := h.listCache.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	items, pagination, err := h.posts.List(page, limit, categorySlug)
	if err != nil {
		respondError(w, err)
		return
	}

	env := envelope{Success: true, Data: items, Pagination: &pagination}
	body, err := json.Marshal(env)
	if err != nil {
		slog.Error("response encode failed", "error", err)
		respondError(w, err)
		return
	}

	if h.listCache != nil {
		h.listCache.Set(r.Context(), cacheKey, body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// Get resolves a post by id or slug and counts the fetch as a view.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Find(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, post)
}

// postBody is the request shape shared by create and update. Pointer
// fields let update distinguish "omitted" from "set to zero value".
type postBody struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	Excerpt       *string   `json:"excerpt"`
	Category      *string   `json:"category"`
	Tags          *[]string `json:"tags"`
	FeaturedImage *string   `json:"featured_image"`
	IsPublished   *bool     `json:"is_published"`
}

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Create adds a post authored by the caller.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())

	var body postBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	msgs := validatePost(strOr(body.Title), strOr(body.Content), strOr(body.Category))
	msgs = append(msgs, validateExcerpt(strOr(body.Excerpt))...)
	if len(msgs) > 0 {
		respondFieldErrors(w, msgs)
		return
	}

	categoryID, err := uuid.Parse(*body.Category)
	if err != nil {
		respondFieldErrors(w, []string{"Valid category ID is required"})
		return
	}

	params := store.NewPost{
		Title:       *body.Title,
		Content:     *body.Content,
		Excerpt:     strOr(body.Excerpt),
		CategoryID:  categoryID,
		IsPublished: body.IsPublished,
	}
	if body.Tags != nil {
		params.Tags = *body.Tags
	}
	if body.FeaturedImage != nil {
		params.FeaturedImage = *body.FeaturedImage
	}

	post, err := h.posts.Create(principal.ID, params)
	if err != nil {
		respondError(w, err)
		return
	}

	h.invalidateListings(r)
	respondData(w, http.StatusCreated, post)
}

// Update patches a post after the ownership gate in the store.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, apperr.NotFound("Post not found"))
		return
	}

	var body postBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	var msgs []string
	if body.Title != nil {
		msgs = append(msgs, validateTitle(*body.Title)...)
	}
	if body.Excerpt != nil {
		msgs = append(msgs, validateExcerpt(*body.Excerpt)...)
	}
	if len(msgs) > 0 {
		respondFieldErrors(w, msgs)
		return
	}

	patch := store.PostPatch{
		Title:         body.Title,
		Content:       body.Content,
		Excerpt:       body.Excerpt,
		Tags:          body.Tags,
		FeaturedImage: body.FeaturedImage,
		IsPublished:   body.IsPublished,
	}
	if body.Category != nil {
		categoryID, err := uuid.Parse(*body.Category)
		if err != nil {
			respondFieldErrors(w, []string{"Valid category ID is required"})
			return
		}
		patch.CategoryID = &categoryID
	}

	post, err := h.posts.Update(principal.ID, principal.Role, postID, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	h.invalidateListings(r)
	respondData(w, http.StatusOK, post)
}

// Delete removes a post and its comments.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, apperr.NotFound("Post not found"))
		return
	}

	deleted, err := h.posts.Delete(principal.ID, principal.Role, postID)
	if err != nil {
		respondError(w, err)
		return
	}

	h.removeImage(r.Context(), deleted.FeaturedImage)
	h.invalidateListings(r)
	respondMessage(w, "Post deleted successfully")
}

// removeImage deletes a post's featured image from object storage. The
// sentinel and URLs pointing outside our bucket are left alone. Best
// effort: the post is already gone, so a failed object delete only logs.
func (h *Posts) removeImage(ctx context.Context, image string) {
	if h.objects == nil || image == "" || image == models.DefaultFeaturedImage {
		return
	}
	key, ok := h.objects.ExtractKey(image)
	if !ok {
		// Not one of our URLs. The upload handler hands out bare keys,
		// so accept those too.
		if !strings.HasPrefix(image, uploadKeyPrefix) {
			return
		}
		key = image
	}
	if err := h.objects.Delete(ctx, key); err != nil {
		slog.Warn("featured image cleanup failed", "key", key, "error", err)
	}
}

// AddComment appends a comment and returns the updated post.
func (h *Posts) AddComment(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, apperr.NotFound("Post not found"))
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	post, err := h.posts.AddComment(postID, principal.ID, body.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, post)
}

// Search returns published posts matching q in title, content, excerpt,
// or a tag.
func (h *Posts) Search(w http.ResponseWriter, r *http.Request) {
	page := intQuery(r, "page", 1)
	limit := intQuery(r, "limit", defaultPageSize)

	items, pagination, err := h.posts.Search(r.URL.Query().Get("q"), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, items, pagination)
}

// invalidateListings clears cached list pages after a post mutation.
func (h *Posts) invalidateListings(r *http.Request) {
	if h.listCache != nil {
		h.listCache.InvalidateAll(r.Context())
	}
}

// intQuery parses an integer query parameter, falling back on absent or
// malformed values.
func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
