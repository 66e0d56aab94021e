// Copyright (c) 2026 NextWave Digital Solutions LLC <dev@nextwavedigitalsolution.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"nextwave/internal/cache"
	"nextwave/internal/models"
	"nextwave/internal/render"
	"nextwave/internal/slug"
	"nextwave/internal/store"
)

// Default values applied to the new-post form.
const (
	defaultAuthor   = "NextWave Team"
	defaultReadTime = 5
)

// Admin groups the blog authoring handlers behind the session gate.
type Admin struct {
	renderer        *render.Renderer
	postStore       *store.PostStore
	subscriberStore *store.SubscriberStore
	pageCache       *cache.PageCache
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(renderer *render.Renderer, postStore *store.PostStore, subscriberStore *store.SubscriberStore, pageCache *cache.PageCache) *Admin {
	return &Admin{
		renderer:        renderer,
		postStore:       postStore,
		subscriberStore: subscriberStore,
		pageCache:       pageCache,
	}
}

// Dashboard renders the admin landing page with content counts.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	postCount, err := a.postStore.Count()
	if err != nil {
		slog.Error("count posts failed", "error", err)
	}
	subscriberCount, err := a.subscriberStore.Count()
	if err != nil {
		slog.Error("count subscribers failed", "error", err)
	}

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"postCount":       postCount,
			"subscriberCount": subscriberCount,
		},
	})
}

// PostsList renders the post management table, drafts included.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.postStore.ListAll()
	if err != nil {
		slog.Error("list all posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "posts_list", &render.PageData{
		Title:   "Blog Posts",
		Section: "posts",
		Data:    map[string]any{"posts": posts},
	})
}

// NewPostForm renders an empty post form with the standard defaults.
func (a *Admin) NewPostForm(w http.ResponseWriter, r *http.Request) {
	post := &models.BlogPost{
		Category: models.CategoryWebDevelopment,
		Author:   defaultAuthor,
		ReadTime: defaultReadTime,
		Status:   models.StatusDraft,
	}

	a.renderPostForm(w, r, post, true, "")
}

// CreatePost handles the new-post form submission.
func (a *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	post := postFromForm(r)

	if msg := a.preparePost(post, uuid.Nil); msg != "" {
		a.renderPostForm(w, r, post, true, msg)
		return
	}

	if _, err := a.postStore.Create(post); err != nil {
		slog.Error("create post failed", "error", err)
		a.renderPostForm(w, r, post, true, "Could not save the post. Please try again.")
		return
	}

	a.pageCache.InvalidateBlog(r.Context())
	http.Redirect(w, r, "/blog-admin", http.StatusSeeOther)
}

// EditPostForm renders the form pre-filled with an existing post.
func (a *Admin) EditPostForm(w http.ResponseWriter, r *http.Request) {
	post, ok := a.findPost(w, r)
	if !ok {
		return
	}

	a.renderPostForm(w, r, post, false, "")
}

// UpdatePost handles the edit form submission.
func (a *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	existing, ok := a.findPost(w, r)
	if !ok {
		return
	}

	post := postFromForm(r)
	post.ID = existing.ID
	post.CreatedAt = existing.CreatedAt

	if msg := a.preparePost(post, existing.ID); msg != "" {
		a.renderPostForm(w, r, post, false, msg)
		return
	}

	if err := a.postStore.Update(post); err != nil {
		slog.Error("update post failed", "error", err, "id", post.ID)
		a.renderPostForm(w, r, post, false, "Could not save the post. Please try again.")
		return
	}

	a.pageCache.InvalidateBlog(r.Context())
	http.Redirect(w, r, "/blog-admin", http.StatusSeeOther)
}

// DeletePost removes a post and re-renders the list for HTMX swaps.
func (a *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	post, ok := a.findPost(w, r)
	if !ok {
		return
	}

	if err := a.postStore.Delete(post.ID); err != nil {
		slog.Error("delete post failed", "error", err, "id", post.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateBlog(r.Context())
	a.PostsList(w, r)
}

// preparePost validates the submitted post, derives the slug when the
// field was left blank, and rejects a slug that belongs to another post.
// Returns a user-facing error message, empty on success.
func (a *Admin) preparePost(post *models.BlogPost, selfID uuid.UUID) string {
	if msg := validatePost(post); msg != "" {
		return msg
	}

	if post.Slug == "" {
		post.Slug = slug.Generate(post.Title)
	} else {
		post.Slug = slug.Generate(post.Slug)
	}
	if post.Slug == "" {
		return "Title must contain at least one letter or number."
	}

	conflicting, err := a.postStore.FindAnyBySlug(post.Slug)
	if err != nil {
		slog.Error("slug conflict check failed", "error", err)
		return "Could not save the post. Please try again."
	}
	if conflicting != nil && conflicting.ID != selfID {
		return fmt.Sprintf("The slug %q is already used by the post %q. Choose a different slug.",
			post.Slug, conflicting.Title)
	}

	return ""
}

// findPost resolves the {id} URL parameter to a post, writing the error
// response itself when the ID is malformed or unknown.
func (a *Admin) findPost(w http.ResponseWriter, r *http.Request) (*models.BlogPost, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return nil, false
	}

	post, err := a.postStore.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if post == nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return nil, false
	}

	return post, true
}

// renderPostForm renders the post form, optionally with an error banner.
// The submitted values stay in the form so a conflict never loses work.
func (a *Admin) renderPostForm(w http.ResponseWriter, r *http.Request, post *models.BlogPost, isNew bool, errMsg string) {
	action := "/blog-admin"
	title := "New Post"
	if !isNew {
		action = "/blog-admin/" + post.ID.String()
		title = "Edit Post"
	}

	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   title,
		Section: "posts",
		Data: map[string]any{
			"post":       post,
			"isNew":      isNew,
			"action":     action,
			"categories": models.Categories,
			"error":      errMsg,
		},
	})
}

// postFromForm builds a BlogPost from the submitted form values.
func postFromForm(r *http.Request) *models.BlogPost {
	readTime, err := strconv.Atoi(r.FormValue("read_time"))
	if err != nil || readTime < 1 {
		readTime = defaultReadTime
	}

	status := models.StatusDraft
	if r.FormValue("status") == string(models.StatusPublished) {
		status = models.StatusPublished
	}

	author := strings.TrimSpace(r.FormValue("author"))
	if author == "" {
		author = defaultAuthor
	}

	var featuredImage *string
	if img := strings.TrimSpace(r.FormValue("featured_image")); img != "" {
		featuredImage = &img
	}

	return &models.BlogPost{
		Title:         strings.TrimSpace(r.FormValue("title")),
		Slug:          strings.TrimSpace(r.FormValue("slug")),
		Excerpt:       strings.TrimSpace(r.FormValue("excerpt")),
		Content:       r.FormValue("content"),
		Category:      models.Category(r.FormValue("category")),
		Author:        author,
		ReadTime:      readTime,
		FeaturedImage: featuredImage,
		Status:        status,
	}
}
