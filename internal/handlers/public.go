// Copyright (c) 2026 NextWave Digital Solutions LLC <dev@nextwavedigitalsolution.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nextwave/internal/cache"
	"nextwave/internal/markdown"
	"nextwave/internal/models"
	"nextwave/internal/render"
	"nextwave/internal/store"
)

// relatedLimit caps the related-posts strip on a post page.
const relatedLimit = 3

// Public groups handlers for the public marketing site and blog. Blog
// pages check the Valkey page cache before hitting the database, and
// store rendered results on miss.
type Public struct {
	renderer  *render.Renderer
	postStore *store.PostStore
	pageCache *cache.PageCache
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, postStore *store.PostStore, pageCache *cache.PageCache) *Public {
	return &Public{
		renderer:  renderer,
		postStore: postStore,
		pageCache: pageCache,
	}
}

// Home renders the homepage with the three most recent published posts.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.pageCache.Get(ctx, cache.HomeKey()); ok {
		writeHTML(w, cached)
		return
	}

	posts, err := p.postStore.ListPublished()
	if err != nil {
		// The homepage still renders without the blog strip.
		slog.Error("list published posts failed", "error", err)
	}
	if len(posts) > relatedLimit {
		posts = posts[:relatedLimit]
	}

	html, err := p.renderer.PublicBytes("home", &render.PageData{
		Title:   "",
		Section: "home",
		Data:    map[string]any{"recentPosts": posts},
	})
	if err != nil {
		slog.Error("render home failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.HomeKey(), html)
	writeHTML(w, html)
}

// StaticPage returns a handler rendering one fixed marketing page.
func (p *Public) StaticPage(name, title, section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.renderer.Public(w, r, name, &render.PageData{
			Title:   title,
			Section: section,
			Data:    map[string]any{},
		})
	}
}

// Blog renders the blog index. An optional ?category= query narrows the
// list to one category; an unknown category value falls back to the full
// list rather than erroring.
func (p *Public) Blog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category := r.URL.Query().Get("category")
	if category != "" && !models.ValidCategory(category) {
		category = ""
	}

	key := cache.BlogIndexKey()
	if category != "" {
		key += "?category=" + category
	}
	if cached, ok := p.pageCache.Get(ctx, key); ok {
		writeHTML(w, cached)
		return
	}

	posts, err := p.postStore.ListPublished()
	if err != nil {
		slog.Error("list published posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if category != "" {
		filtered := posts[:0]
		for _, post := range posts {
			if string(post.Category) == category {
				filtered = append(filtered, post)
			}
		}
		posts = filtered
	}

	html, err := p.renderer.PublicBytes("blog_list", &render.PageData{
		Title:   "Blog",
		Section: "blog",
		Data: map[string]any{
			"posts":          posts,
			"categories":     models.Categories,
			"activeCategory": category,
		},
	})
	if err != nil {
		slog.Error("render blog list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, key, html)
	writeHTML(w, html)
}

// BlogPost renders one published post by slug, with its Markdown body
// converted to HTML and up to three related posts from the same category.
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	if cached, ok := p.pageCache.Get(ctx, cache.PostKey(slug)); ok {
		writeHTML(w, cached)
		return
	}

	post, err := p.postStore.FindPublishedBySlug(slug)
	if err != nil {
		slog.Error("find post by slug failed", "error", err, "slug", slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		p.NotFound(w, r)
		return
	}

	contentHTML, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Error("markdown render failed", "error", err, "slug", slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Related posts are decoration: a failure here logs and renders the
	// post without the strip.
	related, err := p.postStore.ListRelated(post.Category, post.ID, relatedLimit)
	if err != nil {
		slog.Warn("list related posts failed", "error", err, "slug", slug)
		related = nil
	}

	html, err := p.renderer.PublicBytes("blog_post", &render.PageData{
		Title:   post.Title,
		Section: "blog",
		Data: map[string]any{
			"post":        post,
			"contentHTML": template.HTML(contentHTML),
			"related":     related,
		},
	})
	if err != nil {
		slog.Error("render blog post failed", "error", err, "slug", slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.PostKey(slug), html)
	writeHTML(w, html)
}

// NotFound renders the branded 404 page.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.renderer.PublicStatus(w, r, "not_found", &render.PageData{
		Title: "Page Not Found",
		Data:  map[string]any{},
	}, http.StatusNotFound)
}

// writeHTML writes a pre-rendered HTML body.
func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}
