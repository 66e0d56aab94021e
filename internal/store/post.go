// Copyright (c) 2026 NextWave Digital Solutions LLC <dev@nextwavedigitalsolution.com>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all NextWave site
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nextwave/internal/models"
)

// postColumns is the column list shared by every blog post query.
const postColumns = `id, title, slug, excerpt, content, category, author,
       read_time, featured_image, status, published_at, created_at`

// PostStore handles all blog post database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// scanPost reads one blog post row.
func scanPost(row interface{ Scan(...any) error }) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Category,
		&p.Author, &p.ReadTime, &p.FeaturedImage, &p.Status,
		&p.PublishedAt, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// collectPosts drains a result set into a slice.
func collectPosts(rows *sql.Rows) ([]models.BlogPost, error) {
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// ListPublished returns every published post, newest first. The public blog
// loads the full set in one call and filters by category client-side.
func (s *PostStore) ListPublished() ([]models.BlogPost, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM blog_posts
		WHERE status = 'published'
		ORDER BY published_at DESC NULLS LAST
	`)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return collectPosts(rows)
}

// FindPublishedBySlug retrieves a published post by its slug. Returns nil
// (not an error) when no published post matches — an absent slug is a
// not-found state, not a failure.
func (s *PostStore) FindPublishedBySlug(slug string) (*models.BlogPost, error) {
	p, err := scanPost(s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM blog_posts
		WHERE slug = $1 AND status = 'published'
	`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// ListRelated returns up to limit published posts in the same category,
// excluding the post being viewed, newest first.
func (s *PostStore) ListRelated(category models.Category, excludeID uuid.UUID, limit int) ([]models.BlogPost, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM blog_posts
		WHERE status = 'published' AND category = $1 AND id <> $2
		ORDER BY published_at DESC NULLS LAST
		LIMIT $3
	`, category, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list related posts: %w", err)
	}
	return collectPosts(rows)
}

// ListAll returns every post regardless of status, newest creation first.
// Admin-only: drafts are never exposed through the public paths.
func (s *PostStore) ListAll() ([]models.BlogPost, error) {
	rows, err := s.db.Query(`
		SELECT ` + postColumns + `
		FROM blog_posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list all posts: %w", err)
	}
	return collectPosts(rows)
}

// FindByID retrieves a post of any status by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	p, err := scanPost(s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM blog_posts WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindAnyBySlug retrieves a post of any status by its slug. Used by the
// admin workflow to validate slug uniqueness before a save.
func (s *PostStore) FindAnyBySlug(slug string) (*models.BlogPost, error) {
	p, err := scanPost(s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM blog_posts WHERE slug = $1
	`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find any post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated ID.
// published_at is computed from the target status: publishing stamps the
// submission time, a draft stays null.
func (s *PostStore) Create(p *models.BlogPost) (*models.BlogPost, error) {
	applyPublishedAt(p)

	created, err := scanPost(s.db.QueryRow(`
		INSERT INTO blog_posts (title, slug, excerpt, content, category, author,
		                        read_time, featured_image, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+postColumns,
		p.Title, p.Slug, p.Excerpt, p.Content, p.Category, p.Author,
		p.ReadTime, p.FeaturedImage, p.Status, p.PublishedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

// Update modifies an existing post. published_at follows the target status
// the same way Create does, so moving a post back to draft clears it.
func (s *PostStore) Update(p *models.BlogPost) error {
	applyPublishedAt(p)

	_, err := s.db.Exec(`
		UPDATE blog_posts SET
			title = $1, slug = $2, excerpt = $3, content = $4, category = $5,
			author = $6, read_time = $7, featured_image = $8, status = $9,
			published_at = $10
		WHERE id = $11
	`, p.Title, p.Slug, p.Excerpt, p.Content, p.Category,
		p.Author, p.ReadTime, p.FeaturedImage, p.Status,
		p.PublishedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post permanently.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Count returns the number of posts across all statuses.
func (s *PostStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM blog_posts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// applyPublishedAt derives published_at from the target status:
// populated exactly when the post is published, null while draft.
func applyPublishedAt(p *models.BlogPost) {
	if p.Status == models.StatusPublished {
		if p.PublishedAt == nil {
			now := time.Now()
			p.PublishedAt = &now
		}
	} else {
		p.PublishedAt = nil
	}
}
