// Copyright (c) 2026 NextWave Digital Solutions LLC <dev@nextwavedigitalsolution.com>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the publishing state of a blog post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Category is one of the fixed set of blog categories. Posts always carry
// exactly one; there is no free-form taxonomy.
type Category string

const (
	CategoryWebDevelopment Category = "Web Development"
	CategoryCybersecurity  Category = "Cybersecurity"
	CategoryAIAutomation   Category = "AI Automation"
	CategoryITSupport      Category = "IT Support"
	CategoryCaseStudies    Category = "Case Studies"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryWebDevelopment,
	CategoryCybersecurity,
	CategoryAIAutomation,
	CategoryITSupport,
	CategoryCaseStudies,
}

// ValidCategory reports whether s is one of the fixed categories.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// BlogPost represents a single article on the site. Content is authored in
// Markdown and rendered to HTML at display time.
type BlogPost struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	Category      Category   `json:"category"`
	Author        string     `json:"author"`
	ReadTime      int        `json:"read_time"`
	FeaturedImage *string    `json:"featured_image,omitempty"`
	Status        Status     `json:"status"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// IsPublished returns true if the post is visible on the public blog.
func (p *BlogPost) IsPublished() bool {
	return p.Status == StatusPublished
}
