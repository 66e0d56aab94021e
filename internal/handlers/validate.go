package handlers

import (
	"strings"
	"unicode/utf8"

	"nextwave/internal/models"
)

// Validation limits for blog post fields.
const (
	maxTitleLen   = 300
	maxSlugLen    = 300
	maxContentLen = 100_000
	maxExcerptLen = 1_000
	maxAuthorLen  = 200
	maxImageLen   = 2_000
)

// validatePost checks post form inputs and returns the first error found.
func validatePost(post *models.BlogPost) string {
	if strings.TrimSpace(post.Title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(post.Title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(post.Slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(post.Content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	if utf8.RuneCountInString(post.Excerpt) > maxExcerptLen {
		return "Excerpt is too long (max 1,000 characters)."
	}
	if utf8.RuneCountInString(post.Author) > maxAuthorLen {
		return "Author is too long (max 200 characters)."
	}
	if post.FeaturedImage != nil && utf8.RuneCountInString(*post.FeaturedImage) > maxImageLen {
		return "Featured image URL is too long."
	}
	if !models.ValidCategory(string(post.Category)) {
		return "Choose a valid category."
	}
	return ""
}
