package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a default admin user and a sample published post if the
// database is empty. Safe to call on every startup.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
	`, "admin@nextwave.local", string(hash), "NextWave Team")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// A sample published post so the blog isn't empty on first run.
	_, err = db.Exec(`
		INSERT INTO blog_posts (title, slug, excerpt, content, category, author, read_time, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'published', NOW())
	`,
		"Welcome to the NextWave Blog",
		"welcome-to-the-nextwave-blog",
		"Insights on web development, cybersecurity, automation, and IT support for modern businesses.",
		"## Welcome\n\nThis is the first post on the NextWave blog. Expect practical guides on web development, cybersecurity, AI automation, and IT support.",
		"Web Development",
		"NextWave Team",
		2,
	)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@nextwave.local",
		"password", "admin",
	)

	return nil
}
