// Copyright (c) 2026 NextWave Digital Solutions LLC <dev@nextwavedigitalsolution.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"nextwave/internal/database"
	"nextwave/internal/models"
)

// ErrDuplicate is returned when an insert collides with an existing row.
var ErrDuplicate = errors.New("already exists")

// SubscriberStore handles newsletter subscription database operations.
type SubscriberStore struct {
	db *sql.DB
}

// NewSubscriberStore creates a new SubscriberStore with the given database connection.
func NewSubscriberStore(db *sql.DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

// Insert records a new subscriber. The email is lowercased before storage so
// the unique index catches case-variant resubmissions. Returns ErrDuplicate
// when the address is already subscribed.
func (s *SubscriberStore) Insert(email string) (*models.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	sub := &models.Subscriber{}
	err := s.db.QueryRow(`
		INSERT INTO newsletter_subscriptions (email)
		VALUES ($1)
		RETURNING id, email, created_at
	`, email).Scan(&sub.ID, &sub.Email, &sub.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert subscriber: %w", err)
	}
	return sub, nil
}

// List returns all subscribers, newest first.
func (s *SubscriberStore) List() ([]models.Subscriber, error) {
	rows, err := s.db.Query(`
		SELECT id, email, created_at
		FROM newsletter_subscriptions
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscriber
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// Count returns the number of subscribers.
func (s *SubscriberStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM newsletter_subscriptions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return count, nil
}
