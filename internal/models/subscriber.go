// Copyright (c) 2026 NextWave Digital Solutions LLC <dev@nextwavedigitalsolution.com>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is a newsletter signup. Emails are normalized to lowercase
// before insert and unique across the table; there is no update or delete
// path — a subscriber exists once or not at all.
type Subscriber struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Lead is a contact form submission. It is never persisted locally — the
// whole payload is forwarded to the CRM and discarded.
type Lead struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	Service      string `json:"service,omitempty"`
	Message      string `json:"message"`
}
