// Copyright (c) 2026 NextWave Digital Solutions LLC <dev@nextwavedigitalsolution.com>
// All rights reserved. See LICENSE for details.

// Package mail sends transactional email through the Resend API.
// Every send here is best-effort: lead capture and newsletter signups
// must succeed even when the email provider is down.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Resend is a client for the Resend transactional email API.
type Resend struct {
	apiKey  string
	baseURL string
	from    string
	client  *http.Client
}

// NewResend creates a Resend client. baseURL is overridable for tests;
// empty means the production API. from is the sender identity on every
// message, e.g. "NextWave Digital Solutions <no-reply@nextwavedigitalsolution.com>".
func NewResend(apiKey, baseURL, from string) *Resend {
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}
	return &Resend{
		apiKey:  apiKey,
		baseURL: baseURL,
		from:    from,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether an API key is configured. Without one, sends
// become no-ops so local development works without credentials.
func (r *Resend) Enabled() bool {
	return r.apiKey != ""
}

// Send delivers one email. Returns an error on any non-2xx response.
func (r *Resend) Send(ctx context.Context, msg *Message) error {
	payload, err := json.Marshal(sendRequest{
		From:    r.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("resend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, body)
	}

	return nil
}

// SendBestEffort delivers one email, logging failures instead of
// returning them. Used on request paths where email is a side effect.
func (r *Resend) SendBestEffort(ctx context.Context, msg *Message) {
	if !r.Enabled() {
		slog.Debug("email skipped, no API key", "to", msg.To, "subject", msg.Subject)
		return
	}
	if err := r.Send(ctx, msg); err != nil {
		slog.Warn("email send failed", "to", msg.To, "subject", msg.Subject, "error", err)
		return
	}
	slog.Info("email sent", "to", msg.To, "subject", msg.Subject)
}

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}
