// Copyright (c) 2026 NextWave Digital Solutions LLC <dev@nextwavedigitalsolution.com>
// All rights reserved. See LICENSE for details.

// Package crm pushes contact form leads into HubSpot. A lead is stored as
// a HubSpot contact keyed by email; resubmissions update the existing
// contact instead of failing.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"nextwave/internal/models"
)

// existingIDPattern extracts the contact ID from HubSpot's conflict
// message, e.g. "Contact already exists. Existing ID: 12345".
var existingIDPattern = regexp.MustCompile(`Existing ID: (\d+)`)

// HubSpot is a client for the HubSpot contacts API.
type HubSpot struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewHubSpot creates a HubSpot client. baseURL is overridable for tests;
// empty means the production API.
func NewHubSpot(token, baseURL string) *HubSpot {
	if baseURL == "" {
		baseURL = "https://api.hubapi.com"
	}
	return &HubSpot{
		token:   token,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether a HubSpot token is configured. Without one the
// contact form still works, it just skips the CRM push.
func (h *HubSpot) Enabled() bool {
	return h.token != ""
}

// UpsertContact creates a HubSpot contact from the lead and returns the
// contact's ID. If the email already exists, HubSpot answers 409 with the
// existing contact's ID in the message body; we parse it and update that
// contact instead.
func (h *HubSpot) UpsertContact(ctx context.Context, lead *models.Lead) (string, error) {
	props := contactProperties{
		Email:     strings.ToLower(strings.TrimSpace(lead.Email)),
		Phone:     lead.Phone,
		Company:   lead.BusinessName,
		Message:   lead.Message,
		Service:   lead.Service,
		FirstName: firstName(lead.Name),
		LastName:  lastName(lead.Name),
	}

	status, body, err := h.do(ctx, http.MethodPost, "/crm/v3/objects/contacts", contactRequest{Properties: props})
	if err != nil {
		return "", err
	}

	switch {
	case status == http.StatusCreated || status == http.StatusOK:
		var created contactResponse
		if err := json.Unmarshal([]byte(body), &created); err != nil {
			return "", fmt.Errorf("hubspot decode create response: %w", err)
		}
		return created.ID, nil
	case status == http.StatusConflict:
		id := existingContactID(body)
		if id == "" {
			return "", fmt.Errorf("hubspot conflict without existing ID: %s", body)
		}
		if err := h.updateContact(ctx, id, props); err != nil {
			return "", err
		}
		return id, nil
	default:
		return "", fmt.Errorf("hubspot API error (status %d): %s", status, body)
	}
}

// updateContact patches an existing HubSpot contact's properties.
func (h *HubSpot) updateContact(ctx context.Context, id string, props contactProperties) error {
	status, body, err := h.do(ctx, http.MethodPatch, "/crm/v3/objects/contacts/"+id, contactRequest{Properties: props})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("hubspot update error (status %d): %s", status, body)
	}
	return nil
}

// do performs one JSON API call and returns the status and raw body.
func (h *HubSpot) do(ctx context.Context, method, path string, payload any) (int, string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, "", fmt.Errorf("hubspot marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return 0, "", fmt.Errorf("hubspot request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.token)

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("hubspot http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", fmt.Errorf("hubspot read body: %w", err)
	}

	return resp.StatusCode, string(body), nil
}

// existingContactID pulls the conflicting contact's ID out of HubSpot's
// 409 response message.
func existingContactID(body string) string {
	var conflict conflictResponse
	if err := json.Unmarshal([]byte(body), &conflict); err == nil && conflict.Message != "" {
		if m := existingIDPattern.FindStringSubmatch(conflict.Message); m != nil {
			return m[1]
		}
	}
	// Some error shapes put the message at the top level of the body.
	if m := existingIDPattern.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

// firstName returns everything before the first space of a full name.
func firstName(full string) string {
	full = strings.TrimSpace(full)
	if idx := strings.IndexByte(full, ' '); idx != -1 {
		return full[:idx]
	}
	return full
}

// lastName returns everything after the first space, or empty for a
// single-word name.
func lastName(full string) string {
	full = strings.TrimSpace(full)
	if idx := strings.IndexByte(full, ' '); idx != -1 {
		return strings.TrimSpace(full[idx+1:])
	}
	return ""
}

// --- HubSpot API request/response types ---

type contactProperties struct {
	Email     string `json:"email"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Message   string `json:"message,omitempty"`
	Service   string `json:"service_needed,omitempty"`
}

type contactRequest struct {
	Properties contactProperties `json:"properties"`
}

type contactResponse struct {
	ID string `json:"id"`
}

type conflictResponse struct {
	Message string `json:"message"`
}
