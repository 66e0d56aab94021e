// Copyright (c) 2026 NextWave Digital Solutions LLC <dev@nextwavedigitalsolution.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"nextwave/internal/crm"
	"nextwave/internal/mail"
	"nextwave/internal/models"
	"nextwave/internal/store"
)

// API groups the JSON endpoints consumed by the public site's forms:
// newsletter subscription and the contact form.
type API struct {
	subscriberStore *store.SubscriberStore
	hubspot         *crm.HubSpot
	mailer          *mail.Resend
	notifyEmail     string
}

// NewAPI creates a new API handler group.
func NewAPI(subscriberStore *store.SubscriberStore, hubspot *crm.HubSpot, mailer *mail.Resend, notifyEmail string) *API {
	return &API{
		subscriberStore: subscriberStore,
		hubspot:         hubspot,
		mailer:          mailer,
		notifyEmail:     notifyEmail,
	}
}

// SubscribeNewsletter handles POST /api/subscribe-newsletter. The address
// is normalized to lowercase before insert; duplicates answer 409 so the
// frontend can show the "already subscribed" message. Both follow-up
// emails are best-effort and independent of each other.
func (a *API) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid email address"})
		return
	}

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid email address"})
		return
	}

	sub, err := a.subscriberStore.Insert(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeJSON(w, http.StatusConflict, map[string]any{"error": "This email is already subscribed"})
			return
		}
		slog.Error("newsletter insert failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Something went wrong. Please try again."})
		return
	}

	ctx := r.Context()
	a.mailer.SendBestEffort(ctx, mail.SubscriberWelcome(sub.Email))
	if a.notifyEmail != "" {
		a.mailer.SendBestEffort(ctx, mail.SubscriberNotification(a.notifyEmail, sub.Email))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Thanks for subscribing!",
	})
}

// Contact handles POST /api/contact. The lead is pushed to HubSpot (a
// resubmission updates the existing contact) and an internal notification
// email is sent best-effort. Leads are never persisted locally.
func (a *API) Contact(w http.ResponseWriter, r *http.Request) {
	var lead models.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)
	lead.Service = strings.TrimSpace(lead.Service)
	lead.Message = strings.TrimSpace(lead.Message)

	if lead.Name == "" || lead.Email == "" || !strings.Contains(lead.Email, "@") ||
		lead.Service == "" || lead.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Name, a valid email, service, and message are required"})
		return
	}

	// Leads only exist in the CRM; without a client there is nowhere to
	// put them, so the form reports itself unavailable instead of
	// swallowing the submission.
	if !a.hubspot.Enabled() {
		slog.Warn("hubspot not configured, rejecting lead", "email", lead.Email)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"success": false,
			"error":   "The contact form is temporarily unavailable. Please try again later.",
		})
		return
	}

	ctx := r.Context()

	contactID, err := a.hubspot.UpsertContact(ctx, &lead)
	if err != nil {
		slog.Error("hubspot upsert failed", "error", err, "email", lead.Email)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Something went wrong. Please try again.",
		})
		return
	}

	if a.notifyEmail != "" {
		a.mailer.SendBestEffort(ctx, mail.LeadNotification(a.notifyEmail, &lead))
	}

	resp := map[string]any{"success": true}
	if contactID != "" {
		resp["contactId"] = contactID
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode json response failed", "error", err)
	}
}
