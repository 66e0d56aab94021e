// Copyright (c) 2026 NextWave Digital Solutions LLC <dev@nextwavedigitalsolution.com>
// All rights reserved. See LICENSE for details.

package router

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"nextwave/internal/cache"
	"nextwave/internal/crm"
	"nextwave/internal/database"
	"nextwave/internal/handlers"
	"nextwave/internal/mail"
	"nextwave/internal/render"
	"nextwave/internal/session"
	"nextwave/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testServer wires the full route table against real PostgreSQL and Valkey,
// skipping when either is unavailable.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	dsn := "postgres://" + envOr("POSTGRES_USER", "nextwave") + ":" + envOr("POSTGRES_PASSWORD", "changeme") +
		"@" + envOr("POSTGRES_HOST", "localhost") + ":" + envOr("POSTGRES_PORT", "5432") +
		"/" + envOr("POSTGRES_DB", "nextwave") + "?sslmode=disable"
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)
	t.Cleanup(func() { db.Close() })

	vk := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})
	if err := vk.Ping(context.Background()).Err(); err != nil {
		vk.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}
	t.Cleanup(func() { vk.Close() })

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	postStore := store.NewPostStore(db)
	subscriberStore := store.NewSubscriberStore(db)
	userStore := store.NewUserStore(db)
	pageCache := cache.NewPageCache(vk, time.Minute)
	mailer := mail.NewResend("", "", "NextWave <no-reply@nextwavedigitalsolution.com>")

	admin := handlers.NewAdmin(renderer, postStore, subscriberStore, pageCache)
	auth := handlers.NewAuth(renderer, sessions, userStore, mailer, "http://localhost:8080")
	public := handlers.NewPublic(renderer, postStore, pageCache)
	api := handlers.NewAPI(subscriberStore, crm.NewHubSpot("", ""), mailer, "")

	srv := httptest.NewServer(New(sessions, admin, auth, public, api))
	t.Cleanup(srv.Close)
	return srv
}

// get fetches a URL without following redirects.
func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	resp := get(t, srv, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestPublicPagesRespond(t *testing.T) {
	srv := testServer(t)

	paths := []string{
		"/", "/services", "/web-development", "/cybersecurity",
		"/automation-ai", "/local-it-support", "/portfolio",
		"/about", "/contact", "/blog",
	}
	for _, path := range paths {
		resp := get(t, srv, path)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestAdminRequiresSession(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{"/admin", "/blog-admin", "/blog-admin/new"} {
		resp := get(t, srv, path)
		if resp.StatusCode != http.StatusSeeOther {
			t.Errorf("GET %s: status = %d, want 303", path, resp.StatusCode)
			continue
		}
		if loc := resp.Header.Get("Location"); loc != "/login" {
			t.Errorf("GET %s: redirect = %q, want /login", path, loc)
		}
	}
}

func TestLoginPageReachable(t *testing.T) {
	srv := testServer(t)

	resp := get(t, srv, "/login")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestUnknownPathGetsBranded404(t *testing.T) {
	srv := testServer(t)

	resp := get(t, srv, "/no-such-page")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	body := make([]byte, 16*1024)
	n, _ := resp.Body.Read(body)
	if !strings.Contains(string(body[:n]), "Page not found") {
		t.Error("expected the branded 404 page")
	}
}

func TestAPIContentType(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/api/subscribe-newsletter", "application/json",
		strings.NewReader(`{"email":"bad"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("Content-Type = %q, want JSON", ct)
	}
}
