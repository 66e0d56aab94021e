package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"nextwave/internal/session"
)

func sessionRequest(data *session.Data) *http.Request {
	req := httptest.NewRequest("GET", "/admin", nil)
	if data != nil {
		ctx := context.WithValue(req.Context(), SessionKey, data)
		req = req.WithContext(ctx)
	}
	return req
}

func TestRequireAuth_NoSessionRedirectsToLogin(t *testing.T) {
	called := false
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, sessionRequest(nil))

	if called {
		t.Error("protected handler ran without a session")
	}
	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect location = %q, want /login", loc)
	}
}

func TestRequireAuth_PendingTwoFARedirectsToVerify(t *testing.T) {
	called := false
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, sessionRequest(&session.Data{
		UserID:    uuid.New(),
		Email:     "pending@nextwave.local",
		TwoFADone: false,
	}))

	if called {
		t.Error("protected handler ran with 2FA pending")
	}
	if loc := w.Header().Get("Location"); loc != "/login/2fa" {
		t.Errorf("redirect location = %q, want /login/2fa", loc)
	}
}

func TestRequireAuth_CompleteSessionPasses(t *testing.T) {
	called := false
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, sessionRequest(&session.Data{
		UserID:    uuid.New(),
		Email:     "admin@nextwave.local",
		TwoFADone: true,
	}))

	if !called {
		t.Error("protected handler did not run with valid session")
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestSessionFromCtx_Empty(t *testing.T) {
	if got := SessionFromCtx(context.Background()); got != nil {
		t.Errorf("expected nil from empty context, got %+v", got)
	}
}
