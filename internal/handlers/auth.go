// Copyright (c) 2026 NextWave Digital Solutions LLC <dev@nextwavedigitalsolution.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"nextwave/internal/mail"
	"nextwave/internal/middleware"
	"nextwave/internal/render"
	"nextwave/internal/session"
	"nextwave/internal/store"
)

// totpIssuer names the service in authenticator apps.
const totpIssuer = "NextWave Admin"

// Auth groups all authentication-related HTTP handlers: login, optional
// TOTP 2FA, logout, and the email-based password reset flow.
type Auth struct {
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
	mailer    *mail.Resend
	baseURL   string
}

// NewAuth creates a new Auth handler group. baseURL is the site's public
// origin, used to build password reset links.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore, mailer *mail.Resend, baseURL string) *Auth {
	return &Auth{
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
		mailer:    mailer,
		baseURL:   baseURL,
	}
}

// LoginPage renders the login form. ?mode=reset switches the form to the
// password reset request variant.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already fully signed in: straight to the dashboard.
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
		Data: map[string]any{
			"resetMode": r.URL.Query().Get("mode") == "reset",
		},
	})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := a.userStore.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.loginError(w, r, "An unexpected error occurred.")
		return
	}

	if user == nil || !a.userStore.CheckPassword(user, password) {
		a.loginError(w, r, "Invalid email or password.")
		return
	}

	// 2FA is optional: accounts without it are fully signed in at once,
	// accounts with it must still pass the code check.
	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		TwoFADone:   !user.Has2FA(),
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.Has2FA() {
		http.Redirect(w, r, "/login/2fa", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// loginError re-renders the login form with an error message.
func (a *Auth) loginError(w http.ResponseWriter, r *http.Request, msg string) {
	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{"error": msg},
	})
}

// TwoFAVerifyPage renders the 2FA code entry form.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "2fa_verify", &render.PageData{
		Title: "Two-Factor Verification",
		Data:  map[string]any{},
	})
}

// TwoFAVerifySubmit validates the TOTP code and completes authentication.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.TOTPSecret == nil || !totp.Validate(r.FormValue("code"), *user.TOTPSecret) {
		a.renderer.Page(w, r, "2fa_verify", &render.PageData{
			Title: "Two-Factor Verification",
			Data:  map[string]any{"error": "Invalid code. Please try again."},
		})
		return
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// TwoFASetupPage generates a fresh TOTP secret and shows the QR code.
// Reachable from the admin area, so the session gate already ran.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := a.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.render2FASetup(w, r, key.URL(), key.Secret(), "")
}

// TwoFASetupSubmit verifies the first code and enables 2FA on the account.
func (a *Auth) TwoFASetupSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil || user.TOTPSecret == nil {
		slog.Error("user lookup for 2fa setup failed", "error", err)
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
		return
	}

	if !totp.Validate(r.FormValue("code"), *user.TOTPSecret) {
		url := totpURL(user.Email, *user.TOTPSecret)
		a.render2FASetup(w, r, url, *user.TOTPSecret, "Invalid code. Please try again.")
		return
	}

	if err := a.userStore.EnableTOTP(user.ID); err != nil {
		slog.Error("enable totp failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// render2FASetup renders the setup page with an inline QR code.
func (a *Auth) render2FASetup(w http.ResponseWriter, r *http.Request, otpURL, secret, errMsg string) {
	qrPNG, err := qrcode.Encode(otpURL, qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "2fa_setup", &render.PageData{
		Title: "Set Up Two-Factor Auth",
		Data: map[string]any{
			"qrCode": base64.StdEncoding.EncodeToString(qrPNG),
			"secret": secret,
			"error":  errMsg,
		},
	})
}

// totpURL rebuilds the otpauth provisioning URL for an existing secret.
func totpURL(email, secret string) string {
	return "otpauth://totp/" + totpIssuer + ":" + email + "?secret=" + secret + "&issuer=" + totpIssuer
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ResetRequest handles the password reset request form. It always shows
// the same confirmation, whether or not the address matches an account.
func (a *Auth) ResetRequest(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")

	user, err := a.userStore.FindByEmail(email)
	if err != nil {
		slog.Error("reset lookup failed", "error", err)
	}

	if user != nil {
		token, err := a.userStore.CreateResetToken(user.ID)
		if err != nil {
			slog.Error("create reset token failed", "error", err)
		} else {
			resetURL := a.baseURL + "/login/reset/confirm?token=" + token
			a.mailer.SendBestEffort(r.Context(), mail.PasswordReset(user.Email, resetURL))
		}
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
		Data: map[string]any{
			"info": "If that address has an account, a reset link is on its way.",
		},
	})
}

// ResetForm renders the new-password form for a reset link.
func (a *Auth) ResetForm(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "reset_password", &render.PageData{
		Title: "Reset Password",
		Data:  map[string]any{"token": r.URL.Query().Get("token")},
	})
}

// ResetConfirm consumes the reset token and sets the new password.
func (a *Auth) ResetConfirm(w http.ResponseWriter, r *http.Request) {
	token := r.FormValue("token")
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	renderError := func(msg string) {
		a.renderer.Page(w, r, "reset_password", &render.PageData{
			Title: "Reset Password",
			Data:  map[string]any{"token": token, "error": msg},
		})
	}

	if len(password) < 8 {
		renderError("Password must be at least 8 characters.")
		return
	}
	if password != confirm {
		renderError("Passwords do not match.")
		return
	}

	userID, err := a.userStore.ConsumeResetToken(token)
	if err != nil {
		slog.Error("consume reset token failed", "error", err)
		renderError("An unexpected error occurred. Request a new link.")
		return
	}
	if userID == uuid.Nil {
		renderError("This reset link is invalid or has expired. Request a new one.")
		return
	}

	if err := a.userStore.SetPassword(userID, password); err != nil {
		slog.Error("set password failed", "error", err)
		renderError("An unexpected error occurred. Request a new link.")
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{"info": "Password updated. Sign in with your new password."},
	})
}
