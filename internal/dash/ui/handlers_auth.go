package ui

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/dash/internal/dash/service"
	"github.com/aussiebroadwan/dash/pkg/httpx"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

const homePath = "/ui/roles"

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(httpx.SessionCookieName); err == nil && c.Value != "" {
		if _, err := h.Verifier.Verify(c.Value); err == nil {
			http.Redirect(w, r, homePath, http.StatusSeeOther)
			return
		}
	}
	Render(w, http.StatusOK, LoginPage("", safeNext(r.URL.Query().Get("next"), homePath), csrfField(r)))
}

func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		Render(w, http.StatusBadRequest, LoginPage("Invalid form submission.", homePath, csrfField(r)))
		return
	}
	next := safeNext(r.PostFormValue("next"), homePath)

	session, err := h.Users.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"), httpx.ClientIP(r))
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		Render(w, http.StatusUnauthorized, LoginPage("Invalid username or password.", next, csrfField(r)))
		return
	case errors.Is(err, service.ErrAccountDisabled):
		Render(w, http.StatusForbidden, LoginPage("This account is disabled.", next, csrfField(r)))
		return
	case err != nil:
		serverError(w, r, "failed to sign in", err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	httpx.SetSessionCookie(w, session.Token, maxAge, h.Secure)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Logout(r.Context(), actor(r)); err != nil {
		slogx.FromContext(r.Context()).Error("failed to record logout", slog.Any("error", err))
	}
	httpx.ClearSessionCookie(w, h.Secure)
	http.Redirect(w, r, "/ui/login", http.StatusSeeOther)
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, homePath, http.StatusSeeOther)
}
