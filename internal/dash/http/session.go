package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/dash/internal/dash/service"
	"github.com/aussiebroadwan/dash/pkg/dashsdk"
	"github.com/aussiebroadwan/dash/pkg/httpx"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

type SessionHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles POST /v1/session
//
//	@Summary		Sign in
//	@Description	Exchanges a username and password for a bearer token carrying the scopes of the user's role.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dashsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	dashsdk.SessionResponse	"Bearer token"
//	@Failure		400		{object}	dashsdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	dashsdk.ErrorResponse	"Wrong username or password"
//	@Failure		403		{object}	dashsdk.ErrorResponse	"Account disabled"
//	@Failure		429		{object}	dashsdk.ErrorResponse	"Too many attempts"
//	@Router			/v1/session [post].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dashsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, dashsdk.ErrorCodeInvalidRequest, "Invalid JSON in request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, dashsdk.ErrorCodeInvalidRequest, "username and password are required")
		return
	}

	session, err := h.UserService.Login(ctx, req.Username, req.Password, httpx.ClientIP(r))
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, dashsdk.ErrorCodeInvalidCredentials, "invalid username or password")
		return
	case errors.Is(err, service.ErrAccountDisabled):
		httpx.WriteError(w, http.StatusForbidden, dashsdk.ErrorCodeAccountDisabled, "account is disabled")
		return
	case err != nil:
		log.Error("failed to sign in", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, dashsdk.ErrorCodeServerError, "Failed to sign in")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, dashsdk.SessionResponse{
		AccessToken: session.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(session.ExpiresAt).Seconds()),
		Scope:       strings.Join(session.Claims.Scopes, " "),
		UserID:      session.Claims.Subject,
		Username:    session.Claims.Username,
		RoleID:      session.Claims.RoleID,
	})
}
