package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/service"
	"github.com/aussiebroadwan/dash/pkg/dashsdk"
	"github.com/aussiebroadwan/dash/pkg/httpx"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

type PreferencesHandler struct {
	PreferencesService *service.PreferencesService
}

// HandleGet handles GET /v1/preferences
//
//	@Summary		Get preferences
//	@Description	Returns the caller's theme, brand colour and favourite pages. Defaults when nothing is saved.
//	@Tags			Preferences
//	@Produce		json
//	@Success		200	{object}	dashsdk.Preferences	"Preferences"
//	@Security		BearerAuth
//	@Router			/v1/preferences [get].
func (h *PreferencesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, _ := httpx.ClaimsFromContext(ctx)

	p, err := h.PreferencesService.Load(ctx, claims.Subject)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load preferences", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, dashsdk.ErrorCodeServerError, "Failed to load preferences")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPreferences(p))
}

// HandlePut handles PUT /v1/preferences
//
//	@Summary		Save preferences
//	@Tags			Preferences
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dashsdk.Preferences		true	"Preferences"
//	@Success		200		{object}	dashsdk.Preferences		"Saved preferences"
//	@Failure		400		{object}	dashsdk.ErrorResponse	"Unknown theme, malformed colour or unknown page"
//	@Security		BearerAuth
//	@Router			/v1/preferences [put].
func (h *PreferencesHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, _ := httpx.ClaimsFromContext(ctx)

	var req dashsdk.Preferences
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, dashsdk.ErrorCodeInvalidRequest, "Invalid JSON in request body")
		return
	}

	saved, err := h.PreferencesService.Save(ctx, actorFromRequest(r), domain.Preferences{
		UserID:     claims.Subject,
		Theme:      domain.Theme(req.Theme),
		BrandColor: strings.TrimSpace(req.BrandColor),
		Favorites:  req.Favorites,
	})
	switch {
	case errors.Is(err, service.ErrInvalidTheme),
		errors.Is(err, service.ErrInvalidBrandColor),
		errors.Is(err, service.ErrUnknownPage):
		httpx.WriteError(w, http.StatusBadRequest, dashsdk.ErrorCodeInvalidRequest, err.Error())
		return
	case err != nil:
		slogx.FromContext(ctx).Error("failed to save preferences", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, dashsdk.ErrorCodeServerError, "Failed to save preferences")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPreferences(saved))
}
