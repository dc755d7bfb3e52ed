package ui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/service"
)

func (h *Handler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "Settings", "settings", SettingsPage)
}

func (h *Handler) SettingsSubmit(w http.ResponseWriter, r *http.Request) {
	c, err := h.chrome(r, "Settings", "settings")
	if err != nil {
		serverError(w, r, "failed to load preferences", err)
		return
	}

	p := c.Prefs
	p.Theme = domain.Theme(r.PostFormValue("theme"))
	p.BrandColor = strings.TrimSpace(r.PostFormValue("brand_color"))

	_, err = h.Preferences.Save(r.Context(), actor(r), p)
	switch {
	case errors.Is(err, service.ErrInvalidTheme), errors.Is(err, service.ErrInvalidBrandColor):
		c.Flash = "Choose a listed theme and a colour in #rrggbb form."
		Render(w, http.StatusBadRequest, SettingsPage(c))
		return
	case err != nil:
		serverError(w, r, "failed to save preferences", err)
		return
	}

	http.Redirect(w, r, "/ui/settings", http.StatusSeeOther)
}

func (h *Handler) FavoriteToggle(w http.ResponseWriter, r *http.Request) {
	key := r.PostFormValue("page")
	_, err := h.Preferences.ToggleFavorite(r.Context(), claims(r).Subject, key)
	if errors.Is(err, service.ErrUnknownPage) {
		Render(w, http.StatusBadRequest, ErrorPage("Bad request", "There is no page called "+key+"."))
		return
	}
	if err != nil {
		serverError(w, r, "failed to toggle favourite", err)
		return
	}

	fallback := homePath
	if page, ok := domain.FindPage(key); ok {
		fallback = page.Path
	}
	http.Redirect(w, r, safeNext(r.PostFormValue("next"), fallback), http.StatusSeeOther)
}
