package ui

import (
	"net/http"
	"strings"
	"time"

	. "maragu.dev/gomponents"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

func (h *Handler) ActivityPage(w http.ResponseWriter, r *http.Request) {
	f := activityFilterFromQuery(r)
	entries, err := h.Activity.List(r.Context(), f)
	if err != nil {
		serverError(w, r, "failed to list activity", err)
		return
	}

	h.page(w, r, "Activity", "activity", func(c Chrome) Node {
		return ActivityPage(ActivityProps{Chrome: c, Filter: f, Entries: entries})
	})
}

// activityFilterFromQuery reads the filter form. Values that do not parse
// are ignored rather than rejected.
func activityFilterFromQuery(r *http.Request) domain.ActivityFilter {
	q := r.URL.Query()
	f := domain.ActivityFilter{Search: strings.TrimSpace(q.Get("q"))}

	if a, err := domain.ParseActivityAction(q.Get("action")); err == nil {
		f.Action = a
	}
	if s, err := domain.ParseActivityStatus(q.Get("status")); err == nil {
		f.Status = s
	}
	if m, err := domain.ParseModule(q.Get("module")); err == nil {
		f.Module = m
	}
	if t, err := time.Parse("2006-01-02", q.Get("since")); err == nil {
		f.Since = t
	}
	if t, err := time.Parse("2006-01-02", q.Get("until")); err == nil {
		// Inclusive of the whole day.
		f.Until = t.Add(24*time.Hour - time.Millisecond)
	}
	return f
}
