package ui

import (
	"errors"
	"net/http"
	"strconv"

	. "maragu.dev/gomponents"

	"github.com/aussiebroadwan/dash/internal/dash/hierarchy"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

func (h *Handler) RolesPage(w http.ResponseWriter, r *http.Request) {
	view, err := h.View.Load(r.Context(), claims(r).SID)
	if err != nil {
		serverError(w, r, "failed to load role hierarchy", err)
		return
	}

	h.page(w, r, "Roles", "roles", func(c Chrome) Node {
		return RolesPage(RolesProps{
			Chrome:   c,
			Forest:   view.Forest,
			Expanded: view.Expanded,
			Zoom:     view.Zoom,
			Summary:  view.Summary,
		})
	})
}

func (h *Handler) RoleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := roleIDFromPath(w, r)
	if !ok {
		return
	}

	forest, err := h.Roles.Hierarchy(r.Context())
	if err != nil {
		serverError(w, r, "failed to load role hierarchy", err)
		return
	}
	node, found := forest.Find(id)
	if !found {
		Render(w, http.StatusNotFound, ErrorPage("Role not found", "No role with id "+strconv.FormatInt(id, 10)+"."))
		return
	}

	h.page(w, r, node.Role.Name, "roles", func(c Chrome) Node {
		return RoleDetailPage(RoleDetailProps{
			Chrome:    c,
			Node:      node,
			Ancestors: forest.Ancestors(id),
			Summary:   hierarchy.Summarize(forest.Roles()),
		})
	})
}

func (h *Handler) RoleToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := roleIDFromPath(w, r)
	if !ok {
		return
	}

	expanded, err := h.View.Toggle(r.Context(), claims(r).SID, id)
	if err != nil {
		serverError(w, r, "failed to toggle role", err)
		return
	}
	slogx.FromContext(r.Context()).Debug("role toggled", "role_id", id, "expanded", expanded)
	http.Redirect(w, r, "/ui/roles#role-"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

func (h *Handler) RolesExpandAll(w http.ResponseWriter, r *http.Request) {
	if _, err := h.View.ExpandAll(r.Context(), claims(r).SID); err != nil {
		serverError(w, r, "failed to expand roles", err)
		return
	}
	http.Redirect(w, r, "/ui/roles", http.StatusSeeOther)
}

func (h *Handler) RolesCollapseAll(w http.ResponseWriter, r *http.Request) {
	if _, err := h.View.CollapseAll(r.Context(), claims(r).SID); err != nil {
		serverError(w, r, "failed to collapse roles", err)
		return
	}
	http.Redirect(w, r, "/ui/roles", http.StatusSeeOther)
}

func (h *Handler) RolesZoom(w http.ResponseWriter, r *http.Request) {
	_, err := h.View.Zoom(r.Context(), claims(r).SID, r.PostFormValue("action"))
	if errors.Is(err, hierarchy.ErrZoomAction) {
		Render(w, http.StatusBadRequest, ErrorPage("Bad request", "Zoom action must be in, out or reset."))
		return
	}
	if err != nil {
		serverError(w, r, "failed to zoom", err)
		return
	}
	http.Redirect(w, r, "/ui/roles", http.StatusSeeOther)
}

func roleIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		Render(w, http.StatusBadRequest, ErrorPage("Bad request", "Role id must be a number."))
		return 0, false
	}
	return id, true
}
