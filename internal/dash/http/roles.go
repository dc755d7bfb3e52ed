package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/dash/internal/dash/hierarchy"
	"github.com/aussiebroadwan/dash/internal/dash/service"
	"github.com/aussiebroadwan/dash/internal/dash/store"
	"github.com/aussiebroadwan/dash/pkg/dashsdk"
	"github.com/aussiebroadwan/dash/pkg/httpx"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

// RolesHandler handles the role management endpoints.
type RolesHandler struct {
	RolesService *service.RolesService
	ViewService  *service.HierarchyViewService
}

// HandleList handles GET /v1/roles
//
//	@Summary		List all roles
//	@Description	Returns every role ordered by id. Requires roles:view scope.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	dashsdk.ListRolesResponse	"List of roles"
//	@Failure		401	{object}	dashsdk.ErrorResponse		"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	dashsdk.ErrorResponse		"Forbidden - missing required scope"
//	@Failure		500	{object}	dashsdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	roles, err := h.RolesService.ListAll(ctx)
	if err != nil {
		log.Error("failed to list roles", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, dashsdk.ErrorCodeServerError, "Failed to retrieve roles")
		return
	}

	response := dashsdk.ListRolesResponse{
		Roles: make([]dashsdk.RoleInfo, len(roles)),
	}
	for i, role := range roles {
		response.Roles[i] = toRoleInfo(role)
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleTree handles GET /v1/roles/tree
//
//	@Summary		Role hierarchy
//	@Description	Returns the role forest. Siblings are sorted by name, roles with a missing parent are roots
//	@Description	and parent loops are cut. Expanded reflects the caller's saved view; ?expand=all marks every node.
//	@Tags			Roles
//	@Produce		json
//	@Param			expand	query		string						false	"all to mark every node expanded"
//	@Success		200		{object}	dashsdk.RoleTreeResponse	"Role forest"
//	@Failure		401		{object}	dashsdk.ErrorResponse		"Unauthorized - missing or invalid token"
//	@Failure		403		{object}	dashsdk.ErrorResponse		"Forbidden - missing required scope"
//	@Failure		500		{object}	dashsdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/roles/tree [get].
func (h *RolesHandler) HandleTree(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	claims, _ := httpx.ClaimsFromContext(ctx)

	view, err := h.ViewService.Load(ctx, claims.SID)
	if err != nil {
		log.Error("failed to load role hierarchy", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, dashsdk.ErrorCodeServerError, "Failed to build role hierarchy")
		return
	}

	expanded := view.Expanded
	if r.URL.Query().Get("expand") == "all" {
		expanded = hierarchy.ExpansionFrom(nil)
		expanded.ExpandAll(view.Forest)
	}

	categories := make([]dashsdk.CategoryTotal, 0)
	for _, c := range view.Summary.Categories() {
		categories = append(categories, dashsdk.CategoryTotal{Category: c, Actions: view.Summary.Actions(c)})
	}

	httpx.WriteJSON(w, http.StatusOK, dashsdk.RoleTreeResponse{
		Roots:       toTreeNodes(view.Forest.Roots, expanded),
		Categories:  categories,
		Fingerprint: view.Forest.Fingerprint(),
		Zoom:        int(view.Zoom),
	})
}

// HandleGet handles GET /v1/roles/{id}
//
//	@Summary		Get a role
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path		int					true	"Role id"
//	@Success		200	{object}	dashsdk.RoleInfo		"Role"
//	@Failure		400	{object}	dashsdk.ErrorResponse	"Malformed id"
//	@Failure		404	{object}	dashsdk.ErrorResponse	"No such role"
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [get].
func (h *RolesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := roleID(w, r)
	if !ok {
		return
	}

	role, err := h.RolesService.GetRoleByID(r.Context(), id)
	if err != nil {
		writeRoleError(w, r, err, "failed to get role")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoleInfo(role))
}

// HandleCreate handles POST /v1/roles
//
//	@Summary		Create a role
//	@Description	Adds a custom role. The parent, when given, must exist. Requires roles:create scope.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dashsdk.CreateRoleRequest	true	"Role"
//	@Success		201		{object}	dashsdk.RoleInfo			"Created role"
//	@Failure		400		{object}	dashsdk.ErrorResponse		"Invalid role or unknown parent"
//	@Failure		409		{object}	dashsdk.ErrorResponse		"Name already taken"
//	@Security		BearerAuth
//	@Router			/v1/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dashsdk.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, dashsdk.ErrorCodeInvalidRequest, "Invalid JSON in request body")
		return
	}

	role, err := h.RolesService.Create(r.Context(), actorFromRequest(r), service.RoleInput{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		Permissions: req.Permissions,
	})
	if err != nil {
		writeRoleError(w, r, err, "failed to create role")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toRoleInfo(role))
}

// HandleUpdate handles PATCH /v1/roles/{id}
//
//	@Summary		Update a role
//	@Description	Changes the fields present in the body. A new parent that is the role itself or one of its
//	@Description	descendants is rejected with role_cycle. System roles cannot be renamed.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Role id"
//	@Param			request	body		dashsdk.UpdateRoleRequest	true	"Changes"
//	@Success		200		{object}	dashsdk.RoleInfo			"Updated role"
//	@Failure		400		{object}	dashsdk.ErrorResponse		"Invalid change"
//	@Failure		404		{object}	dashsdk.ErrorResponse		"No such role"
//	@Failure		409		{object}	dashsdk.ErrorResponse		"Cycle, system role or name taken"
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [patch].
func (h *RolesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := roleID(w, r)
	if !ok {
		return
	}

	var req dashsdk.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, dashsdk.ErrorCodeInvalidRequest, "Invalid JSON in request body")
		return
	}
	if req.MakeRoot && req.ParentID != nil {
		httpx.WriteError(w, http.StatusBadRequest, dashsdk.ErrorCodeInvalidRequest, "parent_id and make_root are exclusive")
		return
	}

	role, err := h.RolesService.Update(r.Context(), actorFromRequest(r), id, service.RoleUpdate{
		Name:        req.Name,
		Description: req.Description,
		SetParent:   req.MakeRoot || req.ParentID != nil,
		ParentID:    req.ParentID,
		Permissions: req.Permissions,
	})
	if err != nil {
		writeRoleError(w, r, err, "failed to update role")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoleInfo(role))
}

// HandleDelete handles DELETE /v1/roles/{id}
//
//	@Summary		Delete a role
//	@Description	Removes a custom role. Roles with children or users, and system roles, are refused.
//	@Tags			Roles
//	@Param			id	path	int	true	"Role id"
//	@Success		204	"Deleted"
//	@Failure		404	{object}	dashsdk.ErrorResponse	"No such role"
//	@Failure		409	{object}	dashsdk.ErrorResponse	"Role still in use"
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [delete].
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := roleID(w, r)
	if !ok {
		return
	}

	if err := h.RolesService.Delete(r.Context(), actorFromRequest(r), id); err != nil {
		writeRoleError(w, r, err, "failed to delete role")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func roleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, dashsdk.ErrorCodeInvalidRequest, "role id must be a positive integer")
		return 0, false
	}
	return id, true
}

// writeRoleError maps role service errors to responses. Anything unknown is
// logged and reported as server_error.
func writeRoleError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, dashsdk.ErrorCodeNotFound, "role not found")
	case errors.Is(err, service.ErrInvalidRole):
		httpx.WriteError(w, http.StatusBadRequest, dashsdk.ErrorCodeInvalidRequest, err.Error())
	case errors.Is(err, service.ErrParentNotFound):
		httpx.WriteError(w, http.StatusBadRequest, dashsdk.ErrorCodeParentNotFound, "parent role does not exist")
	case errors.Is(err, service.ErrRoleCycle):
		httpx.WriteError(w, http.StatusConflict, dashsdk.ErrorCodeRoleCycle, "the new parent is the role itself or one of its descendants")
	case errors.Is(err, service.ErrSystemRole):
		httpx.WriteError(w, http.StatusConflict, dashsdk.ErrorCodeSystemRole, "system roles cannot be renamed or deleted")
	case errors.Is(err, service.ErrRoleHasChildren):
		httpx.WriteError(w, http.StatusConflict, dashsdk.ErrorCodeRoleHasChildren, "role still has child roles")
	case errors.Is(err, service.ErrRoleInUse):
		httpx.WriteError(w, http.StatusConflict, dashsdk.ErrorCodeRoleInUse, "role is still assigned to users")
	case errors.Is(err, service.ErrRoleNameTaken):
		httpx.WriteError(w, http.StatusConflict, dashsdk.ErrorCodeRoleNameTaken, "a role with that name already exists")
	default:
		slogx.FromContext(r.Context()).Error(msg, slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, dashsdk.ErrorCodeServerError, "Internal server error")
	}
}
