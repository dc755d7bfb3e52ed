package dashsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

const (
	ScopeRolesView    = "roles:view"
	ScopeRolesCreate  = "roles:create"
	ScopeRolesUpdate  = "roles:update"
	ScopeRolesDelete  = "roles:delete"
	ScopeActivityView = "activity:view"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// ListRoles returns every role ordered by id.
// Requires: roles:view
func (s *Session) ListRoles(ctx context.Context) (*ListRolesResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/roles", nil, nil, ScopeRolesView)
	if err != nil {
		return nil, err
	}

	var out ListRolesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RoleTree returns the role hierarchy with this session's expansion state.
// Requires: roles:view
func (s *Session) RoleTree(ctx context.Context) (*RoleTreeResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/roles/tree", nil, nil, ScopeRolesView)
	if err != nil {
		return nil, err
	}

	var out RoleTreeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRole fetches a single role.
// Requires: roles:view
func (s *Session) GetRole(ctx context.Context, id int64) (*RoleInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, rolePath(id), nil, nil, ScopeRolesView)
	if err != nil {
		return nil, err
	}

	var out RoleInfo
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRole adds a custom role.
// Requires: roles:create
func (s *Session) CreateRole(ctx context.Context, req CreateRoleRequest) (*RoleInfo, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/roles", bytes.NewReader(body), jsonHeaders, ScopeRolesCreate)
	if err != nil {
		return nil, err
	}

	var out RoleInfo
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRole changes the fields set in req.
// Requires: roles:update
func (s *Session) UpdateRole(ctx context.Context, id int64, req UpdateRoleRequest) (*RoleInfo, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, rolePath(id), bytes.NewReader(body), jsonHeaders, ScopeRolesUpdate)
	if err != nil {
		return nil, err
	}

	var out RoleInfo
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRole removes a custom role with no children and no users.
// Requires: roles:delete
func (s *Session) DeleteRole(ctx context.Context, id int64) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, rolePath(id), nil, nil, ScopeRolesDelete)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func rolePath(id int64) string {
	return "/v1/roles/" + strconv.FormatInt(id, 10)
}
