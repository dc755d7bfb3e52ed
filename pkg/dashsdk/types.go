package dashsdk

import "time"

// ============================================================================
// Errors and health
// ============================================================================

// ErrorResponse is the body of every failed /v1 call.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks lists the dependencies /readyz looked at.
type HealthChecks struct {
	Database string `json:"database"`
}

// ============================================================================
// Session
// ============================================================================

// LoginRequest is the body of POST /v1/session.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse carries a bearer token for the signed-in user.
type SessionResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`

	// Scope is the space-delimited list of "category:action" scopes granted
	// by the user's role.
	Scope    string `json:"scope"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	RoleID   int64  `json:"role_id"`
}

// ============================================================================
// Roles
// ============================================================================

// RoleInfo is a single role.
type RoleInfo struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	IsSystem    bool                `json:"is_system"`
	Badge       string              `json:"badge"`
	ParentID    *int64              `json:"parent_id,omitempty"`
	UserCount   int                 `json:"user_count"`
	Permissions map[string][]string `json:"permissions"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ListRolesResponse is returned by GET /v1/roles.
type ListRolesResponse struct {
	Roles []RoleInfo `json:"roles"`
}

// TreeNode is a role placed in the hierarchy.
type TreeNode struct {
	Role     RoleInfo `json:"role"`
	Level    int      `json:"level"`
	Orphaned bool     `json:"orphaned,omitempty"`

	// CycleBroken marks a role whose parent chain looped back to itself.
	// It is shown as a root.
	CycleBroken bool       `json:"cycle_broken,omitempty"`
	Expanded    bool       `json:"expanded"`
	Children    []TreeNode `json:"children"`
}

// CategoryTotal is the number of distinct actions known for a category
// across all roles.
type CategoryTotal struct {
	Category string   `json:"category"`
	Actions  []string `json:"actions"`
}

// RoleTreeResponse is returned by GET /v1/roles/tree.
type RoleTreeResponse struct {
	Roots       []TreeNode      `json:"roots"`
	Categories  []CategoryTotal `json:"categories"`
	Fingerprint string          `json:"fingerprint"`
	Zoom        int             `json:"zoom"`
}

// CreateRoleRequest is the body of POST /v1/roles.
type CreateRoleRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	ParentID    *int64              `json:"parent_id,omitempty"`
	Permissions map[string][]string `json:"permissions,omitempty"`
}

// UpdateRoleRequest is the body of PATCH /v1/roles/{id}. Omitted fields are
// left alone. Set MakeRoot to detach the role from its parent.
type UpdateRoleRequest struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	ParentID    *int64              `json:"parent_id,omitempty"`
	MakeRoot    bool                `json:"make_root,omitempty"`
	Permissions map[string][]string `json:"permissions,omitempty"`
}

// ============================================================================
// Activity
// ============================================================================

// ActivityEntry is one audit log line.
type ActivityEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Action    string    `json:"action"`
	Module    string    `json:"module"`
	Target    string    `json:"target,omitempty"`
	Status    string    `json:"status"`
	IPAddress string    `json:"ip_address,omitempty"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListActivityResponse is returned by GET /v1/activity, newest first.
type ListActivityResponse struct {
	Entries []ActivityEntry `json:"entries"`
}

// ActivityQuery filters GET /v1/activity. Zero values are left out.
type ActivityQuery struct {
	Action string
	Status string
	Module string
	UserID string
	Search string
	Since  time.Time
	Until  time.Time
	Limit  int
}

// ============================================================================
// Preferences
// ============================================================================

// Preferences is the body of GET and PUT /v1/preferences.
type Preferences struct {
	Theme      string   `json:"theme"`
	BrandColor string   `json:"brand_color"`
	Favorites  []string `json:"favorites"`
}
