package domain

import "time"

// Role is a named permission bundle. ParentID only positions the role in the
// display hierarchy, permissions are not inherited.
type Role struct {
	ID          int64
	Name        string
	Description string
	UserCount   int // Derived from users.role_id, never stored
	IsSystem    bool
	ParentID    *int64
	Permissions Permissions
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasParent reports whether the role names a parent at all.
func (r Role) HasParent() bool { return r.ParentID != nil }

// ParentIs reports whether the role's parent is id.
func (r Role) ParentIs(id int64) bool { return r.ParentID != nil && *r.ParentID == id }

// Badge is the label shown next to the role name.
func (r Role) Badge() string {
	if r.IsSystem {
		return "System"
	}
	return "Custom"
}

// RoleID returns a pointer for use as a ParentID.
func RoleID(id int64) *int64 { return &id }
