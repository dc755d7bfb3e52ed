package domain

import (
	"slices"
	"sort"
	"strings"
)

// Permissions maps a category ("users", "roles", "forms") to an ordered set
// of actions ("view", "create").
type Permissions map[string][]string

// Categories returns the category names in sorted order.
func (p Permissions) Categories() []string {
	out := make([]string, 0, len(p))
	for c := range p {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Actions returns the actions for a category in their stored order.
func (p Permissions) Actions(category string) []string {
	return p[category]
}

// Has reports whether action is granted within category.
func (p Permissions) Has(category, action string) bool {
	return slices.Contains(p[category], action)
}

// Scopes flattens the permissions into "category:action" strings, sorted.
func (p Permissions) Scopes() []string {
	var out []string
	for _, c := range p.Categories() {
		for _, a := range p[c] {
			out = append(out, c+":"+a)
		}
	}
	sort.Strings(out)
	return out
}

// Normalize trims names, drops empty entries and duplicate actions while
// keeping the first-seen order. Categories left with no actions are removed.
func (p Permissions) Normalize() Permissions {
	out := make(Permissions, len(p))
	for c, actions := range p {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		seen := make(map[string]struct{}, len(actions))
		for _, a := range actions {
			a = strings.TrimSpace(a)
			if a == "" {
				continue
			}
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			out[c] = append(out[c], a)
		}
	}
	return out
}

// Count returns the total number of granted actions.
func (p Permissions) Count() int {
	n := 0
	for _, a := range p {
		n += len(a)
	}
	return n
}

// ParseScope splits "category:action".
func ParseScope(scope string) (category, action string, ok bool) {
	category, action, ok = strings.Cut(scope, ":")
	if !ok || category == "" || action == "" {
		return "", "", false
	}
	return category, action, true
}

// Scopes checked by the dashboard itself.
const (
	ScopeRolesView    = "roles:view"
	ScopeRolesCreate  = "roles:create"
	ScopeRolesUpdate  = "roles:update"
	ScopeRolesDelete  = "roles:delete"
	ScopeActivityView = "activity:view"
)

// AdminPermissions grants every scope the dashboard checks.
func AdminPermissions() Permissions {
	return Permissions{
		"roles":    {"view", "create", "update", "delete"},
		"activity": {"view"},
	}
}
