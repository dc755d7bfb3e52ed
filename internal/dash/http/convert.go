package http

import (
	"net/http"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/hierarchy"
	"github.com/aussiebroadwan/dash/internal/dash/service"
	"github.com/aussiebroadwan/dash/pkg/dashsdk"
	"github.com/aussiebroadwan/dash/pkg/httpx"
)

func toRoleInfo(r domain.Role) dashsdk.RoleInfo {
	perms := r.Permissions
	if perms == nil {
		perms = domain.Permissions{}
	}
	return dashsdk.RoleInfo{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		Badge:       r.Badge(),
		ParentID:    r.ParentID,
		UserCount:   r.UserCount,
		Permissions: perms,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toTreeNodes(nodes []*hierarchy.Node, expanded *hierarchy.ExpansionSet) []dashsdk.TreeNode {
	out := make([]dashsdk.TreeNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dashsdk.TreeNode{
			Role:        toRoleInfo(n.Role),
			Level:       n.Level,
			Orphaned:    n.Orphaned,
			CycleBroken: n.CycleBroken,
			Expanded:    expanded.Open(n),
			Children:    toTreeNodes(n.Children, expanded),
		})
	}
	return out
}

func toActivityEntry(a domain.ActivityLog) dashsdk.ActivityEntry {
	return dashsdk.ActivityEntry{
		ID:        a.ID,
		UserID:    a.UserID,
		Username:  a.Username,
		Action:    string(a.Action),
		Module:    string(a.Module),
		Target:    a.Target,
		Status:    string(a.Status),
		IPAddress: a.IPAddress,
		Details:   a.Details,
		CreatedAt: a.CreatedAt,
	}
}

func toPreferences(p domain.Preferences) dashsdk.Preferences {
	favorites := p.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	return dashsdk.Preferences{
		Theme:      string(p.Theme),
		BrandColor: p.BrandColor,
		Favorites:  favorites,
	}
}

// actorFromRequest identifies the caller for the activity log.
func actorFromRequest(r *http.Request) service.Actor {
	c, _ := httpx.ClaimsFromContext(r.Context())
	return service.Actor{
		UserID:    c.Subject,
		Username:  c.Username,
		IPAddress: httpx.ClientIP(r),
	}
}
