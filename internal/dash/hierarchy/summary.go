package hierarchy

import (
	"maps"
	"slices"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

// Summary is the union of permissions over a set of roles. The hover panel
// shows each role's actions per category against these totals.
type Summary struct {
	actions map[string][]string
}

// Summarize computes the union across roles. Actions keep first-seen order.
func Summarize(roles []domain.Role) Summary {
	s := Summary{actions: make(map[string][]string)}
	for _, r := range roles {
		for c, acts := range r.Permissions {
			for _, a := range acts {
				if !slices.Contains(s.actions[c], a) {
					s.actions[c] = append(s.actions[c], a)
				}
			}
		}
	}
	return s
}

func (s Summary) Categories() []string {
	return slices.Sorted(maps.Keys(s.actions))
}

// Total is the number of distinct actions seen in category.
func (s Summary) Total(category string) int { return len(s.actions[category]) }

func (s Summary) Actions(category string) []string { return s.actions[category] }

// CategoryCount is one row of a role's hover panel.
type CategoryCount struct {
	Category string
	Granted  int
	Total    int
}

// For lists the role's categories with granted and total action counts.
func (s Summary) For(r domain.Role) []CategoryCount {
	cats := r.Permissions.Categories()
	out := make([]CategoryCount, 0, len(cats))
	for _, c := range cats {
		granted := len(r.Permissions[c])
		out = append(out, CategoryCount{
			Category: c,
			Granted:  granted,
			Total:    max(s.Total(c), granted),
		})
	}
	return out
}
