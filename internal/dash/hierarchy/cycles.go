package hierarchy

import "github.com/aussiebroadwan/dash/internal/dash/domain"

// WouldCycle reports whether giving roleID the parent parentID would make
// roleID its own ancestor. A nil parent never cycles.
func WouldCycle(roles []domain.Role, roleID int64, parentID *int64) bool {
	if parentID == nil {
		return false
	}

	parents := make(map[int64]*int64, len(roles))
	for _, r := range roles {
		if _, ok := parents[r.ID]; !ok {
			parents[r.ID] = r.ParentID
		}
	}

	seen := make(map[int64]bool)
	for cur := parentID; cur != nil; cur = parents[*cur] {
		if *cur == roleID {
			return true
		}
		// An existing loop that does not pass through roleID.
		if seen[*cur] {
			return false
		}
		seen[*cur] = true
	}
	return false
}
