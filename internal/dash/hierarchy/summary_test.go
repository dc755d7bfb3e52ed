package hierarchy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/hierarchy"
)

func TestSummarize(t *testing.T) {
	roles := []domain.Role{
		{ID: 1, Name: "Admin", Permissions: domain.Permissions{
			"users": {"view", "create", "update"},
			"roles": {"view"},
		}},
		{ID: 2, Name: "Editor", Permissions: domain.Permissions{
			"users": {"view", "delete"},
			"forms": {"view", "publish"},
		}},
		{ID: 3, Name: "Nobody"},
	}
	s := hierarchy.Summarize(roles)

	require.Equal(t, []string{"forms", "roles", "users"}, s.Categories())
	require.Equal(t, 4, s.Total("users"))
	require.Equal(t, []string{"view", "create", "update", "delete"}, s.Actions("users"))
	require.Zero(t, s.Total("billing"))

	require.Equal(t, []hierarchy.CategoryCount{
		{Category: "roles", Granted: 1, Total: 1},
		{Category: "users", Granted: 3, Total: 4},
	}, s.For(roles[0]))
	require.Empty(t, s.For(roles[2]))
}

func TestSummary_ForRoleOutsideUnion(t *testing.T) {
	s := hierarchy.Summarize(nil)
	r := domain.Role{Permissions: domain.Permissions{"reports": {"view", "export"}}}

	require.Equal(t, []hierarchy.CategoryCount{
		{Category: "reports", Granted: 2, Total: 2},
	}, s.For(r))
}

func TestWouldCycle(t *testing.T) {
	roles := []domain.Role{
		role(1, nil, "Root"),
		role(2, p(1), "Child"),
		role(3, p(2), "Grandchild"),
		role(4, nil, "Other"),
		role(8, p(9), "Loop A"),
		role(9, p(8), "Loop B"),
	}

	tests := []struct {
		name   string
		role   int64
		parent *int64
		want   bool
	}{
		{"no parent", 1, nil, false},
		{"self", 1, p(1), true},
		{"under descendant", 1, p(3), true},
		{"under direct child", 2, p(3), true},
		{"sideways move", 3, p(4), false},
		{"move to root child", 3, p(1), false},
		{"unknown parent", 1, p(404), false},
		{"new role under existing", 100, p(3), false},
		{"under existing loop", 4, p(8), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, hierarchy.WouldCycle(roles, tt.role, tt.parent))
		})
	}
}
