package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

func TestPermissions_Normalize(t *testing.T) {
	p := domain.Permissions{
		" users ": {"view", " create", "view", ""},
		"roles":   {"  "},
		"":        {"view"},
	}.Normalize()

	require.Equal(t, domain.Permissions{"users": {"view", "create"}}, p)
	require.Equal(t, 2, p.Count())
}

func TestPermissions_Scopes(t *testing.T) {
	p := domain.Permissions{
		"users": {"view", "create"},
		"roles": {"view"},
	}
	require.Equal(t, []string{"roles:view", "users:create", "users:view"}, p.Scopes())
	require.Equal(t, []string{"roles", "users"}, p.Categories())
	require.True(t, p.Has("users", "create"))
	require.False(t, p.Has("roles", "create"))
	require.Nil(t, domain.Permissions(nil).Scopes())
}

func TestParseScope(t *testing.T) {
	c, a, ok := domain.ParseScope("roles:update")
	require.True(t, ok)
	require.Equal(t, "roles", c)
	require.Equal(t, "update", a)

	for _, bad := range []string{"", "roles", ":view", "roles:"} {
		_, _, ok := domain.ParseScope(bad)
		require.False(t, ok, bad)
	}
}

func TestRole_Badge(t *testing.T) {
	require.Equal(t, "System", domain.Role{IsSystem: true}.Badge())
	require.Equal(t, "Custom", domain.Role{}.Badge())

	r := domain.Role{ParentID: domain.RoleID(4)}
	require.True(t, r.HasParent())
	require.True(t, r.ParentIs(4))
	require.False(t, r.ParentIs(5))
	require.False(t, domain.Role{}.ParentIs(0))
}
