package seed

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/service"
	"github.com/aussiebroadwan/dash/internal/dash/store/drivers/sqlite"
	"github.com/aussiebroadwan/dash/pkg/jwtx"
)

func newSeeder(t *testing.T) (*Seeder, *sqlite.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewSignerHS256([]byte(strings.Repeat("k", jwtx.MinSecretLength)))
	require.NoError(t, err)

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Seeder{
		Store:    st,
		Users:    &service.UserService{Store: st, Signer: signer, Issuer: "dash"},
		Activity: &service.ActivityService{Store: st},
		now:      func() time.Time { return fixed },
	}, st
}

func TestDefaultFixtureParses(t *testing.T) {
	fx, err := Default()
	require.NoError(t, err)
	require.Len(t, fx.Roles, 6)
	require.Len(t, fx.Users, 4)
	require.Len(t, fx.Activity, 4)
	require.Equal(t, 50*time.Hour, fx.Activity[0].Ago)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "roles:\n  - name: A\n    colour: red\n"},
		{"repeated name", "roles:\n  - name: A\n  - name: A\n"},
		{"repeated id", "roles:\n  - {id: 1, name: A}\n  - {id: 1, name: B}\n"},
		{"nameless role", "roles:\n  - id: 3\n"},
		{"user without role", "users:\n  - username: bob\n"},
		{"bad status", "users:\n  - {username: bob, role: A, status: asleep}\n"},
		{"bad action", "activity:\n  - {action: dance, module: roles}\n"},
		{"bad module", "activity:\n  - {action: view, module: kitchen}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.ErrorIs(t, err, ErrInvalidFixture)
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	fx, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, fx.Roles)
}

func TestApply_DefaultFixture(t *testing.T) {
	s, st := newSeeder(t)
	ctx := context.Background()

	fx, err := Default()
	require.NoError(t, err)

	res, err := s.Apply(ctx, fx)
	require.NoError(t, err)
	require.Equal(t, Result{Roles: 6, Users: 4, Activity: 4}, res)

	roles := &service.RolesService{Store: st}
	forest, err := roles.Hierarchy(ctx)
	require.NoError(t, err)

	var names []string
	for _, n := range forest.Roots {
		names = append(names, n.Role.Name)
	}
	require.Equal(t, []string{"Auditor", "Super Admin", "Support"}, names)
	require.True(t, forest.Roots[0].Orphaned)

	editor, err := st.Roles().GetRoleByName(ctx, "Editor")
	require.NoError(t, err)
	require.Equal(t, 1, editor.UserCount)

	olive, err := st.Users().GetUserByUsername(ctx, "olive")
	require.NoError(t, err)
	require.Equal(t, domain.UserInactive, olive.Status)

	entries, err := s.Activity.List(ctx, domain.ActivityFilter{Status: domain.StatusWarning})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Weekly funnel", entries[0].Target)
	require.True(t, s.now().Add(-90*time.Minute).Equal(entries[0].CreatedAt))
	require.NotEmpty(t, entries[0].UserID)
}

func TestApply_IsRepeatable(t *testing.T) {
	s, _ := newSeeder(t)
	ctx := context.Background()

	fx, err := Default()
	require.NoError(t, err)
	_, err = s.Apply(ctx, fx)
	require.NoError(t, err)

	res, err := s.Apply(ctx, fx)
	require.NoError(t, err)
	require.Equal(t, Result{Activity: 4, Skipped: 10}, res)
}

func TestApply_IDConflict(t *testing.T) {
	s, _ := newSeeder(t)
	ctx := context.Background()

	_, err := s.Apply(ctx, Fixture{Roles: []RoleFixture{{ID: 7, Name: "First"}}})
	require.NoError(t, err)

	_, err = s.Apply(ctx, Fixture{Roles: []RoleFixture{{ID: 7, Name: "Second"}}})
	require.ErrorIs(t, err, ErrIDConflict)
}

func TestApply_UnknownRoleForUser(t *testing.T) {
	s, _ := newSeeder(t)

	_, err := s.Apply(context.Background(), Fixture{Users: []UserFixture{
		{Username: "bob", Password: "long-enough", Role: "Nobody"},
	}})
	require.Error(t, err)
}
