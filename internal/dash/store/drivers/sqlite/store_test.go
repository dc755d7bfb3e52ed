package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/store"
	"github.com/aussiebroadwan/dash/internal/dash/store/drivers/sqlite"
	"github.com/aussiebroadwan/dash/pkg/idx"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createRole(t *testing.T, s store.Store, r domain.Role) int64 {
	t.Helper()
	id, err := s.Roles().CreateRole(context.Background(), r)
	require.NoError(t, err)
	return id
}

func createUser(t *testing.T, s store.Store, username string, roleID int64) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		RoleID:       roleID,
		PasswordHash: "hash",
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestRoles_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.Roles().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	adminID := createRole(t, s, domain.Role{
		Name:        "Admin",
		Description: "Everything",
		IsSystem:    true,
		Permissions: domain.Permissions{"roles": {"view", "update"}},
	})
	editorID := createRole(t, s, domain.Role{
		Name:     "Editor",
		ParentID: domain.RoleID(adminID),
	})

	got, err := s.Roles().GetRoleByID(ctx, adminID)
	require.NoError(t, err)
	require.Equal(t, "Admin", got.Name)
	require.True(t, got.IsSystem)
	require.Nil(t, got.ParentID)
	require.Equal(t, []string{"view", "update"}, got.Permissions["roles"])
	require.False(t, got.CreatedAt.IsZero())

	editor, err := s.Roles().GetRoleByName(ctx, "Editor")
	require.NoError(t, err)
	require.Equal(t, editorID, editor.ID)
	require.True(t, editor.ParentIs(adminID))
	require.NotNil(t, editor.Permissions)

	n, err := s.Roles().CountChildren(ctx, adminID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	editor.Name = "Senior Editor"
	editor.ParentID = nil
	editor.Permissions = domain.Permissions{"forms": {"view"}}
	require.NoError(t, s.Roles().UpdateRole(ctx, editor))

	editor, err = s.Roles().GetRoleByID(ctx, editorID)
	require.NoError(t, err)
	require.Equal(t, "Senior Editor", editor.Name)
	require.Nil(t, editor.ParentID)
	require.True(t, editor.Permissions.Has("forms", "view"))

	require.NoError(t, s.Roles().DeleteRole(ctx, editorID))
	_, err = s.Roles().GetRoleByID(ctx, editorID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Roles().DeleteRole(ctx, editorID), store.ErrNotFound)
	require.ErrorIs(t, s.Roles().UpdateRole(ctx, domain.Role{ID: 999, Name: "x"}), store.ErrNotFound)
}

func TestRoles_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	createRole(t, s, domain.Role{Name: "Viewer"})

	_, err := s.Roles().CreateRole(context.Background(), domain.Role{Name: "Viewer"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestRoles_FixedIDsAndOrphans(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id := createRole(t, s, domain.Role{ID: 42, Name: "Contractor", ParentID: domain.RoleID(99)})
	require.Equal(t, int64(42), id)

	roles, err := s.Roles().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	require.True(t, roles[0].ParentIs(99))
}

func TestRoles_UserCount(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	admin := createRole(t, s, domain.Role{Name: "Admin"})
	viewer := createRole(t, s, domain.Role{Name: "Viewer"})
	createUser(t, s, "alice", admin)
	createUser(t, s, "bob", viewer)
	createUser(t, s, "carol", viewer)

	roles, err := s.Roles().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	require.Equal(t, 1, roles[0].UserCount)
	require.Equal(t, 2, roles[1].UserCount)

	// users.role_id is a restricting foreign key.
	require.Error(t, s.Roles().DeleteRole(ctx, viewer))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	roleID := createRole(t, s, domain.Role{Name: "Admin"})

	u := createUser(t, s, "alice", roleID)

	got, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, domain.UserActive, got.Status)

	require.NoError(t, s.Users().UpdateUserStatus(ctx, u.ID, domain.UserSuspended))
	require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "new-hash"))

	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.UserSuspended, got.Status)
	require.Equal(t, "new-hash", got.PasswordHash)

	_, err = s.Users().GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Username: "alice", RoleID: roleID})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	createUser(t, s, "aaron", roleID)
	users, err := s.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "aaron", users[0].Username)
}

func TestActivity_ListFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []domain.ActivityLog{
		{Username: "alice", Action: domain.ActionCreate, Module: domain.ModuleRoles, Status: domain.StatusSuccess, Target: "Editor"},
		{Username: "bob", Action: domain.ActionLogin, Module: domain.ModuleUsers, Status: domain.StatusFailed, Details: "bad password"},
		{Username: "alice", Action: domain.ActionDelete, Module: domain.ModuleForms, Status: domain.StatusWarning, Target: "100%_done"},
	}
	for i, e := range entries {
		e.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		e.ID = idx.NewAt(e.CreatedAt).String()
		require.NoError(t, s.Activity().CreateActivity(ctx, e))
	}

	all, err := s.Activity().ListActivity(ctx, domain.ActivityFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, domain.ActionDelete, all[0].Action, "newest first")
	require.Equal(t, base.Add(2*time.Hour), all[0].CreatedAt)

	tests := []struct {
		name   string
		filter domain.ActivityFilter
		want   int
	}{
		{"by action", domain.ActivityFilter{Action: domain.ActionLogin}, 1},
		{"by status", domain.ActivityFilter{Status: domain.StatusSuccess}, 1},
		{"by module", domain.ActivityFilter{Module: domain.ModuleForms}, 1},
		{"search username", domain.ActivityFilter{Search: "ALICE"}, 2},
		{"search details", domain.ActivityFilter{Search: "password"}, 1},
		{"search literal percent", domain.ActivityFilter{Search: "0%_"}, 1},
		{"wildcards are literal", domain.ActivityFilter{Search: "%"}, 1},
		{"since", domain.ActivityFilter{Since: base.Add(time.Hour)}, 2},
		{"until", domain.ActivityFilter{Until: base.Add(time.Hour)}, 1},
		{"limit", domain.ActivityFilter{Limit: 2}, 2},
		{"combined", domain.ActivityFilter{Search: "alice", Status: domain.StatusWarning}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Activity().ListActivity(ctx, tt.filter)
			require.NoError(t, err)
			require.Len(t, got, tt.want)
		})
	}

	n, err := s.Activity().DeleteActivityBefore(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "alice", createRole(t, s, domain.Role{Name: "Admin"}))

	_, err := s.Preferences().GetPreferences(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	p := domain.DefaultPreferences(u.ID)
	require.NoError(t, s.Preferences().UpsertPreferences(ctx, p))

	got, err := s.Preferences().GetPreferences(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ThemeSystem, got.Theme)
	require.Empty(t, got.Favorites)

	p.Theme = domain.ThemeDark
	p.Favorites = []string{"roles", "activity"}
	require.NoError(t, s.Preferences().UpsertPreferences(ctx, p))

	got, err = s.Preferences().GetPreferences(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ThemeDark, got.Theme)
	require.Equal(t, []string{"roles", "activity"}, got.Favorites)
}

func TestViewStates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.ViewStates().GetViewState(ctx, "sess")
	require.ErrorIs(t, err, store.ErrNotFound)

	v := domain.ViewState{SessionID: "sess", Fingerprint: "abc", Expanded: []int64{1, 4}, ZoomPercent: 120}
	require.NoError(t, s.ViewStates().UpsertViewState(ctx, v))

	got, err := s.ViewStates().GetViewState(ctx, "sess")
	require.NoError(t, err)
	require.Equal(t, "abc", got.Fingerprint)
	require.Equal(t, []int64{1, 4}, got.Expanded)
	require.Equal(t, 120, got.ZoomPercent)

	v.Expanded = nil
	require.NoError(t, s.ViewStates().UpsertViewState(ctx, v))
	got, err = s.ViewStates().GetViewState(ctx, "sess")
	require.NoError(t, err)
	require.Empty(t, got.Expanded)

	n, err := s.ViewStates().DeleteViewStatesBefore(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Roles().CreateRole(ctx, domain.Role{Name: "Temp"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	empty, err := s.Roles().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Roles().CreateRole(ctx, domain.Role{Name: "Kept"})
		return err
	}))
	_, err = s.Roles().GetRoleByName(ctx, "Kept")
	require.NoError(t, err)
}

func TestPing(t *testing.T) {
	require.NoError(t, newTestStore(t).Ping(context.Background()))
}
