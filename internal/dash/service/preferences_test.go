package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

func TestPreferencesService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := newUserService(t, st)
	svc := &PreferencesService{Store: st}

	roleID := mustCreateRole(t, st, domain.Role{Name: "Viewer"})
	u, err := users.CreateUser(ctx, NewUser{Username: "ivy", Password: "password-9", RoleID: roleID})
	require.NoError(t, err)
	actor := Actor{UserID: u.ID, Username: u.Username}

	p, err := svc.Load(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultPreferences(u.ID), p)

	p.Theme = domain.ThemeDark
	saved, err := svc.Save(ctx, actor, p)
	require.NoError(t, err)
	require.Equal(t, domain.ThemeDark, saved.Theme)
	require.Empty(t, activityFor(t, st, domain.ActivityFilter{Module: domain.ModuleBranding}))

	p.BrandColor = "#ff0000"
	_, err = svc.Save(ctx, actor, p)
	require.NoError(t, err)
	branding := activityFor(t, st, domain.ActivityFilter{Module: domain.ModuleBranding})
	require.Len(t, branding, 1)
	require.Equal(t, "#2563eb -> #ff0000", branding[0].Details)

	bad := p
	bad.Theme = "sepia"
	_, err = svc.Save(ctx, actor, bad)
	require.ErrorIs(t, err, ErrInvalidTheme)

	bad = p
	bad.BrandColor = "red"
	_, err = svc.Save(ctx, actor, bad)
	require.ErrorIs(t, err, ErrInvalidBrandColor)

	bad = p
	bad.Favorites = []string{"billing"}
	_, err = svc.Save(ctx, actor, bad)
	require.ErrorIs(t, err, ErrUnknownPage)

	p, err = svc.ToggleFavorite(ctx, u.ID, "roles")
	require.NoError(t, err)
	require.True(t, p.IsFavorite("roles"))
	require.Equal(t, "#ff0000", p.BrandColor)

	p, err = svc.ToggleFavorite(ctx, u.ID, "roles")
	require.NoError(t, err)
	require.False(t, p.IsFavorite("roles"))

	_, err = svc.ToggleFavorite(ctx, u.ID, "nope")
	require.ErrorIs(t, err, ErrUnknownPage)
}
