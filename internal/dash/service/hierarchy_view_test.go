package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/hierarchy"
)

func TestHierarchyView_DefaultsToRoots(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	roles := &RolesService{Store: st}
	svc := &HierarchyViewService{Store: st, Roles: roles}

	b := mustCreateRole(t, st, domain.Role{Name: "B"})
	mustCreateRole(t, st, domain.Role{Name: "A", ParentID: domain.RoleID(b)})
	c := mustCreateRole(t, st, domain.Role{Name: "C", ParentID: domain.RoleID(99)})

	v, err := svc.Load(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, []int64{b, c}, v.Expanded.IDs())
	require.Equal(t, hierarchy.DefaultZoom, v.Zoom)
	require.Equal(t, 3, v.Forest.Len())
}

func TestHierarchyView_TogglePersists(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &HierarchyViewService{Store: st, Roles: &RolesService{Store: st}}

	root := mustCreateRole(t, st, domain.Role{Name: "Root"})
	child := mustCreateRole(t, st, domain.Role{Name: "Child", ParentID: domain.RoleID(root)})

	expanded, err := svc.Toggle(ctx, "sess", child)
	require.NoError(t, err)
	require.True(t, expanded)

	v, err := svc.Load(ctx, "sess")
	require.NoError(t, err)
	require.True(t, v.Expanded.Contains(child))

	expanded, err = svc.Toggle(ctx, "sess", child)
	require.NoError(t, err)
	require.False(t, expanded)

	v, err = svc.Load(ctx, "sess")
	require.NoError(t, err)
	require.Equal(t, []int64{root}, v.Expanded.IDs())

	// Other sessions are unaffected.
	_, err = svc.Toggle(ctx, "other", root)
	require.NoError(t, err)
	v, err = svc.Load(ctx, "sess")
	require.NoError(t, err)
	require.True(t, v.Expanded.Contains(root))
}

func TestHierarchyView_ResetsWhenRolesChange(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	roles := &RolesService{Store: st}
	svc := &HierarchyViewService{Store: st, Roles: roles}

	root := mustCreateRole(t, st, domain.Role{Name: "Root"})
	child := mustCreateRole(t, st, domain.Role{Name: "Child", ParentID: domain.RoleID(root)})
	mustCreateRole(t, st, domain.Role{Name: "Leaf", ParentID: domain.RoleID(child)})

	_, err := svc.ExpandAll(ctx, "sess")
	require.NoError(t, err)
	z, err := svc.Zoom(ctx, "sess", "in")
	require.NoError(t, err)
	require.Equal(t, hierarchy.Zoom(110), z)

	v, err := svc.Load(ctx, "sess")
	require.NoError(t, err)
	require.Equal(t, 3, v.Expanded.Len())

	_, err = roles.Create(ctx, testActor, RoleInput{Name: "Newcomer"})
	require.NoError(t, err)

	v, err = svc.Load(ctx, "sess")
	require.NoError(t, err)
	require.ElementsMatch(t, v.Forest.RootIDs(), v.Expanded.IDs())
	require.Equal(t, 2, v.Expanded.Len())
	require.Equal(t, hierarchy.Zoom(110), v.Zoom, "zoom survives a reset")
}

func TestHierarchyView_ResetsOnPermissionEdit(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	roles := &RolesService{Store: st}
	svc := &HierarchyViewService{Store: st, Roles: roles}

	root := mustCreateRole(t, st, domain.Role{Name: "Root"})
	child := mustCreateRole(t, st, domain.Role{Name: "Child", ParentID: domain.RoleID(root)})
	mustCreateRole(t, st, domain.Role{Name: "Leaf", ParentID: domain.RoleID(child)})

	_, err := svc.ExpandAll(ctx, "sess")
	require.NoError(t, err)

	_, err = roles.Update(ctx, testActor, child, RoleUpdate{
		Permissions: domain.Permissions{"forms": {"view"}},
	})
	require.NoError(t, err)

	v, err := svc.Load(ctx, "sess")
	require.NoError(t, err)
	require.Equal(t, []int64{root}, v.Expanded.IDs())
}

func TestHierarchyView_CollapseAllAndZoomBounds(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &HierarchyViewService{Store: st, Roles: &RolesService{Store: st}}

	root := mustCreateRole(t, st, domain.Role{Name: "Root"})
	mustCreateRole(t, st, domain.Role{Name: "Child", ParentID: domain.RoleID(root)})

	_, err := svc.ExpandAll(ctx, "sess")
	require.NoError(t, err)
	v, err := svc.CollapseAll(ctx, "sess")
	require.NoError(t, err)
	require.Equal(t, []int64{root}, v.Expanded.IDs())

	var z hierarchy.Zoom
	for range 15 {
		z, err = svc.Zoom(ctx, "sess", "out")
		require.NoError(t, err)
	}
	require.Equal(t, hierarchy.MinZoom, z)

	z, err = svc.Zoom(ctx, "sess", "reset")
	require.NoError(t, err)
	require.Equal(t, hierarchy.DefaultZoom, z)

	_, err = svc.Zoom(ctx, "sess", "sideways")
	require.Error(t, err)
}
