package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	. "maragu.dev/gomponents"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/hierarchy"
)

func render(t *testing.T, n Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func sampleRoles() []domain.Role {
	return []domain.Role{
		{ID: 1, Name: "Admin", IsSystem: true, UserCount: 3, Permissions: domain.Permissions{
			"roles": {"view", "create"},
		}},
		{ID: 2, Name: "Editor", ParentID: domain.RoleID(1), UserCount: 1, Permissions: domain.Permissions{
			"roles": {"view"},
		}},
		{ID: 3, Name: "Viewer", ParentID: domain.RoleID(2)},
		{ID: 4, Name: "Stray", ParentID: domain.RoleID(99)},
	}
}

func treeProps(roles []domain.Role) TreeProps {
	f := hierarchy.Build(roles)
	return TreeProps{
		Forest:       f,
		Expanded:     hierarchy.NewExpansionSet(f),
		Zoom:         hierarchy.DefaultZoom,
		Summary:      hierarchy.Summarize(roles),
		OnRoleClick:  RoleHref,
		ToggleAction: ToggleHref,
	}
}

func TestRoleTree_ChildrenOnlyWhenExpanded(t *testing.T) {
	p := treeProps(sampleRoles())

	out := render(t, RoleTree(p))
	require.Contains(t, out, `id="role-1"`)
	require.Contains(t, out, `id="role-2"`, "roots are expanded by default")
	require.NotContains(t, out, `id="role-3"`, "Editor is collapsed")
	require.Contains(t, out, `id="role-4"`)

	p.Expanded.Toggle(2)
	out = render(t, RoleTree(p))
	require.Contains(t, out, `id="role-3"`)

	p.Expanded.Toggle(1)
	out = render(t, RoleTree(p))
	require.NotContains(t, out, `id="role-2"`)
	require.NotContains(t, out, `id="role-3"`, "hidden with its collapsed ancestor")
}

func TestRoleTree_LeavesNeverRenderChildList(t *testing.T) {
	p := treeProps(sampleRoles())
	p.Expanded.ExpandAll(p.Forest)

	out := render(t, RoleTree(p))
	// One nested list for Admin and one for Editor. Viewer and Stray are
	// expanded but have no children.
	require.Equal(t, 2, strings.Count(out, `role="group"`))
	require.Equal(t, 4, strings.Count(out, `role="treeitem"`))
}

func TestRoleTree_NodeContent(t *testing.T) {
	p := treeProps(sampleRoles())
	out := render(t, RoleTree(p))

	require.Contains(t, out, `<span class="Label Label--accent">System</span>`)
	require.Contains(t, out, `<span class="Label Label--secondary">Custom</span>`)
	require.Contains(t, out, "3 users")
	require.Contains(t, out, "1 user<")
	require.Contains(t, out, "Parent missing")
	require.Contains(t, out, `href="/ui/roles/2"`)
	require.Contains(t, out, `action="/ui/roles/1/toggle"`)
	require.Contains(t, out, `aria-expanded="true"`)
	require.NotContains(t, out, `action="/ui/roles/4/toggle"`, "leaves have no toggle")
}

func TestRoleTree_HoverCountsAgainstUnion(t *testing.T) {
	p := treeProps(sampleRoles())
	out := render(t, RoleTree(p))

	require.Contains(t, out, "2 of 2 actions")
	require.Contains(t, out, "1 of 2 actions")
	require.Contains(t, out, "No permissions granted.")
}

func TestRoleTree_Zoom(t *testing.T) {
	p := treeProps(sampleRoles())
	p.Zoom = hierarchy.ClampZoom(70)

	out := render(t, RoleTree(p))
	require.Contains(t, out, "transform: scale(0.7)")
	require.Contains(t, out, `data-zoom="70"`)
}

func TestRoleTree_Empty(t *testing.T) {
	p := treeProps(nil)
	require.Contains(t, render(t, RoleTree(p)), "No roles yet.")
}

func TestRoleTree_CycleIsMarked(t *testing.T) {
	roles := []domain.Role{
		{ID: 1, Name: "A", ParentID: domain.RoleID(2)},
		{ID: 2, Name: "B", ParentID: domain.RoleID(1)},
	}
	out := render(t, RoleTree(treeProps(roles)))
	require.Contains(t, out, "Loop cut")
	require.Contains(t, out, `id="role-2"`)
}

func TestSubtreeText(t *testing.T) {
	f := hierarchy.Build(sampleRoles())
	admin, ok := f.Find(1)
	require.True(t, ok)

	text := subtreeText(admin)
	require.Contains(t, text, "Admin")
	require.Contains(t, text, "Viewer")
	require.NotContains(t, text, "Stray")
}

func TestRolesPage_ZoomButtonsAtBounds(t *testing.T) {
	p := treeProps(sampleRoles())
	props := RolesProps{
		Chrome:   Chrome{Title: "Roles", Active: "roles", Prefs: domain.DefaultPreferences("u1")},
		Forest:   p.Forest,
		Expanded: p.Expanded,
		Zoom:     hierarchy.MaxZoom,
		Summary:  p.Summary,
	}

	out := render(t, RolesPage(props))
	require.Contains(t, out, `aria-label="Zoom in" disabled`)
	require.NotContains(t, out, `aria-label="Zoom out" disabled`)
	require.Contains(t, out, "150%")
	require.Contains(t, out, "4 roles in 2 trees, 3 levels deep")
}

func TestRoleDetailPage(t *testing.T) {
	roles := sampleRoles()
	f := hierarchy.Build(roles)
	editor, ok := f.Find(2)
	require.True(t, ok)

	out := render(t, RoleDetailPage(RoleDetailProps{
		Chrome:    Chrome{Title: "Editor", Active: "roles", Prefs: domain.DefaultPreferences("u1")},
		Node:      editor,
		Ancestors: f.Ancestors(2),
		Summary:   hierarchy.Summarize(roles),
	}))

	require.Contains(t, out, `href="/ui/roles/1"`, "breadcrumb links the parent")
	require.Contains(t, out, "1 of 2")
	require.Contains(t, out, `<span class="Label Label--success">view</span>`)
	require.Contains(t, out, `<span class="Label">create</span>`)
	require.Contains(t, out, "Child roles")
}
