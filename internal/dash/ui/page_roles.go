package ui

import (
	"slices"
	"strconv"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/hierarchy"
)

// RoleHref is the permissions viewer of r.
func RoleHref(r domain.Role) string {
	return "/ui/roles/" + strconv.FormatInt(r.ID, 10)
}

// ToggleHref is where a node's expand/collapse button posts.
func ToggleHref(id int64) string {
	return "/ui/roles/" + strconv.FormatInt(id, 10) + "/toggle"
}

type RolesProps struct {
	Chrome   Chrome
	Forest   *hierarchy.Forest
	Expanded *hierarchy.ExpansionSet
	Zoom     hierarchy.Zoom
	Summary  hierarchy.Summary
}

func RolesPage(p RolesProps) Node {
	tree := RoleTree(TreeProps{
		Forest:       p.Forest,
		Expanded:     p.Expanded,
		Zoom:         p.Zoom,
		Summary:      p.Summary,
		OnRoleClick:  RoleHref,
		ToggleAction: ToggleHref,
		CSRF:         p.Chrome.CSRF,
	})

	return appPage(p.Chrome,
		Div(
			data.Signals(map[string]any{"q": ""}),
			Div(
				Class("toolbar"),
				Input(
					Type("search"),
					Class("form-control quick-filter"),
					Placeholder("Filter roles"),
					Aria("label", "Filter roles"),
					data.Bind("q"),
				),
				Div(
					Class("toolbar-group"),
					postButton("/ui/roles/expand", "Expand all", "btn btn-sm", p.Chrome.CSRF),
					postButton("/ui/roles/collapse", "Collapse all", "btn btn-sm", p.Chrome.CSRF),
				),
				zoomControls(p.Zoom, p.Chrome.CSRF),
			),
			P(Class(mutedClass()), Text(forestSummary(p.Forest))),
			tree,
		),
	)
}

func zoomControls(z hierarchy.Zoom, csrf Node) Node {
	button := func(action, label string, enabled bool) Node {
		return Form(
			Method("post"),
			Action("/ui/roles/zoom"),
			Class("inline-form"),
			csrf,
			Input(Type("hidden"), Name("action"), Value(action)),
			Button(
				Type("submit"),
				Class("btn btn-sm"),
				Aria("label", "Zoom "+action),
				If(!enabled, Disabled()),
				Text(label),
			),
		)
	}

	return Div(
		Class("toolbar-group zoom-controls"),
		button("out", "−", z.CanZoomOut()),
		Span(Class("zoom-level"), Text(z.String())),
		button("in", "+", z.CanZoomIn()),
		button("reset", "Reset", z != hierarchy.DefaultZoom),
	)
}

func forestSummary(f *hierarchy.Forest) string {
	if f == nil || f.Len() == 0 {
		return "No roles."
	}
	return plural(f.Len(), "role", "roles") + " in " +
		plural(len(f.Roots), "tree", "trees") + ", " +
		plural(f.Depth(), "level", "levels") + " deep"
}

type RoleDetailProps struct {
	Chrome    Chrome
	Node      *hierarchy.Node
	Ancestors []*hierarchy.Node
	Summary   hierarchy.Summary
}

// RoleDetailPage is the permissions viewer opened by clicking a role.
func RoleDetailPage(p RoleDetailProps) Node {
	r := p.Node.Role

	crumbs := []Node{A(Href("/ui/roles"), Text("Roles"))}
	for _, a := range p.Ancestors {
		if a.ID() == r.ID {
			continue
		}
		crumbs = append(crumbs, Span(Class("crumb-sep"), Text("/")), A(Href(RoleHref(a.Role)), Text(a.Role.Name)))
	}
	crumbs = append(crumbs, Span(Class("crumb-sep"), Text("/")), Strong(Text(r.Name)))

	return appPage(p.Chrome,
		Nav(Class("breadcrumbs"), Aria("label", "Breadcrumb"), Group(crumbs)),
		Div(
			Class(cardClass()),
			Div(
				Class("role-heading"),
				H2(Text(r.Name)),
				statusLabel(r.Badge(), badgeTone(r)),
				Span(Class(mutedClass()), Text(plural(r.UserCount, "user", "users"))),
			),
			If(r.Description != "", P(Text(r.Description))),
			If(p.Node.Orphaned, P(Class("flash flash-warn"),
				Textf("Parent role %d does not exist, so this role is shown at the top level.", parentOf(r)))),
			If(p.Node.CycleBroken, P(Class("flash flash-error"),
				Text("This role's parent chain loops back on itself. It is shown at the top level until the parent is fixed."))),
		),
		permissionMatrix(r, p.Summary),
		childList(p.Node),
	)
}

func parentOf(r domain.Role) int64 {
	if r.ParentID == nil {
		return 0
	}
	return *r.ParentID
}

// permissionMatrix lists every known category and action and marks the
// ones the role holds.
func permissionMatrix(r domain.Role, s hierarchy.Summary) Node {
	categories := slices.Concat(s.Categories(), r.Permissions.Categories())
	slices.Sort(categories)
	categories = slices.Compact(categories)
	if len(categories) == 0 {
		return Div(Class(cardClass("blankslate")), P(Class("color-fg-muted mb-0"), Text("No permissions are defined yet.")))
	}

	rows := make([]Node, 0, len(categories))
	for _, c := range categories {
		actions := slices.Clone(s.Actions(c))
		// Actions the role holds outside the union still show up.
		for _, a := range r.Permissions.Actions(c) {
			if !slices.Contains(actions, a) {
				actions = append(actions, a)
			}
		}

		granted := 0
		cells := make([]Node, 0, len(actions))
		for _, a := range actions {
			tone := ""
			if r.Permissions.Has(c, a) {
				tone = "success"
				granted++
			}
			cells = append(cells, statusLabel(a, tone))
		}

		rows = append(rows, Tr(
			Td(Strong(Text(c))),
			Td(Textf("%d of %d", granted, len(actions))),
			Td(Class("permission-actions"), Group(cells)),
		))
	}

	return Div(
		Class(cardClass()),
		H3(Text("Permissions")),
		Table(
			Class("table"),
			THead(Tr(Th(Text("Category")), Th(Text("Granted")), Th(Text("Actions")))),
			TBody(Group(rows)),
		),
	)
}

func childList(n *hierarchy.Node) Node {
	if !n.HasChildren() {
		return nil
	}
	return Div(
		Class(cardClass()),
		H3(Text("Child roles")),
		Ul(Map(n.Children, func(c *hierarchy.Node) Node {
			return Li(
				A(Href(RoleHref(c.Role)), Text(c.Role.Name)),
				Text(" "),
				statusLabel(c.Role.Badge(), badgeTone(c.Role)),
				If(c.HasChildren(), Span(Class(mutedClass()), Textf(" %d below", c.Descendants()))),
			)
		})),
	)
}
