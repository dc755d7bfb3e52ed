package ui

import (
	"strconv"
	"strings"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/hierarchy"
)

// TreeProps is the input of RoleTree.
type TreeProps struct {
	Forest   *hierarchy.Forest
	Expanded *hierarchy.ExpansionSet
	Zoom     hierarchy.Zoom

	// Summary is the permission union the hover panel counts against. It is
	// computed once per render, not per node.
	Summary hierarchy.Summary

	// OnRoleClick returns where clicking a role leads.
	OnRoleClick func(domain.Role) string

	// ToggleAction returns the form action that flips a node.
	ToggleAction func(id int64) string

	CSRF Node
}

// RoleTree renders the forest as nested lists. A node's children are only
// rendered when the node is expanded and has children.
func RoleTree(p TreeProps) Node {
	if p.Forest == nil || p.Forest.Len() == 0 {
		return Div(Class(cardClass("blankslate")), P(Class("color-fg-muted mb-0"), Text("No roles yet.")))
	}

	return Div(
		Class("role-tree-viewport"),
		Div(
			Class("role-tree"),
			Style("transform: "+p.Zoom.Transform()+"; transform-origin: top left;"),
			Attr("data-zoom", strconv.Itoa(int(p.Zoom))),
			Ul(Class("role-level role-level-root"), Role("tree"), Map(p.Forest.Roots, p.node)),
		),
	)
}

func (p TreeProps) node(n *hierarchy.Node) Node {
	open := p.Expanded.Open(n)
	r := n.Role

	var children Node
	if open {
		children = Ul(Class("role-level"), Role("group"), Map(n.Children, p.node))
	}

	return Li(
		ID("role-"+strconv.FormatInt(r.ID, 10)),
		Class("role-node"),
		Role("treeitem"),
		Attr("data-level", strconv.Itoa(n.Level)),
		If(n.HasChildren(), Aria("expanded", strconv.FormatBool(open))),
		data.Show(containsExpr(subtreeText(n))),
		Div(
			Class("role-row"),
			p.toggle(n, open),
			A(Href(p.OnRoleClick(r)), Class("role-link"), Strong(Text(r.Name))),
			statusLabel(r.Badge(), badgeTone(r)),
			Span(Class("role-users "+mutedClass()), Text(plural(r.UserCount, "user", "users"))),
			If(n.Orphaned, statusLabel("Parent missing", "attention")),
			If(n.CycleBroken, statusLabel("Loop cut", "danger")),
			p.hover(r),
		),
		children,
	)
}

func (p TreeProps) toggle(n *hierarchy.Node, open bool) Node {
	if !n.HasChildren() {
		return Span(Class("role-toggle role-toggle-leaf"), Aria("hidden", "true"))
	}

	glyph, label := "▸", "Expand "
	if open {
		glyph, label = "▾", "Collapse "
	}
	return Form(
		Method("post"),
		Action(p.ToggleAction(n.ID())),
		Class("inline-form"),
		p.CSRF,
		Button(
			Type("submit"),
			Class("role-toggle btn-octicon"),
			Aria("label", label+n.Role.Name),
			Title(label+n.Role.Name),
			Text(glyph),
		),
	)
}

// hover is the permission detail shown when the row is hovered or focused.
func (p TreeProps) hover(r domain.Role) Node {
	counts := p.Summary.For(r)
	if len(counts) == 0 {
		return Div(Class("role-hover"), Role("tooltip"), P(Class(mutedClass()), Text("No permissions granted.")))
	}

	return Div(
		Class("role-hover"),
		Role("tooltip"),
		P(Class("role-hover-title"), Text(r.Name)),
		If(r.Description != "", P(Class(mutedClass()), Text(r.Description))),
		Ul(Class("role-hover-list"), Map(counts, func(c hierarchy.CategoryCount) Node {
			return Li(
				Span(Class("role-hover-category"), Text(c.Category)),
				Span(Class("role-hover-count"), Textf("%d of %d actions", c.Granted, c.Total)),
			)
		})),
	)
}

func badgeTone(r domain.Role) string {
	if r.IsSystem {
		return "accent"
	}
	return "secondary"
}

// subtreeText is what the quick filter matches a node against. It includes
// descendants so that ancestors of a match stay visible.
func subtreeText(n *hierarchy.Node) string {
	var b strings.Builder
	var walk func(n *hierarchy.Node)
	walk = func(n *hierarchy.Node) {
		b.WriteString(n.Role.Name)
		b.WriteByte(' ')
		b.WriteString(n.Role.Badge())
		b.WriteByte(' ')
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
