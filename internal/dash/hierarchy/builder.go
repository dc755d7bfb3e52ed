package hierarchy

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

// Build arranges roles into a forest.
//
//   - A role with no parent, or whose parent is not in roles, is a root.
//   - Siblings are ordered by name using locale collation, ties by id.
//   - Loops in the parent chain are cut at the member that comes first in
//     roles, which becomes a root.
//   - A repeated id keeps its first occurrence.
//
// Build never fails.
func Build(roles []domain.Role) *Forest {
	f := &Forest{index: make(map[int64]*Node, len(roles))}

	order := make(map[int64]int, len(roles))
	for _, r := range roles {
		if _, dup := order[r.ID]; dup {
			continue
		}
		order[r.ID] = len(f.roles)
		f.roles = append(f.roles, r)
		f.index[r.ID] = &Node{Role: r}
	}

	// Tentative links, before loops are cut.
	parentOf := make(map[int64]int64, len(f.roles))
	children := make(map[int64][]int64, len(f.roles))
	var roots []*Node

	for _, r := range f.roles {
		n := f.index[r.ID]
		switch {
		case r.ParentID == nil:
			roots = append(roots, n)
		case *r.ParentID == r.ID:
			n.CycleBroken = true
			roots = append(roots, n)
		default:
			if _, ok := f.index[*r.ParentID]; !ok {
				n.Orphaned = true
				roots = append(roots, n)
				continue
			}
			parentOf[r.ID] = *r.ParentID
			children[*r.ParentID] = append(children[*r.ParentID], r.ID)
		}
	}

	reached := make(map[int64]bool, len(f.roles))
	mark := func(id int64) {
		stack := []int64{id}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if reached[cur] {
				continue
			}
			reached[cur] = true
			stack = append(stack, children[cur]...)
		}
	}
	for _, r := range roots {
		mark(r.ID())
	}

	// Anything unreached sits on or below a loop. Following parents from an
	// unreached node stays among unreached nodes and must revisit one.
	for _, r := range f.roles {
		if reached[r.ID] {
			continue
		}
		cut := loopMember(r.ID, parentOf, order)
		parent := parentOf[cut]
		delete(parentOf, cut)
		children[parent] = slices.DeleteFunc(children[parent], func(id int64) bool { return id == cut })

		n := f.index[cut]
		n.CycleBroken = true
		roots = append(roots, n)
		mark(cut)
	}

	col := collate.New(language.Und)
	bySortKey := func(a, b *Node) int {
		if c := col.CompareString(a.Role.Name, b.Role.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	}

	var attach func(n *Node)
	attach = func(n *Node) {
		for _, cid := range children[n.ID()] {
			c := f.index[cid]
			c.Parent = n
			c.Level = n.Level + 1
			n.Children = append(n.Children, c)
		}
		slices.SortFunc(n.Children, bySortKey)
		for _, c := range n.Children {
			attach(c)
		}
	}

	slices.SortFunc(roots, bySortKey)
	for _, r := range roots {
		attach(r)
	}
	f.Roots = roots
	return f
}

// loopMember follows parent links from id until a node repeats, then returns
// the loop member that appears first in the input.
func loopMember(id int64, parentOf map[int64]int64, order map[int64]int) int64 {
	seen := make(map[int64]bool)
	cur := id
	for !seen[cur] {
		seen[cur] = true
		cur = parentOf[cur]
	}

	best := cur
	for p := parentOf[cur]; p != cur; p = parentOf[p] {
		if order[p] < order[best] {
			best = p
		}
	}
	return best
}
