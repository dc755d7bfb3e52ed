package hierarchy

import (
	"maps"
	"slices"
)

// ExpansionSet holds the ids of expanded nodes. Ids that are not in the
// current forest are allowed and simply have no effect.
type ExpansionSet struct {
	ids map[int64]struct{}
}

// NewExpansionSet starts with every root expanded.
func NewExpansionSet(f *Forest) *ExpansionSet {
	return ExpansionFrom(f.RootIDs())
}

// ExpansionFrom restores a set from stored ids.
func ExpansionFrom(ids []int64) *ExpansionSet {
	s := &ExpansionSet{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle flips id and reports whether it is now expanded.
func (s *ExpansionSet) Toggle(id int64) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// ExpandAll adds every node of f.
func (s *ExpansionSet) ExpandAll(f *Forest) {
	f.Walk(func(n *Node) { s.ids[n.ID()] = struct{}{} })
}

// CollapseAll resets the set to exactly the roots of f.
func (s *ExpansionSet) CollapseAll(f *Forest) {
	clear(s.ids)
	for _, id := range f.RootIDs() {
		s.ids[id] = struct{}{}
	}
}

func (s *ExpansionSet) Contains(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// IDs returns the members in ascending order.
func (s *ExpansionSet) IDs() []int64 {
	return slices.Sorted(maps.Keys(s.ids))
}

func (s *ExpansionSet) Len() int { return len(s.ids) }

// Open reports whether n renders its children: expanded and not a leaf.
func (s *ExpansionSet) Open(n *Node) bool {
	return n.HasChildren() && s.Contains(n.ID())
}
