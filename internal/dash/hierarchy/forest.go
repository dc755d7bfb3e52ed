package hierarchy

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

// Forest is the result of Build. It is immutable once built; a changed role
// list means building a new one.
type Forest struct {
	Roots []*Node

	roles []domain.Role // deduplicated, input order
	index map[int64]*Node
}

// Len is the number of nodes in the forest.
func (f *Forest) Len() int { return len(f.index) }

// Roles returns the roles the forest was built from, duplicates removed.
func (f *Forest) Roles() []domain.Role { return f.roles }

// Find returns the node for a role id.
func (f *Forest) Find(id int64) (*Node, bool) {
	n, ok := f.index[id]
	return n, ok
}

func (f *Forest) RootIDs() []int64 {
	ids := make([]int64, 0, len(f.Roots))
	for _, r := range f.Roots {
		ids = append(ids, r.ID())
	}
	return ids
}

// AllIDs returns every role id in pre-order.
func (f *Forest) AllIDs() []int64 {
	ids := make([]int64, 0, len(f.index))
	f.Walk(func(n *Node) { ids = append(ids, n.ID()) })
	return ids
}

// Walk visits every node in pre-order, siblings in display order.
func (f *Forest) Walk(fn func(n *Node)) {
	var visit func(nodes []*Node)
	visit = func(nodes []*Node) {
		for _, n := range nodes {
			fn(n)
			visit(n.Children)
		}
	}
	visit(f.Roots)
}

// Ancestors returns the chain from the root down to the parent of id.
func (f *Forest) Ancestors(id int64) []*Node {
	n, ok := f.index[id]
	if !ok {
		return nil
	}
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	slices.Reverse(out)
	return out
}

// Depth is the deepest level in the forest plus one, zero when empty.
func (f *Forest) Depth() int {
	depth := 0
	f.Walk(func(n *Node) { depth = max(depth, n.Level+1) })
	return depth
}

// Fingerprint identifies the role list: id, parent, name, description,
// system flag and permissions of every role. User counts are left out; they
// move with user assignments, not role edits.
func (f *Forest) Fingerprint() string {
	roles := slices.Clone(f.roles)
	slices.SortFunc(roles, func(a, b domain.Role) int { return cmp.Compare(a.ID, b.ID) })

	h := sha256.New()
	for _, r := range roles {
		parent := "-"
		if r.ParentID != nil {
			parent = strconv.FormatInt(*r.ParentID, 10)
		}
		fmt.Fprintf(h, "%d\x1f%s\x1f%s\x1f%s\x1f%t\x1f%s\x1e",
			r.ID, parent, r.Name, r.Description, r.IsSystem, strings.Join(r.Permissions.Scopes(), ","))
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}
