package hierarchy

import "github.com/aussiebroadwan/dash/internal/dash/domain"

// Node is a role positioned in the forest.
type Node struct {
	Role     domain.Role
	Parent   *Node // nil for roots
	Children []*Node
	Level    int // 0 for roots

	// Orphaned is set on roots whose ParentID names a role that is not in
	// the input.
	Orphaned bool

	// CycleBroken is set on roots whose parent link was dropped because it
	// closed a loop.
	CycleBroken bool
}

func (n *Node) ID() int64 { return n.Role.ID }

func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

// Descendants counts every node below n.
func (n *Node) Descendants() int {
	total := 0
	for _, c := range n.Children {
		total += 1 + c.Descendants()
	}
	return total
}
