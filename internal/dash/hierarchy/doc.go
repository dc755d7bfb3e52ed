// Package hierarchy turns the flat role list into a sorted forest and holds
// the view state (expansion set, zoom) used to render it.
//
// Parent links only position roles for display. A role whose parent is
// missing is shown as a root, and parent chains that loop are cut so that
// every role appears exactly once.
package hierarchy
