// Package tree projects a document Value onto an ordered row list for
// windowed display: pre-order flattening, expand/collapse visibility
// filtering, and pure viewport index math. The package holds no pixel
// or widget concerns; the rendering host consumes DisplayNode slices.
package tree

import (
	"strconv"

	schemapad "github.com/reoring/schemapad"
)

// DisplayNode is one row of the flattened document tree. Its ID is the
// JSON Pointer of its path, so identity is stable across unrelated
// edits but shifts when array elements are reordered.
type DisplayNode struct {
	ID          string
	Path        schemapad.Path
	Depth       int
	Key         string
	Value       *schemapad.Value
	Kind        schemapad.Kind
	HasChildren bool
	ChildCount  int
}

// Flatten converts root into its pre-order row list. The document's
// own root row is labeled "root" so that a bare top-level array or
// scalar still has a single entry point; it is not an extra node, and
// len(Flatten(v)) equals the node count of v.
func Flatten(root *schemapad.Value) []DisplayNode {
	if root == nil {
		return nil
	}
	out := make([]DisplayNode, 0, 64)
	flattenInto(&out, root, nil, "root")
	return out
}

func flattenInto(out *[]DisplayNode, v *schemapad.Value, path schemapad.Path, key string) {
	*out = append(*out, DisplayNode{
		ID:          path.Pointer(),
		Path:        path,
		Depth:       len(path),
		Key:         key,
		Value:       v,
		Kind:        v.Kind(),
		HasChildren: v.ChildCount() > 0,
		ChildCount:  v.ChildCount(),
	})
	switch v.Kind() {
	case schemapad.KindObject:
		for _, m := range v.Members() {
			flattenInto(out, m.Value, path.Child(schemapad.Key(m.Key)), m.Key)
		}
	case schemapad.KindArray:
		for i, e := range v.Elems() {
			flattenInto(out, e, path.Child(schemapad.Index(i)), strconv.Itoa(i))
		}
	}
}

// Visible filters the flattened list to rows whose every ancestor is
// expanded. Depth 0 and 1 rows are always shown; the root and its
// direct children can be toggled for the sake of their own children
// but never disappear themselves. Runs in O(n) over the list.
func Visible(nodes []DisplayNode, exp *ExpansionState) []DisplayNode {
	type ancestor struct {
		depth    int
		expanded bool
	}
	stack := make([]ancestor, 0, 8)
	collapsed := 0
	out := make([]DisplayNode, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		for len(stack) > 0 && stack[len(stack)-1].depth >= n.Depth {
			if !stack[len(stack)-1].expanded {
				collapsed--
			}
			stack = stack[:len(stack)-1]
		}
		if collapsed == 0 || n.Depth <= 1 {
			out = append(out, *n)
		}
		if n.HasChildren {
			e := exp.IsExpanded(n.ID, n.Depth)
			stack = append(stack, ancestor{depth: n.Depth, expanded: e})
			if !e {
				collapsed++
			}
		}
	}
	return out
}
