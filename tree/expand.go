package tree

// ExpansionState tracks explicit expand/collapse toggles per node ID.
// Lookup is two-tier: an explicit override wins, otherwise the depth
// default applies (expanded at depth <= 1, collapsed below). Collapsing
// an ancestor never clears descendant entries, so re-expanding it
// restores the prior descendant state exactly. The state outlives any
// particular document value; IDs for unrelated edits stay meaningful.
type ExpansionState struct {
	overrides map[string]bool
}

// NewExpansionState returns an empty state: every node at its default.
func NewExpansionState() *ExpansionState {
	return &ExpansionState{overrides: make(map[string]bool)}
}

// DefaultExpanded is the policy for nodes with no explicit toggle.
func DefaultExpanded(depth int) bool { return depth <= 1 }

// IsExpanded reports the effective state for the node with the given
// ID at the given depth.
func (e *ExpansionState) IsExpanded(id string, depth int) bool {
	if v, ok := e.overrides[id]; ok {
		return v
	}
	return DefaultExpanded(depth)
}

// Toggle flips the node's state, materializing the default for an
// unseen ID. This is the only mutation path.
func (e *ExpansionState) Toggle(id string, depth int) {
	if e.overrides == nil {
		e.overrides = make(map[string]bool)
	}
	e.overrides[id] = !e.IsExpanded(id, depth)
}
