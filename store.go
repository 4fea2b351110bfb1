package schemapad

// Store owns the canonical document value. All mutation flows through
// Replace or ApplyEdit; the stored Value itself is never modified.
// Callers are expected to serialize access (the editor package does).
type Store struct {
	cur *Value
}

// NewStore returns a Store holding v. A nil v starts the store at null.
func NewStore(v *Value) *Store {
	if v == nil {
		v = Null()
	}
	return &Store{cur: v}
}

// Current returns the canonical value.
func (s *Store) Current() *Value { return s.cur }

// Replace swaps in a whole new document, typically after a successful
// text parse.
func (s *Store) Replace(v *Value) {
	if v == nil {
		v = Null()
	}
	s.cur = v
}

// ApplyEdit replaces the leaf at path with newLeaf and returns the new
// root. Every container along the path is shallow-copied; every
// subtree not on the path is carried over by reference, so the cost is
// O(depth) allocations regardless of document size.
//
// The empty path, a prefix that does not resolve to a composite, or an
// absent segment make the edit a no-op: the current value is returned
// unchanged together with ErrPathInvalid.
func (s *Store) ApplyEdit(path Path, newLeaf *Value) (*Value, error) {
	if len(path) == 0 || newLeaf == nil {
		return s.cur, ErrPathInvalid
	}
	next, err := graft(s.cur, path, newLeaf)
	if err != nil {
		return s.cur, err
	}
	s.cur = next
	return next, nil
}

// graft rebuilds the spine from v down to path's target, reusing all
// off-path subtrees by reference.
func graft(v *Value, path Path, leaf *Value) (*Value, error) {
	seg := path[0]
	switch v.Kind() {
	case KindObject:
		if seg.IsIndex {
			return nil, ErrPathInvalid
		}
		members := v.Members()
		at := -1
		for i := range members {
			if members[i].Key == seg.Key {
				at = i
				break
			}
		}
		if at < 0 {
			return nil, ErrPathInvalid
		}
		child := leaf
		if len(path) > 1 {
			var err error
			child, err = graft(members[at].Value, path[1:], leaf)
			if err != nil {
				return nil, err
			}
		}
		out := make([]Member, len(members))
		copy(out, members)
		out[at].Value = child
		return Object(out...), nil
	case KindArray:
		if !seg.IsIndex {
			return nil, ErrPathInvalid
		}
		elems := v.Elems()
		if seg.Index < 0 || seg.Index >= len(elems) {
			return nil, ErrPathInvalid
		}
		child := leaf
		if len(path) > 1 {
			var err error
			child, err = graft(elems[seg.Index], path[1:], leaf)
			if err != nil {
				return nil, err
			}
		}
		out := make([]*Value, len(elems))
		copy(out, elems)
		out[seg.Index] = child
		return Array(out...), nil
	default:
		return nil, ErrPathInvalid
	}
}
