package tree

// Span is the inclusive row index range a renderer may materialize.
// An empty range has Last < First.
type Span struct {
	First int
	Last  int
}

// Window computes which visible rows intersect the viewport. Pure
// function of its arguments: First is the floor of scrollOffset over
// itemHeight, Last the ceiling of the viewport's bottom edge, clamped
// to the list. An empty list yields {0, -1} rather than an error.
func Window(totalVisible, itemHeight, scrollOffset, viewportHeight int) Span {
	if totalVisible <= 0 || itemHeight <= 0 {
		return Span{First: 0, Last: -1}
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	first := scrollOffset / itemHeight
	last := (scrollOffset + viewportHeight + itemHeight - 1) / itemHeight
	if last > totalVisible-1 {
		last = totalVisible - 1
	}
	if first > last {
		first = last
	}
	return Span{First: first, Last: last}
}

// Overscan widens s by n rows on each side, clamped to the list. Used
// by hosts that render a small margin for smoother scrolling.
func (s Span) Overscan(n, totalVisible int) Span {
	if s.Last < s.First || n <= 0 {
		return s
	}
	s.First -= n
	s.Last += n
	if s.First < 0 {
		s.First = 0
	}
	if s.Last > totalVisible-1 {
		s.Last = totalVisible - 1
	}
	return s
}
