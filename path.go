package schemapad

import (
	"strconv"
	"strings"
)

// Segment is one step of member or index access.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns an object-member segment.
func Key(k string) Segment { return Segment{Key: k} }

// Index returns an array-element segment.
func Index(i int) Segment { return Segment{Index: i, IsIndex: true} }

// Path addresses a location inside a Value by repeated member/index
// access from the root. The empty Path addresses the root itself.
type Path []Segment

// Child returns p extended by seg. The result never aliases p's
// backing array, so stored Paths stay stable.
func (p Path) Child(seg Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// Pointer renders p as a JSON Pointer (RFC 6901), e.g. /items/2/price.
// The root path renders as "".
func (p Path) Pointer() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		if seg.IsIndex {
			b.WriteString(strconv.Itoa(seg.Index))
			continue
		}
		b.WriteString(escapePointerSegment(seg.Key))
	}
	return b.String()
}

func (p Path) String() string { return p.Pointer() }

func escapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

func unescapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// PathFromPointer parses a JSON Pointer against root. The value is
// needed to disambiguate numeric segments: "0" is an index under an
// array but a key under an object. Returns false when the pointer is
// malformed or does not resolve inside root.
func PathFromPointer(ptr string, root *Value) (Path, bool) {
	if ptr == "" {
		return Path{}, true
	}
	if ptr[0] != '/' {
		return nil, false
	}
	cur := root
	var p Path
	for _, raw := range strings.Split(ptr[1:], "/") {
		name := unescapePointerSegment(raw)
		if cur == nil {
			return nil, false
		}
		switch cur.Kind() {
		case KindObject:
			next, ok := cur.Member(name)
			if !ok {
				return nil, false
			}
			p = append(p, Key(name))
			cur = next
		case KindArray:
			i, err := strconv.Atoi(name)
			if err != nil {
				return nil, false
			}
			next, ok := cur.Elem(i)
			if !ok {
				return nil, false
			}
			p = append(p, Index(i))
			cur = next
		default:
			return nil, false
		}
	}
	return p, true
}
