// Package srcmap anchors document paths to line/column ranges in the
// raw source text. It keeps a disposable, format-preserving parse of
// the text as a side artifact purely for offset lookup; the canonical
// parsed Value carries no positions and is never consulted here.
package srcmap

import (
	"sort"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/tailscale/hujson"

	schemapad "github.com/reoring/schemapad"
)

// SourceRange is a 1-based line/column span. Columns count runes.
type SourceRange struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Mapper resolves paths within one version of the raw text. Build a
// new Mapper whenever the text changes; one Mapper serves any number
// of Locate calls against that version.
type Mapper struct {
	text       string
	root       hujson.Value
	lineStarts []int // byte offset of each line start, ascending
}

// NewMapper parses text with a format-preserving parser and builds the
// offset index. Returns nil when the text does not parse; every Locate
// on a nil Mapper degrades to "no range".
func NewMapper(text string) *Mapper {
	v, err := hujson.Parse([]byte(text))
	if err != nil {
		return nil
	}
	m := &Mapper{text: text, root: v}
	m.lineStarts = append(m.lineStarts, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			m.lineStarts = append(m.lineStarts, i+1)
		}
	}
	return m
}

// Locate walks the syntax tree along path and returns the span of the
// final node, or nil when any segment is absent from the current text.
// Paths produced against a newer or older document version may simply
// not exist here; that is a "no marker" outcome, not a fault.
func (m *Mapper) Locate(path schemapad.Path) *SourceRange {
	if m == nil {
		return nil
	}
	cur := &m.root
	for _, seg := range path {
		next := step(cur, seg)
		if next == nil {
			return nil
		}
		cur = next
	}
	r := &SourceRange{}
	r.StartLine, r.StartColumn = m.pos(cur.StartOffset)
	r.EndLine, r.EndColumn = m.pos(cur.EndOffset)
	return r
}

func step(cur *hujson.Value, seg schemapad.Segment) *hujson.Value {
	switch node := cur.Value.(type) {
	case *hujson.Object:
		if seg.IsIndex {
			return nil
		}
		for i := range node.Members {
			if memberKey(&node.Members[i]) == seg.Key {
				return &node.Members[i].Value
			}
		}
		return nil
	case *hujson.Array:
		if !seg.IsIndex || seg.Index < 0 || seg.Index >= len(node.Elements) {
			return nil
		}
		return &node.Elements[seg.Index]
	default:
		return nil
	}
}

func memberKey(mem *hujson.ObjectMember) string {
	lit, ok := mem.Name.Value.(hujson.Literal)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal([]byte(lit), &s); err != nil {
		return string(lit)
	}
	return s
}

// pos converts a byte offset into a 1-based line and rune column.
func (m *Mapper) pos(off int) (line, col int) {
	if off < 0 {
		off = 0
	}
	if off > len(m.text) {
		off = len(m.text)
	}
	i := sort.SearchInts(m.lineStarts, off+1) - 1
	return i + 1, utf8.RuneCountInString(m.text[m.lineStarts[i]:off]) + 1
}
