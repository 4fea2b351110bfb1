package schemapad

import (
	json "github.com/goccy/go-json"
)

// Kind tags the variant stored in a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// Member is one object entry. Entry order is significant and preserved
// through parse, edit and serialize.
type Member struct {
	Key   string
	Value *Value
}

// Value is one immutable JSON document node. A Value is never mutated
// after construction; edits produce new Values (see Store.ApplyEdit).
// Numbers carry their source text as json.Number so that serialization
// reproduces the author's notation exactly.
type Value struct {
	kind    Kind
	boolv   bool
	numv    json.Number
	strv    string
	members []Member
	elems   []*Value
}

var nullValue = &Value{kind: KindNull}

// Null returns the null Value.
func Null() *Value { return nullValue }

// Bool returns a boolean Value.
func Bool(b bool) *Value { return &Value{kind: KindBool, boolv: b} }

// Number returns a number Value carrying text verbatim. The text must
// be a valid JSON number; Number does not validate it.
func Number(text string) *Value { return &Value{kind: KindNumber, numv: json.Number(text)} }

// String returns a string Value.
func String(s string) *Value { return &Value{kind: KindString, strv: s} }

// Object returns an object Value with the given members in order.
func Object(members ...Member) *Value { return &Value{kind: KindObject, members: members} }

// Array returns an array Value with the given elements in order.
func Array(elems ...*Value) *Value { return &Value{kind: KindArray, elems: elems} }

// Kind reports the variant tag.
func (v *Value) Kind() Kind { return v.kind }

// IsComposite reports whether v is an object or array.
func (v *Value) IsComposite() bool { return v.kind == KindObject || v.kind == KindArray }

// BoolValue returns the boolean payload (false for other kinds).
func (v *Value) BoolValue() bool { return v.boolv }

// NumberValue returns the number payload as source text.
func (v *Value) NumberValue() json.Number { return v.numv }

// StringValue returns the string payload ("" for other kinds).
func (v *Value) StringValue() string { return v.strv }

// Members returns the object entries in order. Callers must not modify
// the returned slice.
func (v *Value) Members() []Member { return v.members }

// Elems returns the array elements in order. Callers must not modify
// the returned slice.
func (v *Value) Elems() []*Value { return v.elems }

// ChildCount returns the number of direct children of a composite, 0
// otherwise.
func (v *Value) ChildCount() int {
	switch v.kind {
	case KindObject:
		return len(v.members)
	case KindArray:
		return len(v.elems)
	default:
		return 0
	}
}

// Member returns the value stored under key in an object.
func (v *Value) Member(key string) (*Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	for i := range v.members {
		if v.members[i].Key == key {
			return v.members[i].Value, true
		}
	}
	return nil, false
}

// Elem returns the i-th array element.
func (v *Value) Elem(i int) (*Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.elems) {
		return nil, false
	}
	return v.elems[i], true
}

// At resolves p against v, returning the addressed node.
func (v *Value) At(p Path) (*Value, bool) {
	cur := v
	for _, seg := range p {
		var ok bool
		if seg.IsIndex {
			cur, ok = cur.Elem(seg.Index)
		} else {
			cur, ok = cur.Member(seg.Key)
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Interface converts v into the generic representation the schema
// validator consumes: map[string]any / []any / json.Number / string /
// bool / nil. Object key order is not preserved in the result.
func (v *Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolv
	case KindNumber:
		return v.numv
	case KindString:
		return v.strv
	case KindObject:
		m := make(map[string]any, len(v.members))
		for i := range v.members {
			m[v.members[i].Key] = v.members[i].Value.Interface()
		}
		return m
	case KindArray:
		s := make([]any, len(v.elems))
		for i := range v.elems {
			s[i] = v.elems[i].Interface()
		}
		return s
	default:
		return nil
	}
}

// Equal reports deep equality of two Values. Numbers compare by source
// text, so 1 and 1.0 are not equal.
func Equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolv == b.boolv
	case KindNumber:
		return a.numv == b.numv
	case KindString:
		return a.strv == b.strv
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for i := range a.members {
			if a.members[i].Key != b.members[i].Key {
				return false
			}
			if !Equal(a.members[i].Value, b.members[i].Value) {
				return false
			}
		}
		return true
	case KindArray:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
