package schemapad

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

const indentUnit = "  "

// Serialize renders v as JSON text with two-space indentation and
// object key order preserved. Parse(Serialize(v)) yields a Value
// deeply equal to v.
func Serialize(v *Value) string {
	var b strings.Builder
	writeValue(&b, v, 0)
	return b.String()
}

func writeValue(b *strings.Builder, v *Value, depth int) {
	switch v.Kind() {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.BoolValue()))
	case KindNumber:
		b.WriteString(string(v.NumberValue()))
	case KindString:
		writeString(b, v.StringValue())
	case KindObject:
		members := v.Members()
		if len(members) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i := range members {
			writeIndent(b, depth+1)
			writeString(b, members[i].Key)
			b.WriteString(": ")
			writeValue(b, members[i].Value, depth+1)
			if i < len(members)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte('}')
	case KindArray:
		elems := v.Elems()
		if len(elems) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i := range elems {
			writeIndent(b, depth+1)
			writeValue(b, elems[i], depth+1)
			if i < len(elems)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte(']')
	}
}

func writeString(b *strings.Builder, s string) {
	// json.Marshal of a string cannot fail; it supplies the escaping.
	enc, _ := json.Marshal(s)
	b.Write(enc)
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indentUnit)
	}
}
