package schemapad

import "strings"

// ParseLeaf interprets a raw leaf-edit string as a scalar Value. The
// grammar, tried in order:
//
//   - "null", "true", "false" (after trimming surrounding whitespace)
//   - a token wrapped in double quotes: a string; the interior is taken
//     verbatim, no escape processing
//   - a token matching the JSON number grammar: a number (this rejects
//     leading zeros, a leading '+', hex, Infinity and NaN)
//
// Anything else is not committable: ParseLeaf returns (nil, false) and
// the caller must leave the prior value untouched. ParseLeaf never
// panics and never returns an error value.
func ParseLeaf(raw string) (*Value, bool) {
	tok := strings.TrimSpace(raw)
	switch tok {
	case "null":
		return Null(), true
	case "true":
		return Bool(true), true
	case "false":
		return Bool(false), true
	}
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		return String(tok[1 : len(tok)-1]), true
	}
	if isJSONNumber(tok) {
		return Number(tok), true
	}
	return nil, false
}

// isJSONNumber reports whether s matches the RFC 8259 number grammar.
func isJSONNumber(s string) bool {
	i, n := 0, len(s)
	if i < n && s[i] == '-' {
		i++
	}
	switch {
	case i < n && s[i] == '0':
		i++
	case i < n && s[i] >= '1' && s[i] <= '9':
		for i < n && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}
	if i < n && s[i] == '.' {
		i++
		if i >= n || !isDigit(s[i]) {
			return false
		}
		for i < n && isDigit(s[i]) {
			i++
		}
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < n && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if i >= n || !isDigit(s[i]) {
			return false
		}
		for i < n && isDigit(s[i]) {
			i++
		}
	}
	return i == n
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
