package schemapad

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

// Parse decodes standard JSON text into an ordered Value. Object entry
// order follows the source. Duplicate object keys are reported as
// Issues (last value wins, matching decoder behavior) without failing
// the parse. A non-nil error means the text is not valid JSON and no
// Value is produced.
func Parse(text string) (*Value, Issues, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var iss Issues
	v, err := parseValue(dec, nil, &iss)
	if err != nil {
		return nil, nil, err
	}
	// A document is exactly one JSON value.
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, fmt.Errorf("schemapad: trailing data after document")
	}
	return v, iss, nil
}

func parseValue(dec *json.Decoder, path Path, iss *Issues) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("schemapad: unexpected end of input")
		}
		return nil, err
	}
	return parseFromToken(dec, tok, path, iss)
}

func parseFromToken(dec *json.Decoder, tok json.Token, path Path, iss *Issues) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec, path, iss)
		case '[':
			return parseArray(dec, path, iss)
		}
		return nil, fmt.Errorf("schemapad: unexpected delimiter %q", t.String())
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(string(t)), nil
	case string:
		return String(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("schemapad: unexpected token %v", tok)
	}
}

func parseObject(dec *json.Decoder, path Path, iss *Issues) (*Value, error) {
	var members []Member
	seen := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("schemapad: object key is not a string")
		}
		child := path.Child(Key(key))
		v, err := parseValue(dec, child, iss)
		if err != nil {
			return nil, err
		}
		if i, dup := seen[key]; dup {
			*iss = AppendIssues(*iss, Issue{
				Path:    child.Pointer(),
				Code:    CodeDuplicateKey,
				Message: fmt.Sprintf("duplicate key %q; the later value wins", key),
			})
			members[i].Value = v
			continue
		}
		seen[key] = len(members)
		members = append(members, Member{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return Object(members...), nil
}

func parseArray(dec *json.Decoder, path Path, iss *Issues) (*Value, error) {
	var elems []*Value
	for dec.More() {
		v, err := parseValue(dec, path.Child(Index(len(elems))), iss)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, err
	}
	return Array(elems...), nil
}
