package validate

import (
	"bytes"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Violation is one raw schema violation before range anchoring.
type Violation struct {
	Pointer string // JSON Pointer into the document instance.
	Keyword string // Schema keyword that failed (minimum, format, ...).
	Message string
}

// Validator runs a compiled schema against a decoded document.
type Validator interface {
	Run(doc any) []Violation
}

// Compiler turns a parsed schema document into a Validator. The
// default implementation is backed by santhosh-tekuri/jsonschema; a
// test double can stand in because only this interface is consumed.
type Compiler interface {
	Compile(schema any) (Validator, error)
}

// NewSchemaCompiler returns the default Compiler. When fmtCheck is
// non-nil it is registered as the "expression" format assertion.
func NewSchemaCompiler(fmtCheck *ExpressionFormat) Compiler {
	return &schemaCompiler{expr: fmtCheck}
}

type schemaCompiler struct {
	expr *ExpressionFormat
}

const schemaResource = "mem://schema.json"

func (c *schemaCompiler) Compile(schema any) (Validator, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	comp := jsonschema.NewCompiler()
	comp.AssertFormat = true
	if c.expr != nil {
		comp.Formats["expression"] = c.expr.Check
	}
	if err := comp.AddResource(schemaResource, bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	sch, err := comp.Compile(schemaResource)
	if err != nil {
		return nil, err
	}
	return &schemaValidator{sch: sch}, nil
}

type schemaValidator struct {
	sch *jsonschema.Schema
}

func (v *schemaValidator) Run(doc any) []Violation {
	err := v.sch.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Violation{{Pointer: "", Keyword: "", Message: err.Error()}}
	}
	var out []Violation
	collectLeaves(ve, &out)
	return out
}

// collectLeaves flattens the cause tree into its leaf violations; the
// intermediate nodes only restate "doesn't validate" summaries.
func collectLeaves(ve *jsonschema.ValidationError, out *[]Violation) {
	if len(ve.Causes) == 0 {
		*out = append(*out, Violation{
			Pointer: ve.InstanceLocation,
			Keyword: keywordOf(ve.KeywordLocation),
			Message: ve.Message,
		})
		return
	}
	for _, c := range ve.Causes {
		collectLeaves(c, out)
	}
}

// keywordOf extracts the failing keyword from a keyword location such
// as /properties/age/minimum or /items/anyOf/1/type.
func keywordOf(loc string) string {
	segs := strings.Split(loc, "/")
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		if s == "" {
			continue
		}
		if _, err := strconv.Atoi(s); err == nil {
			continue
		}
		s = strings.ReplaceAll(s, "~1", "/")
		return strings.ReplaceAll(s, "~0", "~")
	}
	return ""
}
