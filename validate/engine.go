// Package validate compiles a user-supplied JSON Schema, runs it
// against the current document, and anchors each violation to a source
// range in the raw text. Schema compilation and expression syntax
// checking are external capabilities behind the Compiler and
// ExpressionFormat seams.
package validate

import (
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	schemapad "github.com/reoring/schemapad"
	"github.com/reoring/schemapad/srcmap"
)

// Marker is a validation violation anchored to a source range. The
// marker set for a document is always replaced wholesale, never
// patched incrementally.
type Marker struct {
	Path    schemapad.Path
	Keyword string
	Message string
	Range   srcmap.SourceRange
}

// Engine drives one validation cycle from schema text and document
// text to an anchored marker set.
type Engine struct {
	compiler Compiler
	expr     *ExpressionFormat
}

// NewEngine returns an Engine on the default schema compiler with the
// "expression" format wired in.
func NewEngine() *Engine {
	f := NewExpressionFormat()
	return &Engine{compiler: NewSchemaCompiler(f), expr: f}
}

// NewEngineWith returns an Engine on a custom Compiler. Expression
// diagnostics are unavailable unless the compiler consults fmtCheck.
func NewEngineWith(c Compiler, fmtCheck *ExpressionFormat) *Engine {
	return &Engine{compiler: c, expr: fmtCheck}
}

// Run executes the cycle:
//
//  1. Parse schema text (JSON, then YAML). Failure clears all markers;
//     an unparsable schema is not a document error.
//  2. Parse document text. Failure clears all markers; syntax errors
//     are a separate surface and are not conflated with schema errors.
//  3. Compile and run the schema.
//  4. Prefer stashed expression diagnostics over generic format
//     messages.
//  5. Anchor each violation to the current raw text, dropping any that
//     cannot be located.
//
// The returned slice is the complete replacement marker set; nil means
// no markers.
func (e *Engine) Run(docText, schemaText string) []Marker {
	schemaDoc, ok := parseSchemaText(schemaText)
	if !ok {
		return nil
	}
	doc, _, err := schemapad.Parse(docText)
	if err != nil {
		return nil
	}
	if e.expr != nil {
		e.expr.Reset()
	}
	validator, err := e.compiler.Compile(schemaDoc)
	if err != nil {
		return nil
	}
	violations := validator.Run(doc.Interface())
	if len(violations) == 0 {
		return nil
	}
	mapper := srcmap.NewMapper(docText)
	markers := make([]Marker, 0, len(violations))
	for _, v := range violations {
		path, ok := schemapad.PathFromPointer(v.Pointer, doc)
		if !ok {
			continue
		}
		r := mapper.Locate(path)
		if r == nil {
			continue
		}
		markers = append(markers, Marker{
			Path:    path,
			Keyword: v.Keyword,
			Message: e.messageFor(v, doc, path),
			Range:   *r,
		})
	}
	if len(markers) == 0 {
		return nil
	}
	return markers
}

// messageFor swaps in the expression checker's diagnostic when a
// format violation has one stashed for the offending value.
func (e *Engine) messageFor(v Violation, doc *schemapad.Value, path schemapad.Path) string {
	if e.expr == nil || v.Keyword != "format" {
		return v.Message
	}
	node, ok := doc.At(path)
	if !ok || node.Kind() != schemapad.KindString {
		return v.Message
	}
	if msg, ok := e.expr.Diagnostic(node.StringValue()); ok {
		return msg
	}
	return v.Message
}

// parseSchemaText decodes schema text as JSON first, then as YAML.
// JSON Schema is routinely authored in YAML; JSON is tried first so
// number fidelity follows the JSON rules when both would succeed.
func parseSchemaText(text string) (any, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	var doc any
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	if err := dec.Decode(&doc); err == nil {
		return doc, true
	}
	doc = nil
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, false
	}
	return doc, true
}
