package schemapad

// Package schemapad is the core of a schema-validating JSON document
// editor. It keeps three representations of one document consistent
// under frequent partial edits: the raw text, the canonical parsed
// value, and a flattened tree projection for windowed display.
//
// The root package holds the document model:
//
// - An ordered, immutable Value variant (numbers kept as source text)
// - JSON Pointer style Paths with value-aware pointer parsing
// - An order-preserving parser/serializer pair with duplicate-key Issues
// - A Store whose ApplyEdit shares all unedited subtrees by reference
// - The leaf-edit grammar (ParseLeaf)
//
// Design policy:
// - Keep the document model in the root package; put projections and
//   orchestration under tree/, srcmap/, validate/ and editor/.
// - Values are never mutated in place; consumers may use pointer
//   equality to skip work on unchanged substructure.
// - Faults degrade to no-ops or messages, never panics.
//
// Typical usage:
//
//	v, iss, err := schemapad.Parse(text)
//	st := schemapad.NewStore(v)
//	leaf, ok := schemapad.ParseLeaf("42")
//	next, err := st.ApplyEdit(path, leaf)
//	text2 := schemapad.Serialize(next)
