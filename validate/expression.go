package validate

import (
	"github.com/expr-lang/expr"
)

// ExpressionFormat adapts an expression-syntax checker to the schema
// compiler's boolean format hook. The hook can only answer yes or no,
// so failing checks stash the checker's full diagnostic per offending
// value; the engine retrieves it later to replace the compiler's
// generic format message.
type ExpressionFormat struct {
	diags map[string]string
}

// NewExpressionFormat returns an empty format checker.
func NewExpressionFormat() *ExpressionFormat {
	return &ExpressionFormat{diags: make(map[string]string)}
}

// Check reports whether v is a syntactically valid expression. Only
// strings are checked; other types pass so the type keyword can report
// them instead. Compilation is syntax-only: no environment is bound.
func (f *ExpressionFormat) Check(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if _, err := expr.Compile(s); err != nil {
		f.diags[s] = err.Error()
		return false
	}
	return true
}

// Diagnostic returns the stashed syntax error for a value that failed
// Check during the current cycle.
func (f *ExpressionFormat) Diagnostic(value string) (string, bool) {
	msg, ok := f.diags[value]
	return msg, ok
}

// Reset clears stashed diagnostics. The engine calls it at the start
// of each validation cycle so stale diagnostics never leak forward.
func (f *ExpressionFormat) Reset() {
	clear(f.diags)
}
