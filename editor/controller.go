// Package editor orchestrates the text<->value synchronization
// lifecycle: debounced parse-on-text-change, synchronous tree-edit
// commits with reserialization, and generation-stamped schema
// re-validation. There is no parallelism inside the core; the two
// debounce timers are the only suspension points. Their callbacks run
// on timer goroutines, so the controller serializes them: settleMu
// admits one settle (and its host callbacks) at a time, and mu guards
// the snapshot state.
package editor

import (
	"sync"
	"time"

	"github.com/valyala/fastjson"

	schemapad "github.com/reoring/schemapad"
	"github.com/reoring/schemapad/validate"
)

// State names the synchronization lifecycle phase.
type State int

const (
	StateIdle State = iota
	StatePendingParse
	StateClean
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePendingParse:
		return "pending-parse"
	case StateClean:
		return "clean"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Controller owns the canonical value's lifecycle. Text changes settle
// through a debounce timer; tree edits commit synchronously. A
// transient invalid edit never corrupts the canonical value: the store
// keeps the last-known-good document until the text parses again.
type Controller struct {
	mu     sync.Mutex
	opts   Options
	store  *schemapad.Store
	engine *validate.Engine

	state      State
	docText    string
	schemaText string
	parseErr   string

	docTimer    *time.Timer
	schemaTimer *time.Timer

	// settleMu serializes settle work and host callbacks. The two
	// debounce timers fire on their own goroutines and the engine's
	// format checker keeps per-cycle state, so at most one settle may
	// run the engine or deliver callbacks at a time. Lock order:
	// settleMu before mu, never the reverse.
	settleMu sync.Mutex

	// gen stamps each accepted change; an in-flight validation cycle
	// whose stamp no longer matches is discarded, never applied over
	// newer state. Starting a new debounce cycle is the sole
	// cancellation mechanism.
	gen uint64
}

// NewController returns a Controller over store. Options.Engine
// overrides the default validation engine.
func NewController(store *schemapad.Store, opts Options) *Controller {
	if store == nil {
		store = schemapad.NewStore(nil)
	}
	engine := opts.Engine
	if engine == nil {
		engine = validate.NewEngine()
	}
	return &Controller{
		opts:   opts,
		store:  store,
		engine: engine,
		state:  StateIdle,
	}
}

// Store exposes the canonical value store.
func (c *Controller) Store() *schemapad.Store { return c.store }

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Text returns the current raw document text.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.docText
}

// ParseError returns the surfaced parse error message, "" when none.
func (c *Controller) ParseError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parseErr
}

// SetText records a document text change and (re)starts the document
// debounce timer. Intermediate states during a burst are never parsed;
// the last write wins.
func (c *Controller) SetText(text string) {
	c.mu.Lock()
	c.docText = text
	c.state = StatePendingParse
	c.gen++
	restart(&c.docTimer, c.opts.interval(), c.settleDoc)
	c.mu.Unlock()
}

// SetSchema records a schema text change on its own, independent
// debounce timer.
func (c *Controller) SetSchema(text string) {
	c.mu.Lock()
	c.schemaText = text
	c.gen++
	restart(&c.schemaTimer, c.opts.interval(), c.settleValidate)
	c.mu.Unlock()
}

// CommitLeafEdit applies a tree-cell edit synchronously: the raw edit
// string passes the leaf grammar, the store grafts the new leaf, and
// the whole document is reserialized (two-space indent, key order
// preserved) and pushed to the text host. Rejected edits leave
// everything untouched and report false; an invalid path additionally
// surfaces a path_invalid Issue.
func (c *Controller) CommitLeafEdit(path schemapad.Path, raw string) bool {
	leaf, ok := schemapad.ParseLeaf(raw)
	if !ok {
		return false
	}
	c.settleMu.Lock()
	defer c.settleMu.Unlock()

	c.mu.Lock()
	next, err := c.store.ApplyEdit(path, leaf)
	if err != nil {
		c.mu.Unlock()
		if c.opts.OnIssues != nil {
			c.opts.OnIssues(schemapad.Issues{{
				Path:    path.Pointer(),
				Code:    schemapad.CodePathInvalid,
				Message: err.Error(),
			}})
		}
		return false
	}
	text := schemapad.Serialize(next)
	c.docText = text
	c.state = StateClean
	c.parseErr = ""
	c.gen++
	// The value changed, so schema validation re-runs after the usual
	// quiet period; the commit itself stays synchronous. The text was
	// serialized from the canonical value, so there is nothing to
	// re-parse: replacing the store here would throw away the
	// structural sharing the edit just established.
	restart(&c.docTimer, c.opts.interval(), c.settleValidate)
	c.mu.Unlock()

	if c.opts.OnText != nil {
		c.opts.OnText(text)
	}
	if c.opts.OnParseError != nil {
		c.opts.OnParseError("")
	}
	return true
}

// Stop cancels any pending debounce timers.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.docTimer != nil {
		c.docTimer.Stop()
	}
	if c.schemaTimer != nil {
		c.schemaTimer.Stop()
	}
}

func restart(t **time.Timer, d time.Duration, fn func()) {
	if *t != nil {
		(*t).Stop()
	}
	*t = time.AfterFunc(d, fn)
}

// settleDoc fires when the document text has been quiet for the
// debounce interval.
func (c *Controller) settleDoc() {
	c.settleMu.Lock()
	defer c.settleMu.Unlock()

	c.mu.Lock()
	text := c.docText
	// Fast syntax gate first; its error message is the surfaced one.
	err := fastjson.Validate(text)
	var v *schemapad.Value
	var iss schemapad.Issues
	if err == nil {
		v, iss, err = schemapad.Parse(text)
	}
	if err != nil {
		c.state = StateInvalid
		c.parseErr = err.Error()
		c.mu.Unlock()
		if c.opts.OnParseError != nil {
			c.opts.OnParseError(err.Error())
		}
		if c.opts.OnIssues != nil {
			c.opts.OnIssues(schemapad.Issues{{
				Code:    schemapad.CodeParseError,
				Message: err.Error(),
			}})
		}
		return
	}
	c.state = StateClean
	c.parseErr = ""
	c.store.Replace(v)
	gen := c.gen
	schema := c.schemaText
	c.mu.Unlock()

	if c.opts.OnParseError != nil {
		c.opts.OnParseError("")
	}
	if len(iss) > 0 && c.opts.OnIssues != nil {
		c.opts.OnIssues(iss)
	}
	c.runValidation(gen, text, schema)
}

// settleValidate fires when the schema text has been quiet, or after a
// tree edit's quiet period. The document text is validated as-is; if
// it is currently unparsable the engine clears the markers.
func (c *Controller) settleValidate() {
	c.settleMu.Lock()
	defer c.settleMu.Unlock()

	c.mu.Lock()
	gen := c.gen
	text := c.docText
	schema := c.schemaText
	c.mu.Unlock()
	c.runValidation(gen, text, schema)
}

// runValidation executes one engine cycle and applies the result only
// when no newer change superseded it. Callers hold settleMu, so the
// engine runs single-flight and marker sets are delivered in order.
func (c *Controller) runValidation(gen uint64, docText, schemaText string) {
	markers := c.engine.Run(docText, schemaText)
	c.mu.Lock()
	stale := gen != c.gen
	c.mu.Unlock()
	if stale {
		return
	}
	if c.opts.OnMarkers != nil {
		c.opts.OnMarkers(markers)
	}
}
