package editor

import (
	"time"

	schemapad "github.com/reoring/schemapad"
	"github.com/reoring/schemapad/validate"
)

// DefaultDebounceInterval is the quiet period both debounce timers
// wait for after the last triggering change.
const DefaultDebounceInterval = 300 * time.Millisecond

// Options bundles Controller configuration and host callbacks. Zero
// values pick defaults; nil callbacks are skipped. Callbacks are
// invoked outside the controller's lock, one at a time.
type Options struct {
	// DebounceInterval overrides DefaultDebounceInterval when > 0.
	DebounceInterval time.Duration

	// OnText receives the freshly serialized document after a tree
	// edit, for programmatic replacement of the text buffer.
	OnText func(text string)

	// OnParseError surfaces the parse error message whenever the text
	// fails to parse on settle; "" clears the surface.
	OnParseError func(msg string)

	// OnMarkers receives the complete replacement marker set after a
	// validation cycle. An empty slice clears all markers. Old and new
	// markers never coexist.
	OnMarkers func(markers []validate.Marker)

	// OnIssues receives diagnostics that are not schema violations:
	// duplicate-key warnings, parse failures, rejected edit paths.
	OnIssues func(iss schemapad.Issues)

	// Engine overrides the controller's validation engine. Tests
	// inject engines with scripted compilers here; nil picks
	// validate.NewEngine.
	Engine *validate.Engine
}

func (o *Options) interval() time.Duration {
	if o.DebounceInterval > 0 {
		return o.DebounceInterval
	}
	return DefaultDebounceInterval
}
