package editor

import (
	"testing"
	"time"

	schemapad "github.com/reoring/schemapad"
	"github.com/reoring/schemapad/validate"
)

const testDebounce = 5 * time.Millisecond

// settle waits out a few debounce intervals so pending timers fire.
func settle() { time.Sleep(20 * testDebounce) }

func newTestController(opts Options) *Controller {
	opts.DebounceInterval = testDebounce
	return NewController(schemapad.NewStore(nil), opts)
}

func TestSetText_ValidSettlesClean(t *testing.T) {
	parseErrs := make(chan string, 16)
	c := newTestController(Options{
		OnParseError: func(msg string) { parseErrs <- msg },
	})
	defer c.Stop()

	c.SetText(`{"a": 1}`)
	if got := c.State(); got != StatePendingParse {
		t.Fatalf("state before settle: %s", got)
	}
	settle()
	if got := c.State(); got != StateClean {
		t.Fatalf("state after settle: %s", got)
	}
	v, ok := c.Store().Current().Member("a")
	if !ok || string(v.NumberValue()) != "1" {
		t.Fatalf("canonical value not replaced: %s", schemapad.Serialize(c.Store().Current()))
	}
	select {
	case msg := <-parseErrs:
		if msg != "" {
			t.Fatalf("expected cleared parse error, got %q", msg)
		}
	default:
		t.Fatalf("expected a parse-error clear callback")
	}
}

func TestSetText_InvalidKeepsLastGoodValue(t *testing.T) {
	c := newTestController(Options{})
	defer c.Stop()

	c.SetText(`{"a": 1}`)
	settle()
	good := c.Store().Current()

	c.SetText(`{"a": `)
	settle()
	if got := c.State(); got != StateInvalid {
		t.Fatalf("state: %s", got)
	}
	if c.ParseError() == "" {
		t.Fatalf("expected a surfaced parse error")
	}
	if c.Store().Current() != good {
		t.Fatalf("canonical value must survive an invalid edit")
	}

	// Recovery clears the surface.
	c.SetText(`{"a": 2}`)
	settle()
	if c.State() != StateClean || c.ParseError() != "" {
		t.Fatalf("state=%s parseErr=%q after recovery", c.State(), c.ParseError())
	}
}

func TestSetText_DebounceLastWriteWins(t *testing.T) {
	c := newTestController(Options{})
	defer c.Stop()

	c.SetText(`{"v": 1}`)
	c.SetText(`{"v": 2}`)
	c.SetText(`{"v": 3}`)
	settle()
	v, _ := c.Store().Current().Member("v")
	if string(v.NumberValue()) != "3" {
		t.Fatalf("expected the last write to win, got %s", v.NumberValue())
	}
}

func TestCommitLeafEdit_SynchronousAndSerialized(t *testing.T) {
	texts := make(chan string, 16)
	c := newTestController(Options{
		OnText: func(s string) { texts <- s },
	})
	defer c.Stop()

	c.SetText(`{"a":1,"b":[2,3]}`)
	settle()

	ok := c.CommitLeafEdit(schemapad.Path{schemapad.Key("b"), schemapad.Index(0)}, "20")
	if !ok {
		t.Fatalf("expected commit")
	}
	// Synchronous: the value and text are updated before the call returns.
	got, _ := c.Store().Current().At(schemapad.Path{schemapad.Key("b"), schemapad.Index(0)})
	if string(got.NumberValue()) != "20" {
		t.Fatalf("edit did not land")
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    20,\n    3\n  ]\n}"
	select {
	case text := <-texts:
		if text != want {
			t.Fatalf("pushed text:\n%s\nwant:\n%s", text, want)
		}
	default:
		t.Fatalf("expected a text push")
	}
	if c.Text() != want {
		t.Fatalf("controller text not updated")
	}
}

func TestCommitLeafEdit_RejectedLeavesEverythingUntouched(t *testing.T) {
	c := newTestController(Options{})
	defer c.Stop()
	c.SetText(`{"a": 1}`)
	settle()
	before := c.Store().Current()
	beforeText := c.Text()

	if c.CommitLeafEdit(schemapad.Path{schemapad.Key("a")}, "not a value") {
		t.Fatalf("expected rejection")
	}
	if c.CommitLeafEdit(schemapad.Path{schemapad.Key("missing")}, "1") {
		t.Fatalf("expected rejection for an invalid path")
	}
	if c.Store().Current() != before || c.Text() != beforeText {
		t.Fatalf("rejected edit must not change state")
	}
}

func TestValidationCycle_MarkersReplacedAtomically(t *testing.T) {
	markerSets := make(chan []validate.Marker, 16)
	c := newTestController(Options{
		OnMarkers: func(ms []validate.Marker) { markerSets <- ms },
	})
	defer c.Stop()

	c.SetSchema(`{"type":"object","properties":{"age":{"minimum":18}}}`)
	c.SetText("{\n  \"age\": 16\n}")
	settle()

	var last []validate.Marker
	for {
		select {
		case ms := <-markerSets:
			last = ms
			continue
		default:
		}
		break
	}
	if len(last) != 1 || last[0].Keyword != "minimum" {
		t.Fatalf("expected one minimum marker, got %+v", last)
	}
	if last[0].Range.StartLine != 2 {
		t.Fatalf("marker not anchored: %+v", last[0].Range)
	}

	// Fixing the document clears the set wholesale.
	c.SetText("{\n  \"age\": 21\n}")
	settle()
	for {
		select {
		case ms := <-markerSets:
			last = ms
			continue
		default:
		}
		break
	}
	if len(last) != 0 {
		t.Fatalf("expected markers cleared, got %+v", last)
	}
}

func TestSchemaChange_InvalidSchemaClearsMarkers(t *testing.T) {
	markerSets := make(chan []validate.Marker, 16)
	c := newTestController(Options{
		OnMarkers: func(ms []validate.Marker) { markerSets <- ms },
	})
	defer c.Stop()

	c.SetSchema(`{"type":"object","required":["age"]}`)
	c.SetText(`{}`)
	settle()
	var last []validate.Marker
	drain := func() {
		for {
			select {
			case ms := <-markerSets:
				last = ms
				continue
			default:
			}
			break
		}
	}
	drain()
	if len(last) != 1 {
		t.Fatalf("expected one required marker, got %+v", last)
	}

	// Schema text becomes invalid JSON mid-edit: markers clear, the
	// document view keeps its value, no fault.
	c.SetSchema(`{"type": `)
	settle()
	drain()
	if len(last) != 0 {
		t.Fatalf("expected markers cleared, got %+v", last)
	}
	if c.Store().Current().Kind() != schemapad.KindObject {
		t.Fatalf("document value must survive a schema fault")
	}
}

func TestDuplicateKeyIssuesSurface(t *testing.T) {
	issues := make(chan schemapad.Issues, 4)
	c := newTestController(Options{
		OnIssues: func(iss schemapad.Issues) { issues <- iss },
	})
	defer c.Stop()

	c.SetText(`{"a":1,"a":2}`)
	settle()
	select {
	case iss := <-issues:
		if len(iss) != 1 || iss[0].Code != schemapad.CodeDuplicateKey {
			t.Fatalf("got %+v", iss)
		}
	default:
		t.Fatalf("expected duplicate-key issues")
	}
}

func TestSetText_ParseFailureSurfacesIssue(t *testing.T) {
	issues := make(chan schemapad.Issues, 4)
	c := newTestController(Options{
		OnIssues: func(iss schemapad.Issues) { issues <- iss },
	})
	defer c.Stop()

	c.SetText(`{"a": `)
	settle()
	select {
	case iss := <-issues:
		if len(iss) != 1 || iss[0].Code != schemapad.CodeParseError {
			t.Fatalf("got %+v", iss)
		}
		if iss[0].Message == "" {
			t.Fatalf("expected a diagnostic message")
		}
	default:
		t.Fatalf("expected a parse-error issue")
	}
}

func TestCommitLeafEdit_InvalidPathSurfacesIssue(t *testing.T) {
	issues := make(chan schemapad.Issues, 4)
	c := newTestController(Options{
		OnIssues: func(iss schemapad.Issues) { issues <- iss },
	})
	defer c.Stop()
	c.SetText(`{"a": 1}`)
	settle()

	if c.CommitLeafEdit(schemapad.Path{schemapad.Key("missing")}, "1") {
		t.Fatalf("expected rejection")
	}
	select {
	case iss := <-issues:
		if len(iss) != 1 || iss[0].Code != schemapad.CodePathInvalid {
			t.Fatalf("got %+v", iss)
		}
		if iss[0].Path != "/missing" {
			t.Fatalf("issue path: %q", iss[0].Path)
		}
	default:
		t.Fatalf("expected a path-invalid issue")
	}
}

// gateCompiler parks Compile until the gate closes, widening the
// window between a validation cycle starting and finishing.
type gateCompiler struct {
	gate  chan struct{}
	inner validate.Compiler
}

func (g *gateCompiler) Compile(schema any) (validate.Validator, error) {
	<-g.gate
	return g.inner.Compile(schema)
}

func TestValidationCycle_SupersededResultNeverDelivered(t *testing.T) {
	gate := make(chan struct{})
	markerSets := make(chan []validate.Marker, 16)
	c := newTestController(Options{
		Engine: validate.NewEngineWith(
			&gateCompiler{gate: gate, inner: validate.NewSchemaCompiler(nil)}, nil),
		OnMarkers: func(ms []validate.Marker) { markerSets <- ms },
	})
	defer c.Stop()

	c.SetSchema(`{"type":"object","properties":{"age":{"minimum":18}}}`)
	c.SetText("{\n  \"age\": 16\n}")
	// Let the timers fire; the first cycle is now parked in Compile
	// with a violating snapshot.
	time.Sleep(5 * testDebounce)

	// A newer, violation-free document supersedes the parked cycle
	// before it can finish.
	c.SetText("{\n  \"age\": 30\n}")
	close(gate)
	settle()

	delivered := 0
	for {
		select {
		case ms := <-markerSets:
			delivered++
			if len(ms) != 0 {
				t.Fatalf("superseded cycle delivered markers: %+v", ms)
			}
			continue
		default:
		}
		break
	}
	if delivered == 0 {
		t.Fatalf("expected the fresh cycle to deliver a marker set")
	}
}

func TestValidation_InterleavedDocAndSchemaBursts(t *testing.T) {
	markerSets := make(chan []validate.Marker, 256)
	c := newTestController(Options{
		OnMarkers: func(ms []validate.Marker) { markerSets <- ms },
	})
	defer c.Stop()

	// Document and schema settles land on separate timer goroutines;
	// the expression format checker carries per-cycle state, so the
	// interleaving must stay serialized.
	schema := `{"type":"object","properties":{"calc":{"type":"string","format":"expression"}}}`
	doc := `{"calc": "1 +"}`
	for i := 0; i < 30; i++ {
		c.SetText(doc)
		c.SetSchema(schema)
		time.Sleep(2 * testDebounce)
	}
	settle()

	var last []validate.Marker
	for {
		select {
		case ms := <-markerSets:
			last = ms
			continue
		default:
		}
		break
	}
	if len(last) != 1 || last[0].Keyword != "format" {
		t.Fatalf("expected one format marker after the burst, got %+v", last)
	}
}
