// Package interp is the host adapter spec.md §6 describes: it wraps the
// lexer/parser/lang/builtin pipeline behind a single Run(source) entry
// point that returns an ordered list of OutputLine records, matching the
// "external interfaces" boundary between the language core and any host
// (a REPL, a batch runner, an IDE driver).
//
// Grounded on lisp/config.go's functional-option pattern
// (Config func(env *LEnv) *LVal, applied by NewEnv's caller) and on
// repl/repl.go and cmd/run.go's host-driving loops, reshaped into the
// single run(source) -> []OutputLine boundary spec.md §6 specifies
// instead of the teacher's direct-to-terminal printing.
package interp

import (
	"fmt"
	"strings"
	"time"

	"github.com/wisplang/wisp/builtin"
	"github.com/wisplang/wisp/lang"
	"github.com/wisplang/wisp/parser"
	"github.com/wisplang/wisp/wisperr"
)

// LineKind tags an OutputLine the way spec.md §6.2 requires.
type LineKind int

const (
	LineValue LineKind = iota
	LineError
	LineInfo
	LineTime
)

func (k LineKind) String() string {
	switch k {
	case LineValue:
		return "value"
	case LineError:
		return "error"
	case LineInfo:
		return "info"
	case LineTime:
		return "time"
	default:
		return "unknown"
	}
}

// OutputLine is the tagged record produced by Run, spec.md §6.2.
type OutputLine struct {
	Kind LineKind
	Text string
}

// Config holds the tunable knobs of an Interp, loadable from YAML so a
// host can ship a config file alongside its program the way the
// teacher's lisp.Config functions are composed at startup.
type Config struct {
	MaxCallDepth       int `yaml:"max_call_depth"`
	MaxMacroExpansions int `yaml:"max_macro_expansions"`
}

// DefaultConfig mirrors lang's own default caps.
func DefaultConfig() Config {
	return Config{
		MaxCallDepth:       lang.DefaultMaxCallDepth,
		MaxMacroExpansions: lang.DefaultMaxMacroExpansions,
	}
}

// Option configures an Interp at construction time, following the
// teacher's `type Config func(env *LEnv) *LVal` shape generalized to
// return an error instead of an in-band LVal sentinel.
type Option func(*Interp) error

// WithPrintSink installs the callback that receives `print` output,
// spec.md §6.3's "host print sink". Without this option print writes to
// os.Stdout, matching spec.md's stated default.
func WithPrintSink(sink func(string)) Option {
	return func(it *Interp) error {
		it.printSink = sink
		return nil
	}
}

// WithMaxCallDepth overrides the evaluator's recursion cap.
func WithMaxCallDepth(n int) Option {
	return func(it *Interp) error {
		if n <= 0 {
			return fmt.Errorf("max call depth must be positive, got %d", n)
		}
		it.cfg.MaxCallDepth = n
		return nil
	}
}

// WithMaxMacroExpansions overrides the macro expander's expansion cap.
func WithMaxMacroExpansions(n int) Option {
	return func(it *Interp) error {
		if n <= 0 {
			return fmt.Errorf("max macro expansions must be positive, got %d", n)
		}
		it.cfg.MaxMacroExpansions = n
		return nil
	}
}

// WithConfig applies every field of cfg at once, for a host that loaded
// Config from a YAML file.
func WithConfig(cfg Config) Option {
	return func(it *Interp) error {
		if cfg.MaxCallDepth > 0 {
			it.cfg.MaxCallDepth = cfg.MaxCallDepth
		}
		if cfg.MaxMacroExpansions > 0 {
			it.cfg.MaxMacroExpansions = cfg.MaxMacroExpansions
		}
		return nil
	}
}

// WithClock overrides the clock Run uses to time each evaluation,
// letting tests supply a deterministic func() time.Time instead of
// wall-clock time.Now.
func WithClock(clock func() time.Time) Option {
	return func(it *Interp) error {
		if clock == nil {
			return fmt.Errorf("clock must not be nil")
		}
		it.clock = clock
		return nil
	}
}

// Interp is one instance of the language core: a root environment plus
// the ambient settings that shape its evaluation. Per spec.md §5, two
// Interp instances share no state and neither is safe for concurrent use
// across goroutines. cfg's caps are threaded into every lang.EvalWithLimits
// call this instance makes rather than mutated into package-level state,
// so a second Interp with different caps can never affect this one.
type Interp struct {
	env       *lang.Env
	cfg       Config
	printSink func(string)
	clock     func() time.Time
}

// New builds an Interp with builtin primitives installed into a fresh
// root environment, applying every opt in order.
func New(opts ...Option) (*Interp, error) {
	it := &Interp{cfg: DefaultConfig(), clock: time.Now}
	for _, opt := range opts {
		if err := opt(it); err != nil {
			return nil, err
		}
	}
	it.env = builtin.NewRootEnv(it.printSink)
	return it, nil
}

// Env exposes the root environment, letting a host adapter or a test
// helper (wisptest evaluates against it directly) add its own bindings or
// evaluate outside Run.
func (it *Interp) Env() *lang.Env { return it.env }

// Run implements spec.md §6.1: lex + parse + evaluate source, returning
// an ordered list of output lines. On lex/parse failure the result is a
// single error line and no evaluation happens; otherwise each top-level
// expression yields at most one line, nil results are suppressed, and a
// final time line reports how many expressions ran and how long it took.
func (it *Interp) Run(source string) []OutputLine {
	start := it.clock()

	exprs, errs := parser.Parse(source)
	if len(errs) > 0 {
		return []OutputLine{{Kind: LineError, Text: formatParseErrors(errs)}}
	}

	var lines []OutputLine
	ran := 0
	for _, expr := range exprs {
		v, err := lang.EvalWithLimits(expr, it.env, it.cfg.MaxCallDepth, it.cfg.MaxMacroExpansions)
		ran++
		if err != nil {
			lines = append(lines, OutputLine{Kind: LineError, Text: err.Error()})
			continue
		}
		if v == lang.Nil {
			continue
		}
		lines = append(lines, OutputLine{Kind: LineValue, Text: lang.Display(v)})
	}

	elapsed := it.clock().Sub(start)
	lines = append(lines, OutputLine{
		Kind: LineTime,
		Text: fmt.Sprintf("%d expressions in %s", ran, elapsed.Round(time.Microsecond)),
	})
	return lines
}

func formatParseErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// KindOf exposes wisperr's error-kind extraction to hosts that only
// import interp, so they can label an error line without importing
// wisperr themselves.
func KindOf(err error) (wisperr.Kind, bool) {
	return wisperr.KindOf(err)
}
