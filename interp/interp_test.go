package interp_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisplang/wisp/interp"
)

func lastValueLines(t *testing.T, lines []interp.OutputLine) []string {
	t.Helper()
	var out []string
	for _, l := range lines {
		if l.Kind == interp.LineValue {
			out = append(out, l.Text)
		}
	}
	return out
}

func TestRunProducesValueLines(t *testing.T) {
	it, err := interp.New()
	require.NoError(t, err)
	lines := it.Run(`(+ 1 2 3)`)
	require.NotEmpty(t, lines)
	assert.Equal(t, []string{"6"}, lastValueLines(t, lines))
	assert.Equal(t, interp.LineTime, lines[len(lines)-1].Kind)
}

func TestRunSuppressesNilResults(t *testing.T) {
	it, err := interp.New()
	require.NoError(t, err)
	lines := it.Run(`(def x 1)`)
	assert.Empty(t, lastValueLines(t, lines))
}

func TestRunReportsErrorPerExpressionAndContinues(t *testing.T) {
	it, err := interp.New()
	require.NoError(t, err)
	lines := it.Run(`undefined_thing (+ 1 1)`)
	var kinds []interp.LineKind
	for _, l := range lines {
		kinds = append(kinds, l.Kind)
	}
	assert.Contains(t, kinds, interp.LineError)
	assert.Contains(t, kinds, interp.LineValue)
}

func TestRunLexParseFailureYieldsSingleErrorLine(t *testing.T) {
	it, err := interp.New()
	require.NoError(t, err)
	lines := it.Run(`(+ 1 2`)
	require.Len(t, lines, 1)
	assert.Equal(t, interp.LineError, lines[0].Kind)
}

func TestPrintSinkReceivesOutput(t *testing.T) {
	var out strings.Builder
	it, err := interp.New(interp.WithPrintSink(func(s string) { out.WriteString(s) }))
	require.NoError(t, err)
	it.Run(`(print "hello")`)
	assert.Equal(t, "hello", out.String())
}

func TestFormatterRulesForCollectionsAndFunctions(t *testing.T) {
	it, err := interp.New()
	require.NoError(t, err)
	lines := it.Run(`(list 1 2) [1 2] {:a 1} (fn [x] x)`)
	got := lastValueLines(t, lines)
	require.Len(t, got, 4)
	assert.Equal(t, "(1 2)", got[0])
	assert.Equal(t, "[1 2]", got[1])
	assert.Equal(t, "{:a 1}", got[2])
	assert.Equal(t, "#<fn>", got[3])
}

func TestNumberFormattingHasNoTrailingZero(t *testing.T) {
	it, err := interp.New()
	require.NoError(t, err)
	lines := it.Run(`(/ 4 2) (/ 1 4)`)
	got := lastValueLines(t, lines)
	assert.Equal(t, []string{"2", "0.25"}, got)
}

func TestWithClockMakesTimingDeterministic(t *testing.T) {
	tick := time.Unix(0, 0)
	it, err := interp.New(interp.WithClock(func() time.Time {
		t := tick
		tick = tick.Add(3 * time.Second)
		return t
	}))
	require.NoError(t, err)
	lines := it.Run(`(+ 1 1)`)
	last := lines[len(lines)-1]
	require.Equal(t, interp.LineTime, last.Kind)
	assert.Contains(t, last.Text, "3s")
}

func TestWithClockRejectsNil(t *testing.T) {
	_, err := interp.New(interp.WithClock(nil))
	assert.Error(t, err)
}

func TestWithMaxCallDepthIsPerInstance(t *testing.T) {
	shallow, err := interp.New(interp.WithMaxCallDepth(3))
	require.NoError(t, err)
	deep, err := interp.New()
	require.NoError(t, err)

	recurse := `(defn count-down [n] (if (<= n 0) 0 (count-down (- n 1)))) (count-down 100)`
	shallowLines := shallow.Run(recurse)
	deepLines := deep.Run(recurse)

	var shallowKinds, deepKinds []interp.LineKind
	for _, l := range shallowLines {
		shallowKinds = append(shallowKinds, l.Kind)
	}
	for _, l := range deepLines {
		deepKinds = append(deepKinds, l.Kind)
	}
	assert.Contains(t, shallowKinds, interp.LineError, "an instance with a low call depth cap should hit it")
	assert.Equal(t, []string{"0"}, lastValueLines(t, deepLines), "a second, unconfigured instance must not inherit the first instance's cap")
}
