package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefPositionAtTracksLineAndColumn(t *testing.T) {
	input := []rune("ab\ncd\nef")
	assert.Equal(t, refPosition{line: 1, col: 1, offset: 0}, refPositionAt(input, 0))
	assert.Equal(t, refPosition{line: 1, col: 3, offset: 2}, refPositionAt(input, 2))
	assert.Equal(t, refPosition{line: 2, col: 1, offset: 3}, refPositionAt(input, 3))
	assert.Equal(t, refPosition{line: 3, col: 2, offset: 7}, refPositionAt(input, 7))
}

func TestRefPositionAtTreatsCRLFAsOneBreak(t *testing.T) {
	input := []rune("a\r\nb")
	assert.Equal(t, refPosition{line: 2, col: 1, offset: 3}, refPositionAt(input, 3))
}

func TestRefPositionAtTreatsLoneCRAndUnicodeSeparatorsAsOneBreakEach(t *testing.T) {
	assert.Equal(t, refPosition{line: 2, col: 1, offset: 2}, refPositionAt([]rune("a\rb"), 2))
	assert.Equal(t, refPosition{line: 2, col: 1, offset: 2}, refPositionAt([]rune("a b"), 2))
	assert.Equal(t, refPosition{line: 2, col: 1, offset: 2}, refPositionAt([]rune("a b"), 2))
}

func TestRefBuildExpectedMessageEndOfInputWhenEmpty(t *testing.T) {
	assert.Equal(t, "end of input", refBuildExpectedMessage(nil))
}

func TestRefBuildExpectedMessageSingleEntry(t *testing.T) {
	assert.Equal(t, `"hello"`, refBuildExpectedMessage([]string{`"hello"`}))
}

func TestRefBuildExpectedMessageSortsDedupesAndJoinsWithOr(t *testing.T) {
	// Scenario e: `start = a / b; a = "foo"; b = "bar"` failing on "baz"
	// must report the alphabetized expected set "\"bar\" or \"foo\"".
	got := refBuildExpectedMessage([]string{`"foo"`, `"bar"`, `"foo"`})
	assert.Equal(t, `"bar" or "foo"`, got)
}

func TestRefBuildParseErrorScenarioALiteralMismatch(t *testing.T) {
	// Scenario a: start = "hello"; input "hell" fails at offset 0, where
	// the literal starts, with a message naming the expected literal.
	msg, line, col := refBuildParseError([]rune("hell"), 0, []string{`"hello"`})
	assert.Contains(t, msg, `"hello"`)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}

func TestRefBuildParseErrorScenarioBPartialParse(t *testing.T) {
	// Scenario b: start = "a"*; input "aab" fails to consume "b" at
	// column 3.
	_, _, col := refBuildParseError([]rune("aab"), 2, []string{`"a"`})
	assert.Equal(t, 3, col)
}

func TestRefBuildParseErrorScenarioCClassMismatch(t *testing.T) {
	// Scenario c: start = digits:[0-9]+ ...; input "4x" fails expecting
	// [0-9] at column 2.
	msg, _, col := refBuildParseError([]rune("4x"), 1, []string{"[0-9]"})
	assert.Contains(t, msg, "[0-9]")
	assert.Equal(t, 2, col)
}

func TestRefBuildParseErrorScenarioDLookaheadFailure(t *testing.T) {
	// Scenario d: start = &"x" "x"; input "y" fails at column 1.
	_, _, col := refBuildParseError([]rune("y"), 0, []string{`"x"`})
	assert.Equal(t, 1, col)
}

func TestRefBuildParseErrorScenarioEChoiceExpectedSet(t *testing.T) {
	// Scenario e: input "baz" against `a / b` ("foo"/"bar") reports the
	// alphabetized expected set.
	msg, _, _ := refBuildParseError([]rune("baz"), 0, []string{`"foo"`, `"bar"`})
	assert.Contains(t, msg, `"bar" or "foo"`)
}

func TestRefBuildParseErrorReportsEndOfInputWhenExhausted(t *testing.T) {
	msg, line, col := refBuildParseError([]rune("ab"), 2, []string{`"c"`})
	assert.Contains(t, msg, "end of input")
	assert.Equal(t, 1, line)
	assert.Equal(t, 3, col)
}

func TestRefQuoteCharControlAndUnicodeForms(t *testing.T) {
	assert.Equal(t, `"a"`, refQuoteChar('a'))
	assert.Equal(t, `"\n"`, refQuoteChar('\n'))
	assert.Equal(t, `"\x00"`, refQuoteChar(0))
	assert.Equal(t, `" "`, refQuoteChar(' '))
}

func TestRuntimeScaffoldMatchesReferenceAlgorithmShape(t *testing.T) {
	// The generated scaffold text (wrapper.go) must implement the same
	// algorithm mirrored above; this pins the two together at the level
	// of their control structure so a future edit to one is caught if the
	// other isn't updated to match.
	assert.Contains(t, runtimeScaffold, "case '\\r', '\\u2028', '\\u2029':")
	assert.Contains(t, runtimeScaffold, `return "end of input"`)
	assert.Contains(t, runtimeScaffold, `strings.Join(deduped[:len(deduped)-1], ", ") + " or " + deduped[len(deduped)-1]`)
	assert.Contains(t, runtimeScaffold, `expected %s but %s found`)
}
