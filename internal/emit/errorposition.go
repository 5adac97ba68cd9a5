package emit

import (
	"fmt"
	"sort"
	"strings"
)

// The functions below are a byte-for-byte algorithmic mirror of the
// position/expected-message/error-building logic embedded as generated
// Go text in wrapper.go's runtimeScaffold constant (spec §4.8). They
// exist so that logic — real behavior of the emitted parser, not just
// its textual shape — can be exercised by tests without invoking the Go
// toolchain on generated code. Any change to runtimeScaffold's algorithm
// must be mirrored here, and vice versa.

// refPosition mirrors the emitted parser's own position type.
type refPosition struct {
	line, col, offset int
}

// refPositionAt mirrors the emitted parser's positionAt method.
func refPositionAt(input []rune, offset int) refPosition {
	line, col := 1, 1
	seenCR := false
	for i := 0; i < offset && i < len(input); i++ {
		switch input[i] {
		case '\n':
			if !seenCR {
				line++
			}
			col = 1
			seenCR = false
		case '\r', '\u2028', '\u2029':
			line++
			col = 1
			seenCR = true
		default:
			col++
			seenCR = false
		}
	}
	return refPosition{line: line, col: col, offset: offset}
}

// refBuildExpectedMessage mirrors the emitted parser's buildExpectedMessage.
func refBuildExpectedMessage(expected []string) string {
	if len(expected) == 0 {
		return "end of input"
	}
	sorted := append([]string(nil), expected...)
	sort.Strings(sorted)
	deduped := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			deduped = append(deduped, s)
		}
	}
	if len(deduped) == 1 {
		return deduped[0]
	}
	return strings.Join(deduped[:len(deduped)-1], ", ") + " or " + deduped[len(deduped)-1]
}

// refBuildParseError mirrors the emitted parser's buildParseError, taking
// the input runes, the rightmost failure position, and the set of things
// expected there, and returning the message plus 1-based line/column.
func refBuildParseError(input []rune, rightmostFailuresPos int, rightmostFailuresExpected []string) (message string, line, col int) {
	pos := refPositionAt(input, rightmostFailuresPos)
	found := "end of input"
	if rightmostFailuresPos < len(input) {
		found = refQuoteChar(input[rightmostFailuresPos])
	}
	msg := fmt.Sprintf("expected %s but %s found", refBuildExpectedMessage(rightmostFailuresExpected), found)
	return msg, pos.line, pos.col
}

// refQuoteChar mirrors the emitted parser's quote() applied to a single
// found character.
func refQuoteChar(r rune) string {
	switch r {
	case '\\':
		return `"\\"`
	case '"':
		return `"\""`
	case '\r':
		return `"\r"`
	case '\n':
		return `"\n"`
	case '\t':
		return `"\t"`
	case '\f':
		return `"\f"`
	}
	if r >= 0x20 && r <= 0x7F {
		return `"` + string(r) + `"`
	}
	if r <= 0xFF {
		return fmt.Sprintf(`"\x%02X"`, r)
	}
	return fmt.Sprintf(`"\u%04X"`, r)
}
