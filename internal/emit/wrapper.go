package emit

import (
	"fmt"
	"strings"

	"pegc/internal/ast"
	"pegc/internal/template"
)

// writePreamble emits the package clause, the fixed import block, and the
// grammar's initializer code (if any) spliced verbatim at package scope,
// per spec §6.3's redesign note: since both this compiler and its output
// target Go, "top scope, visible to every action and predicate" is most
// faithfully realized as genuine Go package-level declarations, not a
// per-call re-evaluation the way a dynamic host language would need.
func writePreamble(b *strings.Builder, g *ast.Grammar, opts Options) {
	fmt.Fprintf(b, "// Code generated by pegc. DO NOT EDIT.\n\n")
	fmt.Fprintf(b, "package %s\n\n", pkgName(opts))
	b.WriteString("import (\n\t\"fmt\"\n\t\"sort\"\n\t\"strings\"\n)\n\n")
	if g.Init != nil && strings.TrimSpace(g.Init.Code) != "" {
		b.WriteString(g.Init.Code)
		b.WriteString("\n\n")
	}
}

func pkgName(opts Options) string {
	if opts.Package != "" {
		return opts.Package
	}
	return "main"
}

// runtimeScaffold is the fixed support code every generated parser needs:
// the SyntaxError type, the position/memo bookkeeping, and matchFailed's
// rightmost-failure tracking (spec §4.8). It never varies with the
// grammar, so it's a template rather than something built node by node.
const runtimeScaffold = `// SyntaxError reports a parse failure at a source position.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

type position struct {
	line, col, offset int
}

type memoEntry struct {
	nextPos int
	result  interface{}
}

// parser holds the mutable state of a single Parse call. Create one with
// New for each parse; a parser must not be reused across concurrent calls
// to Parse.
type parser struct {
	input []rune
	pos   int

	memo map[string]memoEntry

	reportFailures            int
	rightmostFailuresPos      int
	rightmostFailuresExpected []string
}

// New returns a parser ready for Parse.
func New() *parser {
	return &parser{}
}

func hasPrefix(input []rune, pos int, s string) bool {
	rs := []rune(s)
	if pos+len(rs) > len(input) {
		return false
	}
	for i, r := range rs {
		if input[pos+i] != r {
			return false
		}
	}
	return true
}

func (p *parser) matchFailed(expected string) {
	if p.pos < p.rightmostFailuresPos {
		return
	}
	if p.pos > p.rightmostFailuresPos {
		p.rightmostFailuresPos = p.pos
		p.rightmostFailuresExpected = nil
	}
	p.rightmostFailuresExpected = append(p.rightmostFailuresExpected, expected)
}

// positionAt walks the input up to (not including) offset, tracking line
// and column the way a text editor would: a lone LF, a lone CR, and each
// of U+2028/U+2029 all count as one line break; a CRLF pair counts as one.
func (p *parser) positionAt(offset int) position {
	line, col := 1, 1
	seenCR := false
	for i := 0; i < offset && i < len(p.input); i++ {
		switch p.input[i] {
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
	return position{line: line, col: col, offset: offset}
}

func buildExpectedMessage(expected []string) string {
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

func (p *parser) buildParseError() error {
	pos := p.positionAt(p.rightmostFailuresPos)
	found := "end of input"
	if p.rightmostFailuresPos < len(p.input) {
		found = quote(string(p.input[p.rightmostFailuresPos]))
	}
	msg := fmt.Sprintf("expected %s but %s found", buildExpectedMessage(p.rightmostFailuresExpected), found)
	return &SyntaxError{Message: msg, Line: pos.line, Column: pos.col}
}
`

// selfParsingHelpers are the runtime quote/escape/padLeft functions the
// wrapper needs to safely quote a captured input character in an error
// message. Options.SelfParsing skips them: the embedding program
// guarantees they already exist in scope.
const selfParsingHelpers = `
func padLeft(s string, pad string, length int) string {
	for len(s) < length {
		s = pad + s
	}
	return s
}

func escape(ch string) string {
	r := []rune(ch)[0]
	switch {
	case r <= 0xFF:
		return "\\x" + padLeft(strings.ToUpper(fmt.Sprintf("%x", r)), "0", 2)
	default:
		return "\\u" + padLeft(strings.ToUpper(fmt.Sprintf("%x", r)), "0", 4)
	}
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		case '\r':
			b.WriteString("\\r")
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\f':
			b.WriteString("\\f")
		default:
			if r >= 0x20 && r <= 0x7F {
				b.WriteRune(r)
			} else {
				b.WriteString(escape(string(r)))
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
`

func writeRuntime(b *strings.Builder, opts Options) {
	b.WriteString(runtimeScaffold)
	if !opts.SelfParsing {
		b.WriteString(selfParsingHelpers)
	}
	b.WriteString("\n")
}

// writeDispatch emits the Parse entry point, which selects a start rule
// by name (spec §6.1) and reports a SyntaxError unless the chosen rule
// both matched and consumed the whole input.
func writeDispatch(b *strings.Builder, g *ast.Grammar, starts []string) error {
	var cases strings.Builder
	for _, name := range starts {
		snippet, err := template.Format(
			"    case ${nameLit}:",
			"        result = p.parse_${name}()",
			template.Vars{"nameLit": goLiteral(name), "name": name},
		)
		if err != nil {
			return err
		}
		cases.WriteString(snippet + "\n")
	}

	defaultRule := g.StartRule
	if len(starts) == 1 {
		defaultRule = starts[0]
	}

	out, err := template.Format(
		"// Parse runs the grammar over input, starting at rule (defaulting to",
		"// ${defaultLit} when no rule is given), and returns a *SyntaxError if the",
		"// chosen rule fails to match the whole input.",
		"func (p *parser) Parse(input string, rule ...string) (interface{}, error) {",
		"    p.input = []rune(input)",
		"    p.pos = 0",
		"    p.reportFailures = 0",
		"    p.rightmostFailuresPos = 0",
		"    p.rightmostFailuresExpected = nil",
		"    p.memo = make(map[string]memoEntry)",
		"",
		"    name := ${defaultLit}",
		"    if len(rule) > 0 {",
		"        name = rule[0]",
		"    }",
		"",
		"    var result interface{}",
		"    switch name {",
		"${cases}",
		"    default:",
		"        return nil, fmt.Errorf(\"pegc: unknown start rule %q\", name)",
		"    }",
		"",
		"    if result == nil || p.pos != len(p.input) {",
		"        return nil, p.buildParseError()",
		"    }",
		"    return result, nil",
		"}",
		"",
		template.Vars{"defaultLit": goLiteral(defaultRule), "cases": cases.String()},
	)
	if err != nil {
		return err
	}
	b.WriteString(out)
	return nil
}
