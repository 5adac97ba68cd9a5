// Package errors formats pegc's own compiler faults — grammar scan/parse
// errors, unresolved start rules, template failures — with the same
// Rust-style caret diagnostics the teacher's compiler uses. It never
// touches the SyntaxError type emitted into a generated parser: that
// error belongs to the program pegc produces, not to pegc itself.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"pegc/internal/ast"
)

// Level is the severity of a CompilerError.
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
	Note    Level = "note"
	Help    Level = "help"
)

// CompilerError is a structured diagnostic pegc can report about a
// grammar file: a scan error, a parse error, a duplicate rule, an
// unresolved start rule, or a template rendering fault.
type CompilerError struct {
	Level    Level
	Code     string
	Message  string
	Position ast.Position
	Length   int
	Notes    []string
	HelpText string
}

// Reporter formats CompilerErrors against one grammar source file.
type Reporter struct {
	filename string
	lines    []string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

func (r *Reporter) FormatError(err CompilerError) string {
	var b strings.Builder

	levelColor := levelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		fmt.Fprintf(&b, "%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", levelColor(string(err.Level)), err.Message)
	}

	width := lineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", width)

	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, err.Position.Line, err.Position.Col)
	fmt.Fprintf(&b, "%s %s\n", indent, dim("│"))

	line := err.Position.Line
	if line > 0 && line <= len(r.lines) {
		content := r.lines[line-1]
		fmt.Fprintf(&b, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, line)), dim("│"), content)
		fmt.Fprintf(&b, "%s %s %s\n", indent, dim("│"), marker(err.Position.Col, err.Length, err.Level))
	}

	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		fmt.Fprintf(&b, "%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note)
	}
	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&b, "%s %s %s %s\n", indent, dim("│"), helpColor("help:"), err.HelpText)
	}

	b.WriteString("\n")
	return b.String()
}

func levelColor(l Level) func(...interface{}) string {
	switch l {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func marker(column, length int, level Level) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if level == Warning {
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return spaces + markerColor(strings.Repeat("^", length))
}

func lineNumberWidth(line int) int {
	w := len(fmt.Sprintf("%d", line))
	if w < 3 {
		return 3
	}
	return w
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
