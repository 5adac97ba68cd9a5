package frontend

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"pegc/internal/ast"
)

// Position mirrors ast.Position for the front end's own error types, kept
// distinct so frontend can be read (and tested) without importing ast for
// anything but the AST it eventually produces.
type Position struct {
	Line, Column, Offset int
}

// ScanError is raised by the lexer: unterminated strings, classes, or
// action code blocks.
type ScanError struct {
	Message  string
	Position Position
	Length   int
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}

// ParseError is raised by the grammar parser proper: malformed rules,
// missing "=", mismatched parentheses, and so on.
type ParseError struct {
	Message  string
	Position Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}

func fromLexerPos(p lexer.Position) Position {
	return Position{Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func toASTPosition(p Position) ast.Position {
	return ast.Position{Line: p.Line, Col: p.Column, Offset: p.Offset}
}
