package errors

import (
	"pegc/internal/ast"
	"pegc/internal/frontend"
)

// FromScanError adapts a frontend.ScanError into a reportable CompilerError.
func FromScanError(e frontend.ScanError) CompilerError {
	return CompilerError{
		Level:   Error,
		Code:    "E0001",
		Message: e.Message,
		Position: ast.Position{
			Line: e.Position.Line, Col: e.Position.Column, Offset: e.Position.Offset,
		},
		Length: max(1, e.Length),
	}
}

// FromParseError adapts a frontend.ParseError into a reportable CompilerError.
func FromParseError(e frontend.ParseError) CompilerError {
	return CompilerError{
		Level:   Error,
		Code:    "E0002",
		Message: e.Message,
		Position: ast.Position{
			Line: e.Position.Line, Col: e.Position.Column, Offset: e.Position.Offset,
		},
		Length: 1,
	}
}

// FromCompileError adapts a generic error surfaced by optimize/emit (a
// *emit.NoStartRuleError, a template.Error) into a
// CompilerError with no useful position, since those faults are grammar-wide
// rather than tied to one source span.
func FromCompileError(err error) CompilerError {
	return CompilerError{
		Level:   Error,
		Code:    "E0003",
		Message: err.Error(),
	}
}
