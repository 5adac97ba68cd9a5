package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pegc/internal/frontend"
)

// ConvertParseErrors transforms grammar parse errors (missing "=", stray
// alternation bars, unbalanced groups) into LSP diagnostics.
func ConvertParseErrors(parseErrors []frontend.ParseError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic
	for _, e := range parseErrors {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(e.Position.Line - 1), Character: uint32(e.Position.Column - 1)},
				End:   protocol.Position{Line: uint32(e.Position.Line - 1), Character: uint32(e.Position.Column + 5)},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("pegc-parser"),
			Message:  e.Message,
		})
	}
	return diagnostics
}

// ConvertScanErrors transforms lexer faults (unterminated string, class, or
// action code block) into LSP diagnostics.
func ConvertScanErrors(scanErrors []frontend.ScanError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic
	for _, e := range scanErrors {
		endChar := uint32(e.Position.Column - 1 + e.Length)
		if e.Length == 0 {
			endChar = uint32(e.Position.Column + 3)
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(e.Position.Line - 1), Character: uint32(e.Position.Column - 1)},
				End:   protocol.Position{Line: uint32(e.Position.Line - 1), Character: endChar},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("pegc-scanner"),
			Message:  e.Message,
		})
	}
	return diagnostics
}

// ConvertCompileError converts a whole-grammar fault returned by
// emit.Compile (unresolved start rule, template rendering error) into a
// diagnostic pinned
// to the top of the file, since it has no single source span of its own.
func ConvertCompileError(err error) []protocol.Diagnostic {
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("pegc"),
		Message:  err.Error(),
	}}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func ptrString(s string) *string                                            { return &s }
