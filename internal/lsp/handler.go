// Package lsp implements a language server for .peg grammar files: open a
// grammar in an editor, get live scan/parse/compile diagnostics and simple
// rule-name completion, the same shape the teacher's Kanso LSP offers for
// .ka source.
package lsp

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pegc/internal/ast"
	"pegc/internal/emit"
	"pegc/internal/frontend"
)

var SemanticTokenTypes = []string{
	"namespace", "type", "function", "variable", "parameter", "keyword", "string", "operator",
}

var SemanticTokenModifiers = []string{
	"declaration", "definition", "readonly",
}

// Handler implements the LSP methods pegc-lsp advertises for .peg files.
type Handler struct {
	mu       sync.RWMutex
	content  map[string]string
	grammars map[string]*ast.Grammar
}

func NewHandler() *Handler {
	return &Handler{
		content:  make(map[string]string),
		grammars: make(map[string]*ast.Grammar),
	}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("pegc-lsp Initialize called")
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("pegc-lsp Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("pegc-lsp Shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	diagnostics, err := h.updateGrammar(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to update grammar: %w", err)
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.grammars, path)
	return nil
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	diagnostics, err := h.updateGrammar(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to update grammar: %w", err)
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentCompletion offers every declared rule name as a completion,
// letting an editor complete rule references mid-grammar.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	g := h.grammars[path]
	h.mu.RUnlock()

	items := []protocol.CompletionItem{}
	if g != nil {
		kind := protocol.CompletionItemKindFunction
		for _, name := range g.RuleOrder {
			n := name
			items = append(items, protocol.CompletionItem{Label: n, Kind: &kind})
		}
	}
	return &protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

// TextDocumentSemanticTokensFull is not fed by a token walker in this
// server; declaring the capability keeps clients from complaining while
// leaving real token classification as a later enhancement.
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	return &protocol.SemanticTokens{Data: []uint32{}}, nil
}

func (h *Handler) updateGrammar(rawURI protocol.DocumentUri) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	g, parseErrors, scanErrors := frontend.ParseSource(path, string(content))
	if len(scanErrors) > 0 {
		return ConvertScanErrors(scanErrors), nil
	}
	if len(parseErrors) > 0 {
		return ConvertParseErrors(parseErrors), nil
	}

	if _, err := emit.Compile(g, emit.Options{}); err != nil {
		return ConvertCompileError(err), nil
	}

	h.mu.Lock()
	h.content[path] = string(content)
	h.grammars[path] = g
	h.mu.Unlock()

	return nil, nil
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	diagnosticsJSON, err := json.MarshalIndent(diagnostics, "", "  ")
	if err != nil {
		log.Println("failed to marshal diagnostics:", err)
		return
	}
	log.Println("sending diagnostics:", string(diagnosticsJSON))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
