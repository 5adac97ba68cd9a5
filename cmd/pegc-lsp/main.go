package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"pegc/internal/lsp"
)

const lsName = "pegc"

var (
	version = "0.1.0"
	handler protocol.Handler
)

func main() {
	commonlog.Configure(1, nil)

	pegHandler := lsp.NewHandler()

	handler = protocol.Handler{
		Initialize:                     pegHandler.Initialize,
		Initialized:                    pegHandler.Initialized,
		Shutdown:                       pegHandler.Shutdown,
		SetTrace:                       pegHandler.SetTrace,
		TextDocumentDidOpen:            pegHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           pegHandler.TextDocumentDidClose,
		TextDocumentDidChange:          pegHandler.TextDocumentDidChange,
		TextDocumentCompletion:         pegHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: pegHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting pegc LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting pegc LSP server:", err)
		os.Exit(1)
	}
}
