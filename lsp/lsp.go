// Package lsp serves parse diagnostics for documents written in one of the
// registered grammars over the Language Server Protocol.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/dhamidi/parsec/config"
	"github.com/dhamidi/parsec/format"
	"github.com/dhamidi/parsec/grammar"
	"github.com/dhamidi/parsec/parser"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "parsec"

var log = commonlog.GetLogger("parsec.lsp")

type LSPServer struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu        sync.Mutex
	config    *config.Config
	documents map[string]string
}

func NewLSPServer(version string, cfg *config.Config) *LSPServer {
	if cfg == nil {
		cfg = config.Default()
	}
	ls := &LSPServer{
		version:   version,
		config:    cfg,
		documents: map[string]string{},
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
		TextDocumentHover:     ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := ""
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	if rootDir != "" {
		cfg, err := config.Find(rootDir)
		if err != nil {
			log.Errorf("load config from %s: %s", rootDir, err)
		} else {
			ls.mu.Lock()
			ls.config = cfg
			ls.mu.Unlock()
		}
	}

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("initialized, default grammar %q", ls.currentConfig().Grammar)
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.documents, params.TextDocument.URI)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI

	ls.mu.Lock()
	text, ok := ls.documents[uri]
	ls.mu.Unlock()
	if !ok {
		return nil, nil
	}

	name, p := ls.grammarFor(uri)
	var body strings.Builder
	if err := format.NewJSONEncoder(&body).Encode(p.Run(trimDocument(text))); err != nil {
		return nil, err
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: "**" + name + "**\n\n```json\n" + body.String() + "```",
		},
	}, nil
}

func (ls *LSPServer) update(ctx *glsp.Context, uri string, text string) {
	ls.mu.Lock()
	ls.documents[uri] = text
	ls.mu.Unlock()

	name, p := ls.grammarFor(uri)
	diagnostics := Diagnose(text, p)
	log.Debugf("%s: grammar %q, %d diagnostics", uri, name, len(diagnostics))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (ls *LSPServer) currentConfig() *config.Config {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.config
}

// grammarFor picks the grammar for a document from the configured
// extension mapping.
func (ls *LSPServer) grammarFor(uri string) (string, parser.Parser) {
	cfg := ls.currentConfig()

	path, err := uriToPath(uri)
	if err != nil {
		path = uri
	}
	name := cfg.GrammarFor(path)
	p, ok := grammar.Lookup(name)
	if !ok {
		name = config.DefaultGrammar
		p, _ = grammar.Lookup(name)
	}
	if cfg.Full {
		p = parser.Full(p)
	}
	return name, p
}

// Diagnose parses text with p and reports its failure, if any, as a single
// error diagnostic spanning the rest of the offending line.
func Diagnose(text string, p parser.Parser) []protocol.Diagnostic {
	st := p.Run(trimDocument(text))
	if !st.IsError() {
		return []protocol.Diagnostic{}
	}

	start := st.Index
	end := strings.IndexByte(text[start:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += start
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: PositionAt(text, start),
			End:   PositionAt(text, end),
		},
		Severity: &severity,
		Source:   &source,
		Message:  st.Err.Error(),
	}}
}

// PositionAt converts a byte offset into an LSP position, counting
// characters in UTF-16 code units.
func PositionAt(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}
	var line, char protocol.UInteger
	for _, r := range text[:offset] {
		if r == '\n' {
			line++
			char = 0
			continue
		}
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		char += protocol.UInteger(n)
	}
	return protocol.Position{Line: line, Character: char}
}

// trimDocument drops trailing line breaks editors add on save.
func trimDocument(text string) string {
	return strings.TrimRight(text, "\r\n")
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
