package lsp

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"fmtguard/internal/check"
	"fmtguard/internal/source"
)

const serverName = "fmtguard"

// ErrShutdown answers requests that arrive after `shutdown`.
var ErrShutdown = errors.New("server is shut down")

// Options configures the server.
type Options struct {
	Analysis check.Options
	Version  string
	// MaxDiagnostics caps published diagnostics per document; 0 means all.
	MaxDiagnostics int
}

// Server keeps open documents and their latest analysis.
type Server struct {
	mu      sync.Mutex
	docs    map[protocol.DocumentUri]*document
	opts    Options
	log     commonlog.Logger
	handler protocol.Handler
	shut    bool
}

type document struct {
	version  protocol.Integer
	text     string
	analysis *check.Analysis
}

// NewServer builds a server; call Run to serve on stdio.
func NewServer(opts Options) *Server {
	s := &Server{
		docs: make(map[protocol.DocumentUri]*document),
		opts: opts,
		log:  commonlog.GetLogger("fmtguard.lsp"),
	}
	s.handler = protocol.Handler{
		Initialize:             s.Initialize,
		Initialized:            s.Initialized,
		Shutdown:               s.Shutdown,
		SetTrace:               s.SetTrace,
		TextDocumentDidOpen:    s.TextDocumentDidOpen,
		TextDocumentDidChange:  s.TextDocumentDidChange,
		TextDocumentDidClose:   s.TextDocumentDidClose,
		TextDocumentDidSave:    s.TextDocumentDidSave,
		TextDocumentCodeAction: s.TextDocumentCodeAction,
	}
	return s
}

// Run serves JSON-RPC over stdin/stdout until the client exits.
func (s *Server) Run() error {
	srv := glspserver.NewServer(&s.handler, serverName, false)
	return srv.RunStdio()
}

func (s *Server) Initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.ClientInfo != nil {
		s.log.Infof("initialize from %s", params.ClientInfo.Name)
	}
	version := s.opts.Version
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptr(true),
				Change:    ptr(protocol.TextDocumentSyncKindFull),
				Save:      true,
			},
			CodeActionProvider: &protocol.CodeActionOptions{
				CodeActionKinds: []protocol.CodeActionKind{
					protocol.CodeActionKindQuickFix,
					protocol.CodeActionKindSource,
				},
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

func (s *Server) Initialized(*glsp.Context, *protocol.InitializedParams) error {
	s.log.Info("initialized")
	return nil
}

func (s *Server) Shutdown(*glsp.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shut = true
	s.docs = make(map[protocol.DocumentUri]*document)
	s.log.Info("shutdown")
	return nil
}

// stopped reports whether Shutdown was received. After it requests fail with
// ErrShutdown and document notifications are dropped.
func (s *Server) stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shut
}

func (s *Server) SetTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	s.log.Debugf("open %s (v%d)", doc.URI, doc.Version)
	return s.update(ctx, doc.URI, doc.Version, doc.Text)
}

func (s *Server) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	if s.stopped() {
		return nil
	}
	s.mu.Lock()
	doc, ok := s.docs[uri]
	var text string
	if ok {
		text = doc.text
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("change for unopened document %s", uri)
	}
	return s.update(ctx, uri, params.TextDocument.Version, applyChanges(text, params.ContentChanges))
}

func (s *Server) TextDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	s.mu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	var version protocol.Integer
	if ok {
		version = doc.version
	}
	s.mu.Unlock()
	return s.update(ctx, params.TextDocument.URI, version, *params.Text)
}

func (s *Server) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	if s.stopped() {
		return nil
	}
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
	s.log.Debugf("close %s", uri)
	// очищаем диагностики закрытого документа
	publish(ctx, uri, []protocol.Diagnostic{})
	return nil
}

// update re-analyses a document and publishes its diagnostics. Stale
// versions are dropped.
func (s *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, version protocol.Integer, text string) error {
	if s.stopped() {
		s.log.Debugf("ignoring %s after shutdown", uri)
		return nil
	}
	analysis := s.analyze(uri, text)

	s.mu.Lock()
	if s.shut {
		s.mu.Unlock()
		return nil
	}
	if prev, ok := s.docs[uri]; ok && prev.version > version {
		s.mu.Unlock()
		return nil
	}
	s.docs[uri] = &document{version: version, text: text, analysis: analysis}
	s.mu.Unlock()

	diags := toProtocolDiagnostics(uri, analysis, s.opts.MaxDiagnostics)
	s.log.Debugf("publish %d diagnostics for %s", len(diags), uri)
	publish(ctx, uri, diags)
	return nil
}

func (s *Server) analyze(uri protocol.DocumentUri, text string) *check.Analysis {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(documentName(uri), []byte(text)))
	return check.Analyze(file, s.opts.Analysis)
}

func (s *Server) analysisFor(uri protocol.DocumentUri) (*check.Analysis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return nil, false
	}
	return doc.analysis, true
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diags []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func ptr[T any](v T) *T { return &v }
