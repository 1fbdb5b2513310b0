package codebase

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/classgraph/java"
)

const lsName = "classgraph"

type LSPServer struct {
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
	opts     []Option

	mu        sync.Mutex
	published map[string]struct{}
}

func NewLSPServer(version string, opts ...Option) *LSPServer {
	ls := &LSPServer{
		version:   version,
		opts:      opts,
		published: make(map[string]struct{}),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentHover:          ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	} else if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	}

	ls.codebase = New(rootDir, ls.opts...)

	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.DocumentSymbolProvider = true
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(context.Background()); err != nil {
		log.Errorf("scan %s: %s", ls.codebase.RootDir(), err)
		return nil
	}
	ls.publishDiagnostics(ctx)
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
	return ls.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		return ls.update(ctx, params.TextDocument.URI, []byte(whole.Text))
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		return ls.update(ctx, params.TextDocument.URI, []byte(*params.Text))
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if err := ls.codebase.ScanFile(context.Background(), path); err != nil {
		log.Warningf("%s", err)
		return nil
	}
	ls.publishDiagnostics(ctx)
	return nil
}

func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, content []byte) error {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	if err := ls.codebase.UpdateFile(context.Background(), path, content); err != nil {
		log.Errorf("update %s: %s", path, err)
		return nil
	}
	ls.publishDiagnostics(ctx)
	return nil
}

// publishDiagnostics sends the current failures and clears the files that
// were reported before but parse now.
func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	current := Diagnostics(ls.codebase.Failures())
	for path := range ls.published {
		if _, ok := current[path]; !ok {
			current[path] = []protocol.Diagnostic{}
		}
	}
	ls.published = make(map[string]struct{})
	for path, diagnostics := range current {
		if len(diagnostics) > 0 {
			ls.published[path] = struct{}{}
		}
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         pathToURI(path),
			Diagnostics: diagnostics,
		})
	}
}

// Diagnostics converts failures into one LSP diagnostic per file.
func Diagnostics(failures Failures) map[string][]protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	out := make(map[string][]protocol.Diagnostic, len(failures))
	for _, f := range failures {
		start := f.Offset()
		end := start
		if f.Err.Span != nil {
			end = f.Err.Span.End
		}
		out[f.Path] = append(out[f.Path], protocol.Diagnostic{
			Range:    SpanRange(f.Text, java.Span{Start: start, End: end}),
			Severity: &severity,
			Source:   &source,
			Message:  f.Err.Error(),
		})
	}
	return out
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	text, ok := ls.codebase.File(path)
	if !ok {
		return nil, nil
	}
	project := ls.codebase.Project()
	root := project.FileClass(path)
	if root == nil {
		return nil, nil
	}
	return []protocol.DocumentSymbol{DocumentSymbol(project, root, text)}, nil
}

// DocumentSymbol renders class and every declaration nested in it.
func DocumentSymbol(p *Project, class *java.Class, text []byte) protocol.DocumentSymbol {
	detail := string(class.Kind)
	symbol := protocol.DocumentSymbol{
		Name:           class.Name,
		Detail:         &detail,
		Kind:           classSymbolKind(class.Kind),
		Range:          SpanRange(text, class.Span),
		SelectionRange: SpanRange(text, class.NameSpan),
	}

	from := class.NameSpan.End
	for _, constant := range class.EnumConstants {
		span, ok := findIdent(text, from, constant)
		if !ok {
			span = class.NameSpan
		} else {
			from = span.End
		}
		symbol.Children = append(symbol.Children, protocol.DocumentSymbol{
			Name:           constant,
			Kind:           protocol.SymbolKindEnumMember,
			Range:          SpanRange(text, span),
			SelectionRange: SpanRange(text, span),
		})
	}
	for i := range class.Fields {
		f := &class.Fields[i]
		detail := f.Type.String()
		symbol.Children = append(symbol.Children, protocol.DocumentSymbol{
			Name:           f.Name,
			Detail:         &detail,
			Kind:           protocol.SymbolKindField,
			Range:          SpanRange(text, f.Span),
			SelectionRange: SpanRange(text, f.NameSpan),
		})
	}
	for i := range class.Methods {
		m := &class.Methods[i]
		detail := MethodDetail(m)
		kind := protocol.SymbolKindMethod
		if m.Kind != java.MethodRegular {
			kind = protocol.SymbolKindConstructor
		}
		symbol.Children = append(symbol.Children, protocol.DocumentSymbol{
			Name:           m.Name,
			Detail:         &detail,
			Kind:           kind,
			Range:          SpanRange(text, m.Span),
			SelectionRange: SpanRange(text, m.NameSpan),
		})
	}
	for _, nested := range p.Nested(class.Path) {
		symbol.Children = append(symbol.Children, DocumentSymbol(p, nested, text))
	}
	return symbol
}

func classSymbolKind(kind java.ClassKind) protocol.SymbolKind {
	switch kind {
	case java.ClassKindInterface, java.ClassKindAnnotation:
		return protocol.SymbolKindInterface
	case java.ClassKindEnum:
		return protocol.SymbolKindEnum
	case java.ClassKindRecord:
		return protocol.SymbolKindStruct
	default:
		return protocol.SymbolKindClass
	}
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	text, ok := ls.codebase.File(path)
	if !ok {
		return nil, nil
	}
	project := ls.codebase.Project()
	root := project.FileClass(path)
	if root == nil {
		return nil, nil
	}
	value, ok := HoverAt(project, root, PositionOffset(text, params.Position))
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
	}, nil
}

// HoverAt describes the declaration whose name covers offset.
func HoverAt(p *Project, class *java.Class, offset int) (string, bool) {
	if contains(class.NameSpan, offset) {
		return codeBlock(fmt.Sprintf("%s %s", class.Kind, class.Path)), true
	}
	for i := range class.Fields {
		f := &class.Fields[i]
		if contains(f.NameSpan, offset) {
			return codeBlock(fmt.Sprintf("%s.%s %s", class.Path, f.Name, f.Type.String())), true
		}
	}
	for i := range class.Methods {
		m := &class.Methods[i]
		if contains(m.NameSpan, offset) {
			return codeBlock(fmt.Sprintf("%s.%s", class.Path, MethodDetail(m))), true
		}
	}
	for _, nested := range p.Nested(class.Path) {
		if value, ok := HoverAt(p, nested, offset); ok {
			return value, true
		}
	}
	return "", false
}

// MethodDetail renders a method as <T> name(params) Return.
func MethodDetail(m *java.Method) string {
	detail := m.Signature()
	if generics := java.FormatGenericParameters(m.Generics); generics != "" {
		detail = generics + " " + detail
	}
	if m.ReturnType != nil {
		detail += " " + m.ReturnType.String()
	}
	return detail
}

func contains(span java.Span, offset int) bool {
	return span.Start <= offset && offset < span.End
}

func codeBlock(s string) string {
	return "```java\n" + s + "\n```"
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

func pathToURI(path string) protocol.DocumentUri {
	if strings.Contains(path, "://") {
		return path
	}
	return "file://" + filepath.ToSlash(path)
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
