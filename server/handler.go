package server

import (
	"context"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/zap"

	"github.com/cqlls/cqlls/complete"
	"github.com/cqlls/cqlls/cql"
	"github.com/cqlls/cqlls/document"
	"github.com/cqlls/cqlls/format"
	"github.com/cqlls/cqlls/internal/util"
	"github.com/cqlls/cqlls/version"
)

// Handler implements the LSP protocol surface: document lifecycle against
// the registry, completion via the completion service, and whole-document
// formatting. Request failures never become protocol errors; unknown
// documents and internal panics resolve to empty results.
type Handler struct {
	registry   *document.Registry
	completion *complete.Service
	logger     *zap.SugaredLogger
}

// NewHandler creates an LSP handler over the given registry and completion
// service.
func NewHandler(registry *document.Registry, completion *complete.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		registry:   registry,
		completion: completion,
		logger:     logger,
	}
}

// Initialize handles the LSP initialize request.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	h.logger.Infow("CQL LSP client initializing",
		"client", params.ClientInfo,
		"capabilities", "completion, formatting",
	)

	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: util.Ptr(true),
			Change:    util.Ptr(protocol.TextDocumentSyncKindFull),
		},
		CompletionProvider: &protocol.CompletionOptions{
			ResolveProvider:   util.Ptr(false),
			TriggerCharacters: []string{".", "\"", "'", " "},
		},
		DocumentFormattingProvider: true,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "cqlls",
			Version: util.Ptr(version.Get().Version),
		},
	}, nil
}

// Initialized is called after the client has received the InitializeResult.
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	h.logger.Infow("CQL language server initialized")
	if ctx != nil && ctx.Notify != nil {
		ctx.Notify(protocol.ServerWindowLogMessage, protocol.LogMessageParams{
			Type:    protocol.MessageTypeInfo,
			Message: "CQL language server initialized",
		})
	}
	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	h.logger.Infow("CQL LSP client shutting down")
	return nil
}

// TextDocumentDidOpen tracks a newly opened document and makes it the
// active one.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	h.registry.Open(uri, params.TextDocument.Text)
	h.logger.Debugw("Document opened", "uri", uri, "length", len(params.TextDocument.Text))
	return nil
}

// TextDocumentDidChange replaces the tracked text. Sync is full-document;
// ranged change events are ignored as unsupported.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	for _, change := range params.ContentChanges {
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			h.registry.Change(uri, whole.Text)
		}
	}
	h.logger.Debugw("Document changed", "uri", uri, "changes", len(params.ContentChanges))
	return nil
}

// TextDocumentDidClose drops the document from the registry.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	h.registry.Close(uri)
	h.logger.Debugw("Document closed", "uri", uri)
	return nil
}

// TextDocumentCompletion handles completion requests.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("Panic in completion handler", "panic", r, "uri", params.TextDocument.URI)
			result = []protocol.CompletionItem{}
			err = nil
		}
	}()

	uri := string(params.TextDocument.URI)
	text, err := h.registry.Snapshot(uri)
	if err != nil {
		h.logger.Debugw("completion request for untracked document", "uri", uri)
		return []protocol.CompletionItem{}, nil
	}

	pos := cql.Position{Line: params.Position.Line, Character: params.Position.Character}
	items := h.completion.Completions(context.Background(), text, pos)

	lspItems := make([]protocol.CompletionItem, len(items))
	for i, item := range items {
		lspItems[i] = completionItem(item)
	}
	return lspItems, nil
}

// TextDocumentFormatting handles whole-document formatting requests.
func (h *Handler) TextDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) (result []protocol.TextEdit, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("Panic in formatting handler", "panic", r, "uri", params.TextDocument.URI)
			result = []protocol.TextEdit{}
			err = nil
		}
	}()

	uri := string(params.TextDocument.URI)
	text, err := h.registry.Snapshot(uri)
	if err != nil {
		h.logger.Debugw("formatting request for untracked document", "uri", uri)
		return []protocol.TextEdit{}, nil
	}

	return textEdits(text, format.Format(text)), nil
}

// completionItem converts a completion entry to its protocol form.
func completionItem(item complete.Item) protocol.CompletionItem {
	out := protocol.CompletionItem{
		Label: item.Label,
		Kind:  util.Ptr(itemKind(item.Kind)),
	}
	if item.Detail != "" {
		out.Detail = util.Ptr(item.Detail)
	}
	if item.Documentation != "" {
		out.Documentation = item.Documentation
	}
	if item.SortText != "" {
		out.SortText = util.Ptr(item.SortText)
	}
	if item.Snippet {
		out.InsertTextFormat = util.Ptr(protocol.InsertTextFormatSnippet)
	}
	if item.Edit != nil {
		out.TextEdit = protocol.TextEdit{
			Range: protocol.Range{
				Start: protocol.Position{Line: item.Edit.Line, Character: item.Edit.Start},
				End:   protocol.Position{Line: item.Edit.Line, Character: item.Edit.End},
			},
			NewText: item.Edit.NewText,
		}
	} else if item.InsertText != "" {
		out.InsertText = util.Ptr(item.InsertText)
	}
	return out
}

func itemKind(kind complete.Kind) protocol.CompletionItemKind {
	switch kind {
	case complete.KindKeyspace:
		return protocol.CompletionItemKindModule
	case complete.KindTable:
		return protocol.CompletionItemKindClass
	case complete.KindColumn:
		return protocol.CompletionItemKindField
	case complete.KindFunction:
		return protocol.CompletionItemKindFunction
	case complete.KindType:
		return protocol.CompletionItemKindTypeParameter
	case complete.KindValue:
		return protocol.CompletionItemKindValue
	case complete.KindSnippet:
		return protocol.CompletionItemKindSnippet
	default:
		return protocol.CompletionItemKindKeyword
	}
}

// textEdits diffs original against formatted and maps the line-scoped edits
// onto protocol ranges in the original document. Full-line replacements span
// the whole original line; lines appended past the original end collapse
// into one insertion at end-of-document; the trailing deletion spans from
// the last kept line's end through the original end.
func textEdits(original, formatted string) []protocol.TextEdit {
	edits := format.Edits(original, formatted)
	if len(edits) == 0 {
		return []protocol.TextEdit{}
	}
	origLines := strings.Split(original, "\n")
	newCount := len(strings.Split(formatted, "\n"))

	out := make([]protocol.TextEdit, 0, len(edits))
	var appended []string
	for _, edit := range edits {
		switch {
		case edit.LineIndex == newCount:
			keep := edit.LineIndex - 1
			out = append(out, protocol.TextEdit{
				Range: protocol.Range{
					Start: position(keep, runeLen(origLines[keep])),
					End:   position(len(origLines)-1, runeLen(origLines[len(origLines)-1])),
				},
			})
		case edit.LineIndex >= len(origLines):
			appended = append(appended, edit.NewText)
		default:
			out = append(out, protocol.TextEdit{
				Range: protocol.Range{
					Start: position(edit.LineIndex, 0),
					End:   position(edit.LineIndex, edit.OldLength),
				},
				NewText: edit.NewText,
			})
		}
	}
	if len(appended) > 0 {
		last := len(origLines) - 1
		end := position(last, runeLen(origLines[last]))
		out = append(out, protocol.TextEdit{
			Range:   protocol.Range{Start: end, End: end},
			NewText: "\n" + strings.Join(appended, "\n"),
		})
	}
	return out
}

func position(line, char int) protocol.Position {
	return protocol.Position{Line: uint32(line), Character: uint32(char)}
}

func runeLen(s string) int {
	return len([]rune(s))
}
