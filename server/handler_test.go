package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/zap"

	"github.com/cqlls/cqlls/complete"
	"github.com/cqlls/cqlls/document"
	cqllstest "github.com/cqlls/cqlls/internal/testing"
	"github.com/cqlls/cqlls/schema"
)

const testURI = "file:///queries.cql"

func newTestHandler(provider schema.Provider) *Handler {
	registry := document.NewRegistry(document.DefaultMaxOpen)
	return NewHandler(registry, complete.NewService(provider), zap.NewNop().Sugar())
}

func openDoc(t *testing.T, h *Handler, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, Text: text},
	})
	require.NoError(t, err)
}

func completeAt(t *testing.T, h *Handler, line, char uint32) []protocol.CompletionItem {
	t.Helper()
	result, err := h.TextDocumentCompletion(nil, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     protocol.Position{Line: line, Character: char},
		},
	})
	require.NoError(t, err)
	items, ok := result.([]protocol.CompletionItem)
	require.True(t, ok, "completion result should be a CompletionItem slice")
	return items
}

func formatDoc(t *testing.T, h *Handler) []protocol.TextEdit {
	t.Helper()
	edits, err := h.TextDocumentFormatting(nil, &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	return edits
}

func TestHandler_InitializeCapabilities(t *testing.T) {
	h := newTestHandler(cqllstest.NewFakeProvider())

	result, err := h.Initialize(nil, &protocol.InitializeParams{})
	require.NoError(t, err)

	initResult, ok := result.(protocol.InitializeResult)
	require.True(t, ok)

	caps := initResult.Capabilities
	require.NotNil(t, caps.CompletionProvider)
	assert.Equal(t, []string{".", "\"", "'", " "}, caps.CompletionProvider.TriggerCharacters)
	require.NotNil(t, caps.CompletionProvider.ResolveProvider)
	assert.False(t, *caps.CompletionProvider.ResolveProvider)
	assert.Equal(t, true, caps.DocumentFormattingProvider)

	sync, ok := caps.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	require.NotNil(t, sync.Change)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *sync.Change)

	require.NotNil(t, initResult.ServerInfo)
	assert.Equal(t, "cqlls", initResult.ServerInfo.Name)
}

func TestHandler_InitializedNotifiesClient(t *testing.T) {
	h := newTestHandler(cqllstest.NewFakeProvider())

	var methods []string
	ctx := &glsp.Context{Notify: func(method string, params any) {
		methods = append(methods, method)
	}}

	require.NoError(t, h.Initialized(ctx, &protocol.InitializedParams{}))
	assert.Equal(t, []string{protocol.ServerWindowLogMessage}, methods)

	// A nil context must not panic; stdio clients may skip the handshake.
	require.NoError(t, h.Initialized(nil, &protocol.InitializedParams{}))
}

func TestHandler_DocumentLifecycle(t *testing.T) {
	h := newTestHandler(cqllstest.NewFakeProvider())

	openDoc(t, h, "USE ")
	assert.NotEmpty(t, completeAt(t, h, 0, 4))

	// Full-document change replaces the text outright.
	err := h.TextDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "DROP TABLE "}},
	})
	require.NoError(t, err)

	items := completeAt(t, h, 0, 11)
	require.NotEmpty(t, items)
	assert.Equal(t, "ks1.t1;", items[0].Label)

	err = h.TextDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	assert.Empty(t, completeAt(t, h, 0, 11))
}

func TestHandler_ChangeBeforeOpenTracksDocument(t *testing.T) {
	h := newTestHandler(cqllstest.NewFakeProvider())

	err := h.TextDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                1,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "USE "}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, completeAt(t, h, 0, 4))
}

func TestHandler_CompletionMapsItems(t *testing.T) {
	h := newTestHandler(cqllstest.NewFakeProvider())
	openDoc(t, h, "USE ")

	items := completeAt(t, h, 0, 4)
	require.Len(t, items, 3)

	var ks1 *protocol.CompletionItem
	for i := range items {
		if items[i].Label == "ks1" {
			ks1 = &items[i]
		}
	}
	require.NotNil(t, ks1)

	require.NotNil(t, ks1.Kind)
	assert.Equal(t, protocol.CompletionItemKindModule, *ks1.Kind)
	require.NotNil(t, ks1.InsertText)
	assert.Equal(t, `"ks1";`, *ks1.InsertText)
	require.NotNil(t, ks1.InsertTextFormat)
	assert.Equal(t, protocol.InsertTextFormatSnippet, *ks1.InsertTextFormat)
	require.NotNil(t, ks1.Detail)
	assert.Equal(t, "keyspace", *ks1.Detail)
	assert.Nil(t, ks1.TextEdit)
}

func TestHandler_CompletionMapsReplacementEdits(t *testing.T) {
	h := newTestHandler(cqllstest.NewFakeProvider())
	openDoc(t, h, "DROP TABLE ")

	items := completeAt(t, h, 0, 11)
	require.NotEmpty(t, items)

	first := items[0]
	assert.Equal(t, "ks1.t1;", first.Label)
	require.NotNil(t, first.Kind)
	assert.Equal(t, protocol.CompletionItemKindClass, *first.Kind)

	edit, ok := first.TextEdit.(protocol.TextEdit)
	require.True(t, ok, "drop completion should carry a replacement edit")
	assert.Equal(t, protocol.Position{Line: 0, Character: 11}, edit.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 11}, edit.Range.End)
	assert.Equal(t, "ks1.t1;", edit.NewText)
	assert.Nil(t, first.InsertText)
}

func TestHandler_CompletionUntrackedDocument(t *testing.T) {
	h := newTestHandler(cqllstest.NewFakeProvider())

	items := completeAt(t, h, 0, 0)
	assert.Empty(t, items)
}

// panicProvider blows up on keyspace fetches to prove handler isolation.
type panicProvider struct {
	*cqllstest.FakeProvider
}

func (p panicProvider) Keyspaces(context.Context) ([]schema.Keyspace, error) {
	panic("schema provider exploded")
}

func TestHandler_CompletionRecoversFromPanic(t *testing.T) {
	h := newTestHandler(panicProvider{cqllstest.NewFakeProvider()})
	openDoc(t, h, "USE ")

	items := completeAt(t, h, 0, 4)
	assert.Empty(t, items)
}

func TestHandler_FormattingWholeLineEdit(t *testing.T) {
	h := newTestHandler(cqllstest.NewFakeProvider())
	openDoc(t, h, "SELECT  1;")

	edits := formatDoc(t, h)
	require.Len(t, edits, 1)
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, edits[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 10}, edits[0].Range.End)
	assert.Equal(t, "SELECT 1;", edits[0].NewText)
}

func TestHandler_FormattingAppendsLines(t *testing.T) {
	// Statement separation grows the document by one blank line; the new
	// tail is a single insertion anchored at the original end.
	h := newTestHandler(cqllstest.NewFakeProvider())
	openDoc(t, h, "SELECT 1;\nSELECT 2;")

	edits := formatDoc(t, h)
	require.Len(t, edits, 2)

	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, edits[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 9}, edits[0].Range.End)
	assert.Equal(t, "", edits[0].NewText)

	assert.Equal(t, protocol.Position{Line: 1, Character: 9}, edits[1].Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 9}, edits[1].Range.End)
	assert.Equal(t, "\nSELECT 2;", edits[1].NewText)
}

func TestHandler_FormattingDeletesTrailingLines(t *testing.T) {
	h := newTestHandler(cqllstest.NewFakeProvider())
	openDoc(t, h, "SELECT 1;\n\n\n\nSELECT 2;")

	edits := formatDoc(t, h)
	require.Len(t, edits, 2)

	assert.Equal(t, protocol.Position{Line: 2, Character: 0}, edits[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 2, Character: 0}, edits[0].Range.End)
	assert.Equal(t, "SELECT 2;", edits[0].NewText)

	assert.Equal(t, protocol.Position{Line: 2, Character: 0}, edits[1].Range.Start)
	assert.Equal(t, protocol.Position{Line: 4, Character: 9}, edits[1].Range.End)
	assert.Equal(t, "", edits[1].NewText)
}

func TestHandler_FormattingCleanDocument(t *testing.T) {
	h := newTestHandler(cqllstest.NewFakeProvider())
	openDoc(t, h, "SELECT 1;")

	assert.Empty(t, formatDoc(t, h))
}

func TestHandler_FormattingUntrackedDocument(t *testing.T) {
	h := newTestHandler(cqllstest.NewFakeProvider())

	assert.Empty(t, formatDoc(t, h))
}

func TestServer_New(t *testing.T) {
	registry := document.NewRegistry(document.DefaultMaxOpen)
	srv := New(registry, complete.NewService(cqllstest.NewFakeProvider()), zap.NewNop().Sugar())

	assert.NotEmpty(t, srv.Session())

	ph := srv.protocolHandler()
	require.NotNil(t, ph.Initialize)
	require.NotNil(t, ph.TextDocumentCompletion)
	require.NotNil(t, ph.TextDocumentFormatting)
	require.NotNil(t, ph.TextDocumentDidOpen)
	require.NotNil(t, ph.TextDocumentDidChange)
	require.NotNil(t, ph.TextDocumentDidClose)
}
