// Package complete builds context-aware completion entries for CQL cursor
// positions. A Service classifies the position, resolves the active keyspace
// scope, and dispatches to one strategy per context; schema-backed
// strategies degrade to their static parts when the cluster is unreachable.
package complete

import (
	"context"
	"strings"

	"github.com/cqlls/cqlls/cql"
	"github.com/cqlls/cqlls/logger"
	"github.com/cqlls/cqlls/schema"
)

// Kind classifies an Item for client-side presentation. The server layer
// maps these onto protocol completion-item kinds.
type Kind int

const (
	KindKeyword Kind = iota
	KindKeyspace
	KindTable
	KindColumn
	KindFunction
	KindType
	KindValue
	KindSnippet
)

// Edit is a single-line replacement applied instead of inserting at the
// cursor. Start and End are rune offsets on Line.
type Edit struct {
	Line    uint32
	Start   uint32
	End     uint32
	NewText string
}

// Item is one completion entry. When Edit is nil the client inserts
// InsertText at the cursor; Snippet marks InsertText as containing tab-stop
// placeholders.
type Item struct {
	Label         string
	Kind          Kind
	InsertText    string
	Edit          *Edit
	Detail        string
	Documentation string
	Snippet       bool
	SortText      string
}

// Service builds completions against one schema provider.
type Service struct {
	provider schema.Provider
}

// NewService creates a completion service.
func NewService(provider schema.Provider) *Service {
	return &Service{provider: provider}
}

// Completions returns the entries for the cursor position. An unsupported
// position or a failed schema fetch yields an empty result, never an error.
func (s *Service) Completions(ctx context.Context, text string, pos cql.Position) []Item {
	cx := cql.Classify(text, pos)
	if cx.Kind == cql.ContextNone {
		return nil
	}

	lines := strings.Split(text, "\n")
	line := lines[pos.Line]

	switch cx.Kind {
	case cql.ContextStringLiteral:
		// Literal-value completions: the classifier suppresses keywords
		// inside quotes, but a keyspace or graph-engine literal is still
		// completable from the line shape.
		if cql.KeyspacePosition(line, pos.Character) {
			return s.keyspaceItems(ctx, line, pos, true)
		}
		if cql.GraphEnginePosition(line, pos.Character) {
			return graphEngineItems(true)
		}
		return nil
	case cql.SuggestKeyspace:
		return s.keyspaceItems(ctx, line, pos, false)
	case cql.SuggestGraphEngineType:
		return graphEngineItems(false)
	case cql.SuggestKeywords:
		return keywordItems(line, pos)
	case cql.SuggestFields:
		return s.fieldItems(ctx, lines, line, pos)
	case cql.SuggestFrom:
		return fromItems()
	case cql.SuggestTable:
		return s.tableItems(ctx, lines, pos)
	case cql.SuggestIfNotExists:
		return ifNotExistsItems()
	case cql.SuggestCreateKeyword:
		return createKeywordItems()
	case cql.SuggestAlterKeyword:
		return alterKeywordItems()
	case cql.SuggestDropKeyword:
		return dropKeywordItems()
	case cql.SuggestDropObjectName:
		return s.dropObjectItems(ctx, cx.Object, line, pos)
	case cql.SuggestColumnType:
		return columnTypeItems()
	case cql.SuggestTypeModifier:
		return typeModifierItems()
	}
	return nil
}

// degrade logs a failed schema fetch and keeps the request going with
// whatever static entries remain.
func degrade(what string, err error) {
	logger.Debugw("schema fetch failed, degrading to empty", "what", what, "error", err)
}
