package complete

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/cqlls/cqlls/cql"
	"github.com/cqlls/cqlls/schema"
)

// keyspaceItems completes keyspace names on a USE line. Outside a literal
// the whole quoted, terminated form is inserted; inside one, what still
// needs typing depends on the closing quote and terminator already present
// after the cursor.
func (s *Service) keyspaceItems(ctx context.Context, line string, pos cql.Position, inLiteral bool) []Item {
	keyspaces, err := s.provider.Keyspaces(ctx)
	if err != nil {
		degrade("keyspaces", err)
	}

	if !inLiteral {
		items := make([]Item, 0, len(keyspaces))
		for _, ks := range keyspaces {
			items = append(items, Item{
				Label:      ks.Name,
				Kind:       KindKeyspace,
				InsertText: fmt.Sprintf(`"%s";`, ks.Name),
				Detail:     "keyspace",
				Snippet:    true,
			})
		}
		return items
	}

	lit, ok := cql.LiteralAt(line, pos.Character)
	if !ok {
		return nil
	}

	var items []Item
	for _, ks := range keyspaces {
		if !strings.HasPrefix(ks.Name, lit.Typed) {
			continue
		}
		items = append(items, literalKeyspaceItem(ks.Name, lit, pos.Line))
	}
	return items
}

// literalKeyspaceItem renders one in-literal keyspace completion. Only the
// closed-but-unterminated case can replace a range safely (the new text
// spans the existing closing quote); the other three append whatever the
// suffix is missing and let the client consume the typed prefix.
func literalKeyspaceItem(name string, lit cql.Literal, line uint32) Item {
	item := Item{
		Label:   name,
		Kind:    KindKeyspace,
		Detail:  "keyspace",
		Snippet: true,
	}

	quote := string(lit.Quote)
	switch {
	case lit.HasClosingQuote && lit.HasSemicolon:
		item.InsertText = name
	case lit.HasClosingQuote && !lit.HasSemicolon:
		item.Edit = &Edit{
			Line:    line,
			Start:   uint32(lit.QuoteIndex + 1),
			End:     uint32(lit.WordEnd + 1),
			NewText: name + quote + ";",
		}
	case !lit.HasClosingQuote && lit.HasSemicolon:
		item.InsertText = name + quote
	default:
		item.InsertText = name + quote + ";"
	}
	return item
}

// graphEngineItems completes graph_engine assignment values. Outside a
// literal the value is wrapped in the single quotes the assignment needs.
func graphEngineItems(inLiteral bool) []Item {
	items := make([]Item, 0, len(cql.GraphEngineTypes))
	for _, engine := range cql.GraphEngineTypes {
		insert := engine
		if !inLiteral {
			insert = "'" + engine + "'"
		}
		items = append(items, Item{
			Label:      engine,
			Kind:       KindValue,
			InsertText: insert,
			Detail:     "graph engine",
		})
	}
	return items
}

// keywordItems serves the static keyword table; on a blank prefix the
// full-statement command sequences are merged in.
func keywordItems(line string, pos cql.Position) []Item {
	items := make([]Item, 0, len(cql.Keywords))
	for _, kw := range cql.Keywords {
		items = append(items, Item{
			Label:      kw,
			Kind:       KindKeyword,
			InsertText: kw,
			Detail:     "cql keyword",
		})
	}

	prefix := string([]rune(line)[:pos.Character])
	if strings.TrimSpace(prefix) == "" {
		items = append(items, sequenceItems()...)
	}
	return items
}

// fieldItems completes selector names from the narrowest column catalog the
// line allows, skipping columns already typed before the cursor. When
// nothing meaningful follows the cursor, each entry becomes an edit that
// finishes the whole statement through FROM and the terminator. Builtin
// function names ride along unconditionally.
func (s *Service) fieldItems(ctx context.Context, lines []string, line string, pos cql.Position) []Item {
	columns, activeKs := s.scopedColumns(ctx, lines, line, pos)

	runes := []rune(line)
	prefix := strings.ToLower(string(runes[:pos.Character]))
	tail := string(runes[pos.Character:])
	shouldEdit := !containsLetter(tail)

	wordStart := pos.Character
	for wordStart > 0 && cql.IsWordRune(runes[wordStart-1]) {
		wordStart--
	}

	var items []Item
	for _, col := range columns {
		if strings.Contains(prefix, strings.ToLower(col.Name)) {
			continue
		}
		item := Item{
			Label:  col.Name,
			Kind:   KindColumn,
			Detail: col.Type,
		}
		if shouldEdit {
			table := col.Keyspace + "." + col.Table
			if activeKs != "" {
				table = col.Table
			}
			item.Edit = &Edit{
				Line:    pos.Line,
				Start:   wordStart,
				End:     uint32(len(runes)),
				NewText: col.Name + " FROM " + table + ";",
			}
		} else {
			item.InsertText = col.Name
		}
		items = append(items, item)
	}

	for _, fn := range cql.Builtins() {
		items = append(items, Item{
			Label:         fn.Name,
			Kind:          KindFunction,
			InsertText:    fn.Name,
			Detail:        fn.Detail,
			Documentation: fn.Documentation,
		})
	}
	return items
}

// scopedColumns picks the column catalog for a selector position: an
// explicit ks.table after FROM wins, then the active keyspace (narrowed
// further by a bare table after FROM), then the whole cluster. The second
// return is the active keyspace when one applied, used to decide whether
// statement-finishing edits may use bare table names.
func (s *Service) scopedColumns(ctx context.Context, lines []string, line string, pos cql.Position) ([]schema.Column, string) {
	if ks, table, ok := cql.QualifiedTableOnLine(line); ok {
		cols, err := s.provider.ColumnsOf(ctx, ks, table)
		if err != nil {
			degrade("columns", err)
		}
		return cols, ""
	}

	activeKs, ok := cql.LatestKeyspace(lines, int(pos.Line))
	if !ok {
		cols, err := s.provider.Columns(ctx)
		if err != nil {
			degrade("columns", err)
		}
		return cols, ""
	}

	if table, ok := cql.TableAfterFrom(line); ok {
		cols, err := s.provider.ColumnsOf(ctx, activeKs, table)
		if err != nil {
			degrade("columns", err)
		}
		return cols, activeKs
	}

	cols, err := s.provider.ColumnsIn(ctx, activeKs)
	if err != nil {
		degrade("columns", err)
	}
	return cols, activeKs
}

func fromItems() []Item {
	return []Item{{
		Label:      "FROM",
		Kind:       KindKeyword,
		InsertText: "FROM ",
		Detail:     "cql keyword",
	}}
}

// tableItems completes table names. With an active keyspace its tables come
// first unqualified, ranked ahead of the qualified global catalog; without
// one every table is offered qualified.
func (s *Service) tableItems(ctx context.Context, lines []string, pos cql.Position) []Item {
	global, err := s.provider.Tables(ctx)
	if err != nil {
		degrade("tables", err)
	}

	activeKs, ok := cql.LatestKeyspace(lines, int(pos.Line))
	if !ok {
		items := make([]Item, 0, len(global))
		for _, t := range global {
			items = append(items, Item{
				Label:      t.Qualified(),
				Kind:       KindTable,
				InsertText: t.Qualified(),
				Detail:     "table",
			})
		}
		return items
	}

	scoped, err := s.provider.TablesIn(ctx, activeKs)
	if err != nil {
		degrade("tables", err)
	}

	items := make([]Item, 0, len(scoped)+len(global))
	for _, t := range scoped {
		items = append(items, Item{
			Label:      t.Name,
			Kind:       KindTable,
			InsertText: t.Name,
			Detail:     "table in " + t.Keyspace,
			SortText:   "0_" + t.Name,
		})
	}
	for _, t := range global {
		items = append(items, Item{
			Label:      t.Qualified(),
			Kind:       KindTable,
			InsertText: t.Qualified(),
			Detail:     "table",
			SortText:   "1_" + t.Qualified(),
		})
	}
	return items
}

// dropObjectItems completes the object name of a DROP statement. Each entry
// replaces everything from the word under the cursor to the end of the line
// with the terminated qualified name, so accepting one completes the
// statement.
func (s *Service) dropObjectItems(ctx context.Context, kind cql.ObjectKind, line string, pos cql.Position) []Item {
	names := s.dropTargets(ctx, kind)

	runes := []rune(line)
	start := uint32(0)
	for i := int(pos.Character) - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			start = uint32(i + 1)
			break
		}
	}
	end := uint32(len(runes))

	items := make([]Item, 0, len(names))
	for _, name := range names {
		terminated := name + ";"
		items = append(items, Item{
			Label: terminated,
			Kind:  kindForObject(kind),
			Edit: &Edit{
				Line:    pos.Line,
				Start:   start,
				End:     end,
				NewText: terminated,
			},
		})
	}
	return items
}

// dropTargets fetches the qualified names of every object of a droppable
// kind. Keyspace names are bare; everything else is keyspace-qualified.
func (s *Service) dropTargets(ctx context.Context, kind cql.ObjectKind) []string {
	switch kind {
	case cql.ObjectKeyspace:
		keyspaces, err := s.provider.Keyspaces(ctx)
		if err != nil {
			degrade("keyspaces", err)
		}
		names := make([]string, 0, len(keyspaces))
		for _, ks := range keyspaces {
			names = append(names, ks.Name)
		}
		return names
	case cql.ObjectTable:
		tables, err := s.provider.Tables(ctx)
		if err != nil {
			degrade("tables", err)
		}
		names := make([]string, 0, len(tables))
		for _, t := range tables {
			names = append(names, t.Qualified())
		}
		return names
	case cql.ObjectAggregate:
		aggregates, err := s.provider.Aggregates(ctx)
		if err != nil {
			degrade("aggregates", err)
		}
		names := make([]string, 0, len(aggregates))
		for _, a := range aggregates {
			names = append(names, a.Qualified())
		}
		return names
	case cql.ObjectFunction:
		functions, err := s.provider.Functions(ctx)
		if err != nil {
			degrade("functions", err)
		}
		names := make([]string, 0, len(functions))
		for _, f := range functions {
			names = append(names, f.Qualified())
		}
		return names
	case cql.ObjectIndex:
		indexes, err := s.provider.Indexes(ctx)
		if err != nil {
			degrade("indexes", err)
		}
		names := make([]string, 0, len(indexes))
		for _, i := range indexes {
			names = append(names, i.Qualified())
		}
		return names
	case cql.ObjectType:
		types, err := s.provider.Types(ctx)
		if err != nil {
			degrade("types", err)
		}
		names := make([]string, 0, len(types))
		for _, t := range types {
			names = append(names, t.Qualified())
		}
		return names
	case cql.ObjectView:
		views, err := s.provider.Views(ctx)
		if err != nil {
			degrade("views", err)
		}
		names := make([]string, 0, len(views))
		for _, v := range views {
			names = append(names, v.Qualified())
		}
		return names
	}
	return nil
}

func kindForObject(kind cql.ObjectKind) Kind {
	switch kind {
	case cql.ObjectKeyspace:
		return KindKeyspace
	case cql.ObjectFunction, cql.ObjectAggregate:
		return KindFunction
	case cql.ObjectType:
		return KindType
	default:
		return KindTable
	}
}

func ifNotExistsItems() []Item {
	return []Item{{
		Label:      "IF NOT EXISTS",
		Kind:       KindKeyword,
		InsertText: "IF NOT EXISTS ",
		Detail:     "cql keyword",
	}}
}

func createKeywordItems() []Item {
	items := make([]Item, 0, 2*len(cql.CreateObjectKinds))
	for _, kind := range cql.CreateObjectKinds {
		items = append(items,
			Item{
				Label:      kind,
				Kind:       KindKeyword,
				InsertText: kind,
				Detail:     "create target",
			},
			Item{
				Label:      kind + " IF NOT EXISTS",
				Kind:       KindSnippet,
				InsertText: kind + " IF NOT EXISTS $0",
				Detail:     "create target",
				Snippet:    true,
			},
		)
	}
	return items
}

func alterKeywordItems() []Item {
	items := make([]Item, 0, len(cql.AlterObjectKinds))
	for _, kind := range cql.AlterObjectKinds {
		items = append(items, Item{
			Label:      kind,
			Kind:       KindKeyword,
			InsertText: kind,
			Detail:     "alter target",
		})
	}
	return items
}

func dropKeywordItems() []Item {
	items := make([]Item, 0, 2*len(cql.DropObjectKinds))
	for _, kind := range cql.DropObjectKinds {
		items = append(items,
			Item{
				Label:      kind,
				Kind:       KindKeyword,
				InsertText: kind,
				Detail:     "drop target",
			},
			Item{
				Label:      kind + " IF EXISTS",
				Kind:       KindSnippet,
				InsertText: kind + " IF EXISTS $0",
				Detail:     "drop target",
				Snippet:    true,
			},
		)
	}
	return items
}

func columnTypeItems() []Item {
	items := make([]Item, 0, len(cql.TypeNames)+len(cql.ParameterizedTypeNames))
	for _, name := range cql.TypeNames {
		items = append(items, Item{
			Label:      name,
			Kind:       KindType,
			InsertText: name,
			Detail:     "cql type",
		})
	}
	for _, name := range cql.ParameterizedTypeNames {
		items = append(items, Item{
			Label:      name + "<>",
			Kind:       KindType,
			InsertText: name + "<$0>",
			Detail:     "cql type",
			Snippet:    true,
		})
	}
	return items
}

func typeModifierItems() []Item {
	items := make([]Item, 0, len(cql.TypeModifiers))
	for _, modifier := range cql.TypeModifiers {
		items = append(items, Item{
			Label:      modifier,
			Kind:       KindKeyword,
			InsertText: modifier,
			Detail:     "column modifier",
		})
	}
	return items
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
