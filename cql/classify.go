// Package cql classifies cursor positions in CQL documents using lexical
// scans only. There is no grammar and no AST: a fixed, ordered set of
// predicates over the current line, the cursor prefix, and the surrounding
// lines decides what a completion at that position should offer. The scans
// are pure, rune-indexed, and return a conservative "no match" instead of
// panicking when an editor-reported offset lands outside the line.
package cql

import (
	"strings"
)

// Position addresses a cursor in a document using protocol line/character
// offsets.
type Position struct {
	Line      uint32
	Character uint32
}

// ContextKind names the completion strategy a cursor position calls for.
type ContextKind int

const (
	// ContextNone means no suggestions apply.
	ContextNone ContextKind = iota

	// ContextStringLiteral means the cursor is inside a quoted literal.
	// Keyword and identifier suggestions are suppressed; literal-value
	// completions (keyspace names, graph engine types) may still apply.
	ContextStringLiteral

	SuggestKeyspace
	SuggestGraphEngineType
	SuggestKeywords
	SuggestFields
	SuggestFrom
	SuggestTable
	SuggestIfNotExists
	SuggestCreateKeyword
	SuggestAlterKeyword
	SuggestDropKeyword
	SuggestDropObjectName
	SuggestColumnType
	SuggestTypeModifier
)

var contextNames = map[ContextKind]string{
	ContextNone:            "none",
	ContextStringLiteral:   "string_literal",
	SuggestKeyspace:        "keyspace",
	SuggestGraphEngineType: "graph_engine_type",
	SuggestKeywords:        "keywords",
	SuggestFields:          "fields",
	SuggestFrom:            "from",
	SuggestTable:           "table",
	SuggestIfNotExists:     "if_not_exists",
	SuggestCreateKeyword:   "create_keyword",
	SuggestAlterKeyword:    "alter_keyword",
	SuggestDropKeyword:     "drop_keyword",
	SuggestDropObjectName:  "drop_object_name",
	SuggestColumnType:      "column_type",
	SuggestTypeModifier:    "type_modifier",
}

func (k ContextKind) String() string {
	if name, ok := contextNames[k]; ok {
		return name
	}
	return "unknown"
}

// Context is the classifier's verdict for one cursor position. Object is set
// only when Kind is SuggestDropObjectName.
type Context struct {
	Kind   ContextKind
	Object ObjectKind
}

// Classify resolves the completion context for the cursor. The rules run in
// a fixed precedence order and the first match wins; the order resolves
// deliberate overlaps between predicates and must not be rearranged.
func Classify(text string, pos Position) Context {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return Context{Kind: ContextNone}
	}
	line := lines[pos.Line]

	runes := []rune(line)
	if int(pos.Character) > len(runes) {
		return Context{Kind: ContextNone}
	}
	prefix := string(runes[:pos.Character])

	if InStringLiteral(line, pos.Character) {
		return Context{Kind: ContextStringLiteral}
	}
	if KeyspacePosition(line, pos.Character) {
		return Context{Kind: SuggestKeyspace}
	}
	if kind, ok := dropObjectPosition(line, pos.Character); ok {
		return Context{Kind: SuggestDropObjectName, Object: kind}
	}
	if kind, ok := verbKeywordPosition(prefix); ok {
		return Context{Kind: kind}
	}
	if ifNotExistsPosition(prefix) {
		return Context{Kind: SuggestIfNotExists}
	}
	if kind, ok := columnBlockPosition(lines, int(pos.Line), prefix); ok {
		return Context{Kind: kind}
	}
	if fieldsPosition(prefix) {
		return Context{Kind: SuggestFields}
	}
	if fromPosition(prefix) {
		return Context{Kind: SuggestFrom}
	}
	if tablePosition(prefix) {
		return Context{Kind: SuggestTable}
	}
	if GraphEnginePosition(line, pos.Character) {
		return Context{Kind: SuggestGraphEngineType}
	}
	if keywordPosition(lines, int(pos.Line), prefix) {
		return Context{Kind: SuggestKeywords}
	}
	return Context{Kind: ContextNone}
}

// KeyspacePosition reports whether the cursor sits where a keyspace name
// belongs: on a USE line, before its terminator. Exported because the
// dispatcher re-checks it for cursors inside string literals.
func KeyspacePosition(line string, char uint32) bool {
	prefix, ok := runePrefix(line, char)
	if !ok {
		return false
	}
	if ti := terminatorIndex(line); ti >= 0 && int(char) > ti {
		return false
	}
	toks := strings.Fields(strings.ToLower(string(prefix)))
	return len(toks) > 0 && toks[0] == "use"
}

// GraphEnginePosition reports whether the cursor follows a graph_engine =
// assignment. Exported for the same in-literal reason as KeyspacePosition.
func GraphEnginePosition(line string, char uint32) bool {
	prefix, ok := runePrefix(line, char)
	if !ok {
		return false
	}
	toks := strings.Fields(strings.ToLower(string(prefix)))
	for i := 0; i+1 < len(toks); i++ {
		if toks[i] == "graph_engine" && toks[i+1] == "=" {
			return true
		}
	}
	return false
}

// dropObjectPosition matches "drop <kind>" with the cursor strictly after
// the kind keyword and not past a terminator. Only the seven schema-backed
// kinds qualify; DROP ROLE and friends fall through to keyword handling.
func dropObjectPosition(line string, char uint32) (ObjectKind, bool) {
	toks := tokenize(line)
	if len(toks) < 2 || toks[0].text != "drop" {
		return "", false
	}
	kind, last, ok := matchKind(toks, 1, dropKinds)
	if !ok {
		return "", false
	}
	if int(char) <= toks[last].end {
		return "", false
	}
	if ti := terminatorIndex(line); ti >= 0 && int(char) > ti {
		return "", false
	}
	return kind, true
}

// verbKeywordPosition matches a bare CREATE/ALTER/DROP while the object-kind
// keyword is still being chosen: either the verb followed by a space, or the
// verb plus a partial second word.
func verbKeywordPosition(prefix string) (ContextKind, bool) {
	toks := strings.Fields(strings.ToLower(prefix))
	if len(toks) == 0 {
		return ContextNone, false
	}

	var kind ContextKind
	switch toks[0] {
	case "create":
		kind = SuggestCreateKeyword
	case "alter":
		kind = SuggestAlterKeyword
	case "drop":
		kind = SuggestDropKeyword
	default:
		return ContextNone, false
	}

	trailing := endsInSpace(prefix)
	if len(toks) == 1 && trailing {
		return kind, true
	}
	if len(toks) == 2 && !trailing {
		return kind, true
	}
	return ContextNone, false
}

// ifNotExistsPosition matches the object-name position right after a
// completed "create <kind> " prefix.
func ifNotExistsPosition(prefix string) bool {
	if !endsInSpace(prefix) {
		return false
	}
	toks := tokenize(prefix)
	if len(toks) < 2 || toks[0].text != "create" {
		return false
	}
	_, last, ok := matchKind(toks, 1, createKinds)
	return ok && last == len(toks)-1
}

// columnBlockPosition matches positions inside a CREATE TABLE column block:
// one prior token on the line means the column's type comes next, a prior
// name/type pair means a modifier may follow.
func columnBlockPosition(lines []string, index int, prefix string) (ContextKind, bool) {
	if !InsideBracketBlock(lines, index) {
		return ContextNone, false
	}
	toks := strings.Fields(strings.ToLower(prefix))
	prior := len(toks)
	if !endsInSpace(prefix) && prior > 0 {
		prior--
	}
	switch {
	case prior == 1:
		return SuggestColumnType, true
	case prior == 2 && IsTypeToken(toks[1]):
		return SuggestTypeModifier, true
	}
	return ContextNone, false
}

// fieldsPosition matches cursor positions inside a SELECT selector list that
// is still being extended. The prefix must mention select without * and
// without having reached from, and the comma boundary must hold: with three
// or more tokens the next-to-last must carry a comma, and a prefix resting
// on whitespace needs a comma on one of its final two tokens.
func fieldsPosition(prefix string) bool {
	trimmed := strings.TrimRight(prefix, " \t")
	toks := strings.Fields(strings.ToLower(trimmed))

	if !containsToken(toks, "select") || containsToken(toks, "*") || containsToken(toks, "from") {
		return false
	}
	if len(toks) > 2 && !strings.Contains(toks[len(toks)-2], ",") {
		return false
	}
	if len(trimmed) != len(prefix) {
		lastHas := strings.Contains(toks[len(toks)-1], ",")
		prevHas := len(toks) >= 2 && strings.Contains(toks[len(toks)-2], ",")
		if !lastHas && !prevHas {
			return false
		}
	}
	return true
}

// fromPosition matches the moment a selector list has been closed without a
// trailing comma: select present, from absent, and the prefix resting just
// past a completed non-comma token.
func fromPosition(prefix string) bool {
	if !endsInSpace(prefix) {
		return false
	}
	toks := strings.Fields(strings.ToLower(prefix))
	if len(toks) < 2 {
		return false
	}
	if !containsToken(toks, "select") || containsToken(toks, "from") {
		return false
	}
	return !strings.HasSuffix(toks[len(toks)-1], ",")
}

// tablePosition matches the table-name position right after INSERT ... INTO,
// SELECT ... FROM, or UPDATE.
func tablePosition(prefix string) bool {
	toks := strings.Fields(strings.ToLower(prefix))
	if len(toks) == 0 {
		return false
	}
	trailing := endsInSpace(prefix)

	completed := ""
	if trailing {
		completed = toks[len(toks)-1]
	} else if len(toks) >= 2 {
		completed = toks[len(toks)-2]
	}

	if completed == "into" && containsToken(toks, "insert") {
		return true
	}
	if completed == "from" && containsToken(toks, "select") {
		return true
	}
	if toks[0] == "update" {
		if trailing && len(toks) == 1 {
			return true
		}
		if !trailing && len(toks) == 2 {
			return true
		}
	}
	return false
}

// keywordPosition is the catch-all: keywords are offered unless the cursor
// sits inside a block comment, inside or just past an open bracket block, or
// in the value expression trailing a WHERE/AND.
func keywordPosition(lines []string, index int, prefix string) bool {
	if InsideBlockComment(lines, index) {
		return false
	}
	if InsideBracketBlock(lines, index) {
		return false
	}
	if unclosedParen(prefix) {
		return false
	}

	toks := strings.Fields(strings.ToLower(prefix))
	if containsToken(toks, "where") {
		return false
	}
	if len(toks) > 0 {
		completed := ""
		if endsInSpace(prefix) {
			completed = toks[len(toks)-1]
		} else if len(toks) >= 2 {
			completed = toks[len(toks)-2]
		}
		if completed == "and" {
			return false
		}
	}
	return true
}

func unclosedParen(prefix string) bool {
	depth := 0
	for _, r := range prefix {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return depth > 0
}

// matchKind matches an object-kind keyword starting at toks[i], handling the
// two-word MATERIALIZED VIEW. Returns the kind and the index of its final
// word.
func matchKind(toks []token, i int, kinds map[string]ObjectKind) (ObjectKind, int, bool) {
	if i >= len(toks) {
		return "", 0, false
	}
	if toks[i].text == "materialized" {
		if i+1 < len(toks) && toks[i+1].text == "view" {
			if kind, ok := kinds["materialized view"]; ok {
				return kind, i + 1, true
			}
		}
		return "", 0, false
	}
	kind, ok := kinds[toks[i].text]
	if !ok {
		return "", 0, false
	}
	return kind, i, true
}
