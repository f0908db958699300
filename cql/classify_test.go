package cql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		line uint32
		char uint32
		want ContextKind
	}{
		{"use line", `USE `, 0, 4, SuggestKeyspace},
		{"use with typed name", `USE de`, 0, 6, SuggestKeyspace},
		{"inside string literal", `USE "de`, 0, 7, ContextStringLiteral},
		{"use after terminator", `USE "dev"; `, 0, 11, SuggestKeywords},

		{"drop table names", `DROP TABLE `, 0, 11, SuggestDropObjectName},
		{"drop keyspace names", `DROP KEYSPACE `, 0, 14, SuggestDropObjectName},
		{"drop materialized view names", `DROP MATERIALIZED VIEW `, 0, 23, SuggestDropObjectName},
		{"drop with partial name", `DROP TABLE us`, 0, 13, SuggestDropObjectName},
		{"drop kind still being typed", `DROP TAB`, 0, 8, SuggestDropKeyword},
		{"bare drop", `DROP `, 0, 5, SuggestDropKeyword},
		{"drop kind complete but cursor adjacent", `DROP TABLE`, 0, 10, SuggestDropKeyword},
		{"drop past terminator falls back to keywords", `DROP TABLE x;`, 0, 13, SuggestKeywords},

		{"bare create", `CREATE `, 0, 7, SuggestCreateKeyword},
		{"create kind being typed", `CREATE TAB`, 0, 10, SuggestCreateKeyword},
		{"bare alter", `ALTER `, 0, 6, SuggestAlterKeyword},
		{"create table object position", `CREATE TABLE `, 0, 13, SuggestIfNotExists},
		{"create materialized view object position", `CREATE MATERIALIZED VIEW `, 0, 25, SuggestIfNotExists},
		{"create role object position", `CREATE ROLE `, 0, 12, SuggestIfNotExists},

		{"selector continuation after comma", `SELECT a, b `, 0, 12, SuggestFields},
		{"selector resting on comma", `SELECT aaa, `, 0, 12, SuggestFields},
		{"selector first field typed", `SELECT a`, 0, 8, SuggestFields},
		{"selector mid second field", `SELECT a, b`, 0, 11, SuggestFields},
		{"selector with qualified from later", `SELECT id FROM ks.tbl`, 0, 9, SuggestFields},
		{"from position after one field", `SELECT a `, 0, 9, SuggestFrom},
		{"from position after wildcard", `SELECT * `, 0, 9, SuggestFrom},
		{"alias still reaches from position", `SELECT a b `, 0, 11, SuggestFrom},
		{"bare select offers keywords", `SELECT `, 0, 7, SuggestKeywords},

		{"table after from", `SELECT * FROM `, 0, 14, SuggestTable},
		{"table partial after from", `SELECT * FROM us`, 0, 16, SuggestTable},
		{"table after insert into", `INSERT INTO `, 0, 12, SuggestTable},
		{"table after update", `UPDATE `, 0, 7, SuggestTable},
		{"no table once update target typed", `UPDATE users `, 0, 13, SuggestKeywords},

		{"graph engine assignment", `graph_engine = `, 0, 15, SuggestGraphEngineType},
		{"graph engine in with clause", `AND graph_engine = `, 0, 19, SuggestGraphEngineType},

		{"blank line", ``, 0, 0, SuggestKeywords},
		{"partial first keyword", `SELE`, 0, 4, SuggestKeywords},
		{"where expression suppressed", `SELECT * FROM t WHERE `, 0, 22, ContextNone},
		{"and expression suppressed", `DELETE FROM t WHERE a = 1 AND `, 0, 30, ContextNone},
		{"open paren suppressed", `INSERT INTO t (a, `, 0, 18, ContextNone},

		{"line out of range", `USE "dev";`, 5, 0, ContextNone},
		{"character out of range", `USE`, 0, 99, ContextNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text, Position{Line: tt.line, Character: tt.char})
			assert.Equal(t, tt.want, got.Kind,
				"text %q line %d char %d: want %s, got %s", tt.text, tt.line, tt.char, tt.want, got.Kind)
		})
	}
}

func TestClassify_DropObjectKinds(t *testing.T) {
	tests := []struct {
		text string
		want ObjectKind
	}{
		{`DROP KEYSPACE `, ObjectKeyspace},
		{`DROP TABLE `, ObjectTable},
		{`DROP AGGREGATE `, ObjectAggregate},
		{`DROP FUNCTION `, ObjectFunction},
		{`DROP INDEX `, ObjectIndex},
		{`DROP TYPE `, ObjectType},
		{`DROP MATERIALIZED VIEW `, ObjectView},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			got := Classify(tt.text, Position{Line: 0, Character: uint32(len(tt.text))})
			assert.Equal(t, SuggestDropObjectName, got.Kind)
			assert.Equal(t, tt.want, got.Object)
		})
	}
}

func TestClassify_DropRoleHasNoCatalog(t *testing.T) {
	// ROLE is droppable but has no schema catalog behind it, so the
	// classifier falls through to the keyword rules.
	got := Classify(`DROP ROLE `, Position{Line: 0, Character: 10})
	assert.NotEqual(t, SuggestDropObjectName, got.Kind)
}

func TestClassify_ColumnBlock(t *testing.T) {
	text := "CREATE TABLE users (\n" +
		"id \n" +
		"name text,\n" +
		");"

	t.Run("type after column name", func(t *testing.T) {
		got := Classify(text, Position{Line: 1, Character: 3})
		assert.Equal(t, SuggestColumnType, got.Kind)
	})

	t.Run("type while being typed", func(t *testing.T) {
		text := "CREATE TABLE users (\n" +
			"id uu\n" +
			");"
		got := Classify(text, Position{Line: 1, Character: 5})
		assert.Equal(t, SuggestColumnType, got.Kind)
	})

	t.Run("modifier after complete type", func(t *testing.T) {
		text := "CREATE TABLE users (\n" +
			"id uuid \n" +
			");"
		got := Classify(text, Position{Line: 1, Character: 8})
		assert.Equal(t, SuggestTypeModifier, got.Kind)
	})

	t.Run("modifier after parameterized type", func(t *testing.T) {
		text := "CREATE TABLE users (\n" +
			"tags set<text> \n" +
			");"
		got := Classify(text, Position{Line: 1, Character: 15})
		assert.Equal(t, SuggestTypeModifier, got.Kind)
	})

	t.Run("no suggestion on blank block line", func(t *testing.T) {
		text := "CREATE TABLE users (\n" +
			"\n" +
			");"
		got := Classify(text, Position{Line: 1, Character: 0})
		assert.Equal(t, ContextNone, got.Kind)
	})
}

func TestClassify_BlockComment(t *testing.T) {
	text := "SELECT 1;\n" +
		"/*\n" +
		"anything \n" +
		"*/\n" +
		"USE \"dev\";"

	got := Classify(text, Position{Line: 2, Character: 9})
	assert.Equal(t, ContextNone, got.Kind, "no suggestions inside a block comment")
}

func TestClassify_PrecedenceOrder(t *testing.T) {
	// A USE line inside a string literal is literal first, keyspace second;
	// the dispatcher re-derives the keyspace intent from the line shape.
	got := Classify(`USE "de`, Position{Line: 0, Character: 7})
	assert.Equal(t, ContextStringLiteral, got.Kind)
	assert.True(t, KeyspacePosition(`USE "de`, 7))

	// DROP TABLE matches the object-name rule before the generic
	// two-token drop rule.
	got = Classify(`DROP TABLE `, Position{Line: 0, Character: 11})
	assert.Equal(t, SuggestDropObjectName, got.Kind)

	// The trailing comma keeps the selector rule ahead of the keyword
	// catch-all.
	got = Classify(`SELECT a, b `, Position{Line: 0, Character: 12})
	assert.Equal(t, SuggestFields, got.Kind)
}

func TestKeyspacePosition(t *testing.T) {
	assert.True(t, KeyspacePosition(`USE `, 4))
	assert.True(t, KeyspacePosition(`use "dev`, 8))
	assert.True(t, KeyspacePosition(`USE "dev";`, 9), "cursor still before the terminator")
	assert.False(t, KeyspacePosition(`USE "dev"; SELECT`, 12), "cursor past the terminator")
	assert.False(t, KeyspacePosition(`USER "x"`, 6), "user is not use")
	assert.False(t, KeyspacePosition(``, 0))
	assert.False(t, KeyspacePosition(`USE`, 99))
}

func TestGraphEnginePosition(t *testing.T) {
	assert.True(t, GraphEnginePosition(`graph_engine = `, 15))
	assert.True(t, GraphEnginePosition(`AND graph_engine = 'C`, 21))
	assert.False(t, GraphEnginePosition(`graph_engine `, 13), "assignment not reached")
	assert.False(t, GraphEnginePosition(`engine = `, 9))
	assert.False(t, GraphEnginePosition(`graph_engine = `, 99))
}
