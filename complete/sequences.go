package complete

import "strings"

// sequence is one full-statement template offered on a blank line. phrase
// names the command family for the detail text; insert is the snippet, with
// $1 visited before the final $0 stop and a terminator included whenever
// the template completes the whole statement.
type sequence struct {
	phrase string
	insert string
}

var sequences = []sequence{
	{"ALTER KEYSPACE", "ALTER KEYSPACE $0"},
	{"ALTER MATERIALIZED VIEW", "ALTER MATERIALIZED VIEW $0"},
	{"ALTER ROLE", "ALTER ROLE $0"},
	{"ALTER TABLE", "ALTER TABLE $0"},
	{"ALTER TYPE", "ALTER TYPE $0"},
	{"ALTER USER", "ALTER USER $0"},

	{"COMMIT SEARCH INDEX", "COMMIT SEARCH INDEX ON $0;"},

	{"CREATE AGGREGATE", "CREATE AGGREGATE IF NOT EXISTS $0"},
	{"CREATE FUNCTION", "CREATE FUNCTION IF NOT EXISTS $0"},
	{"CREATE INDEX", "CREATE INDEX IF NOT EXISTS ON $0"},
	{"CREATE KEYSPACE", "CREATE KEYSPACE IF NOT EXISTS $0"},
	{"CREATE MATERIALIZED VIEW", "CREATE MATERIALIZED VIEW IF NOT EXISTS $0"},
	{"CREATE ROLE", "CREATE ROLE IF NOT EXISTS $0"},
	{"CREATE SEARCH INDEX", "CREATE SEARCH INDEX IF NOT EXISTS ON $0"},
	{"CREATE TABLE", "CREATE TABLE IF NOT EXISTS $0"},
	{"CREATE TYPE", "CREATE TYPE IF NOT EXISTS $0"},
	{"CREATE USER", "CREATE USER IF NOT EXISTS $0"},

	{"DROP AGGREGATE", "DROP AGGREGATE IF EXISTS $0"},
	{"DROP FUNCTION", "DROP FUNCTION IF EXISTS $0"},
	{"DROP INDEX", "DROP INDEX IF EXISTS $0"},
	{"DROP KEYSPACE", "DROP KEYSPACE IF EXISTS $0;"},
	{"DROP MATERIALIZED VIEW", "DROP MATERIALIZED VIEW IF EXISTS $0;"},
	{"DROP ROLE", "DROP ROLE IF EXISTS $0;"},
	{"DROP SEARCH INDEX", "DROP SEARCH INDEX ON $0"},
	{"DROP TABLE", "DROP TABLE IF EXISTS $0;"},
	{"DROP TYPE", "DROP TYPE IF EXISTS $0;"},
	{"DROP USER", "DROP USER IF EXISTS $0;"},

	{"LIST ALL PERMISSIONS", "LIST ALL PERMISSIONS $0"},
	{"LIST ROLES", "LIST ROLES $0"},
	{"LIST USERS", "LIST USERS;"},

	{"REVOKE", "REVOKE $0 FROM $1;"},
	{"REVOKE ALL PERMISSIONS", "REVOKE ALL PERMISSIONS $0"},

	{"SELECT", "SELECT $1 FROM $0"},
	{"SELECT", "SELECT $1 FROM $0;"},

	{"TRUNCATE TABLE", "TRUNCATE TABLE $0;"},

	{"USE", `USE "$0";`},
	{"USE", `USE '$0';`},
}

var sequenceMarkers = strings.NewReplacer("$0", "", "$1", "")

// sequenceLabel renders the menu label for a template: the snippet with the
// tab stops removed and the spacing they leave behind collapsed.
func sequenceLabel(insert string) string {
	label := strings.Join(strings.Fields(sequenceMarkers.Replace(insert)), " ")
	return strings.ReplaceAll(label, " ;", ";")
}

func sequenceItems() []Item {
	items := make([]Item, 0, len(sequences))
	for _, seq := range sequences {
		detail := seq.phrase + " cql command"
		items = append(items, Item{
			Label:         sequenceLabel(seq.insert),
			Kind:          KindSnippet,
			InsertText:    seq.insert,
			Detail:        detail,
			Documentation: detail,
			Snippet:       true,
		})
	}
	return items
}
