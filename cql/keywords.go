package cql

// ObjectKind names a schema object family addressed by CREATE/ALTER/DROP.
type ObjectKind string

const (
	ObjectKeyspace  ObjectKind = "keyspace"
	ObjectTable     ObjectKind = "table"
	ObjectAggregate ObjectKind = "aggregate"
	ObjectFunction  ObjectKind = "function"
	ObjectIndex     ObjectKind = "index"
	ObjectType      ObjectKind = "type"
	ObjectView      ObjectKind = "materialized view"
	ObjectRole      ObjectKind = "role"
	ObjectUser      ObjectKind = "user"
)

// Keywords is the master completion list served at keyword positions.
var Keywords = []string{
	"SELECT",
	"FROM",
	"WHERE",
	"INSERT",
	"INTO",
	"VALUES",
	"UPDATE",
	"SET",
	"DELETE",
	"CREATE",
	"ALTER",
	"DROP",
	"USE",
	"TRUNCATE",
	"GRANT",
	"REVOKE",
	"LIST",
	"TABLE",
	"KEYSPACE",
	"INDEX",
	"TYPE",
	"MATERIALIZED VIEW",
	"ROLE",
	"USER",
	"FUNCTION",
	"AGGREGATE",
	"AND",
	"IF",
	"NOT",
	"EXISTS",
	"IN",
	"WITH",
	"PRIMARY KEY",
	"STATIC",
	"ORDER BY",
	"GROUP BY",
	"LIMIT",
	"PER PARTITION LIMIT",
	"ALLOW FILTERING",
	"USING",
	"TTL",
	"TIMESTAMP",
	"DISTINCT",
	"JSON",
	"CONTAINS",
	"TOKEN",
	"BEGIN BATCH",
	"APPLY BATCH",
	"ASC",
	"DESC",
}

// TypeNames is the completion list for column-type positions. The
// parameterized kinds are offered as snippets by the completion layer.
var TypeNames = []string{
	"ascii",
	"bigint",
	"blob",
	"boolean",
	"counter",
	"date",
	"decimal",
	"double",
	"duration",
	"float",
	"inet",
	"int",
	"smallint",
	"text",
	"time",
	"timestamp",
	"timeuuid",
	"tinyint",
	"uuid",
	"varchar",
	"varint",
}

// ParameterizedTypeNames are the generic container types, completed as
// snippets with the cursor between the angle brackets.
var ParameterizedTypeNames = []string{
	"set",
	"list",
	"map",
	"tuple",
	"frozen",
}

// TypeModifiers is the completion list offered after a column's type.
var TypeModifiers = []string{
	"PRIMARY KEY",
	"STATIC",
}

// GraphEngineTypes are the accepted values of a graph_engine assignment.
var GraphEngineTypes = []string{
	"Core",
	"Classic",
}

// StatementStarters holds the lower-cased keywords that begin a CQL
// statement. The formatter's terminator pass uses it to recognize that the
// following line starts a new statement.
var StatementStarters = map[string]struct{}{
	"select":   {},
	"insert":   {},
	"update":   {},
	"delete":   {},
	"create":   {},
	"alter":    {},
	"drop":     {},
	"use":      {},
	"truncate": {},
	"grant":    {},
	"revoke":   {},
	"list":     {},
	"begin":    {},
	"apply":    {},
	"commit":   {},
	"describe": {},
}

// ClauseKeywords holds the lower-cased keywords that begin a statement or a
// clause within one. The bracket scans treat a line starting with any of
// these as a statement boundary they must not cross.
var ClauseKeywords = map[string]struct{}{
	"select":   {},
	"insert":   {},
	"update":   {},
	"delete":   {},
	"create":   {},
	"alter":    {},
	"drop":     {},
	"use":      {},
	"truncate": {},
	"grant":    {},
	"revoke":   {},
	"list":     {},
	"begin":    {},
	"apply":    {},
	"commit":   {},
	"describe": {},
	"from":     {},
	"where":    {},
	"with":     {},
	"values":   {},
	"set":      {},
	"if":       {},
	"and":      {},
	"or":       {},
	"order":    {},
	"group":    {},
	"limit":    {},
	"allow":    {},
	"using":    {},
}

// dropKinds are the droppable object kinds that carry schema-backed name
// completion. ROLE, USER and SEARCH INDEX are droppable too but have no
// catalog to complete from.
var dropKinds = map[string]ObjectKind{
	"keyspace":          ObjectKeyspace,
	"table":             ObjectTable,
	"aggregate":         ObjectAggregate,
	"function":          ObjectFunction,
	"index":             ObjectIndex,
	"type":              ObjectType,
	"materialized view": ObjectView,
}

// createKinds are the creatable object kinds that take IF NOT EXISTS.
var createKinds = map[string]ObjectKind{
	"keyspace":          ObjectKeyspace,
	"table":             ObjectTable,
	"aggregate":         ObjectAggregate,
	"function":          ObjectFunction,
	"index":             ObjectIndex,
	"type":              ObjectType,
	"materialized view": ObjectView,
	"role":              ObjectRole,
	"user":              ObjectUser,
}

// CreateObjectKinds is the completion list after CREATE.
var CreateObjectKinds = []string{
	"AGGREGATE",
	"FUNCTION",
	"INDEX",
	"KEYSPACE",
	"MATERIALIZED VIEW",
	"ROLE",
	"SEARCH INDEX",
	"TABLE",
	"TYPE",
	"USER",
}

// AlterObjectKinds is the completion list after ALTER.
var AlterObjectKinds = []string{
	"KEYSPACE",
	"MATERIALIZED VIEW",
	"ROLE",
	"TABLE",
	"TYPE",
	"USER",
}

// DropObjectKinds is the completion list after DROP.
var DropObjectKinds = []string{
	"AGGREGATE",
	"FUNCTION",
	"INDEX",
	"KEYSPACE",
	"MATERIALIZED VIEW",
	"ROLE",
	"SEARCH INDEX",
	"TABLE",
	"TYPE",
	"USER",
}

var typeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(TypeNames))
	for _, t := range TypeNames {
		m[t] = struct{}{}
	}
	return m
}()

var parameterizedTypes = []string{"set", "map", "list", "frozen"}
