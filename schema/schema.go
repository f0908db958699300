// Package schema fetches read-only projections of a Cassandra or Scylla
// cluster's system_schema catalog. Results are fetched fresh per request and
// never cached; a completion a few seconds behind a concurrent DDL statement
// is acceptable, a stale cache layer is not.
package schema

import (
	"context"
	"fmt"
)

// Keyspace is a top-level namespace.
type Keyspace struct {
	Name string
}

// Table is a table within a keyspace.
type Table struct {
	Keyspace string
	Name     string
}

// Qualified returns the keyspace-qualified name, "ks.table".
func (t Table) Qualified() string {
	return fmt.Sprintf("%s.%s", t.Keyspace, t.Name)
}

// Column is a column of a table, with its CQL type.
type Column struct {
	Keyspace string
	Table    string
	Name     string
	Type     string
}

// Index is a secondary index within a keyspace.
type Index struct {
	Keyspace string
	Name     string
}

// Qualified returns "ks.index".
func (i Index) Qualified() string {
	return fmt.Sprintf("%s.%s", i.Keyspace, i.Name)
}

// Type is a user-defined type within a keyspace.
type Type struct {
	Keyspace string
	Name     string
}

// Qualified returns "ks.type".
func (t Type) Qualified() string {
	return fmt.Sprintf("%s.%s", t.Keyspace, t.Name)
}

// Function is a user-defined function within a keyspace.
type Function struct {
	Keyspace string
	Name     string
}

// Qualified returns "ks.function".
func (f Function) Qualified() string {
	return fmt.Sprintf("%s.%s", f.Keyspace, f.Name)
}

// Aggregate is a user-defined aggregate within a keyspace.
type Aggregate struct {
	Keyspace string
	Name     string
}

// Qualified returns "ks.aggregate".
func (a Aggregate) Qualified() string {
	return fmt.Sprintf("%s.%s", a.Keyspace, a.Name)
}

// View is a materialized view within a keyspace.
type View struct {
	Keyspace string
	Name     string
}

// Qualified returns "ks.view".
func (v View) Qualified() string {
	return fmt.Sprintf("%s.%s", v.Keyspace, v.Name)
}

// Provider fetches schema objects from a cluster. Every method fails
// independently; callers treat any error as an empty collection and degrade
// rather than surface a protocol error.
type Provider interface {
	Keyspaces(ctx context.Context) ([]Keyspace, error)

	// Tables returns every table in the cluster; TablesIn restricts to one
	// keyspace.
	Tables(ctx context.Context) ([]Table, error)
	TablesIn(ctx context.Context, keyspace string) ([]Table, error)

	// Columns returns every column in the cluster; ColumnsIn restricts to a
	// keyspace, ColumnsOf to a single table.
	Columns(ctx context.Context) ([]Column, error)
	ColumnsIn(ctx context.Context, keyspace string) ([]Column, error)
	ColumnsOf(ctx context.Context, keyspace, table string) ([]Column, error)

	Indexes(ctx context.Context) ([]Index, error)
	Types(ctx context.Context) ([]Type, error)
	Functions(ctx context.Context) ([]Function, error)
	Aggregates(ctx context.Context) ([]Aggregate, error)
	Views(ctx context.Context) ([]View, error)

	// Ping verifies the cluster is reachable with the configured credentials.
	Ping(ctx context.Context) error

	// ClusterVersion reports the cluster's release_version.
	ClusterVersion(ctx context.Context) (string, error)
}
