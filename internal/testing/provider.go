// Package testing provides shared test fixtures for cqlls packages.
package testing

import (
	"context"

	"github.com/cqlls/cqlls/errors"
	"github.com/cqlls/cqlls/schema"
)

// FakeProvider implements schema.Provider from in-memory fixtures. The
// fields are exported so a test can install exactly the catalog it needs.
type FakeProvider struct {
	KeyspaceList  []schema.Keyspace
	TableList     []schema.Table
	ColumnList    []schema.Column
	IndexList     []schema.Index
	TypeList      []schema.Type
	FunctionList  []schema.Function
	AggregateList []schema.Aggregate
	ViewList      []schema.View
	Version       string
}

// NewFakeProvider returns a provider with a small default catalog covering
// two single-table keyspaces and a richer dev keyspace.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		KeyspaceList: []schema.Keyspace{
			{Name: "ks1"}, {Name: "ks2"}, {Name: "dev"},
		},
		TableList: []schema.Table{
			{Keyspace: "ks1", Name: "t1"},
			{Keyspace: "ks2", Name: "t2"},
			{Keyspace: "dev", Name: "users"},
			{Keyspace: "dev", Name: "events"},
		},
		ColumnList: []schema.Column{
			{Keyspace: "ks1", Table: "t1", Name: "id", Type: "uuid"},
			{Keyspace: "ks1", Table: "t1", Name: "name", Type: "text"},
			{Keyspace: "ks2", Table: "t2", Name: "id", Type: "uuid"},
			{Keyspace: "dev", Table: "users", Name: "user_id", Type: "uuid"},
			{Keyspace: "dev", Table: "users", Name: "email", Type: "text"},
			{Keyspace: "dev", Table: "users", Name: "created_at", Type: "timestamp"},
			{Keyspace: "dev", Table: "events", Name: "event_id", Type: "timeuuid"},
			{Keyspace: "dev", Table: "events", Name: "payload", Type: "blob"},
		},
		IndexList: []schema.Index{
			{Keyspace: "dev", Name: "users_email_idx"},
		},
		TypeList: []schema.Type{
			{Keyspace: "dev", Name: "address"},
		},
		FunctionList: []schema.Function{
			{Keyspace: "dev", Name: "total"},
		},
		AggregateList: []schema.Aggregate{
			{Keyspace: "dev", Name: "avg_size"},
		},
		ViewList: []schema.View{
			{Keyspace: "dev", Name: "users_by_email"},
		},
		Version: "4.0.7",
	}
}

// Keyspaces implements schema.Provider.
func (f *FakeProvider) Keyspaces(context.Context) ([]schema.Keyspace, error) {
	return f.KeyspaceList, nil
}

// Tables implements schema.Provider.
func (f *FakeProvider) Tables(context.Context) ([]schema.Table, error) {
	return f.TableList, nil
}

// TablesIn implements schema.Provider.
func (f *FakeProvider) TablesIn(_ context.Context, keyspace string) ([]schema.Table, error) {
	var out []schema.Table
	for _, t := range f.TableList {
		if t.Keyspace == keyspace {
			out = append(out, t)
		}
	}
	return out, nil
}

// Columns implements schema.Provider.
func (f *FakeProvider) Columns(context.Context) ([]schema.Column, error) {
	return f.ColumnList, nil
}

// ColumnsIn implements schema.Provider.
func (f *FakeProvider) ColumnsIn(_ context.Context, keyspace string) ([]schema.Column, error) {
	var out []schema.Column
	for _, c := range f.ColumnList {
		if c.Keyspace == keyspace {
			out = append(out, c)
		}
	}
	return out, nil
}

// ColumnsOf implements schema.Provider.
func (f *FakeProvider) ColumnsOf(_ context.Context, keyspace, table string) ([]schema.Column, error) {
	var out []schema.Column
	for _, c := range f.ColumnList {
		if c.Keyspace == keyspace && c.Table == table {
			out = append(out, c)
		}
	}
	return out, nil
}

// Indexes implements schema.Provider.
func (f *FakeProvider) Indexes(context.Context) ([]schema.Index, error) {
	return f.IndexList, nil
}

// Types implements schema.Provider.
func (f *FakeProvider) Types(context.Context) ([]schema.Type, error) {
	return f.TypeList, nil
}

// Functions implements schema.Provider.
func (f *FakeProvider) Functions(context.Context) ([]schema.Function, error) {
	return f.FunctionList, nil
}

// Aggregates implements schema.Provider.
func (f *FakeProvider) Aggregates(context.Context) ([]schema.Aggregate, error) {
	return f.AggregateList, nil
}

// Views implements schema.Provider.
func (f *FakeProvider) Views(context.Context) ([]schema.View, error) {
	return f.ViewList, nil
}

// Ping implements schema.Provider.
func (f *FakeProvider) Ping(context.Context) error {
	return nil
}

// ClusterVersion implements schema.Provider.
func (f *FakeProvider) ClusterVersion(context.Context) (string, error) {
	return f.Version, nil
}

// FailingProvider implements schema.Provider with every method failing, for
// exercising the degrade-to-empty error policy.
type FailingProvider struct{}

func (FailingProvider) fail() error {
	return errors.Wrap(errors.ErrSchemaUnavailable, "fake provider always fails")
}

// Keyspaces implements schema.Provider.
func (p FailingProvider) Keyspaces(context.Context) ([]schema.Keyspace, error) {
	return nil, p.fail()
}

// Tables implements schema.Provider.
func (p FailingProvider) Tables(context.Context) ([]schema.Table, error) {
	return nil, p.fail()
}

// TablesIn implements schema.Provider.
func (p FailingProvider) TablesIn(context.Context, string) ([]schema.Table, error) {
	return nil, p.fail()
}

// Columns implements schema.Provider.
func (p FailingProvider) Columns(context.Context) ([]schema.Column, error) {
	return nil, p.fail()
}

// ColumnsIn implements schema.Provider.
func (p FailingProvider) ColumnsIn(context.Context, string) ([]schema.Column, error) {
	return nil, p.fail()
}

// ColumnsOf implements schema.Provider.
func (p FailingProvider) ColumnsOf(context.Context, string, string) ([]schema.Column, error) {
	return nil, p.fail()
}

// Indexes implements schema.Provider.
func (p FailingProvider) Indexes(context.Context) ([]schema.Index, error) {
	return nil, p.fail()
}

// Types implements schema.Provider.
func (p FailingProvider) Types(context.Context) ([]schema.Type, error) {
	return nil, p.fail()
}

// Functions implements schema.Provider.
func (p FailingProvider) Functions(context.Context) ([]schema.Function, error) {
	return nil, p.fail()
}

// Aggregates implements schema.Provider.
func (p FailingProvider) Aggregates(context.Context) ([]schema.Aggregate, error) {
	return nil, p.fail()
}

// Views implements schema.Provider.
func (p FailingProvider) Views(context.Context) ([]schema.View, error) {
	return nil, p.fail()
}

// Ping implements schema.Provider.
func (p FailingProvider) Ping(context.Context) error {
	return p.fail()
}

// ClusterVersion implements schema.Provider.
func (p FailingProvider) ClusterVersion(context.Context) (string, error) {
	return "", p.fail()
}
