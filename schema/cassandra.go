package schema

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/gocql/gocql"

	"github.com/cqlls/cqlls/config"
	"github.com/cqlls/cqlls/errors"
	"github.com/cqlls/cqlls/logger"
)

// CassandraProvider implements Provider against a live cluster using gocql.
// Each call builds its own short-lived session: schema lookups are rare
// (one or two per keystroke at most), sessions are cheap at this rate, and a
// cluster restart between requests never strands a broken connection pool.
type CassandraProvider struct {
	cfg config.DatabaseConfig
}

// NewCassandraProvider creates a provider for the configured contact point.
func NewCassandraProvider(cfg config.DatabaseConfig) *CassandraProvider {
	return &CassandraProvider{cfg: cfg}
}

// Keyspaces implements Provider.
func (p *CassandraProvider) Keyspaces(ctx context.Context) ([]Keyspace, error) {
	var out []Keyspace
	err := p.withSession(ctx, func(s *gocql.Session) error {
		iter := s.Query(`SELECT keyspace_name FROM system_schema.keyspaces`).WithContext(ctx).Iter()
		var name string
		for iter.Scan(&name) {
			out = append(out, Keyspace{Name: name})
		}
		return errors.Wrap(iter.Close(), "listing keyspaces")
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Tables implements Provider.
func (p *CassandraProvider) Tables(ctx context.Context) ([]Table, error) {
	return p.queryTables(ctx, `SELECT keyspace_name, table_name FROM system_schema.tables`)
}

// TablesIn implements Provider.
func (p *CassandraProvider) TablesIn(ctx context.Context, keyspace string) ([]Table, error) {
	return p.queryTables(ctx,
		`SELECT keyspace_name, table_name FROM system_schema.tables WHERE keyspace_name = ?`, keyspace)
}

func (p *CassandraProvider) queryTables(ctx context.Context, stmt string, args ...interface{}) ([]Table, error) {
	var out []Table
	err := p.withSession(ctx, func(s *gocql.Session) error {
		iter := s.Query(stmt, args...).WithContext(ctx).Iter()
		var ks, name string
		for iter.Scan(&ks, &name) {
			out = append(out, Table{Keyspace: ks, Name: name})
		}
		return errors.Wrap(iter.Close(), "listing tables")
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Columns implements Provider.
func (p *CassandraProvider) Columns(ctx context.Context) ([]Column, error) {
	return p.queryColumns(ctx,
		`SELECT keyspace_name, table_name, column_name, type FROM system_schema.columns`)
}

// ColumnsIn implements Provider.
func (p *CassandraProvider) ColumnsIn(ctx context.Context, keyspace string) ([]Column, error) {
	return p.queryColumns(ctx,
		`SELECT keyspace_name, table_name, column_name, type FROM system_schema.columns WHERE keyspace_name = ?`,
		keyspace)
}

// ColumnsOf implements Provider.
func (p *CassandraProvider) ColumnsOf(ctx context.Context, keyspace, table string) ([]Column, error) {
	return p.queryColumns(ctx,
		`SELECT keyspace_name, table_name, column_name, type FROM system_schema.columns WHERE keyspace_name = ? AND table_name = ?`,
		keyspace, table)
}

func (p *CassandraProvider) queryColumns(ctx context.Context, stmt string, args ...interface{}) ([]Column, error) {
	var out []Column
	err := p.withSession(ctx, func(s *gocql.Session) error {
		iter := s.Query(stmt, args...).WithContext(ctx).Iter()
		var ks, tbl, name, typ string
		for iter.Scan(&ks, &tbl, &name, &typ) {
			out = append(out, Column{Keyspace: ks, Table: tbl, Name: name, Type: typ})
		}
		return errors.Wrap(iter.Close(), "listing columns")
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Indexes implements Provider.
func (p *CassandraProvider) Indexes(ctx context.Context) ([]Index, error) {
	pairs, err := p.queryQualified(ctx,
		`SELECT keyspace_name, index_name FROM system_schema.indexes`, "listing indexes")
	if err != nil {
		return nil, err
	}
	out := make([]Index, 0, len(pairs))
	for _, pr := range pairs {
		out = append(out, Index{Keyspace: pr[0], Name: pr[1]})
	}
	return out, nil
}

// Types implements Provider.
func (p *CassandraProvider) Types(ctx context.Context) ([]Type, error) {
	pairs, err := p.queryQualified(ctx,
		`SELECT keyspace_name, type_name FROM system_schema.types`, "listing types")
	if err != nil {
		return nil, err
	}
	out := make([]Type, 0, len(pairs))
	for _, pr := range pairs {
		out = append(out, Type{Keyspace: pr[0], Name: pr[1]})
	}
	return out, nil
}

// Functions implements Provider.
func (p *CassandraProvider) Functions(ctx context.Context) ([]Function, error) {
	pairs, err := p.queryQualified(ctx,
		`SELECT keyspace_name, function_name FROM system_schema.functions`, "listing functions")
	if err != nil {
		return nil, err
	}
	out := make([]Function, 0, len(pairs))
	for _, pr := range pairs {
		out = append(out, Function{Keyspace: pr[0], Name: pr[1]})
	}
	return out, nil
}

// Aggregates implements Provider.
func (p *CassandraProvider) Aggregates(ctx context.Context) ([]Aggregate, error) {
	pairs, err := p.queryQualified(ctx,
		`SELECT keyspace_name, aggregate_name FROM system_schema.aggregates`, "listing aggregates")
	if err != nil {
		return nil, err
	}
	out := make([]Aggregate, 0, len(pairs))
	for _, pr := range pairs {
		out = append(out, Aggregate{Keyspace: pr[0], Name: pr[1]})
	}
	return out, nil
}

// Views implements Provider.
func (p *CassandraProvider) Views(ctx context.Context) ([]View, error) {
	pairs, err := p.queryQualified(ctx,
		`SELECT keyspace_name, view_name FROM system_schema.views`, "listing views")
	if err != nil {
		return nil, err
	}
	out := make([]View, 0, len(pairs))
	for _, pr := range pairs {
		out = append(out, View{Keyspace: pr[0], Name: pr[1]})
	}
	return out, nil
}

// queryQualified runs a two-column (keyspace, name) catalog query.
func (p *CassandraProvider) queryQualified(ctx context.Context, stmt, what string) ([][2]string, error) {
	var out [][2]string
	err := p.withSession(ctx, func(s *gocql.Session) error {
		iter := s.Query(stmt).WithContext(ctx).Iter()
		var ks, name string
		for iter.Scan(&ks, &name) {
			out = append(out, [2]string{ks, name})
		}
		return errors.Wrap(iter.Close(), what)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Ping implements Provider. Building a session already exercises the contact
// point, the credentials, and the protocol handshake.
func (p *CassandraProvider) Ping(ctx context.Context) error {
	return p.withSession(ctx, func(*gocql.Session) error {
		return nil
	})
}

// ClusterVersion implements Provider.
func (p *CassandraProvider) ClusterVersion(ctx context.Context) (string, error) {
	var version string
	err := p.withSession(ctx, func(s *gocql.Session) error {
		q := s.Query(`SELECT release_version FROM system.local`).WithContext(ctx)
		return errors.Wrap(q.Scan(&version), "reading release_version")
	})
	if err != nil {
		return "", err
	}
	return version, nil
}

func (p *CassandraProvider) withSession(ctx context.Context, fn func(*gocql.Session) error) error {
	session, err := p.newCluster().CreateSession()
	if err != nil {
		logger.Debugw("schema session failed", "url", p.cfg.URL, "error", err)
		return errors.Wrapf(errors.ErrSchemaUnavailable, "connecting to %s: %v", p.cfg.URL, err)
	}
	defer session.Close()

	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "schema request cancelled")
	}
	return fn(session)
}

func (p *CassandraProvider) newCluster() *gocql.ClusterConfig {
	host, port := splitContactPoint(p.cfg.URL)
	cluster := gocql.NewCluster(host)
	if port > 0 {
		cluster.Port = port
	}

	timeout := time.Duration(p.cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultTimeoutSeconds) * time.Second
	}
	cluster.ConnectTimeout = timeout
	cluster.Timeout = timeout

	if p.cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: p.cfg.Username,
			Password: p.cfg.Password,
		}
	}
	return cluster
}

// splitContactPoint separates "host:port"; a bare host or an unparseable
// port leaves the driver default in place.
func splitContactPoint(url string) (string, int) {
	host, portStr, err := net.SplitHostPort(url)
	if err != nil {
		return url, 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return host, 0
	}
	return host, port
}
