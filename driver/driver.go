package driver

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sort"

	"github.com/SpotOnInc/asbestos/registry"
)

// ErrOpenUnsupported is returned when the driver is opened through a DSN.
// Connections are only available through OpenDB, which carries the Registry.
var ErrOpenUnsupported = errors.New("asbestos connections require OpenDB, not a DSN")

// OpenDB returns a database/sql handle whose queries are served by reg.
func OpenDB(reg *registry.Registry) *sql.DB {
	return sql.OpenDB(Connector{Registry: reg})
}

// Connector implements driver.Connector over a Registry.
type Connector struct {
	// Registry supplies the responses served through the connection.
	Registry *registry.Registry
}

// Connect returns a connection bound to the Registry.
func (c Connector) Connect(context.Context) (driver.Conn, error) {
	return &conn{matcher: registry.NewMatcher(c.Registry)}, nil
}

// Driver returns the underlying driver.
func (c Connector) Driver() driver.Driver {
	return Driver{}
}

// Driver implements driver.Driver. It exists to satisfy database/sql; opening
// by DSN is not supported because a DSN cannot carry a Registry.
type Driver struct{}

// Open always fails; use OpenDB.
func (Driver) Open(string) (driver.Conn, error) {
	return nil, ErrOpenUnsupported
}

type conn struct {
	matcher *registry.Matcher
}

func (c *conn) Prepare(query string) (driver.Stmt, error) {
	return &stmt{matcher: c.matcher, query: query}, nil
}

func (c *conn) Close() error {
	return nil
}

// Begin satisfies driver.Conn. Transactions are accepted and ignored; the
// registry has no transactional state to manage.
func (c *conn) Begin() (driver.Tx, error) {
	return tx{}, nil
}

func (c *conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := c.matcher.Resolve(query, namedParams(args))
	return newRows(res.Rows), nil
}

func (c *conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := c.matcher.Resolve(query, namedParams(args))
	return result{rows: int64(len(res.Rows))}, nil
}

type stmt struct {
	matcher *registry.Matcher
	query   string
}

func (s *stmt) Close() error {
	return nil
}

// NumInput reports -1: placeholder counting would require parsing the query,
// and matching is plain string equality.
func (s *stmt) NumInput() int {
	return -1
}

func (s *stmt) Exec(args []driver.Value) (driver.Result, error) {
	res := s.matcher.Resolve(s.query, valueParams(args))
	return result{rows: int64(len(res.Rows))}, nil
}

func (s *stmt) Query(args []driver.Value) (driver.Rows, error) {
	res := s.matcher.Resolve(s.query, valueParams(args))
	return newRows(res.Rows), nil
}

type tx struct{}

func (tx) Commit() error   { return nil }
func (tx) Rollback() error { return nil }

type result struct {
	rows int64
}

func (r result) LastInsertId() (int64, error) {
	return 0, nil
}

func (r result) RowsAffected() (int64, error) {
	return r.rows, nil
}

type rows struct {
	columns []string
	rows    []registry.Row
	pos     int
}

func newRows(src []registry.Row) *rows {
	return &rows{columns: columnsOf(src), rows: src}
}

func (r *rows) Columns() []string {
	return r.columns
}

func (r *rows) Close() error {
	return nil
}

func (r *rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}

	row := r.rows[r.pos]
	r.pos++
	for i, col := range r.columns {
		dest[i] = row[col]
	}
	return nil
}

// columnsOf derives column names from the first row's fields, sorted for a
// stable order.
func columnsOf(src []registry.Row) []string {
	if len(src) == 0 {
		return nil
	}

	cols := make([]string, 0, len(src[0]))
	for name := range src[0] {
		cols = append(cols, name)
	}
	sort.Strings(cols)
	return cols
}

// namedParams flattens driver arguments into registry params, using nil for
// an argument-free query so params-agnostic Bindings match.
func namedParams(args []driver.NamedValue) []any {
	if len(args) == 0 {
		return nil
	}

	params := make([]any, len(args))
	for i, arg := range args {
		params[i] = arg.Value
	}
	return params
}

func valueParams(args []driver.Value) []any {
	if len(args) == 0 {
		return nil
	}

	params := make([]any, len(args))
	for i, arg := range args {
		params[i] = arg
	}
	return params
}
