package cursor

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/SpotOnInc/asbestos/registry"
)

// DefaultPageSize is the page size FetchMany uses when the cursor's PageSize
// is left at or below zero.
const DefaultPageSize = 1

var (
	// ErrMissingRegistry is returned when a Cursor is created without a
	// Registry to resolve against.
	ErrMissingRegistry = errors.New("registry is required")

	// ErrNotPrimed is returned when a fetch is attempted before any query has
	// been executed.
	ErrNotPrimed = errors.New("no query has been executed")
)

// Config controls construction of a Cursor.
type Config struct {
	// Registry supplies the query Bindings the cursor resolves against.
	// Required.
	Registry *registry.Registry

	// PageSize sets the initial page size for FetchMany. Defaults to
	// DefaultPageSize.
	PageSize int

	// Logger, when provided, receives debug events for executions. Defaults
	// to a no-op logger.
	Logger *zerolog.Logger
}

// Cursor mimics a warehouse cursor over registered responses. A Cursor starts
// unprimed; Execute loads a result set and every fetch call after that reads
// from it. Cursors sharing a Registry share registered Bindings but never
// read positions.
type Cursor struct {
	// PageSize controls how many rows FetchMany returns per call. It may be
	// changed at any time and is consulted on the next call. Values below one
	// fall back to DefaultPageSize.
	PageSize int

	matcher *registry.Matcher
	log     zerolog.Logger

	primed   bool
	rows     []registry.Row
	pos      int
	queryID  string
	pageOvrd int
}

// New creates a Cursor bound to the given Registry.
func New(config Config) (*Cursor, error) {
	if config.Registry == nil {
		return nil, ErrMissingRegistry
	}

	pageSize := config.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}

	return &Cursor{
		PageSize: pageSize,
		matcher:  registry.NewMatcher(config.Registry),
		log:      log,
	}, nil
}

// Execute resolves query against the registry and primes the cursor with the
// result. It always succeeds: an unregistered query primes the cursor with an
// empty result set, never an error.
func (c *Cursor) Execute(query string, params ...any) {
	c.prime(c.matcher.Resolve(query, params))
}

// ExecuteAsync mirrors the warehouse client's asynchronous entry point. The
// call itself is synchronous with semantics identical to Execute; it exists
// so code exercising the async path needs no changes under test.
func (c *Cursor) ExecuteAsync(query string, params ...any) {
	c.Execute(query, params...)
}

// ExecuteContext is Execute behind the conventional context-aware signature.
// Nothing blocks, so the context is consulted only for prior cancellation.
func (c *Cursor) ExecuteContext(ctx context.Context, query string, params ...any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Execute(query, params...)
	return nil
}

// FetchOne returns the row at the read position and advances past it. Once
// the result set is exhausted it returns an empty row, never an error.
func (c *Cursor) FetchOne() (registry.Row, error) {
	if !c.primed {
		return nil, ErrNotPrimed
	}
	if c.pos >= len(c.rows) {
		return registry.Row{}, nil
	}

	row := c.rows[c.pos]
	c.pos++
	return row, nil
}

// FetchAll returns every remaining row and moves the read position to the
// end. A second call without an intervening Execute returns an empty slice.
func (c *Cursor) FetchAll() ([]registry.Row, error) {
	if !c.primed {
		return nil, ErrNotPrimed
	}

	out := make([]registry.Row, len(c.rows)-c.pos)
	copy(out, c.rows[c.pos:])
	c.pos = len(c.rows)
	return out, nil
}

// FetchMany returns up to one page of rows from the read position and
// advances past them. The final page may be short, and a drained result set
// yields an empty slice. The page size comes from PageSize unless the matched
// Binding forced one at registration.
func (c *Cursor) FetchMany() ([]registry.Row, error) {
	if !c.primed {
		return nil, ErrNotPrimed
	}

	size := c.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	if c.pageOvrd > 0 {
		size = c.pageOvrd
	}

	end := c.pos + size
	if end > len(c.rows) {
		end = len(c.rows)
	}

	out := make([]registry.Row, end-c.pos)
	copy(out, c.rows[c.pos:end])
	c.pos = end
	return out, nil
}

// QueryID returns the ID of the Binding matched by the most recent Execute,
// or an empty string when nothing matched or nothing has been executed.
func (c *Cursor) QueryID() string {
	return c.queryID
}

// Seek re-primes the cursor from the Binding with the given query ID,
// effectively re-running that query without another Execute. An unknown ID
// primes the cursor with the empty result. Ephemeral Bindings are only
// reachable here until they are consumed.
func (c *Cursor) Seek(id string) {
	c.prime(c.matcher.ResolveID(id))
}

func (c *Cursor) prime(res registry.Result) {
	c.primed = true
	c.rows = res.Rows
	c.pos = 0
	c.queryID = res.QueryID
	c.pageOvrd = res.PageSize

	c.log.Debug().
		Bool("matched", res.Matched).
		Int("rows", len(res.Rows)).
		Msg("cursor primed")
}
