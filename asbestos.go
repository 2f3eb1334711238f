package asbestos

import (
	"github.com/rs/zerolog"

	"github.com/SpotOnInc/asbestos/cursor"
	"github.com/SpotOnInc/asbestos/registry"
)

// Status reports the state of a previously executed query.
type Status int

// StatusSuccess mirrors the warehouse connector's success query status. Every
// asbestos query has already finished by the time anything asks about it.
const StatusSuccess Status = 2

// Default is a conventionally shared Registry for tests that do not need
// isolated state. Tests using it should call Default.Clear between runs.
var Default = registry.New(registry.Config{})

// NewCursor returns a fresh cursor over the Default registry.
func NewCursor() (*cursor.Cursor, error) {
	return cursor.New(cursor.Config{Registry: Default})
}

// Config controls construction of a Conn.
type Config struct {
	// Registry supplies the query Bindings served by cursors spawned from
	// this connection. A fresh Registry is constructed when omitted.
	Registry *registry.Registry

	// Logger, when provided, is handed to a Registry constructed here.
	Logger *zerolog.Logger
}

// Conn houses a Registry and spawns cursors bound to it, mirroring the real
// connector's two interaction styles: a cursor used directly, or a connection
// object the cursor is obtained from.
type Conn struct {
	// Registry holds this connection's registered queries. Register responses
	// here before handing cursors to the code under test.
	Registry *registry.Registry
}

// New creates a connection facade.
func New(config Config) *Conn {
	reg := config.Registry
	if reg == nil {
		reg = registry.New(registry.Config{Logger: config.Logger})
	}

	return &Conn{Registry: reg}
}

// Cursor spawns a cursor over this connection's Registry.
func (c *Conn) Cursor() (*cursor.Cursor, error) {
	return cursor.New(cursor.Config{Registry: c.Registry})
}

// Close clears the registered queries and "closes" the connection.
func (c *Conn) Close() error {
	c.Registry.Clear()
	return nil
}

// QueryStatus checks on a previously executed async query. Nothing in
// asbestos runs long enough to be caught in flight, so the answer is always
// StatusSuccess.
func (c *Conn) QueryStatus(_ string) Status {
	return StatusSuccess
}

// IsStillRunning reports whether an async query is still running. It never
// is.
func (c *Conn) IsStillRunning(_ Status) bool {
	return false
}
