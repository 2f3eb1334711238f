/*
Package asbestos is an in-memory stand-in for a data-warehouse connector. It
lets you exercise code that executes queries and fetches results without a
live network connection: register the responses you expect, point your code at
an asbestos cursor, and every execute/fetch call behaves the way the real
client would.

Quick start

	conn := asbestos.New(asbestos.Config{})
	conn.Registry.OnQuery("SELECT 1").ReturnRow(registry.Row{"1": 1})

	cur, _ := conn.Cursor()
	cur.Execute("SELECT 1")
	row, _ := cur.FetchOne() // registry.Row{"1": 1}

The pieces

  - registry: stores query-to-response Bindings and decides which one an
    executed query matches.
  - cursor: the stateful cursor serving FetchOne, FetchAll, and FetchMany over
    a matched response.
  - driver: a database/sql adapter so code written against the standard
    library runs against registered Bindings.
  - wire: a waPC-style host double speaking the Tarmac SQL capability
    protocol.
  - fixture: seeds a Registry from YAML files.

The Conn type in this package is a thin facade mirroring the real connector's
connection object, including its async-query status surface. For tests that
do not need isolated state, the package-level Default registry and NewCursor
helper remove the boilerplate.
*/
package asbestos
