/*
Package registry holds the query-to-response bindings that power the asbestos
test double.

A Registry is a first-class, passable value that owns every registered Binding
for the lifetime of a test session. Registration uses a fluent builder:

	reg := registry.New(registry.Config{})
	reg.OnQuery("SELECT id, name FROM users").Return(
		registry.Row{"id": 1, "name": "alpha"},
		registry.Row{"id": 2, "name": "beta"},
	)

A Binding without params matches any params supplied at execution time. Adding
WithParams makes the Binding specific: it only matches an execution carrying
exactly those values, and it is never shadowed by a params-agnostic Binding for
the same query text.

	reg.OnQuery("SELECT * FROM users WHERE id = ?").
		WithParams(42).
		ReturnRow(registry.Row{"id": 42, "name": "gamma"})

Once marks a Binding ephemeral: the first successful match consumes it, and a
second identical execution falls through to the empty result.

Matching is purely string and parameter equality. There is no SQL parsing, no
normalization, and no partial matching; an unmatched query is a first-class
"no rows" outcome rather than an error, mirroring how a real warehouse answers
a query that finds nothing.
*/
package registry
