/*
Package wire answers waPC-style SQL host calls from an asbestos registry.

Host exposes a HostCall method with the standard four-argument host function
signature, decoding Tarmac SQL capability payloads and serving registered
responses back over the same protobuf wire format. Inject it anywhere a host
call function is accepted and the component under test talks to the registry
instead of a live host:

	reg := registry.New(registry.Config{})
	reg.OnQuery("SELECT id FROM users").Return(registry.Row{"id": 1})

	host, err := wire.New(wire.Config{Registry: reg})
	// hand host.HostCall to the SQL client under test

Routing is validated the way a host would: calls for the wrong namespace,
capability, or function return sentinel errors. A well-routed query that
matches nothing is not an error - it returns a success status with zero rows,
the same empty result the registry hands to a native cursor.

Query result data is JSON-encoded, with column names taken from the sorted
field names of the first row. Exec reports rows-affected equal to the number
of rows in the matched response.
*/
package wire
