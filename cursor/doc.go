/*
Package cursor provides the stateful result cursor of the asbestos test
double.

A Cursor resolves executed queries against a registry and serves the matched
response through the familiar fetch calls:

	reg := registry.New(registry.Config{})
	reg.OnQuery("SELECT a FROM t").Return(
		registry.Row{"a": 1},
		registry.Row{"a": 2},
	)

	cur, err := cursor.New(cursor.Config{Registry: reg})
	if err != nil {
		// only fails when no Registry is supplied
	}

	cur.Execute("SELECT a FROM t")
	row, _ := cur.FetchOne()  // registry.Row{"a": 1}
	rest, _ := cur.FetchAll() // []registry.Row{{"a": 2}}

Each Execute primes the cursor fresh: it discards any previous result set and
resets the read position to zero. Fetch calls consume rows; once the result
set is drained they return empty payloads rather than errors, the same way a
real cursor answers an exhausted result set. The only fetch error is
ErrNotPrimed, returned when no Execute call has been made yet - that is a
broken test, not a valid "no data" case.

FetchMany pages through the result set using the exported PageSize field,
which can be changed between calls and takes effect on the next one.
*/
package cursor
