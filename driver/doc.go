/*
Package driver adapts an asbestos registry to database/sql, so code written
against the standard library can run against registered responses with no
changes:

	reg := registry.New(registry.Config{})
	reg.OnQuery("SELECT id, name FROM users").Return(
		registry.Row{"id": int64(1), "name": "alpha"},
	)

	db := driver.OpenDB(reg)
	rows, err := db.Query("SELECT id, name FROM users")

Column names come from the sorted field names of the first registered row;
fields missing from later rows scan as nil. Exec reports rows-affected equal
to the number of rows in the matched response.

database/sql normalizes query arguments to int64, float64, bool, []byte,
string, and time.Time before they reach the driver. Bindings registered with
params should use those types, or the exact-match comparison will miss.
*/
package driver
