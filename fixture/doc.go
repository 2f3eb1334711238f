/*
Package fixture seeds an asbestos registry from YAML documents, so shared
query fixtures can live next to the tests that use them instead of being
rebuilt in code:

	queries:
	  - query: "SELECT id, name FROM users"
	    rows:
	      - {id: 1, name: alpha}
	      - {id: 2, name: beta}
	  - query: "SELECT * FROM users WHERE id = ?"
	    params: [42]
	    row: {id: 42, name: gamma}
	    ephemeral: true

Each entry becomes one Binding: params makes it params-specific, ephemeral
makes it single-use, pageSize forces the paged-fetch size, and row registers a
single-record response where rows registers a sequence. Files are read through
an afero filesystem so tests can feed fixtures from an in-memory fs.
*/
package fixture
