package fixture

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpotOnInc/asbestos/cursor"
	"github.com/SpotOnInc/asbestos/registry"
)

const fixtureDoc = `queries:
  - query: "SELECT id, name FROM users"
    rows:
      - {id: 1, name: alpha}
      - {id: 2, name: beta}
  - query: "SELECT * FROM users WHERE id = ?"
    params: [42]
    row: {id: 42, name: gamma}
    ephemeral: true
  - query: "SELECT * FROM events"
    pageSize: 2
    rows:
      - {seq: 1}
      - {seq: 2}
      - {seq: 3}
`

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "queries.yml", []byte(fixtureDoc), 0o644))

	reg := registry.New(registry.Config{})
	require.NoError(t, Load(fs, "queries.yml", reg))
	assert.Equal(t, 3, reg.Len())

	cur, err := cursor.New(cursor.Config{Registry: reg})
	require.NoError(t, err)

	cur.Execute("SELECT id, name FROM users")
	rows, err := cur.FetchAll()
	require.NoError(t, err)
	assert.Equal(t, []registry.Row{
		{"id": 1, "name": "alpha"},
		{"id": 2, "name": "beta"},
	}, rows)
}

func TestLoadParamsAndEphemeral(t *testing.T) {
	reg := registry.New(registry.Config{})
	require.NoError(t, LoadBytes([]byte(fixtureDoc), reg))

	cur, err := cursor.New(cursor.Config{Registry: reg})
	require.NoError(t, err)

	// Without the registered params the specific binding must not match.
	cur.Execute("SELECT * FROM users WHERE id = ?")
	row, err := cur.FetchOne()
	require.NoError(t, err)
	assert.Empty(t, row)

	cur.Execute("SELECT * FROM users WHERE id = ?", 42)
	row, err = cur.FetchOne()
	require.NoError(t, err)
	assert.Equal(t, registry.Row{"id": 42, "name": "gamma"}, row)

	// The entry was ephemeral, so the match consumed it.
	cur.Execute("SELECT * FROM users WHERE id = ?", 42)
	row, err = cur.FetchOne()
	require.NoError(t, err)
	assert.Empty(t, row)
}

func TestLoadAgnosticAndSpecificEntries(t *testing.T) {
	doc := `queries:
  - query: "SELECT * FROM users WHERE id = ?"
    row: {name: anyone}
  - query: "SELECT * FROM users WHERE id = ?"
    params: [1]
    row: {name: alpha}
`
	reg := registry.New(registry.Config{})
	require.NoError(t, LoadBytes([]byte(doc), reg))
	assert.Equal(t, 2, reg.Len(), "agnostic and specific entries for one query must coexist")

	cur, err := cursor.New(cursor.Config{Registry: reg})
	require.NoError(t, err)

	cur.Execute("SELECT * FROM users WHERE id = ?", 1)
	row, err := cur.FetchOne()
	require.NoError(t, err)
	assert.Equal(t, registry.Row{"name": "alpha"}, row)

	cur.Execute("SELECT * FROM users WHERE id = ?", 99)
	row, err = cur.FetchOne()
	require.NoError(t, err)
	assert.Equal(t, registry.Row{"name": "anyone"}, row)
}

func TestLoadForcedPageSize(t *testing.T) {
	reg := registry.New(registry.Config{})
	require.NoError(t, LoadBytes([]byte(fixtureDoc), reg))

	cur, err := cursor.New(cursor.Config{Registry: reg})
	require.NoError(t, err)
	cur.PageSize = 10

	cur.Execute("SELECT * FROM events")
	page, err := cur.FetchMany()
	require.NoError(t, err)
	assert.Len(t, page, 2, "fixture pageSize should override the cursor's")
}

func TestLoadFileNotFound(t *testing.T) {
	fs := afero.NewMemMapFs()

	err := Load(fs, "missing.yml", registry.New(registry.Config{}))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read fixture file")
}

func TestLoadInvalidYAML(t *testing.T) {
	err := LoadBytes([]byte("queries: [not: valid"), registry.New(registry.Config{}))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse fixture file")
}

func TestLoadEntryWithoutQuery(t *testing.T) {
	doc := `queries:
  - rows:
      - {id: 1}
`
	err := LoadBytes([]byte(doc), registry.New(registry.Config{}))
	assert.ErrorIs(t, err, ErrMissingQuery)
}
