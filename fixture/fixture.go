package fixture

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/SpotOnInc/asbestos/registry"
)

// ErrMissingQuery is returned when a fixture entry has no query text.
var ErrMissingQuery = errors.New("fixture entry has no query")

// Entry is a single query fixture.
type Entry struct {
	// Query is the exact query text to register.
	Query string `yaml:"query"`

	// Params, when present, narrows the Binding to these positional values.
	Params []any `yaml:"params"`

	// Rows is a sequence-shaped response payload.
	Rows []map[string]any `yaml:"rows"`

	// Row is a single-record response payload. Ignored when Rows is set.
	Row map[string]any `yaml:"row"`

	// Ephemeral marks the Binding single-use.
	Ephemeral bool `yaml:"ephemeral"`

	// PageSize forces the paged-fetch size for this Binding.
	PageSize int `yaml:"pageSize"`
}

// Document is the root of a fixture file.
type Document struct {
	Queries []Entry `yaml:"queries"`
}

// Load reads a YAML fixture from fs and registers its queries into reg.
func Load(fs afero.Fs, path string, reg *registry.Registry) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read fixture file: %w", err)
	}
	return LoadBytes(data, reg)
}

// LoadBytes registers the queries of a YAML fixture document into reg.
func LoadBytes(data []byte, reg *registry.Registry) error {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse fixture file: %w", err)
	}

	for i, entry := range doc.Queries {
		if entry.Query == "" {
			return fmt.Errorf("%w: entry %d", ErrMissingQuery, i)
		}

		b := reg.OnQuery(entry.Query)
		if len(entry.Params) > 0 {
			b.WithParams(entry.Params...)
		}
		if entry.Ephemeral {
			b.Once()
		}
		if entry.PageSize > 0 {
			b.WithPageSize(entry.PageSize)
		}

		switch {
		case entry.Rows != nil:
			rows := make([]registry.Row, len(entry.Rows))
			for j, row := range entry.Rows {
				rows[j] = registry.Row(row)
			}
			b.Return(rows...)
		case entry.Row != nil:
			b.ReturnRow(registry.Row(entry.Row))
		}
	}

	return nil
}
