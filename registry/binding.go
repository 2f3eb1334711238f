package registry

import (
	"fmt"

	"github.com/google/uuid"
)

// Binding is a registered query-to-response rule. Bindings are created through
// Registry.OnQuery and configured by chaining the methods below; every method
// returns the Binding so calls can be stacked.
type Binding struct {
	registry  *Registry
	query     string
	params    []any
	rows      []Row
	ephemeral bool
	pageSize  int
	id        string

	// displaced holds a Binding pushed out of the store because it shared
	// this Binding's current key. Replacement is only final once the key
	// stops changing: when WithParams re-keys this Binding away it puts the
	// displaced one back, so a specific registration never destroys an
	// agnostic neighbor it only transiently shadowed.
	displaced *Binding
}

func newBinding(r *Registry, query string) *Binding {
	return &Binding{
		registry: r,
		query:    query,
		id:       uuid.NewString(),
	}
}

// WithParams narrows the Binding to executions carrying exactly these values,
// element-wise and order-sensitive. Calling it with no values reverts the
// Binding to params-agnostic. Re-keying replaces any existing Binding already
// registered under the new (query, params) pair.
func (b *Binding) WithParams(values ...any) *Binding {
	b.registry.unlink(b)
	if b.displaced != nil {
		b.registry.insert(b.displaced)
		b.displaced = nil
	}

	b.params = values
	b.displaced = b.registry.insert(b)
	return b
}

// Once marks the Binding ephemeral: the first successful match deletes it from
// the Registry.
func (b *Binding) Once() *Binding {
	b.ephemeral = true
	return b
}

// Return sets the response payload as an ordered sequence of rows.
func (b *Binding) Return(rows ...Row) *Binding {
	b.rows = append([]Row(nil), rows...)
	return b
}

// ReturnRow sets a single-record response payload.
func (b *Binding) ReturnRow(row Row) *Binding {
	b.rows = []Row{row}
	return b
}

// WithPageSize forces how many rows a paged fetch returns for this Binding,
// overriding the cursor's own page size.
func (b *Binding) WithPageSize(n int) *Binding {
	b.pageSize = n
	return b
}

// QueryID returns the unique ID assigned to this Binding at registration.
// Cursors report the ID of the Binding they matched, and it can be used with
// Registry.Remove or Cursor.Seek.
func (b *Binding) QueryID() string {
	return b.id
}

// String renders a short description of the Binding for log output.
func (b *Binding) String() string {
	kind := "binding"
	if b.ephemeral {
		kind = "ephemeral binding"
	}
	if b.params != nil {
		return fmt.Sprintf("%s: %s + %s", kind, truncate(b.query), truncate(fmt.Sprintf("%v", b.params)))
	}
	return fmt.Sprintf("%s: %s", kind, truncate(b.query))
}

// truncate keeps log lines readable when queries or params run long.
func truncate(s string) string {
	const max = 30
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
