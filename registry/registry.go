package registry

import (
	"reflect"

	"github.com/rs/zerolog"
)

// Row is a single result record, mapping field names to values.
type Row map[string]any

// Config controls construction of a Registry.
type Config struct {
	// Logger, when provided, receives debug events for registrations and
	// match decisions. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Registry owns the set of registered Bindings for a test session. It is not
// safe for concurrent use; tests that run in parallel should use one Registry
// per worker.
type Registry struct {
	bindings []*Binding
	override []Row
	overset  bool
	log      zerolog.Logger
}

// New creates a Registry.
func New(config Config) *Registry {
	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}

	return &Registry{log: log}
}

// OnQuery inserts a params-agnostic Binding for query and returns it for
// fluent configuration. An existing Binding with the same query and params is
// replaced silently.
func (r *Registry) OnQuery(query string) *Binding {
	b := newBinding(r, query)
	b.displaced = r.insert(b)
	return b
}

// Clear removes every registered Binding. Queries that previously matched
// resolve to the empty result until re-registered.
func (r *Registry) Clear() {
	r.bindings = nil
	r.log.Debug().Msg("registry cleared")
}

// Remove deletes the Binding with the given query ID. It reports whether a
// Binding was found.
func (r *Registry) Remove(id string) bool {
	for i, b := range r.bindings {
		if b.id == id {
			r.bindings = append(r.bindings[:i], r.bindings[i+1:]...)
			r.log.Debug().Str("query_id", id).Msg("binding removed")
			return true
		}
	}
	return false
}

// Len reports the number of registered Bindings.
func (r *Registry) Len() int {
	return len(r.bindings)
}

// SetOverride makes every subsequent resolution return rows in place of the
// matched Binding's response. Matching and ephemeral consumption still happen;
// only the returned payload is replaced. Useful for forcing an answer from
// deep inside a test without re-registering queries.
func (r *Registry) SetOverride(rows ...Row) {
	r.override = append([]Row(nil), rows...)
	r.overset = true
	r.log.Debug().Int("rows", len(rows)).Msg("override response set")
}

// ClearOverride restores normal resolution.
func (r *Registry) ClearOverride() {
	r.override = nil
	r.overset = false
}

// insert adds b, replacing any existing Binding with the same (query, params)
// key. At most one Binding exists per distinct pair. The replaced Binding, if
// any, is returned so the builder can restore it when b re-keys away.
func (r *Registry) insert(b *Binding) *Binding {
	for i, existing := range r.bindings {
		if existing.query == b.query && paramsEqual(existing.params, b.params) {
			r.bindings[i] = b
			r.log.Debug().Stringer("binding", b).Msg("binding replaced")
			return existing
		}
	}

	r.bindings = append(r.bindings, b)
	r.log.Debug().Stringer("binding", b).Msg("binding registered")
	return nil
}

// unlink takes b out of the store without logging. Used when a builder method
// re-keys a Binding that is already registered.
func (r *Registry) unlink(b *Binding) {
	for i := range r.bindings {
		if r.bindings[i] == b {
			r.bindings = append(r.bindings[:i], r.bindings[i+1:]...)
			return
		}
	}
}

// paramsEqual reports whether two param sequences are the same binding key.
// nil means params-agnostic and only equals nil; otherwise equality is
// element-wise, same length, order-sensitive.
func paramsEqual(a, b []any) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
