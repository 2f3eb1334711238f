package registry

// Result is the outcome of resolving an executed query against a Registry.
// The zero value is the empty-result sentinel.
type Result struct {
	// Rows holds the matched response payload; empty when nothing matched.
	Rows []Row

	// QueryID identifies the Binding that produced the rows, empty on a miss.
	QueryID string

	// PageSize is a page size forced by the matched Binding; zero means the
	// cursor's own page size applies.
	PageSize int

	// Matched reports whether a Binding matched the query.
	Matched bool
}

// Matcher resolves executed queries to registered responses.
type Matcher struct {
	registry *Registry
}

// NewMatcher creates a Matcher over the given Registry.
func NewMatcher(registry *Registry) *Matcher {
	return &Matcher{registry: registry}
}

// Resolve selects the best Binding for the given query and params and returns
// its response. Resolution never fails: an unmatched query yields the
// empty-result sentinel, the same shape a live connection gives back for a
// query that finds no rows.
//
// A Binding whose params equal the input exactly wins. Failing that, a
// params-agnostic Binding for the same query text matches whatever params were
// supplied, including none. A Binding registered with different, non-empty
// params never matches. A winning ephemeral Binding is deleted from the
// Registry as part of resolution.
func (m *Matcher) Resolve(query string, params []any) Result {
	r := m.registry

	winner := m.find(query, params)
	if winner == nil {
		r.log.Debug().Str("query", truncate(query)).Msg("no binding matched")
		if r.overset {
			return Result{Rows: cloneRows(r.override)}
		}
		return Result{}
	}

	if winner.ephemeral {
		r.unlink(winner)
		r.log.Debug().Stringer("binding", winner).Msg("ephemeral binding consumed")
	} else {
		r.log.Debug().Stringer("binding", winner).Msg("binding matched")
	}

	rows := winner.rows
	if r.overset {
		rows = r.override
	}

	return Result{
		Rows:     cloneRows(rows),
		QueryID:  winner.id,
		PageSize: winner.pageSize,
		Matched:  true,
	}
}

// ResolveID returns the response of the Binding with the given query ID
// without consuming it, or the empty-result sentinel when the ID is unknown.
// This mirrors re-running a finished query by its ID.
func (m *Matcher) ResolveID(id string) Result {
	for _, b := range m.registry.bindings {
		if b.id == id {
			return Result{
				Rows:     cloneRows(b.rows),
				QueryID:  b.id,
				PageSize: b.pageSize,
				Matched:  true,
			}
		}
	}
	return Result{}
}

// cloneRows copies the slice and each row map, so mutating a fetched row
// never corrupts the registered response.
func cloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}

	out := make([]Row, len(rows))
	for i, row := range rows {
		cp := make(Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}

// find applies the match policy: exact (query, params) first, then a
// params-agnostic Binding for the same query.
func (m *Matcher) find(query string, params []any) *Binding {
	for _, b := range m.registry.bindings {
		if b.query == query && paramsEqual(b.params, params) {
			return b
		}
	}
	for _, b := range m.registry.bindings {
		if b.query == query && b.params == nil {
			return b
		}
	}
	return nil
}
