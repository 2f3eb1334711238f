package asbestos

import (
	"reflect"
	"testing"

	"github.com/SpotOnInc/asbestos/registry"
)

var response = []registry.Row{
	{"response": "hi"},
	{"hello there": "general kenobi"},
}

func TestConnCursorRoundTrip(t *testing.T) {
	t.Parallel()

	conn := New(Config{})
	conn.Registry.OnQuery("q").Return(response...)

	cur, err := conn.Cursor()
	if err != nil {
		t.Fatalf("Cursor returned error: %v", err)
	}

	cur.Execute("q")
	rows, err := cur.FetchAll()
	if err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
	if !reflect.DeepEqual(rows, response) {
		t.Fatalf("FetchAll = %v, want %v", rows, response)
	}
}

func TestConnSharedRegistry(t *testing.T) {
	t.Parallel()

	reg := registry.New(registry.Config{})
	reg.OnQuery("q").Return(response...)

	conn := New(Config{Registry: reg})
	cur, err := conn.Cursor()
	if err != nil {
		t.Fatalf("Cursor returned error: %v", err)
	}

	cur.Execute("q")
	rows, err := cur.FetchAll()
	if err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
	if !reflect.DeepEqual(rows, response) {
		t.Fatalf("FetchAll = %v, want %v", rows, response)
	}
}

func TestConnCloseClearsRegistry(t *testing.T) {
	t.Parallel()

	conn := New(Config{})
	conn.Registry.OnQuery("q").Return(response...)

	if err := conn.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if conn.Registry.Len() != 0 {
		t.Fatalf("Close should clear the registry, %d bindings remain", conn.Registry.Len())
	}
}

func TestAsyncQueryFacade(t *testing.T) {
	t.Parallel()

	conn := New(Config{})
	conn.Registry.OnQuery("q").Return(response...)

	cur, err := conn.Cursor()
	if err != nil {
		t.Fatalf("Cursor returned error: %v", err)
	}

	// The documented async flow: execute, poll, then reload by query ID.
	cur.ExecuteAsync("q")
	id := cur.QueryID()
	for conn.IsStillRunning(conn.QueryStatus(id)) {
	}

	cur.Seek(id)
	rows, err := cur.FetchAll()
	if err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
	if !reflect.DeepEqual(rows, response) {
		t.Fatalf("FetchAll = %v, want %v", rows, response)
	}
}

func TestQueryStatus(t *testing.T) {
	t.Parallel()

	conn := New(Config{})
	if got := conn.QueryStatus("anything"); got != StatusSuccess {
		t.Fatalf("QueryStatus = %v, want StatusSuccess", got)
	}
	if conn.IsStillRunning(StatusSuccess) {
		t.Fatal("IsStillRunning should always report false")
	}
}

func TestDefaultCursor(t *testing.T) {
	Default.Clear()
	defer Default.Clear()

	Default.OnQuery("q").Return(response...)

	cur, err := NewCursor()
	if err != nil {
		t.Fatalf("NewCursor returned error: %v", err)
	}

	cur.Execute("q")
	rows, err := cur.FetchAll()
	if err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
	if !reflect.DeepEqual(rows, response) {
		t.Fatalf("FetchAll = %v, want %v", rows, response)
	}
}
