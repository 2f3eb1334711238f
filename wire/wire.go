package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	sdkproto "github.com/tarmac-project/protobuf-go/sdk"
	proto "github.com/tarmac-project/protobuf-go/sdk/sql"

	"github.com/SpotOnInc/asbestos/registry"
)

const (
	// DefaultNamespace matches the namespace SDK clients use when none is
	// configured.
	DefaultNamespace = "tarmac"

	capabilityName = "sql"
	fnExec         = "exec"
	fnQuery        = "query"

	statusOK = int32(200)
)

var (
	// ErrMissingRegistry is returned when a Host is created without a
	// Registry to serve from.
	ErrMissingRegistry = errors.New("registry is required")

	// ErrUnexpectedNamespace is returned when a call targets a namespace the
	// Host does not answer for.
	ErrUnexpectedNamespace = errors.New("unexpected namespace")

	// ErrUnexpectedCapability is returned when a call targets a capability
	// other than sql.
	ErrUnexpectedCapability = errors.New("unexpected capability")

	// ErrUnexpectedFunction is returned when a call targets an unknown sql
	// function.
	ErrUnexpectedFunction = errors.New("unexpected function")

	// ErrInvalidPayload wraps failures while decoding the request payload.
	ErrInvalidPayload = errors.New("payload is invalid")

	// ErrMarshalResponse wraps failures while encoding the response payload.
	ErrMarshalResponse = errors.New("failed to marshal response")
)

// Config controls construction of a Host.
type Config struct {
	// Registry supplies the responses served over the wire. Required.
	Registry *registry.Registry

	// Namespace the Host answers for. Defaults to DefaultNamespace.
	Namespace string
}

// Host serves registered query responses over the waPC host-call convention.
type Host struct {
	matcher   *registry.Matcher
	namespace string
}

// New creates a Host over the given Registry.
func New(config Config) (*Host, error) {
	if config.Registry == nil {
		return nil, ErrMissingRegistry
	}

	namespace := config.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &Host{
		matcher:   registry.NewMatcher(config.Registry),
		namespace: namespace,
	}, nil
}

// HostCall satisfies the four-argument host function signature used by SDK
// capability clients. Only the sql capability's query and exec functions are
// routable; anything else is a routing error.
func (h *Host) HostCall(namespace, capability, function string, payload []byte) ([]byte, error) {
	if namespace != h.namespace {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrUnexpectedNamespace, h.namespace, namespace)
	}

	if capability != capabilityName {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrUnexpectedCapability, capabilityName, capability)
	}

	switch function {
	case fnQuery:
		return h.query(payload)
	case fnExec:
		return h.exec(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedFunction, function)
	}
}

func (h *Host) query(payload []byte) ([]byte, error) {
	var req proto.SQLQuery
	if err := req.UnmarshalVT(payload); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	res := h.matcher.Resolve(string(req.GetQuery()), nil)

	rows := res.Rows
	if rows == nil {
		rows = []registry.Row{}
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return nil, errors.Join(ErrMarshalResponse, err)
	}

	resp := &proto.SQLQueryResponse{
		Status:  okStatus(),
		Columns: columnsOf(rows),
		Data:    data,
	}

	b, err := resp.MarshalVT()
	if err != nil {
		return nil, errors.Join(ErrMarshalResponse, err)
	}
	return b, nil
}

func (h *Host) exec(payload []byte) ([]byte, error) {
	var req proto.SQLExec
	if err := req.UnmarshalVT(payload); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	res := h.matcher.Resolve(string(req.GetQuery()), nil)

	resp := &proto.SQLExecResponse{
		Status:       okStatus(),
		RowsAffected: int64(len(res.Rows)),
	}

	b, err := resp.MarshalVT()
	if err != nil {
		return nil, errors.Join(ErrMarshalResponse, err)
	}
	return b, nil
}

func okStatus() *sdkproto.Status {
	return &sdkproto.Status{Status: "OK", Code: statusOK}
}

// columnsOf derives column names from the first row's fields, sorted for a
// stable order.
func columnsOf(rows []registry.Row) []string {
	if len(rows) == 0 {
		return nil
	}

	cols := make([]string, 0, len(rows[0]))
	for name := range rows[0] {
		cols = append(cols, name)
	}
	sort.Strings(cols)
	return cols
}
