package host

import (
	"fmt"
	"log/slog"

	"github.com/vk/nodegrid/internal/ctxlog"
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/nodegraph"
	"github.com/vk/nodegrid/internal/outputstore"
	"github.com/vk/nodegrid/internal/param"
	"github.com/vk/nodegrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// NodeInfo describes one node instance of a session.
type NodeInfo struct {
	ID   uint64
	Type string
}

// PortInfo describes one declared input or output of a node type.
type PortInfo struct {
	Name        string
	Description string
	Type        string
}

// TypeInfo describes a registered node type.
type TypeInfo struct {
	Name        string
	Description string
	Inputs      []PortInfo
	Outputs     []PortInfo
}

// Session owns a single graph. It is not safe for concurrent use.
type Session struct {
	logger   *slog.Logger
	registry *registry.Registry
	graph    *nodegraph.Graph
}

// NewSession creates a session with an empty graph whose node types resolve
// through reg. A nil store selects the in-memory cache and a nil logger
// discards all records.
func NewSession(reg *registry.Registry, store outputstore.Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = ctxlog.Discard()
	}
	return &Session{
		logger:   logger,
		registry: reg,
		graph:    nodegraph.New(store, logger),
	}
}

// Add creates a node of the named type and returns its identifier.
func (s *Session) Add(typeName string) (id uint64, err error) {
	defer s.guard("add", &err)

	desc, ok := s.registry.Lookup(typeName)
	if !ok {
		return 0, s.fail(fmt.Errorf("%w: %q", ErrUnknownNodeType, typeName), CodeInternal)
	}
	return uint64(s.graph.Spawn(desc)), nil
}

// Connect links output srcIndex of node src to input dstIndex of node dst,
// replacing any link the input already had.
func (s *Session) Connect(src uint64, srcIndex int, dst uint64, dstIndex int) (err error) {
	defer s.guard("connect", &err)
	return s.fail(s.graph.Connect(port(src, srcIndex), port(dst, dstIndex)), CodeInternal)
}

// Disconnect removes the link feeding input index of node id.
func (s *Session) Disconnect(id uint64, index int) (err error) {
	defer s.guard("disconnect", &err)
	return s.fail(s.graph.Disconnect(port(id, index)), CodeInternal)
}

// Invalidate drops the cached outputs of node id and of its dependents.
func (s *Session) Invalidate(id uint64) (err error) {
	defer s.guard("invalidate", &err)
	s.graph.InvalidateNode(node.ID(id))
	return nil
}

// Outputs evaluates node id as needed and returns a copy of its outputs.
func (s *Session) Outputs(id uint64) (values []cty.Value, err error) {
	defer s.guard("outputs", &err)

	outs, evalErr := s.graph.Outputs(node.ID(id))
	if evalErr != nil {
		return nil, s.fail(evalErr, CodeInternal)
	}
	values = make([]cty.Value, len(outs))
	for i, v := range outs {
		values[i] = ToCty(v)
	}
	return values, nil
}

// Configure sets a named piece of state on node id, e.g. the value of a
// constant.
func (s *Session) Configure(id uint64, name string, value cty.Value) (err error) {
	defer s.guard("configure", &err)

	v, convErr := FromCty(value)
	if convErr != nil {
		return s.fail(convErr, CodeInvalidValue)
	}
	return s.fail(s.graph.Configure(node.ID(id), name, v), CodeInvalidValue)
}

// Nodes lists the node instances in identifier order.
func (s *Session) Nodes() (nodes []NodeInfo, err error) {
	defer s.guard("nodes", &err)

	nodes = make([]NodeInfo, 0, s.graph.Len())
	for i := 0; i < s.graph.Len(); i++ {
		schema, schemaErr := s.graph.Schema(node.ID(i))
		if schemaErr != nil {
			return nil, s.fail(schemaErr, CodeInternal)
		}
		nodes = append(nodes, NodeInfo{ID: uint64(i), Type: schema.Name})
	}
	return nodes, nil
}

// Types lists the registered node types sorted by name.
func (s *Session) Types() []TypeInfo {
	descs := s.registry.Descriptors()
	types := make([]TypeInfo, len(descs))
	for i, d := range descs {
		types[i] = TypeInfo{
			Name:        d.Name,
			Description: d.Description,
			Inputs:      portInfos(d.Inputs),
			Outputs:     portInfos(d.Outputs),
		}
	}
	return types
}

// Close releases resources held by node instances.
func (s *Session) Close() (err error) {
	defer s.guard("close", &err)
	return s.fail(s.graph.Close(), CodeInternal)
}

func port(id uint64, index int) node.Port {
	return node.Port{Node: node.ID(id), Index: index}
}

func portInfos(ds []param.Descriptor) []PortInfo {
	out := make([]PortInfo, len(ds))
	for i, d := range ds {
		out[i] = PortInfo{Name: d.Name, Description: d.Description, Type: d.Type.String()}
	}
	return out
}

// fail translates err into an *Error. It returns an untyped nil for a nil
// err so callers can return its result directly.
func (s *Session) fail(err error, fallback Code) error {
	if err == nil {
		return nil
	}
	he := translate(err, fallback)
	s.logger.Debug("Host operation failed.", "code", he.Code, "error", err)
	return he
}

// guard turns a panic into an internal error.
func (s *Session) guard(op string, err *error) {
	if r := recover(); r != nil {
		s.logger.Error("Recovered panic at host boundary.", "op", op, "panic", r)
		*err = &Error{Code: CodeInternal, Message: fmt.Sprintf("%s: panic: %v", op, r)}
	}
}
