package nodegraph

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/vk/nodegrid/internal/ctxlog"
	"github.com/vk/nodegrid/internal/inmemorystore"
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/outputstore"
)

// entry is one slot of the node arena.
type entry struct {
	schema   node.Schema
	instance node.Node
}

// Graph is a dataflow graph of nodes. The zero value is not usable; call New.
type Graph struct {
	logger *slog.Logger
	nodes  []entry
	// links maps a target input port to its source output port.
	links map[node.Port]node.Port
	// fanout maps a source output port to the input ports it feeds.
	fanout map[node.Port][]node.Port
	cache  outputstore.Store
}

// New creates an empty graph. A nil store selects an in-memory cache and a
// nil logger discards all records.
func New(store outputstore.Store, logger *slog.Logger) *Graph {
	if store == nil {
		store = inmemorystore.New()
	}
	if logger == nil {
		logger = ctxlog.Discard()
	}
	return &Graph{
		logger: logger,
		links:  make(map[node.Port]node.Port),
		fanout: make(map[node.Port][]node.Port),
		cache:  store,
	}
}

// Add registers an instance under the next identifier. The caller is
// responsible for passing a descriptor whose schema matches the instance.
func (g *Graph) Add(desc node.Descriptor, n node.Node) node.ID {
	id := node.ID(len(g.nodes))
	g.nodes = append(g.nodes, entry{
		schema: node.Schema{
			Name:        desc.Name,
			Description: desc.Description,
			Inputs:      slices.Clone(desc.Inputs),
			Outputs:     slices.Clone(desc.Outputs),
		},
		instance: n,
	})
	g.logger.Debug("Node added.", "node_id", id, "type", desc.Name)
	return id
}

// Spawn adds a fresh instance produced by the descriptor's factory.
func (g *Graph) Spawn(desc node.Descriptor) node.ID {
	return g.Add(desc, desc.New())
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) lookup(id node.ID) (*entry, bool) {
	if uint64(id) >= uint64(len(g.nodes)) {
		return nil, false
	}
	return &g.nodes[id], true
}

// Schema returns a copy of the schema a node was registered with.
func (g *Graph) Schema(id node.ID) (node.Schema, error) {
	e, ok := g.lookup(id)
	if !ok {
		return node.Schema{}, &EvalError{Node: id, Err: ErrNodeNotFound}
	}
	s := e.schema
	s.Inputs = slices.Clone(s.Inputs)
	s.Outputs = slices.Clone(s.Outputs)
	return s, nil
}

// Source returns the output port linked to a target input, if any.
func (g *Graph) Source(target node.Port) (node.Port, bool) {
	src, ok := g.links[target]
	return src, ok
}

// Dependents returns the input ports fed by a source output port.
func (g *Graph) Dependents(source node.Port) []node.Port {
	return slices.Clone(g.fanout[source])
}

// Cached reports whether a node currently has memoized outputs.
func (g *Graph) Cached(id node.ID) bool {
	_, ok := g.cache.Get(id)
	return ok
}

// Close releases every node instance that implements io.Closer, e.g. open
// file handles. The graph must not be evaluated afterwards.
func (g *Graph) Close() error {
	var errs *multierror.Error
	for i := range g.nodes {
		c, ok := g.nodes[i].instance.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("close node %d (%s): %w", i, g.nodes[i].schema.Name, err))
		}
	}
	return errs.ErrorOrNil()
}
