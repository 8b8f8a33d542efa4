package nodegraph

import (
	"fmt"

	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
)

// InvalidateNode drops the cached outputs of a node and of every node that
// transitively depends on it. Unknown or uncached nodes are a no-op.
func (g *Graph) InvalidateNode(id node.ID) {
	seen := map[node.ID]bool{id: true}
	queue := []node.ID{id}
	dropped := 0

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if g.cache.Delete(current) {
			dropped++
		}

		e, ok := g.lookup(current)
		if !ok {
			continue
		}
		for i := range e.schema.Outputs {
			for _, target := range g.fanout[node.Port{Node: current, Index: i}] {
				if !seen[target.Node] {
					seen[target.Node] = true
					queue = append(queue, target.Node)
				}
			}
		}
	}

	if dropped > 0 {
		g.logger.Debug("Cache invalidated.", "node_id", id, "dropped", dropped)
	}
}

// Configure sets a named piece of a node's internal state and invalidates
// the node and its dependents. The node must implement node.Settable.
func (g *Graph) Configure(id node.ID, name string, v param.Value) error {
	e, ok := g.lookup(id)
	if !ok {
		return &EvalError{Node: id, Err: ErrNodeNotFound}
	}
	settable, ok := e.instance.(node.Settable)
	if !ok {
		return fmt.Errorf("configure node %d (%s): %w", id, e.schema.Name, ErrNotSettable)
	}
	if err := settable.Set(name, v); err != nil {
		return fmt.Errorf("configure node %d (%s): %w", id, e.schema.Name, err)
	}
	g.InvalidateNode(id)
	return nil
}
