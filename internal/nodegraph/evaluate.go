package nodegraph

import (
	"fmt"

	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
)

// frame is one pending evaluation on the worklist.
type frame struct {
	id    node.ID
	entry *entry
	// next is the first input whose source is not known to be cached yet.
	next int
}

// Outputs returns the outputs of a node, evaluating it and any uncached
// upstream nodes first. The returned slice is shared with the cache and must
// not be modified.
func (g *Graph) Outputs(id node.ID) (param.Outputs, error) {
	if out, ok := g.cache.Get(id); ok {
		return out, nil
	}
	root, ok := g.lookup(id)
	if !ok {
		return nil, &EvalError{Node: id, Err: ErrNodeNotFound}
	}

	visiting := map[node.ID]bool{id: true}
	stack := []*frame{{id: id, entry: root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]

		if dep, pending := g.nextUncached(f); pending {
			if visiting[dep] {
				g.logger.Debug("Cycle detected during evaluation.", "node_id", f.id, "source", dep)
				return nil, &EvalError{Node: dep, Err: ErrCycleDetected}
			}
			e, _ := g.lookup(dep)
			visiting[dep] = true
			stack = append(stack, &frame{id: dep, entry: e})
			continue
		}

		out, err := g.evaluate(f)
		if err != nil {
			return nil, err
		}
		g.cache.Set(f.id, out)
		delete(visiting, f.id)
		stack = stack[:len(stack)-1]
	}

	out, _ := g.cache.Get(id)
	return out, nil
}

// nextUncached advances f past inputs whose sources are unlinked or cached,
// and returns the first source node that still needs evaluation.
func (g *Graph) nextUncached(f *frame) (node.ID, bool) {
	for ; f.next < len(f.entry.schema.Inputs); f.next++ {
		src, linked := g.links[node.Port{Node: f.id, Index: f.next}]
		if !linked {
			continue
		}
		if _, cached := g.cache.Get(src.Node); !cached {
			return src.Node, true
		}
	}
	return 0, false
}

// evaluate assembles the slot vector of a frame whose sources are all cached
// and invokes the node.
func (g *Graph) evaluate(f *frame) (param.Outputs, error) {
	inputs := make(node.Inputs, len(f.entry.schema.Inputs))
	for i := range inputs {
		src, linked := g.links[node.Port{Node: f.id, Index: i}]
		if !linked {
			continue
		}
		out, _ := g.cache.Get(src.Node)
		if src.Index >= len(out) {
			return nil, &EvalError{
				Node:  src.Node,
				Err:   ErrExecFailure,
				Cause: fmt.Errorf("output %d requested, node produced %d: %w", src.Index, len(out), ErrPortOutOfRange),
			}
		}
		v := out[src.Index]
		inputs[i] = &v
	}

	g.logger.Debug("Evaluating node.", "node_id", f.id, "type", f.entry.schema.Name)
	out, err := safeEval(f.entry.instance, inputs)
	if err != nil {
		g.logger.Debug("Node evaluation failed.", "node_id", f.id, "error", err)
		return nil, &EvalError{Node: f.id, Err: ErrExecFailure, Cause: err}
	}
	if err := checkOutputs(f.entry.schema.Outputs, out); err != nil {
		g.logger.Debug("Node produced outputs that violate its schema.", "node_id", f.id, "error", err)
		return nil, &EvalError{Node: f.id, Err: ErrExecFailure, Cause: err}
	}
	return out, nil
}

// checkOutputs verifies that a node returned one value per declared output,
// each carrying the declared tag.
func checkOutputs(declared []param.Descriptor, out param.Outputs) error {
	if len(out) != len(declared) {
		return fmt.Errorf("node produced %d outputs, schema declares %d: %w", len(out), len(declared), ErrPortOutOfRange)
	}
	for i, d := range declared {
		if out[i].Type() != d.Type {
			return fmt.Errorf("output %d (%s) declared %s, node produced %s: %w", i, d.Name, d.Type, out[i].Type(), ErrParameterMismatch)
		}
	}
	return nil
}

// safeEval converts a panic inside a node into an error.
func safeEval(n node.Node, inputs node.Inputs) (out param.Outputs, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("node panicked: %v", r)
		}
	}()
	return n.Eval(inputs)
}
