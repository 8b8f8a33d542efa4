package nodegraph

import (
	"slices"

	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
)

// Connect links a source output port to a target input port.
//
// An input has at most one source. Connecting an input that is already
// linked replaces the previous source. Either way the target and everything
// downstream of it is invalidated.
func (g *Graph) Connect(source, target node.Port) error {
	fail := func(err error) error {
		return &ConnectError{Source: source, Target: target, Err: err}
	}

	if source.Node == target.Node {
		return fail(ErrSelfConnect)
	}
	src, ok := g.lookup(source.Node)
	if !ok {
		return fail(ErrSourceNodeNotFound)
	}
	dst, ok := g.lookup(target.Node)
	if !ok {
		return fail(ErrTargetNodeNotFound)
	}
	if !inRange(source.Index, src.schema.Outputs) || !inRange(target.Index, dst.schema.Inputs) {
		return fail(ErrPortOutOfRange)
	}
	if !param.Compatible(src.schema.Outputs[source.Index].Type, dst.schema.Inputs[target.Index].Type) {
		return fail(ErrParameterMismatch)
	}

	if old, linked := g.links[target]; linked {
		if old == source {
			return nil
		}
		g.unlinkFanout(old, target)
		g.logger.Debug("Replacing existing link.", "target", target.String(), "old_source", old.String())
	}
	g.links[target] = source
	g.fanout[source] = append(g.fanout[source], target)
	g.logger.Debug("Nodes connected.", "source", source.String(), "target", target.String())

	g.InvalidateNode(target.Node)
	return nil
}

// Disconnect removes the link feeding a target input and invalidates the
// target and everything downstream of it.
func (g *Graph) Disconnect(target node.Port) error {
	if e, ok := g.lookup(target.Node); ok && !inRange(target.Index, e.schema.Inputs) {
		return &DisconnectError{Target: target, Err: ErrPortOutOfRange}
	}
	source, ok := g.links[target]
	if !ok {
		return &DisconnectError{Target: target, Err: ErrLinkNotFound}
	}
	delete(g.links, target)
	g.unlinkFanout(source, target)
	g.logger.Debug("Nodes disconnected.", "source", source.String(), "target", target.String())

	g.InvalidateNode(target.Node)
	return nil
}

func (g *Graph) unlinkFanout(source, target node.Port) {
	targets := slices.DeleteFunc(g.fanout[source], func(p node.Port) bool { return p == target })
	if len(targets) == 0 {
		delete(g.fanout, source)
		return
	}
	g.fanout[source] = targets
}

func inRange(i int, ports []param.Descriptor) bool {
	return i >= 0 && i < len(ports)
}
