package nodegraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
)

func numberPort(name string) param.Descriptor {
	return param.NewDescriptor(name, "", param.Number)
}

// counting wraps a node and records how many times it was evaluated.
type counting struct {
	evals int
	inner node.Node
}

func (c *counting) Eval(in node.Inputs) (param.Outputs, error) {
	c.evals++
	return c.inner.Eval(in)
}

// constant emits a fixed number and accepts "value" configuration.
type constant struct {
	value float64
}

func (c *constant) Eval(node.Inputs) (param.Outputs, error) {
	return param.Outputs{param.NumberValue(c.value)}, nil
}

func (c *constant) Set(name string, v param.Value) error {
	n, ok := v.AsNumber()
	if name != "value" || !ok {
		return errors.New("bad setting")
	}
	c.value = n
	return nil
}

var constantDesc = node.Descriptor{
	Schema: node.Schema{
		Name:    "constant",
		Outputs: []param.Descriptor{numberPort("value")},
	},
	New: func() node.Node { return &constant{} },
}

var addDesc = node.Descriptor{
	Schema: node.Schema{
		Name:    "add",
		Inputs:  []param.Descriptor{numberPort("first"), numberPort("second")},
		Outputs: []param.Descriptor{numberPort("value")},
	},
	New: func() node.Node {
		return node.Func(func(in node.Inputs) (param.Outputs, error) {
			a, err := in.Number(0)
			if err != nil {
				return nil, err
			}
			b, err := in.Number(1)
			if err != nil {
				return nil, err
			}
			return param.Outputs{param.NumberValue(a + b)}, nil
		})
	},
}

// passDesc has one number input and one number output and forwards its input.
var passDesc = node.Descriptor{
	Schema: node.Schema{
		Name:    "pass",
		Inputs:  []param.Descriptor{numberPort("in")},
		Outputs: []param.Descriptor{numberPort("out")},
	},
	New: func() node.Node {
		return node.Func(func(in node.Inputs) (param.Outputs, error) {
			v, err := in.Number(0)
			if err != nil {
				return nil, err
			}
			return param.Outputs{param.NumberValue(v)}, nil
		})
	},
}

var stringSinkDesc = node.Descriptor{
	Schema: node.Schema{
		Name:   "sink",
		Inputs: []param.Descriptor{param.NewDescriptor("text", "", param.String)},
	},
	New: func() node.Node {
		return node.Func(func(node.Inputs) (param.Outputs, error) { return param.Outputs{}, nil })
	},
}

func addConst(g *Graph, v float64) (node.ID, *counting) {
	c := &counting{inner: &constant{value: v}}
	return g.Add(constantDesc, c), c
}

func addCounted(g *Graph, desc node.Descriptor) (node.ID, *counting) {
	c := &counting{inner: desc.New()}
	return g.Add(desc, c), c
}

func out(id node.ID, i int) node.Port { return node.Port{Node: id, Index: i} }

func in(id node.ID, i int) node.Port { return node.Port{Node: id, Index: i} }

func requireNumber(t *testing.T, g *Graph, id node.ID, want float64) {
	t.Helper()
	outs, err := g.Outputs(id)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	n, ok := outs[0].AsNumber()
	require.True(t, ok, "expected a number, got %s", outs[0])
	require.Equal(t, want, n)
}
