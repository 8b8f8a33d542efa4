// Package node defines the capability every computational unit in a graph
// implements, and the descriptors that register node types independently of
// any instance.
package node

import (
	"fmt"

	"github.com/vk/nodegrid/internal/param"
)

// ID is the opaque handle of a node instance within one graph. IDs are issued
// in increasing order starting at zero and are never reused.
type ID uint64

// Port identifies one input or output slot of a node.
type Port struct {
	Node  ID
	Index int
}

func (p Port) String() string {
	return fmt.Sprintf("%d[%d]", p.Node, p.Index)
}

// Node is a single unit of computation.
//
// Eval receives one slot per declared input, in schema order; a nil slot
// means the input has no incoming link. It returns one value per declared
// output. Given the same inputs and unchanged internal state, Eval must
// return the same outputs: graphs memoize results and will not call Eval
// again until something upstream changes.
type Node interface {
	Eval(inputs Inputs) (param.Outputs, error)
}

// Func adapts an ordinary function to the Node interface.
type Func func(inputs Inputs) (param.Outputs, error)

// Eval calls f(inputs).
func (f Func) Eval(inputs Inputs) (param.Outputs, error) {
	return f(inputs)
}

// Settable is implemented by nodes whose internal state can be configured
// after creation, e.g. the value a constant emits.
type Settable interface {
	Set(name string, v param.Value) error
}

// Schema is the immutable shape of a node type.
type Schema struct {
	Name        string
	Description string
	Inputs      []param.Descriptor
	Outputs     []param.Descriptor
}

// Descriptor bundles a schema with a factory producing fresh instances.
type Descriptor struct {
	Schema
	New func() Node
}
