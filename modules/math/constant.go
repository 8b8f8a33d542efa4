package math

import (
	"fmt"

	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
)

// Constant emits Value, or its input when one is linked.
type Constant struct {
	Value float64
}

// Eval implements node.Node.
func (c *Constant) Eval(inputs node.Inputs) (param.Outputs, error) {
	if inputs.Present(0) {
		v, err := inputs.Number(0)
		if err != nil {
			return nil, err
		}
		return param.Outputs{param.NumberValue(v)}, nil
	}
	return param.Outputs{param.NumberValue(c.Value)}, nil
}

// Set implements node.Settable. The only setting is "value".
func (c *Constant) Set(name string, v param.Value) error {
	if name != "value" {
		return fmt.Errorf("constant has no setting %q", name)
	}
	n, ok := v.AsNumber()
	if !ok {
		return fmt.Errorf("constant value must be a number, got %s", v.Type())
	}
	c.Value = n
	return nil
}
