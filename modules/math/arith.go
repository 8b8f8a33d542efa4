package math

import (
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
)

func operands(inputs node.Inputs) (float64, float64, error) {
	a, err := inputs.Number(0)
	if err != nil {
		return 0, 0, err
	}
	b, err := inputs.Number(1)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func add(inputs node.Inputs) (param.Outputs, error) {
	a, b, err := operands(inputs)
	if err != nil {
		return nil, err
	}
	return param.Outputs{param.NumberValue(a + b)}, nil
}

func multiply(inputs node.Inputs) (param.Outputs, error) {
	a, b, err := operands(inputs)
	if err != nil {
		return nil, err
	}
	return param.Outputs{param.NumberValue(a * b)}, nil
}
