// Package text provides string nodes.
package text

import (
	_ "embed"
	"fmt"
	"strconv"

	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
	"github.com/vk/nodegrid/internal/registry"
)

//go:generate go run ../../cmd/schemagen -manifest nodes.hcl -package text -out zz_generated_schema.go

//go:embed nodes.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the string nodes and their manifest.
func (m *Module) Register(r *registry.Registry) {
	r.Register(node.Descriptor{
		Schema: textSchema(),
		New:    func() node.Node { return &Text{} },
	})
	r.Register(node.Descriptor{
		Schema: formatNumberSchema(),
		New:    func() node.Node { return node.Func(formatNumber) },
	})
	r.Register(node.Descriptor{
		Schema: concatSchema(),
		New:    func() node.Node { return node.Func(concat) },
	})
	r.RegisterManifest("text/nodes.hcl", manifest)
}

// Text emits Value.
type Text struct {
	Value string
}

// Eval implements node.Node.
func (t *Text) Eval(node.Inputs) (param.Outputs, error) {
	return param.Outputs{param.StringValue(t.Value)}, nil
}

// Set implements node.Settable. The only setting is "value".
func (t *Text) Set(name string, v param.Value) error {
	if name != "value" {
		return fmt.Errorf("text has no setting %q", name)
	}
	s, ok := v.AsString()
	if !ok {
		return fmt.Errorf("text value must be a string, got %s", v.Type())
	}
	t.Value = s
	return nil
}

func formatNumber(inputs node.Inputs) (param.Outputs, error) {
	n, err := inputs.Number(0)
	if err != nil {
		return nil, err
	}
	return param.Outputs{param.StringValue(strconv.FormatFloat(n, 'g', -1, 64))}, nil
}

func concat(inputs node.Inputs) (param.Outputs, error) {
	a, err := inputs.String(0)
	if err != nil {
		return nil, err
	}
	b, err := inputs.String(1)
	if err != nil {
		return nil, err
	}
	return param.Outputs{param.StringValue(a + b)}, nil
}
