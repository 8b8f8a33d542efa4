// Package math provides arithmetic nodes: constant, add and multiply.
package math

import (
	_ "embed"

	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/registry"
)

//go:generate go run ../../cmd/schemagen -manifest nodes.hcl -package math -out zz_generated_schema.go

//go:embed nodes.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the arithmetic nodes and their manifest.
func (m *Module) Register(r *registry.Registry) {
	r.Register(node.Descriptor{
		Schema: constantSchema(),
		New:    func() node.Node { return &Constant{} },
	})
	r.Register(node.Descriptor{
		Schema: addSchema(),
		New:    func() node.Node { return node.Func(add) },
	})
	r.Register(node.Descriptor{
		Schema: multiplySchema(),
		New:    func() node.Node { return node.Func(multiply) },
	})
	r.RegisterManifest("math/nodes.hcl", manifest)
}
