// Package file provides the file writer node.
package file

import (
	_ "embed"

	"github.com/spf13/afero"
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/registry"
)

//go:generate go run ../../cmd/schemagen -manifest nodes.hcl -package file -out zz_generated_schema.go

//go:embed nodes.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct {
	// Fs is the filesystem writers operate on. Nil selects the OS filesystem.
	Fs afero.Fs
}

// Register registers the file node and its manifest.
func (m *Module) Register(r *registry.Registry) {
	fs := m.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	r.Register(node.Descriptor{
		Schema: fileSchema(),
		New:    func() node.Node { return NewWriter(fs) },
	})
	r.RegisterManifest("file/nodes.hcl", manifest)
}
