package registry

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/vk/nodegrid/internal/ctxlog"
	"github.com/vk/nodegrid/internal/node"
)

// Module is the interface that all node modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// manifestSource is the raw manifest a module was generated from.
type manifestSource struct {
	name string
	src  []byte
}

// Registry holds the node descriptors and manifests of a single application
// instance.
type Registry struct {
	logger      *slog.Logger
	descriptors map[string]node.Descriptor
	manifests   []manifestSource
}

// New creates and initializes a new Registry instance. A nil logger discards
// all records.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = ctxlog.Discard()
	}
	return &Registry{
		logger:      logger,
		descriptors: make(map[string]node.Descriptor),
	}
}

// Register adds a node descriptor. Registering an incomplete descriptor or
// the same name twice is a programming error and panics.
func (r *Registry) Register(desc node.Descriptor) {
	if desc.Name == "" {
		panic("node descriptor registered without a name")
	}
	if desc.New == nil {
		panic(fmt.Sprintf("node descriptor '%s' has no factory", desc.Name))
	}
	if _, exists := r.descriptors[desc.Name]; exists {
		panic(fmt.Sprintf("node type '%s' already registered", desc.Name))
	}
	r.logger.Debug("Registering node type.", "name", desc.Name)
	r.descriptors[desc.Name] = desc
}

// RegisterManifest records the manifest source a module's schemas were
// generated from, for Validate.
func (r *Registry) RegisterManifest(name string, src []byte) {
	r.logger.Debug("Registering manifest.", "manifest", name)
	r.manifests = append(r.manifests, manifestSource{name: name, src: slices.Clone(src)})
}

// RegisterModules calls Register on each module in order.
func (r *Registry) RegisterModules(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (node.Descriptor, bool) {
	desc, ok := r.descriptors[name]
	return desc, ok
}

// Names returns the registered node type names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Descriptors returns all registered descriptors sorted by name.
func (r *Registry) Descriptors() []node.Descriptor {
	names := r.Names()
	out := make([]node.Descriptor, len(names))
	for i, name := range names {
		out[i] = r.descriptors[name]
	}
	return out
}
