package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
)

const echoManifest = `
node "echo" {
  description = "Echoes its input."
  input "in" {
    type = string
  }
  output "out" {
    type = string
  }
}
`

func echoDescriptor() node.Descriptor {
	return node.Descriptor{
		Schema: node.Schema{
			Name:        "echo",
			Description: "Echoes its input.",
			Inputs:      []param.Descriptor{param.NewDescriptor("in", "", param.String)},
			Outputs:     []param.Descriptor{param.NewDescriptor("out", "", param.String)},
		},
		New: func() node.Node {
			return node.Func(func(in node.Inputs) (param.Outputs, error) {
				s, err := in.String(0)
				return param.Outputs{param.StringValue(s)}, err
			})
		},
	}
}

type echoModule struct{}

func (echoModule) Register(r *Registry) {
	r.Register(echoDescriptor())
	r.RegisterManifest("echo.hcl", []byte(echoManifest))
}

func TestRegister(t *testing.T) {
	r := New(nil)
	r.RegisterModules(echoModule{})

	desc, ok := r.Lookup("echo")
	require.True(t, ok)
	assert.Equal(t, "echo", desc.Name)
	assert.Equal(t, []string{"echo"}, r.Names())
	assert.Len(t, r.Descriptors(), 1)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegister_Panics(t *testing.T) {
	r := New(nil)
	r.Register(echoDescriptor())

	assert.PanicsWithValue(t, "node type 'echo' already registered", func() { r.Register(echoDescriptor()) })
	assert.Panics(t, func() { r.Register(node.Descriptor{}) })
	assert.Panics(t, func() { r.Register(node.Descriptor{Schema: node.Schema{Name: "x"}}) })
}

func TestNames_Sorted(t *testing.T) {
	r := New(nil)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		desc := echoDescriptor()
		desc.Name = name
		r.Register(desc)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("in sync", func(t *testing.T) {
		r := New(nil)
		r.RegisterModules(echoModule{})
		assert.NoError(t, r.Validate(ctx))
	})

	t.Run("registered but undeclared", func(t *testing.T) {
		r := New(nil)
		r.Register(echoDescriptor())
		assert.ErrorContains(t, r.Validate(ctx), "node 'echo': registered but not declared in any manifest")
	})

	t.Run("declared but unregistered", func(t *testing.T) {
		r := New(nil)
		r.RegisterManifest("echo.hcl", []byte(echoManifest))
		assert.ErrorContains(t, r.Validate(ctx), "node 'echo': declared in echo.hcl but not registered")
	})

	t.Run("type drift", func(t *testing.T) {
		r := New(nil)
		desc := echoDescriptor()
		desc.Outputs = []param.Descriptor{param.NewDescriptor("out", "", param.Number)}
		r.Register(desc)
		r.RegisterManifest("echo.hcl", []byte(echoManifest))

		err := r.Validate(ctx)
		assert.ErrorContains(t, err, `output 0: manifest declares string "out", descriptor has number "out"`)
	})

	t.Run("arity drift and description drift", func(t *testing.T) {
		r := New(nil)
		desc := echoDescriptor()
		desc.Description = "changed"
		desc.Inputs = nil
		r.Register(desc)
		r.RegisterManifest("echo.hcl", []byte(echoManifest))

		err := r.Validate(ctx)
		assert.ErrorContains(t, err, "description differs from manifest")
		assert.ErrorContains(t, err, "manifest declares 1 inputs, descriptor has 0")
	})

	t.Run("declared twice", func(t *testing.T) {
		r := New(nil)
		r.RegisterModules(echoModule{})
		r.RegisterManifest("again.hcl", []byte(echoManifest))
		assert.ErrorContains(t, r.Validate(ctx), "declared in both echo.hcl and again.hcl")
	})

	t.Run("broken manifest", func(t *testing.T) {
		r := New(nil)
		r.RegisterManifest("bad.hcl", []byte(`node "x" { output "v" { type = wat } }`))
		assert.ErrorContains(t, r.Validate(ctx), `unknown parameter type "wat"`)
	})
}
