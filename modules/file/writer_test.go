package file

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/nodegraph"
	"github.com/vk/nodegrid/internal/param"
	"github.com/vk/nodegrid/internal/registry"
)

func ptr(v param.Value) *param.Value { return &v }

func inputs(path string, appendMode *bool, data string) node.Inputs {
	in := node.Inputs{ptr(param.StringValue(path)), nil, ptr(param.StringValue(data))}
	if appendMode != nil {
		in[1] = ptr(param.BoolValue(*appendMode))
	}
	return in
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(b)
}

func TestModule_ManifestMatchesDescriptors(t *testing.T) {
	r := registry.New(nil)
	r.RegisterModules(&Module{Fs: afero.NewMemMapFs()})
	require.NoError(t, r.Validate(context.Background()))
}

func TestWriter_ReportsBytesWritten(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)
	defer w.Close()

	outs, err := w.Eval(inputs("/out.txt", nil, "hello"))
	require.NoError(t, err)
	assert.Equal(t, param.Outputs{param.NumberValue(5)}, outs)
	assert.Equal(t, "hello", readFile(t, fs, "/out.txt"))
}

func TestWriter_KeepsHandleWhileTargetUnchanged(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)
	defer w.Close()

	_, err := w.Eval(inputs("/out.txt", nil, "ab"))
	require.NoError(t, err)
	_, err = w.Eval(inputs("/out.txt", nil, "cd"))
	require.NoError(t, err)
	assert.Equal(t, "abcd", readFile(t, fs, "/out.txt"))
}

func TestWriter_ReopensOnModeChange(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out.txt", []byte("old"), 0o644))
	w := NewWriter(fs)
	defer w.Close()

	yes, no := true, false

	_, err := w.Eval(inputs("/out.txt", &yes, "+1"))
	require.NoError(t, err)
	assert.Equal(t, "old+1", readFile(t, fs, "/out.txt"))

	_, err = w.Eval(inputs("/out.txt", &no, "new"))
	require.NoError(t, err)
	assert.Equal(t, "new", readFile(t, fs, "/out.txt"), "switching to overwrite truncates")
}

func TestWriter_ReopensOnPathChange(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)
	defer w.Close()

	_, err := w.Eval(inputs("/a.txt", nil, "a"))
	require.NoError(t, err)
	_, err = w.Eval(inputs("/b.txt", nil, "b"))
	require.NoError(t, err)

	assert.Equal(t, "a", readFile(t, fs, "/a.txt"))
	assert.Equal(t, "b", readFile(t, fs, "/b.txt"))
}

func TestWriter_Errors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		w := NewWriter(afero.NewMemMapFs())
		_, err := w.Eval(node.Inputs{nil, nil, ptr(param.StringValue("x"))})
		assert.ErrorIs(t, err, node.ErrMissingInput)
	})

	t.Run("read only filesystem", func(t *testing.T) {
		w := NewWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()))
		_, err := w.Eval(inputs("/out.txt", nil, "x"))
		assert.ErrorContains(t, err, "failed to open /out.txt")
	})
}

func TestWriter_InGraphClosesOnGraphClose(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := registry.New(nil)
	r.RegisterModules(&Module{Fs: fs})
	desc, ok := r.Lookup("file")
	require.True(t, ok)

	g := nodegraph.New(nil, nil)
	w := NewWriter(fs)
	id := g.Add(desc, w)

	pathNode := g.Add(node.Descriptor{
		Schema: node.Schema{Name: "text", Outputs: []param.Descriptor{param.NewDescriptor("value", "", param.String)}},
	}, node.Func(func(node.Inputs) (param.Outputs, error) {
		return param.Outputs{param.StringValue("/graph.txt")}, nil
	}))
	require.NoError(t, g.Connect(node.Port{Node: pathNode}, node.Port{Node: id, Index: 0}))
	require.NoError(t, g.Connect(node.Port{Node: pathNode}, node.Port{Node: id, Index: 2}))

	outs, err := g.Outputs(id)
	require.NoError(t, err)
	assert.Equal(t, param.Outputs{param.NumberValue(10)}, outs)

	require.NoError(t, g.Close())
	assert.Nil(t, w.file)
	assert.Equal(t, "/graph.txt", readFile(t, fs, "/graph.txt"))
}
