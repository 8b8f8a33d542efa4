package text

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
	"github.com/vk/nodegrid/internal/registry"
)

func ptr(v param.Value) *param.Value { return &v }

func TestModule_ManifestMatchesDescriptors(t *testing.T) {
	r := registry.New(nil)
	r.RegisterModules(&Module{})
	require.NoError(t, r.Validate(context.Background()))
	assert.Equal(t, []string{"concat", "format_number", "text"}, r.Names())
}

func TestText(t *testing.T) {
	n := &Text{}
	outs, err := n.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, param.Outputs{param.StringValue("")}, outs)

	require.NoError(t, n.Set("value", param.StringValue("hello")))
	outs, err = n.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, param.Outputs{param.StringValue("hello")}, outs)

	assert.Error(t, n.Set("value", param.NumberValue(1)))
	assert.Error(t, n.Set("label", param.StringValue("x")))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 4, want: "4"},
		{in: -0.5, want: "-0.5"},
		{in: 1e21, want: "1e+21"},
		{in: math.Inf(1), want: "+Inf"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			outs, err := formatNumber(node.Inputs{ptr(param.NumberValue(tc.in))})
			require.NoError(t, err)
			assert.Equal(t, param.Outputs{param.StringValue(tc.want)}, outs)
		})
	}
}

func TestConcat(t *testing.T) {
	outs, err := concat(node.Inputs{ptr(param.StringValue("foo")), ptr(param.StringValue("bar"))})
	require.NoError(t, err)
	assert.Equal(t, param.Outputs{param.StringValue("foobar")}, outs)

	_, err = concat(node.Inputs{ptr(param.StringValue("foo")), nil})
	assert.ErrorIs(t, err, node.ErrMissingInput)
}
