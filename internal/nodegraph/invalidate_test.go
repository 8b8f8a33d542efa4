package nodegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
)

// chain builds constant -> pass -> pass and reads the tail once.
func chain(t *testing.T) (g *Graph, c node.ID, mid, tail *counting, midID, tailID node.ID) {
	t.Helper()
	g = New(nil, nil)
	c, _ = addConst(g, 1)
	midID, mid = addCounted(g, passDesc)
	tailID, tail = addCounted(g, passDesc)
	require.NoError(t, g.Connect(out(c, 0), in(midID, 0)))
	require.NoError(t, g.Connect(out(midID, 0), in(tailID, 0)))
	requireNumber(t, g, tailID, 1)
	return g, c, mid, tail, midID, tailID
}

func TestInvalidateNode_Cascades(t *testing.T) {
	g, c, mid, tail, midID, tailID := chain(t)

	g.InvalidateNode(c)
	assert.False(t, g.Cached(c))
	assert.False(t, g.Cached(midID))
	assert.False(t, g.Cached(tailID))

	requireNumber(t, g, tailID, 1)
	assert.Equal(t, 2, mid.evals)
	assert.Equal(t, 2, tail.evals)
}

func TestInvalidateNode_LeavesUpstreamCached(t *testing.T) {
	g, c, _, _, midID, tailID := chain(t)

	g.InvalidateNode(midID)
	assert.True(t, g.Cached(c))
	assert.False(t, g.Cached(midID))
	assert.False(t, g.Cached(tailID))
}

func TestInvalidateNode_UnknownAndUncachedAreNoops(t *testing.T) {
	g := New(nil, nil)
	assert.NotPanics(t, func() { g.InvalidateNode(12) })

	id := g.Spawn(constantDesc)
	assert.NotPanics(t, func() { g.InvalidateNode(id) })
}

func TestInvalidateNode_TerminatesOnCycles(t *testing.T) {
	g := New(nil, nil)
	a := g.Spawn(passDesc)
	b := g.Spawn(passDesc)
	require.NoError(t, g.Connect(out(a, 0), in(b, 0)))
	require.NoError(t, g.Connect(out(b, 0), in(a, 0)))

	assert.NotPanics(t, func() { g.InvalidateNode(a) })
}

func TestConnect_OverwriteReroutesAndInvalidates(t *testing.T) {
	g, c, _, tail, midID, tailID := chain(t)
	other, _ := addConst(g, 9)

	require.NoError(t, g.Connect(out(other, 0), in(midID, 0)))

	src, ok := g.Source(in(midID, 0))
	require.True(t, ok)
	assert.Equal(t, out(other, 0), src)
	assert.Empty(t, g.Dependents(out(c, 0)))
	assert.False(t, g.Cached(tailID), "dependents of the overwritten input are invalidated")

	requireNumber(t, g, tailID, 9)
	assert.Equal(t, 2, tail.evals)
}

func TestConnect_SameLinkTwiceKeepsCache(t *testing.T) {
	g, c, _, _, midID, tailID := chain(t)

	require.NoError(t, g.Connect(out(c, 0), in(midID, 0)))
	assert.True(t, g.Cached(tailID))
	assert.Len(t, g.Dependents(out(c, 0)), 1)
}

func TestDisconnect(t *testing.T) {
	t.Run("removes link and invalidates downstream", func(t *testing.T) {
		g, c, _, _, midID, tailID := chain(t)

		require.NoError(t, g.Disconnect(in(midID, 0)))
		_, ok := g.Source(in(midID, 0))
		assert.False(t, ok)
		assert.Empty(t, g.Dependents(out(c, 0)))
		assert.True(t, g.Cached(c))
		assert.False(t, g.Cached(midID))
		assert.False(t, g.Cached(tailID))
	})

	t.Run("fails when no link exists", func(t *testing.T) {
		g := New(nil, nil)
		p := g.Spawn(passDesc)

		err := g.Disconnect(in(p, 0))
		assert.ErrorIs(t, err, ErrLinkNotFound)
		var discErr *DisconnectError
		require.ErrorAs(t, err, &discErr)
		assert.Equal(t, in(p, 0), discErr.Target)

		assert.ErrorIs(t, g.Disconnect(in(77, 0)), ErrLinkNotFound)
	})

	t.Run("fails on out of range port", func(t *testing.T) {
		g := New(nil, nil)
		p := g.Spawn(passDesc)
		assert.ErrorIs(t, g.Disconnect(in(p, 3)), ErrPortOutOfRange)
	})

	t.Run("second disconnect fails", func(t *testing.T) {
		g, _, _, _, midID, _ := chain(t)
		require.NoError(t, g.Disconnect(in(midID, 0)))
		assert.ErrorIs(t, g.Disconnect(in(midID, 0)), ErrLinkNotFound)
	})
}

func TestConfigure(t *testing.T) {
	g := New(nil, nil)
	c := g.Spawn(constantDesc)
	p, pCount := addCounted(g, passDesc)
	require.NoError(t, g.Connect(out(c, 0), in(p, 0)))
	requireNumber(t, g, p, 0)

	require.NoError(t, g.Configure(c, "value", param.NumberValue(6)))
	requireNumber(t, g, p, 6)
	assert.Equal(t, 2, pCount.evals)

	assert.Error(t, g.Configure(c, "value", param.StringValue("x")))
	assert.ErrorIs(t, g.Configure(p, "value", param.NumberValue(1)), ErrNotSettable)
	assert.ErrorIs(t, g.Configure(50, "value", param.NumberValue(1)), ErrNodeNotFound)
}
