package renderstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/renderstream/testutil"
)

func TestPrepare(t *testing.T) {
	tex := testutil.NewTexture(1)
	mesh := testutil.NewMesh(2)

	t.Run("MergeRuns", func(t *testing.T) {
		// 5 and 8 merge to the max, -1 and -3 to the min, 2 starts a new run.
		c := testutil.NewComponent(1).
			WithInfo(tex, 5).WithInfo(tex, 8).
			WithInfo(tex, -1).WithInfo(tex, -3).
			WithInfo(tex, 2)
		p, r := Prepare(c, PrepareOptions{})
		require.Equal(t, AddSuccess, r)

		assert.Equal(t, 1, p.BoundsCount())
		require.Equal(t, 3, p.ElementCount())
		assert.Equal(t, float32(8), p.elements[0].texelFactor)
		assert.Equal(t, float32(-3), p.elements[1].texelFactor)
		assert.Equal(t, float32(2), p.elements[2].texelFactor)
	})

	t.Run("NonAdjacentNotMerged", func(t *testing.T) {
		c := testutil.NewComponent(1).WithInfo(tex, 1).WithInfo(mesh, 1).WithInfo(tex, 4)
		p, r := Prepare(c, PrepareOptions{})
		require.Equal(t, AddSuccess, r)
		assert.Equal(t, 3, p.ElementCount())
	})

	t.Run("DifferentBoundsNotMerged", func(t *testing.T) {
		c := testutil.NewComponent(1).
			WithStreamingInfo(StreamingInfo{Asset: tex, TexelFactor: 1, Bounds: testutil.BoxAt(0, 0, 0, 1)}).
			WithStreamingInfo(StreamingInfo{Asset: tex, TexelFactor: 2, Bounds: testutil.BoxAt(5, 0, 0, 1)})
		p, r := Prepare(c, PrepareOptions{})
		require.Equal(t, AddSuccess, r)
		assert.Equal(t, 2, p.BoundsCount())
		assert.Equal(t, 2, p.ElementCount())
	})

	t.Run("ForceLoadSticks", func(t *testing.T) {
		c := testutil.NewComponent(1).
			WithStreamingInfo(StreamingInfo{Asset: tex, TexelFactor: 1, Bounds: testutil.BoxAt(0, 0, 0, 1), ForceLoad: true}).
			WithInfo(tex, 3)
		p, _ := Prepare(c, PrepareOptions{})
		require.Equal(t, 1, p.ElementCount())
		assert.True(t, p.elements[0].forceLoad)
	})

	t.Run("Scale", func(t *testing.T) {
		c := testutil.NewComponent(1)
		c.Scale = 3
		c.WithStreamingInfo(StreamingInfo{Asset: tex, TexelFactor: 2, AffectedByScale: true}).
			WithStreamingInfo(StreamingInfo{Asset: mesh, TexelFactor: -1, AffectedByScale: true})
		p, r := Prepare(c, PrepareOptions{})
		require.Equal(t, AddSuccess, r)
		assert.Equal(t, float32(6), p.elements[0].texelFactor)
		assert.Equal(t, float32(-1), p.elements[1].texelFactor, "sentinels are not scaled")
	})

	t.Run("DensityCeilingAfterScale", func(t *testing.T) {
		c := testutil.NewComponent(1)
		c.Scale = 2
		c.WithStreamingInfo(StreamingInfo{Asset: tex, TexelFactor: 3, AffectedByScale: true})

		_, r := Prepare(c, PrepareOptions{MaxTexelFactor: 5})
		assert.Equal(t, AddFailDensityConstraint, r)
		_, r = Prepare(c, PrepareOptions{MaxTexelFactor: 6})
		assert.Equal(t, AddSuccess, r)
		_, r = Prepare(c, PrepareOptions{})
		assert.Equal(t, AddSuccess, r)
	})

	t.Run("IgnoreBounds", func(t *testing.T) {
		c := testutil.NewComponent(1).WithBounds(testutil.BoxAt(9, 0, 0, 2)).
			WithStreamingInfo(StreamingInfo{Asset: tex, TexelFactor: 1, Bounds: testutil.BoxAt(0, 0, 0, 1)}).
			WithStreamingInfo(StreamingInfo{Asset: mesh, TexelFactor: 1, PackedRelativeBox: PackedIdentity})
		p, r := Prepare(c, PrepareOptions{IgnoreBounds: true})
		require.Equal(t, AddSuccess, r)
		require.Equal(t, 1, p.BoundsCount())
		assert.Equal(t, c.World, p.bounds[0].bounds)

		_, r = Prepare(c.Unregistered(), PrepareOptions{IgnoreBounds: true})
		assert.Equal(t, AddFail, r)
	})

	t.Run("RegisteredPackedResolved", func(t *testing.T) {
		c := testutil.NewComponent(1).WithBounds(testutil.BoxAt(4, 0, 0, 1)).
			WithStreamingInfo(StreamingInfo{Asset: tex, TexelFactor: 1, PackedRelativeBox: PackedIdentity})
		p, r := Prepare(c, PrepareOptions{})
		require.Equal(t, AddSuccess, r)
		assert.False(t, p.bounds[0].packed.Valid())
		assert.InDelta(t, 4, p.bounds[0].bounds.Origin.X, 1e-5)
	})

	t.Run("RangeFromLODParent", func(t *testing.T) {
		c := testutil.NewComponent(1).WithInfo(tex, 1)
		c.MaxDraw = 100
		c.MinDraw = 2
		p, _ := Prepare(c, PrepareOptions{})
		assert.Equal(t, float32(10000), p.maxRangeSq)
		assert.Equal(t, float32(4), p.minDistanceSq)

		c.Parent = &testutil.LODParent{Distance: 30}
		p, _ = Prepare(c, PrepareOptions{})
		assert.Equal(t, float32(900), p.maxRangeSq)
	})

	t.Run("Failures", func(t *testing.T) {
		_, r := Prepare(nil, PrepareOptions{})
		assert.Equal(t, AddFail, r)

		_, r = Prepare(testutil.NewComponent(1).WithStreamingInfo(StreamingInfo{TexelFactor: 1}), PrepareOptions{})
		assert.Equal(t, AddFail, r, "entries without an asset are skipped")
	})
}

func TestCommit(t *testing.T) {
	tex := testutil.NewTexture(1)
	c := testutil.NewComponent(1).WithInfo(tex, 5).WithInfo(tex, 8)

	p, r := Prepare(c, PrepareOptions{})
	require.Equal(t, AddSuccess, r)
	assert.Same(t, c, p.Component().(*testutil.Component))

	static := NewStaticManager()
	dynamic := NewDynamicManager()
	assert.Equal(t, AddSuccess, static.Commit(p))
	assert.Equal(t, AddSuccess, dynamic.Commit(p))
	assert.Equal(t, 1, static.ElementCount(1))
	assert.Equal(t, 1, dynamic.ElementCount(1))

	assert.Equal(t, AddFail, static.Commit(nil))
}
