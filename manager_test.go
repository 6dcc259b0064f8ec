package renderstream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/renderstream/testutil"
)

func TestStaticManager(t *testing.T) {
	t.Run("MergeAdjacentEntries", func(t *testing.T) {
		m := NewStaticManager()
		asset := testutil.NewMesh(1)
		c1 := testutil.NewComponent(1).WithInfo(asset, 5).WithInfo(asset, 8)

		require.Equal(t, AddSuccess, m.AddComponent(c1))
		assert.Equal(t, 1, m.ElementCount(1))

		v := m.Snapshot()
		require.Len(t, v.Elements(1), 1)
		assert.Equal(t, float32(8), v.Elements(1)[0].TexelFactor)
	})

	t.Run("ForcedEntryStaysSeparate", func(t *testing.T) {
		m := NewStaticManager()
		asset := testutil.NewMesh(1)
		c1 := testutil.NewComponent(1).WithInfo(asset, 5).WithInfo(asset, 8)
		c2 := testutil.NewComponent(2).WithInfo(asset, -2)

		require.Equal(t, AddSuccess, m.AddComponent(c1))
		require.Equal(t, AddSuccess, m.AddComponent(c2))
		assert.Equal(t, 2, m.ElementCount(1))

		assert.Equal(t, 2, m.CompileElements())
		a, ok := m.Snapshot().Asset(1)
		require.True(t, ok)
		assert.Equal(t, float32(8), a.Stats.MaxTexelFactor)
		assert.Equal(t, 1, a.Stats.Forced)
		assert.Equal(t, float32(8), m.MaxTexelFactor())
	})

	t.Run("RemoveReportsAssetOnce", func(t *testing.T) {
		m := NewStaticManager()
		asset := testutil.NewMesh(1)
		c1 := testutil.NewComponent(1).WithInfo(asset, 5).WithInfo(asset, 8)
		c2 := testutil.NewComponent(2).WithInfo(asset, -2)
		require.Equal(t, AddSuccess, m.AddComponent(c1))
		require.Equal(t, AddSuccess, m.AddComponent(c2))

		assert.Empty(t, m.RemoveComponent(1))
		assert.Equal(t, []AssetID{1}, m.RemoveComponent(2))
		assert.Equal(t, 0, m.AssetCount())
		assert.Nil(t, m.RemoveComponent(2))
	})

	t.Run("TrimFreedLane", func(t *testing.T) {
		m := NewStaticManager()
		tex := testutil.NewTexture(1)
		for i := 1; i <= 8; i++ {
			c := testutil.NewComponent(ComponentID(i)).WithBounds(testutil.BoxAt(float32(i), 0, 0, 1)).WithInfo(tex, 1)
			require.Equal(t, AddSuccess, m.AddComponent(c))
		}
		require.Equal(t, 8, m.BoundsCount())

		for i := 5; i <= 8; i++ {
			m.RemoveComponent(ComponentID(i))
		}
		assert.Equal(t, 1, m.TrimBounds())
		assert.Equal(t, 4, m.BoundsCount())
	})

	t.Run("DensityConstraint", func(t *testing.T) {
		m := NewStaticManager(WithMaxTexelFactor(10))
		tex := testutil.NewTexture(1)

		assert.Equal(t, AddFailDensityConstraint, m.AddComponent(testutil.NewComponent(1).WithInfo(tex, 11)))
		assert.Equal(t, AddSuccess, m.AddComponent(testutil.NewComponent(2).WithInfo(tex, 10)))
		assert.False(t, m.HasComponent(1))
		assert.Equal(t, 1, m.ComponentCount())
	})

	t.Run("NoEntries", func(t *testing.T) {
		m := NewStaticManager()
		assert.Equal(t, AddFail, m.AddComponent(testutil.NewComponent(1)))
		assert.Equal(t, 0, m.BoundsCount())
	})

	t.Run("UnregisteredPacked", func(t *testing.T) {
		m := NewStaticManager()
		tex := testutil.NewTexture(1)
		c := testutil.NewComponent(1).Unregistered().WithStreamingInfo(StreamingInfo{
			Asset:             tex,
			TexelFactor:       2,
			PackedRelativeBox: PackedIdentity,
		})

		require.Equal(t, AddSuccess, m.AddComponent(c))
		assert.Equal(t, 1, m.PendingUnpack())
		assert.Equal(t, 0, m.OnComponentRegistered(c))

		c.Registered = true
		c.World = testutil.BoxAt(3, 3, 3, 1)
		assert.Equal(t, 1, m.OnComponentRegistered(c))
		assert.Equal(t, 0, m.PendingUnpack())

		lanes := m.Snapshot().Lanes()
		require.Len(t, lanes, 1)
		assert.InDelta(t, 3, lanes[0].OriginX[0], 1e-5)
	})

	t.Run("UnregisteredWithoutBox", func(t *testing.T) {
		m := NewStaticManager()
		c := testutil.NewComponent(1).Unregistered().WithStreamingInfo(StreamingInfo{
			Asset:       testutil.NewTexture(1),
			TexelFactor: 2,
		})
		assert.Equal(t, AddFail, m.AddComponent(c))
		assert.Equal(t, 0, m.BoundsCount())
	})

	t.Run("MemoryLimit", func(t *testing.T) {
		rc := NewResourceController(ResourceConfig{MemoryLimitBytes: 1})
		m := NewStaticManager(WithResourceController(rc))
		c := testutil.NewComponent(1).WithInfo(testutil.NewTexture(1), 1)

		assert.Equal(t, AddFail, m.AddComponent(c))
		assert.False(t, m.HasComponent(1))
		assert.Zero(t, m.MemoryUsage())
	})

	t.Run("Defragment", func(t *testing.T) {
		m := NewStaticManager()
		tex := testutil.NewTexture(1)
		for i := 1; i <= 8; i++ {
			c := testutil.NewComponent(ComponentID(i)).WithBounds(testutil.BoxAt(float32(i), 0, 0, 1)).WithInfo(tex, 1)
			require.Equal(t, AddSuccess, m.AddComponent(c))
		}
		for _, id := range []ComponentID{1, 3, 4} {
			m.RemoveComponent(id)
		}

		m.Defragment()
		assert.Equal(t, 8, m.BoundsCount(), "five live bounds need two lanes")
		m.RemoveComponent(2)
		m.Defragment()
		assert.Equal(t, 4, m.BoundsCount())
		assert.Equal(t, 4, m.ElementCount(1))
	})

	t.Run("OffsetBounds", func(t *testing.T) {
		m := NewStaticManager()
		require.Equal(t, AddSuccess, m.AddComponent(testutil.NewComponent(1).WithInfo(testutil.NewTexture(1), 1)))
		m.OffsetBounds(Vec3{X: 10})

		lanes := m.Snapshot().Lanes()
		assert.Equal(t, float32(10), lanes[0].OriginX[0])
		assert.Equal(t, float32(10), lanes[0].RangeOriginX[0])
	})
}

func TestMaybeTrim(t *testing.T) {
	m := NewStaticManager(WithTrimInterval(time.Hour))
	tex := testutil.NewTexture(1)
	addRange := func(lo, hi int) {
		for i := lo; i <= hi; i++ {
			require.Equal(t, AddSuccess, m.AddComponent(testutil.NewComponent(ComponentID(i)).WithInfo(tex, 1)))
		}
	}
	removeRange := func(lo, hi int) {
		for i := lo; i <= hi; i++ {
			m.RemoveComponent(ComponentID(i))
		}
	}

	addRange(1, 8)
	removeRange(5, 8)
	assert.Equal(t, 1, m.MaybeTrim())

	addRange(9, 12)
	removeRange(9, 12)
	assert.Equal(t, 0, m.MaybeTrim(), "throttled")
	assert.Equal(t, 1, m.TrimBounds())
}
