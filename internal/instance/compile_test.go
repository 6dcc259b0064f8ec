package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/renderstream/internal/core"
	"github.com/hupe1980/renderstream/internal/resource"
	"github.com/hupe1980/renderstream/testutil"
)

func TestCompileElements(t *testing.T) {
	s := New()
	mesh := testutil.NewMesh(1)
	tex := testutil.NewTexture(2)

	addUsage(t, s, testutil.NewComponent(1), mesh, 8)
	addUsage(t, s, testutil.NewComponent(2), mesh, -2)
	addUsage(t, s, testutil.NewComponent(3), tex, -1)

	assert.False(t, s.HasCompiledElements())
	assert.Equal(t, 3, s.CompileElements())
	assert.True(t, s.HasCompiledElements())
	assert.Equal(t, float32(8), s.MaxTexelFactor())

	st, ok := s.CompiledStats(1)
	require.True(t, ok)
	assert.Equal(t, AssetStats{Count: 2, Forced: 1, MaxTexelFactor: 8}, st)

	st, ok = s.CompiledStats(2)
	require.True(t, ok)
	assert.Equal(t, 0, st.Forced, "negative factors on textures are not forced")
	assert.Equal(t, float32(-1), st.MaxTexelFactor)

	_, ok = s.CompiledStats(99)
	assert.False(t, ok)
}

func TestCompileElements_Parallel(t *testing.T) {
	rc := resource.NewController(resource.Config{MaxBackgroundWorkers: 4})
	s := New(WithController(rc), WithWorkers(4))

	const numAssets = 5 * compileBatchSize
	want := 0
	for i := 1; i <= numAssets; i++ {
		c := testutil.NewComponent(core.ComponentID(i))
		a := testutil.NewMesh(core.AssetID(i))
		n := i%3 + 1
		for k := 0; k < n; k++ {
			addUsage(t, s, c, a, float32(i%17))
		}
		want += n
	}

	assert.Equal(t, want, s.CompileElements())
	assert.Equal(t, float32(16), s.MaxTexelFactor())
	for i := 1; i <= numAssets; i++ {
		assert.Len(t, s.CompiledElements(core.AssetID(i)), i%3+1)
	}
}

func TestCompileElements_Incremental(t *testing.T) {
	s := New()
	mesh := testutil.NewMesh(1)
	c1 := testutil.NewComponent(1)
	addUsage(t, s, c1, mesh, 3)
	s.CompileElements()

	c2 := testutil.NewComponent(2)
	addUsage(t, s, c2, mesh, -4)
	assert.Len(t, s.CompiledElements(1), 2)
	st, _ := s.CompiledStats(1)
	assert.Equal(t, 1, st.Forced)

	s.RemoveComponent(2)
	assert.Len(t, s.CompiledElements(1), 1)
	st, _ = s.CompiledStats(1)
	assert.Equal(t, 0, st.Forced)

	s.RemoveComponent(1)
	assert.Nil(t, s.CompiledElements(1))
}

func TestCompileElements_RemoveRecomputesMaxima(t *testing.T) {
	s := New()
	mesh := testutil.NewMesh(1)
	addUsage(t, s, testutil.NewComponent(1), mesh, 3)
	addUsage(t, s, testutil.NewComponent(2), mesh, 5)
	addUsage(t, s, testutil.NewComponent(3), mesh, -4)
	addUsage(t, s, testutil.NewComponent(4), mesh, -2)
	s.CompileElements()

	s.RemoveComponent(2)
	st, _ := s.CompiledStats(1)
	assert.Equal(t, AssetStats{Count: 3, Forced: 2, MaxTexelFactor: 3}, st)

	s.RemoveComponent(1)
	st, _ = s.CompiledStats(1)
	assert.Equal(t, AssetStats{Count: 2, Forced: 2, MaxTexelFactor: -2}, st, "all negative falls back to the negative maximum")

	s.RemoveComponent(4)
	st, _ = s.CompiledStats(1)
	assert.Equal(t, AssetStats{Count: 1, Forced: 1, MaxTexelFactor: -4}, st)
}

func TestSnapshot(t *testing.T) {
	s := New()
	mesh := testutil.NewMesh(1)
	addUsage(t, s, testutil.NewComponent(1), mesh, 2)

	v := s.Snapshot()
	require.Equal(t, 1, v.AssetCount())
	require.Len(t, v.Elements(1), 1)
	assert.Len(t, v.Lanes(), 1)
	assert.Equal(t, float32(2), v.MaxTexelFactor())

	// Later mutations stay invisible to the view.
	addUsage(t, s, testutil.NewComponent(2), mesh, 9)
	s.RemoveComponent(1)
	addUsage(t, s, testutil.NewComponent(3), testutil.NewTexture(2), 1)

	assert.Len(t, v.Elements(1), 1)
	assert.Equal(t, float32(2), v.Elements(1)[0].TexelFactor)
	_, ok := v.Asset(2)
	assert.False(t, ok)

	v2 := s.Snapshot()
	assert.Equal(t, 2, v2.AssetCount())
	a, ok := v2.Asset(1)
	require.True(t, ok)
	assert.Equal(t, core.KindMesh, a.Kind)
	assert.Equal(t, float32(9), a.Elements[0].TexelFactor)

	seen := 0
	v2.Range(func(core.AssetID, AssetView) bool {
		seen++
		return true
	})
	assert.Equal(t, 2, seen)
}
