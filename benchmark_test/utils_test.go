package benchmark_test

import (
	"github.com/hupe1980/renderstream"
	"github.com/hupe1980/renderstream/testutil"
)

const benchSeed = 42

// scene is a deterministic population of components over a shared asset set.
type scene struct {
	rng    *testutil.RNG
	assets []renderstream.RenderAsset
	next   renderstream.ComponentID
}

func newScene(numAssets int) *scene {
	s := &scene{rng: testutil.NewRNG(benchSeed), next: 1}
	for i := 0; i < numAssets; i++ {
		id := renderstream.AssetID(i + 1)
		if i%4 == 0 {
			s.assets = append(s.assets, testutil.NewMesh(id))
		} else {
			s.assets = append(s.assets, testutil.NewTexture(id))
		}
	}
	return s
}

func (s *scene) component(usages int) *testutil.Component {
	c := testutil.NewComponent(s.next).
		WithBounds(testutil.BoxAt(s.rng.Float32Range(-1000, 1000), 0, s.rng.Float32Range(-1000, 1000), 2))
	s.next++
	for k := 0; k < usages; k++ {
		c.WithInfo(s.assets[s.rng.Intn(len(s.assets))], s.rng.Float32Range(-1, 32))
	}
	return c
}

func (s *scene) components(n, usages int) []renderstream.Component {
	out := make([]renderstream.Component, n)
	for i := range out {
		out[i] = s.component(usages)
	}
	return out
}
