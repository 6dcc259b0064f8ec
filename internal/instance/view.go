package instance

import (
	"github.com/hupe1980/renderstream/internal/bounds"
	"github.com/hupe1980/renderstream/internal/core"
)

// AssetView is the frozen compiled data of one asset.
type AssetView struct {
	Kind     core.AssetKind
	Elements []CompiledElement
	Stats    AssetStats
}

// View is an immutable snapshot for a concurrent reader. It shares compiled
// element storage with the state but never observes later mutations.
type View struct {
	assets         map[core.AssetID]AssetView
	lanes          []bounds.Lane
	maxTexelFactor float32
}

// Snapshot freezes the compiled view and copies the bounds lanes. It compiles
// first when no compiled view exists.
func (s *State) Snapshot() *View {
	if s.compiled == nil {
		s.CompileElements()
	}
	v := &View{
		assets:         make(map[core.AssetID]AssetView, len(s.compiled)),
		lanes:          s.bounds.CopyLanes(),
		maxTexelFactor: s.maxTexelFactor,
	}
	for id, ca := range s.compiled {
		v.assets[id] = AssetView{
			Kind:     ca.kind,
			Elements: ca.elements[:len(ca.elements):len(ca.elements)],
			Stats:    ca.stats(),
		}
	}
	return v
}

// Elements returns the compiled elements of an asset.
func (v *View) Elements(id core.AssetID) []CompiledElement {
	return v.assets[id].Elements
}

// Asset returns the compiled data of an asset.
func (v *View) Asset(id core.AssetID) (AssetView, bool) {
	a, ok := v.assets[id]
	return a, ok
}

// Range calls fn for every asset until fn returns false.
func (v *View) Range(fn func(core.AssetID, AssetView) bool) {
	for id, a := range v.assets {
		if !fn(id, a) {
			return
		}
	}
}

// AssetCount returns the number of assets in the view.
func (v *View) AssetCount() int { return len(v.assets) }

// Lanes returns the bounds lanes captured by the snapshot.
func (v *View) Lanes() []bounds.Lane { return v.lanes }

// MaxTexelFactor returns the maximum non-negative texel factor.
func (v *View) MaxTexelFactor() float32 { return v.maxTexelFactor }
