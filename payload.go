package renderstream

import (
	"github.com/hupe1980/renderstream/internal/bounds"
	"github.com/hupe1980/renderstream/internal/core"
	"github.com/hupe1980/renderstream/internal/geom"
	"github.com/hupe1980/renderstream/internal/instance"
)

// PrepareOptions parameterizes Prepare.
type PrepareOptions struct {
	// MaxTexelFactor is the density ceiling. Zero disables the check.
	MaxTexelFactor float32
	// IgnoreBounds uses the component bounds for every entry. The component
	// must be registered.
	IgnoreBounds bool
}

type payloadBound struct {
	bounds geom.BoxSphere
	// packed is set when the bound waits for its owner to register.
	packed geom.PackedRelativeBox
}

type payloadElement struct {
	asset       core.RenderAsset
	bound       int
	texelFactor float32
	forceLoad   bool
}

// Payload is a prepared component add. It holds no reference into any
// manager and may be committed to either kind.
type Payload struct {
	component Component
	bounds    []payloadBound
	elements  []payloadElement

	lastRenderTime float32
	minDistanceSq  float32
	minRangeSq     float32
	maxRangeSq     float32
}

// Component returns the component the payload was prepared for.
func (p *Payload) Component() Component { return p.component }

// ElementCount returns the number of elements the commit will create.
func (p *Payload) ElementCount() int { return len(p.elements) }

// BoundsCount returns the number of bounds slots the commit will use.
func (p *Payload) BoundsCount() int { return len(p.bounds) }

// Prepare gathers and merges the streaming entries of c. It only reads c
// and is safe to call from any goroutine.
//
// Entries for the same asset and bound are merged while they are adjacent
// and share a sign: the maximum is kept for non-negative factors and the
// minimum for negative ones. Entries are not sorted first.
func Prepare(c Component, opts PrepareOptions) (*Payload, AddResult) {
	if c == nil {
		return nil, AddFail
	}
	infos := c.StreamingRenderAssets()
	if len(infos) == 0 {
		return nil, AddFail
	}
	registered := c.IsRegistered()
	if opts.IgnoreBounds && !registered {
		return nil, AddFail
	}

	maxDraw := c.MaxDrawDistance()
	if parent := c.LODParent(); parent != nil {
		maxDraw = parent.MinDrawDistance()
	}
	minDistSq := c.MinDrawDistance() * c.MinDrawDistance()
	p := &Payload{
		component:      c,
		bounds:         make([]payloadBound, 0, 1),
		elements:       make([]payloadElement, 0, len(infos)),
		lastRenderTime: c.LastRenderTime(),
		minDistanceSq:  minDistSq,
		minRangeSq:     minDistSq,
		maxRangeSq:     instance.RangeSq(maxDraw),
	}

	for _, info := range infos {
		if info.Asset == nil {
			continue
		}
		tf := info.TexelFactor
		if info.AffectedByScale && tf >= 0 {
			tf *= c.MaxScale()
		}
		if opts.MaxTexelFactor > 0 && tf > opts.MaxTexelFactor {
			return nil, AddFailDensityConstraint
		}

		b, ok := resolveBound(c, info, registered, opts.IgnoreBounds)
		if !ok {
			return nil, AddFail
		}
		p.merge(info.Asset, p.boundIndex(b), tf, info.ForceLoad)
	}

	if len(p.elements) == 0 {
		return nil, AddFail
	}
	return p, AddSuccess
}

func resolveBound(c Component, info StreamingInfo, registered, ignoreBounds bool) (payloadBound, bool) {
	switch {
	case ignoreBounds:
		return payloadBound{bounds: c.Bounds()}, true
	case registered && !info.Bounds.IsZero():
		return payloadBound{bounds: info.Bounds}, true
	case registered && info.PackedRelativeBox.Valid():
		box := info.PackedRelativeBox.Unpack(c.Bounds().Box())
		return payloadBound{bounds: geom.NewBoxSphere(box)}, true
	case registered:
		return payloadBound{bounds: c.Bounds()}, true
	case info.PackedRelativeBox.Valid():
		return payloadBound{packed: info.PackedRelativeBox}, true
	case !info.Bounds.IsZero():
		return payloadBound{bounds: info.Bounds}, true
	default:
		return payloadBound{}, false
	}
}

func (p *Payload) boundIndex(b payloadBound) int {
	for i, v := range p.bounds {
		if v == b {
			return i
		}
	}
	p.bounds = append(p.bounds, b)
	return len(p.bounds) - 1
}

func (p *Payload) merge(asset core.RenderAsset, bound int, tf float32, forceLoad bool) {
	if n := len(p.elements); n > 0 {
		last := &p.elements[n-1]
		if last.asset.AssetID() == asset.AssetID() && last.bound == bound && (last.texelFactor < 0) == (tf < 0) {
			if tf < 0 {
				last.texelFactor = min(last.texelFactor, tf)
			} else {
				last.texelFactor = max(last.texelFactor, tf)
			}
			last.forceLoad = last.forceLoad || forceLoad
			return
		}
	}
	p.elements = append(p.elements, payloadElement{asset: asset, bound: bound, texelFactor: tf, forceLoad: forceLoad})
}

// commit applies p to st. Bounds are allocated first; if the table refuses
// to grow, the slots taken so far are released and nothing is linked.
func commit(st *instance.State, p *Payload) AddResult {
	if p == nil || p.component == nil {
		return AddFail
	}
	c := p.component
	id := c.ComponentID()
	known := st.HasComponent(id)

	slots := make([]core.BoundsIndex, len(p.bounds))
	for i, b := range p.bounds {
		params := bounds.Params{
			Bounds:            b.bounds,
			PackedRelativeBox: b.packed,
			LastRenderTime:    p.lastRenderTime,
			RangeOrigin:       b.bounds.Origin,
			MinDistanceSq:     p.minDistanceSq,
			MinRangeSq:        p.minRangeSq,
			MaxRangeSq:        p.maxRangeSq,
		}
		var idx core.BoundsIndex
		if b.packed.Valid() {
			idx = st.AddPackedBounds(c, params)
		} else {
			idx = st.AddBounds(c, params)
		}
		if idx == core.NoBounds {
			for _, prev := range slots[:i] {
				st.RemoveBounds(prev)
			}
			if !known {
				st.RemoveComponent(id)
			}
			return AddFail
		}
		slots[i] = idx
	}

	for _, e := range p.elements {
		st.AddElement(c, e.asset, slots[e.bound], e.texelFactor, e.forceLoad)
	}
	return AddSuccess
}
