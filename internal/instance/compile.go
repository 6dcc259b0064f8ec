package instance

import (
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/renderstream/internal/core"
)

// compileBatchSize is the number of assets compiled per task.
const compileBatchSize = 64

// CompiledElement is the read-optimized form of an element.
type CompiledElement struct {
	Bounds      core.BoundsIndex
	TexelFactor float32
	ForceLoad   bool
}

// AssetStats summarizes the compiled elements of one asset.
type AssetStats struct {
	Count int
	// Forced counts negative texel factors on non-texture assets.
	Forced int
	// MaxTexelFactor is the largest non-negative factor, or the largest
	// factor overall when every factor is negative.
	MaxTexelFactor float32
}

type compiledAsset struct {
	kind     core.AssetKind
	elements []CompiledElement
	forced   int
	maxPos   float32
	hasPos   bool
	maxNeg   float32
}

func newCompiledAsset(kind core.AssetKind, capacity int) *compiledAsset {
	return &compiledAsset{
		kind:     kind,
		elements: make([]CompiledElement, 0, capacity),
		maxNeg:   float32(math.Inf(-1)),
	}
}

func (c *compiledAsset) add(e CompiledElement) {
	// Appending past the published length never touches elements a
	// snapshot can see.
	c.elements = append(c.elements, e)
	c.account(e, 1)
}

// remove drops one matching element. The slice is rebuilt so snapshots keep
// their own copy.
func (c *compiledAsset) remove(e CompiledElement) {
	for i, v := range c.elements {
		if v != e {
			continue
		}
		out := make([]CompiledElement, 0, len(c.elements)-1+compileSlack)
		out = append(out, c.elements[:i]...)
		out = append(out, c.elements[i+1:]...)
		c.elements = out
		c.account(e, -1)
		if (e.TexelFactor >= 0 && e.TexelFactor == c.maxPos) || (e.TexelFactor < 0 && e.TexelFactor == c.maxNeg) {
			c.recomputeMaxima()
		}
		return
	}
}

// recomputeMaxima rescans the elements after the current maximum left.
func (c *compiledAsset) recomputeMaxima() {
	c.maxPos, c.hasPos = 0, false
	c.maxNeg = float32(math.Inf(-1))
	for _, e := range c.elements {
		if e.TexelFactor < 0 {
			c.maxNeg = max(c.maxNeg, e.TexelFactor)
			continue
		}
		if !c.hasPos || e.TexelFactor > c.maxPos {
			c.maxPos = e.TexelFactor
			c.hasPos = true
		}
	}
}

// compileSlack is spare capacity kept for elements appended after a rebuild.
const compileSlack = 4

func (c *compiledAsset) account(e CompiledElement, delta int) {
	if e.TexelFactor < 0 {
		if c.kind != core.KindTexture {
			c.forced += delta
		}
		if delta > 0 && e.TexelFactor > c.maxNeg {
			c.maxNeg = e.TexelFactor
		}
		return
	}
	if delta > 0 && (!c.hasPos || e.TexelFactor > c.maxPos) {
		c.maxPos = e.TexelFactor
		c.hasPos = true
	}
}

func (c *compiledAsset) stats() AssetStats {
	st := AssetStats{Count: len(c.elements), Forced: c.forced}
	switch {
	case c.hasPos:
		st.MaxTexelFactor = c.maxPos
	case len(c.elements) > 0:
		st.MaxTexelFactor = c.maxNeg
	}
	return st
}

func (s *State) compiledFor(id core.AssetID, d *AssetDesc) *compiledAsset {
	ca := s.compiled[id]
	if ca == nil {
		ca = newCompiledAsset(d.Asset.Kind(), len(d.elements))
		s.compiled[id] = ca
	}
	return ca
}

// compileContext is the private accumulator of one compile task.
type compileContext struct {
	maxTexelFactor float32
	count          int
	forced         map[core.AssetID]int
}

func (c *compileContext) merge(o *compileContext) {
	c.maxTexelFactor = max(c.maxTexelFactor, o.maxTexelFactor)
	c.count += o.count
	for id, n := range o.forced {
		c.forced[id] += n
	}
}

// CompileElements rebuilds the compiled view of every referenced asset and
// returns the number of compiled elements.
//
// Assets are compiled in batches on parallel tasks. Each task accumulates
// into its own context; contexts are merged with max and sum, so the result
// does not depend on task completion order.
func (s *State) CompileElements() int {
	start := time.Now()

	ids := make([]core.AssetID, 0, len(s.assets))
	for id := range s.assets {
		ids = append(ids, id)
	}

	results := make([]*compiledAsset, len(ids))
	numBatches := (len(ids) + compileBatchSize - 1) / compileBatchSize
	contexts := make([]compileContext, numBatches)

	var g errgroup.Group
	g.SetLimit(s.workers)

	for b := 0; b < numBatches; b++ {
		lo := b * compileBatchSize
		hi := min(lo+compileBatchSize, len(ids))
		ctx := &contexts[b]
		ctx.forced = make(map[core.AssetID]int)

		if numBatches > 1 && s.rc.TryAcquireBackground() {
			g.Go(func() error {
				defer s.rc.ReleaseBackground()
				s.compileBatch(ids[lo:hi], results[lo:hi], ctx)
				return nil
			})
			continue
		}
		s.compileBatch(ids[lo:hi], results[lo:hi], ctx)
	}
	_ = g.Wait()

	total := compileContext{forced: make(map[core.AssetID]int)}
	for i := range contexts {
		total.merge(&contexts[i])
	}

	s.compiled = make(map[core.AssetID]*compiledAsset, len(ids))
	for i, id := range ids {
		ca := results[i]
		ca.forced = total.forced[id]
		s.compiled[id] = ca
	}
	s.maxTexelFactor = total.maxTexelFactor

	s.logger.Debug("elements compiled",
		"assets", len(ids),
		"elements", total.count,
		"batches", numBatches,
		"max_texel_factor", total.maxTexelFactor,
		"duration", time.Since(start),
	)
	return total.count
}

// compileBatch only reads shared state; it writes to its own result slots
// and context.
func (s *State) compileBatch(ids []core.AssetID, out []*compiledAsset, ctx *compileContext) {
	for i, id := range ids {
		d := s.assets[id]
		kind := d.Asset.Kind()
		ca := newCompiledAsset(kind, len(d.elements)+compileSlack)

		for _, ref := range d.elements {
			e, ok := s.elements.Get(ref)
			if !ok {
				continue
			}
			ce := CompiledElement{Bounds: e.Bounds, TexelFactor: e.TexelFactor, ForceLoad: e.ForceLoad}
			ca.elements = append(ca.elements, ce)
			if ce.TexelFactor < 0 {
				if kind != core.KindTexture {
					ctx.forced[id]++
				}
				ca.maxNeg = max(ca.maxNeg, ce.TexelFactor)
				continue
			}
			if !ca.hasPos || ce.TexelFactor > ca.maxPos {
				ca.maxPos = ce.TexelFactor
				ca.hasPos = true
			}
			ctx.maxTexelFactor = max(ctx.maxTexelFactor, ce.TexelFactor)
		}

		ctx.count += len(ca.elements)
		out[i] = ca
	}
}

// HasCompiledElements reports whether a compiled view exists.
func (s *State) HasCompiledElements() bool { return s.compiled != nil }

// CompiledElements returns the compiled elements of an asset. The slice is
// owned by the state; it is valid until the next structural mutation.
func (s *State) CompiledElements(id core.AssetID) []CompiledElement {
	if ca := s.compiled[id]; ca != nil {
		return ca.elements
	}
	return nil
}

// CompiledStats returns the compiled statistics of an asset.
func (s *State) CompiledStats(id core.AssetID) (AssetStats, bool) {
	ca := s.compiled[id]
	if ca == nil {
		return AssetStats{}, false
	}
	return ca.stats(), true
}
