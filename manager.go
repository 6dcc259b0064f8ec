package renderstream

import (
	"time"

	"github.com/hupe1980/renderstream/internal/bounds"
	"github.com/hupe1980/renderstream/internal/instance"
)

// manager holds what StaticManager and DynamicManager share. Every method
// must be called from the goroutine that owns the manager.
type manager struct {
	state   *instance.State
	opts    options
	logger  *Logger
	metrics MetricsCollector
}

func newManager(kind string, optFns []Option) manager {
	o := applyOptions(optFns)
	logger := o.logger.WithManager(kind)
	logger.Debug("manager created",
		"kernel", bounds.ActiveKernel().String(),
		"workers", o.workers,
		"memory_limit", o.rc.MemoryLimit(),
	)
	return manager{
		state: instance.New(
			instance.WithLogger(logger.Logger),
			instance.WithController(o.rc),
			instance.WithWorkers(o.workers),
		),
		opts:    o,
		logger:  logger,
		metrics: o.metricsCollector,
	}
}

func (m *manager) prepareOptions(ignoreBounds bool) PrepareOptions {
	return PrepareOptions{MaxTexelFactor: m.opts.maxTexelFactor, IgnoreBounds: ignoreBounds}
}

// Prepare runs the first phase of an add with the manager's density
// ceiling. It is safe to call from any goroutine.
func (m *manager) Prepare(c Component) (*Payload, AddResult) {
	return Prepare(c, m.prepareOptions(false))
}

// Commit applies a prepared payload.
func (m *manager) Commit(p *Payload) AddResult {
	start := time.Now()
	r := commit(m.state, p)
	m.recordAdd(p, r, start)
	return r
}

func (m *manager) add(c Component, ignoreBounds bool) AddResult {
	start := time.Now()
	p, r := Prepare(c, m.prepareOptions(ignoreBounds))
	if r == AddSuccess {
		r = commit(m.state, p)
	}
	m.recordAdd(p, r, start)
	return r
}

func (m *manager) recordAdd(p *Payload, r AddResult, start time.Time) {
	elements := 0
	var id ComponentID
	if p != nil {
		elements = p.ElementCount()
		if p.component != nil {
			id = p.component.ComponentID()
		}
	}
	m.metrics.RecordAdd(r, elements, time.Since(start))
	m.logger.LogAdd(id, r, elements)
}

// AddComponent prepares and commits c.
func (m *manager) AddComponent(c Component) AddResult {
	return m.add(c, false)
}

// OnComponentRegistered resolves the packed bounds queued for c. It returns
// the number of slots unpacked.
func (m *manager) OnComponentRegistered(c Component) int {
	return m.state.UnpackComponent(c)
}

// UnpackPending resolves packed bounds of every owner registered since.
func (m *manager) UnpackPending() int {
	return m.state.UnpackPending()
}

// PendingUnpack returns the number of components with unresolved packed bounds.
func (m *manager) PendingUnpack() int {
	return m.state.PendingUnpack()
}

// CompileElements rebuilds the compiled view and returns the number of
// compiled elements.
func (m *manager) CompileElements() int {
	start := time.Now()
	n := m.state.CompileElements()
	d := time.Since(start)
	m.metrics.RecordCompile(n, d)
	m.logger.LogCompile(m.state.AssetCount(), n, d)
	return n
}

// Snapshot returns an immutable view for a concurrent reader, compiling
// first when needed.
func (m *manager) Snapshot() *View {
	if !m.state.HasCompiledElements() {
		m.CompileElements()
	}
	return m.state.Snapshot()
}

// UpdateBounds refreshes slot i from its owner.
func (m *manager) UpdateBounds(i BoundsIndex) bool {
	return m.state.UpdateBounds(i)
}

// ConditionalUpdateBounds refreshes slot i only when the owner's bounds are
// coherent.
func (m *manager) ConditionalUpdateBounds(i BoundsIndex) bool {
	return m.state.ConditionalUpdateBounds(i)
}

// UpdateLastRenderTimeAndMaxDrawDistance refreshes the last render time of
// slot i and the cull range from the owner's LOD parent.
func (m *manager) UpdateLastRenderTimeAndMaxDrawDistance(i BoundsIndex) {
	m.state.UpdateLastRenderTimeAndMaxDrawDistance(i)
}

// MoveBound relocates slot src into free slot dst.
func (m *manager) MoveBound(src, dst BoundsIndex) bool {
	return m.state.MoveBound(src, dst)
}

// OffsetBounds rebases every bound after a world origin shift.
func (m *manager) OffsetBounds(d Vec3) {
	m.state.OffsetBounds(d)
}

// TrimBounds releases trailing free lanes and returns how many.
func (m *manager) TrimBounds() int {
	n := m.state.TrimBounds()
	m.recordTrim(0, n)
	return n
}

// Defragment compacts the bounds table and returns the number of moves.
func (m *manager) Defragment() int {
	lanes := m.state.Bounds().LaneCount()
	moved := m.state.Defragment()
	m.recordTrim(moved, lanes-m.state.Bounds().LaneCount())
	return moved
}

// MaybeTrim trims when the trim interval has elapsed. It returns the
// number of lanes released.
func (m *manager) MaybeTrim() int {
	if m.state.HasPendingRemovals() || !m.opts.rc.AllowTrim() {
		return 0
	}
	return m.TrimBounds()
}

func (m *manager) recordTrim(moved, released int) {
	if moved == 0 && released == 0 {
		return
	}
	m.metrics.RecordTrim(moved, released)
	m.logger.LogTrim(moved, released, m.state.Bounds().LaneCount())
}

// HasComponent reports whether the component has live elements.
func (m *manager) HasComponent(id ComponentID) bool {
	return m.state.HasComponent(id)
}

// ComponentCount returns the number of tracked components.
func (m *manager) ComponentCount() int { return m.state.ComponentCount() }

// AssetCount returns the number of referenced assets.
func (m *manager) AssetCount() int { return m.state.AssetCount() }

// ElementCount returns the number of live elements of an asset.
func (m *manager) ElementCount(id AssetID) int { return m.state.ElementCount(id) }

// BoundsCount returns the number of slots in the bounds table.
func (m *manager) BoundsCount() int { return m.state.Bounds().Len() }

// MaxTexelFactor returns the maximum non-negative texel factor.
func (m *manager) MaxTexelFactor() float32 { return m.state.MaxTexelFactor() }

// MemoryUsage returns the bytes reserved by the bounds table on the
// resource controller. Shared controllers report the combined usage.
func (m *manager) MemoryUsage() int64 { return m.opts.rc.MemoryUsage() }
