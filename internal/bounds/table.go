package bounds

import (
	"log/slog"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/renderstream/internal/core"
	"github.com/hupe1980/renderstream/internal/geom"
	"github.com/hupe1980/renderstream/internal/resource"
)

// Params describes a bound being added to the table.
type Params struct {
	Bounds geom.BoxSphere
	// PackedRelativeBox, when valid on AddPacked, is resolved against the
	// owner's bounds by Unpack. Bounds is ignored until then.
	PackedRelativeBox geom.PackedRelativeBox
	Owner             core.ComponentID
	LastRenderTime    float32
	RangeOrigin       geom.Vec3
	MinDistanceSq     float32
	MinRangeSq        float32
	MaxRangeSq        float32
}

// Option configures a Table.
type Option func(*Table)

// WithController charges lane memory against rc.
func WithController(rc *resource.Controller) Option {
	return func(t *Table) {
		t.rc = rc
	}
}

// WithLogger sets the logger used for table maintenance events.
func WithLogger(l *slog.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// Table is the bounds table.
type Table struct {
	lanes  []Lane
	owners []core.ComponentID
	free   *roaring.Bitmap
	packed *roaring.Bitmap

	rc     *resource.Controller
	logger *slog.Logger
}

// New creates an empty table.
func New(opts ...Option) *Table {
	t := &Table{
		free:   roaring.New(),
		packed: roaring.New(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Len returns the number of slots, occupied or free. Always a multiple of LaneWidth.
func (t *Table) Len() int { return len(t.owners) }

// LaneCount returns the number of lanes.
func (t *Table) LaneCount() int { return len(t.lanes) }

// FreeCount returns the number of free slots.
func (t *Table) FreeCount() int { return int(t.free.GetCardinality()) }

// Occupied reports whether slot i holds a bound.
func (t *Table) Occupied(i core.BoundsIndex) bool {
	return i >= 0 && int(i) < len(t.owners) && !t.free.Contains(uint32(i))
}

// IsFree reports whether slot i exists and is free.
func (t *Table) IsFree(i core.BoundsIndex) bool {
	return i >= 0 && int(i) < len(t.owners) && t.free.Contains(uint32(i))
}

// IsPacked reports whether slot i still waits for Unpack.
func (t *Table) IsPacked(i core.BoundsIndex) bool {
	return t.Occupied(i) && t.packed.Contains(uint32(i))
}

// Owner returns the component owning slot i. Zero for free or detached slots.
func (t *Table) Owner(i core.BoundsIndex) core.ComponentID {
	if !t.Occupied(i) {
		return 0
	}
	return t.owners[i]
}

// ClearOwner detaches slot i from its component without freeing it.
func (t *Table) ClearOwner(i core.BoundsIndex) {
	if t.Occupied(i) {
		t.owners[i] = 0
	}
}

// Get returns the contents of slot i.
func (t *Table) Get(i core.BoundsIndex) (Slot, bool) {
	if !t.Occupied(i) {
		return Slot{}, false
	}
	return t.lanes[i/LaneWidth].get(int(i % LaneWidth)), true
}

// Add stores p in the lowest free slot, growing by one lane when none is free.
// It returns core.NoBounds when the resource controller refuses the growth.
func (t *Table) Add(p Params) core.BoundsIndex {
	p.PackedRelativeBox = 0
	return t.add(p, false)
}

// AddPacked stores p in packed state: the bound is component-relative until Unpack.
func (t *Table) AddPacked(p Params) core.BoundsIndex {
	if !p.PackedRelativeBox.Valid() {
		p.PackedRelativeBox = geom.PackedIdentity
	}
	return t.add(p, true)
}

func (t *Table) add(p Params, packed bool) core.BoundsIndex {
	if t.free.IsEmpty() && !t.grow() {
		return core.NoBounds
	}

	idx := t.free.Minimum()
	t.free.Remove(idx)
	if packed {
		t.packed.Add(idx)
		p.Bounds = geom.BoxSphere{}
	}

	t.lanes[idx/LaneWidth].set(int(idx%LaneWidth), Slot{
		Bounds:            p.Bounds,
		RangeOrigin:       p.RangeOrigin,
		PackedRelativeBox: p.PackedRelativeBox,
		MinDistanceSq:     p.MinDistanceSq,
		MinRangeSq:        p.MinRangeSq,
		MaxRangeSq:        p.MaxRangeSq,
		LastRenderTime:    p.LastRenderTime,
	})
	t.owners[idx] = p.Owner
	return core.BoundsIndex(idx)
}

func (t *Table) grow() bool {
	if err := t.rc.AcquireMemory(LaneBytes); err != nil {
		t.logger.Warn("bounds table growth refused", "lanes", len(t.lanes), "error", err)
		return false
	}

	base := uint64(len(t.owners))
	t.lanes = append(t.lanes, Lane{})
	t.owners = append(t.owners, 0, 0, 0, 0)
	t.free.AddRange(base, base+LaneWidth)
	return true
}

// Remove frees slot i. Freeing the last occupied slot resets the whole table.
func (t *Table) Remove(i core.BoundsIndex) bool {
	if !t.Occupied(i) {
		return false
	}

	if t.FreeCount()+1 == len(t.owners) {
		t.reset()
		return true
	}

	t.lanes[i/LaneWidth].clear(int(i % LaneWidth))
	t.owners[i] = 0
	t.packed.Remove(uint32(i))
	t.free.Add(uint32(i))
	return true
}

func (t *Table) reset() {
	t.rc.ReleaseMemory(int64(len(t.lanes)) * LaneBytes)
	t.lanes = t.lanes[:0]
	t.owners = t.owners[:0]
	t.free.Clear()
	t.packed.Clear()
}

// Update refreshes slot i from the owner's current bounds.
func (t *Table) Update(i core.BoundsIndex, b geom.BoxSphere, lastRenderTime float32) bool {
	if !t.Occupied(i) {
		return false
	}
	l := &t.lanes[i/LaneWidth]
	k := int(i % LaneWidth)
	l.setBounds(k, b)
	l.setRangeOrigin(k, b.Origin)
	l.PackedRelativeBox[k] = 0
	l.LastRenderTime[k] = lastRenderTime
	t.packed.Remove(uint32(i))
	return true
}

// ConditionalUpdate is Update guarded by a coherence check of b. When b is
// incoherent (likely read mid-write) the slot is left untouched and false is
// returned.
func (t *Table) ConditionalUpdate(i core.BoundsIndex, b geom.BoxSphere, lastRenderTime float32) bool {
	if !b.IsCoherent() {
		return false
	}
	return t.Update(i, b, lastRenderTime)
}

// Unpack resolves a packed slot against its owner's world bounds.
func (t *Table) Unpack(i core.BoundsIndex, owner geom.BoxSphere) bool {
	if !t.IsPacked(i) {
		return false
	}
	l := &t.lanes[i/LaneWidth]
	k := int(i % LaneWidth)
	box := geom.PackedRelativeBox(l.PackedRelativeBox[k]).Unpack(owner.Box())
	l.setBounds(k, geom.NewBoxSphere(box))
	l.setRangeOrigin(k, owner.Origin)
	t.packed.Remove(uint32(i))
	return true
}

// SetLastRenderTime updates the last render time of slot i.
func (t *Table) SetLastRenderTime(i core.BoundsIndex, v float32) {
	if t.Occupied(i) {
		t.lanes[i/LaneWidth].LastRenderTime[i%LaneWidth] = v
	}
}

// SetMaxRangeSq updates the squared cull range of slot i.
func (t *Table) SetMaxRangeSq(i core.BoundsIndex, v float32) {
	if t.Occupied(i) {
		t.lanes[i/LaneWidth].MaxRangeSq[i%LaneWidth] = v
	}
}

// Move relocates occupied slot src into free slot dst. Callers must fix every
// reference to src.
func (t *Table) Move(src, dst core.BoundsIndex) bool {
	if !t.Occupied(src) || !t.IsFree(dst) {
		return false
	}

	s := t.lanes[src/LaneWidth].get(int(src % LaneWidth))
	t.lanes[dst/LaneWidth].set(int(dst%LaneWidth), s)
	t.owners[dst] = t.owners[src]
	t.free.Remove(uint32(dst))
	if t.packed.Contains(uint32(src)) {
		t.packed.Add(uint32(dst))
	}

	t.lanes[src/LaneWidth].clear(int(src % LaneWidth))
	t.owners[src] = 0
	t.packed.Remove(uint32(src))
	t.free.Add(uint32(src))
	return true
}

// LastOccupied returns the highest occupied slot, or core.NoBounds.
func (t *Table) LastOccupied() core.BoundsIndex {
	for i := len(t.owners) - 1; i >= 0; i-- {
		if !t.free.Contains(uint32(i)) {
			return core.BoundsIndex(i)
		}
	}
	return core.NoBounds
}

// FirstFree returns the lowest free slot, or core.NoBounds.
func (t *Table) FirstFree() core.BoundsIndex {
	if t.free.IsEmpty() {
		return core.NoBounds
	}
	return core.BoundsIndex(t.free.Minimum())
}

// Trim drops trailing lanes whose slots are all free and returns the number
// of lanes released.
func (t *Table) Trim() int {
	keep := len(t.lanes)
	for keep > 0 {
		base := uint32((keep - 1) * LaneWidth)
		if !t.free.Contains(base) || !t.free.Contains(base+1) ||
			!t.free.Contains(base+2) || !t.free.Contains(base+3) {
			break
		}
		keep--
	}

	released := len(t.lanes) - keep
	if released == 0 {
		return 0
	}

	t.free.RemoveRange(uint64(keep*LaneWidth), uint64(len(t.owners)))
	t.lanes = t.lanes[:keep]
	t.owners = t.owners[:keep*LaneWidth]
	t.rc.ReleaseMemory(int64(released) * LaneBytes)

	t.logger.Debug("bounds table trimmed", "released_lanes", released, "lanes", keep)
	return released
}

// Offset shifts every occupied, unpacked slot by d.
func (t *Table) Offset(d geom.Vec3) {
	for i := range t.owners {
		if t.free.Contains(uint32(i)) || t.packed.Contains(uint32(i)) {
			continue
		}
		t.lanes[i/LaneWidth].offset(i%LaneWidth, d)
	}
}

// Lanes returns the live lane slice. The owner must not mutate the table
// while the slice is in use.
func (t *Table) Lanes() []Lane { return t.lanes }

// CopyLanes returns a copy of the lanes safe to hand to another goroutine.
func (t *Table) CopyLanes() []Lane {
	out := make([]Lane, len(t.lanes))
	copy(out, t.lanes)
	return out
}

// Range calls fn for every occupied slot in index order until fn returns false.
func (t *Table) Range(fn func(core.BoundsIndex, core.ComponentID) bool) {
	for i := range t.owners {
		if t.free.Contains(uint32(i)) {
			continue
		}
		if !fn(core.BoundsIndex(i), t.owners[i]) {
			return
		}
	}
}
