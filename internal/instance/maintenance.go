package instance

import (
	"github.com/hupe1980/renderstream/internal/arena"
	"github.com/hupe1980/renderstream/internal/bounds"
	"github.com/hupe1980/renderstream/internal/core"
	"github.com/hupe1980/renderstream/internal/geom"
)

func (s *State) owner(i core.BoundsIndex) core.Component {
	id := s.bounds.Owner(i)
	if id == 0 {
		return nil
	}
	return s.refs[id]
}

// UpdateBounds refreshes slot i from its owner's current bounds.
func (s *State) UpdateBounds(i core.BoundsIndex) bool {
	c := s.owner(i)
	if c == nil || !c.IsRegistered() {
		return false
	}
	return s.bounds.Update(i, c.Bounds(), c.LastRenderTime())
}

// ConditionalUpdateBounds refreshes slot i only if the owner's bounds are
// coherent. A false result means the slot was not updated this frame.
func (s *State) ConditionalUpdateBounds(i core.BoundsIndex) bool {
	c := s.owner(i)
	if c == nil || !c.IsRegistered() {
		return false
	}
	return s.bounds.ConditionalUpdate(i, c.Bounds(), c.LastRenderTime())
}

// UpdateLastRenderTimeAndMaxDrawDistance refreshes the last render time of
// slot i and, when the owner defers to a LOD parent, recomputes the squared
// cull range from the parent's current transition distance.
func (s *State) UpdateLastRenderTimeAndMaxDrawDistance(i core.BoundsIndex) {
	c := s.owner(i)
	if c == nil {
		return
	}
	s.bounds.SetLastRenderTime(i, c.LastRenderTime())
	if p := c.LODParent(); p != nil {
		s.bounds.SetMaxRangeSq(i, RangeSq(p.MinDrawDistance()))
	}
}

// RangeSq squares a draw distance; non-positive distances are unlimited.
func RangeSq(d float32) float32 {
	if d <= 0 {
		return bounds.UnlimitedRangeSq
	}
	return d * d
}

// MoveBound relocates bounds slot src into free slot dst and points every
// element referencing src at dst. It refuses while removals are pending.
func (s *State) MoveBound(src, dst core.BoundsIndex) bool {
	if s.HasPendingRemovals() {
		return false
	}
	ownerID := s.bounds.Owner(src)
	if !s.bounds.Move(src, dst) {
		return false
	}

	patched := make(map[core.AssetID]struct{})
	for _, ref := range s.components[ownerID] {
		e, ok := s.elements.Get(ref)
		if !ok || e.Bounds != src {
			continue
		}
		e.Bounds = dst
		patched[e.Asset] = struct{}{}
	}
	for k, i := range s.unpack[ownerID] {
		if i == src {
			s.unpack[ownerID][k] = dst
		}
	}
	for id := range patched {
		ca := s.compiled[id]
		if ca == nil {
			continue
		}
		out := make([]CompiledElement, len(ca.elements), cap(ca.elements))
		for k, ce := range ca.elements {
			if ce.Bounds == src {
				ce.Bounds = dst
			}
			out[k] = ce
		}
		ca.elements = out
	}
	return true
}

// TrimBounds releases trailing free lanes. No-op while removals are pending.
func (s *State) TrimBounds() int {
	if s.HasPendingRemovals() {
		return 0
	}
	return s.bounds.Trim()
}

// Defragment moves the highest occupied bounds into the lowest free slots and
// trims the table. It returns the number of moves. No-op while removals are
// pending.
func (s *State) Defragment() int {
	if s.HasPendingRemovals() {
		return 0
	}
	moves := 0
	for {
		dst := s.bounds.FirstFree()
		src := s.bounds.LastOccupied()
		if dst == core.NoBounds || src == core.NoBounds || dst > src {
			break
		}
		if !s.MoveBound(src, dst) {
			break
		}
		moves++
	}
	s.bounds.Trim()
	return moves
}

// OffsetBounds rebases every occupied bound by d.
func (s *State) OffsetBounds(d geom.Vec3) {
	s.bounds.Offset(d)
}

// ComponentRefs returns the element refs of a component, newest first.
func (s *State) ComponentRefs(id core.ComponentID) []arena.Ref {
	chain := s.components[id]
	out := make([]arena.Ref, len(chain))
	for i, ref := range chain {
		out[len(chain)-1-i] = ref
	}
	return out
}
