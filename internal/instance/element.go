package instance

import (
	"github.com/hupe1980/renderstream/internal/arena"
	"github.com/hupe1980/renderstream/internal/bounds"
	"github.com/hupe1980/renderstream/internal/core"
	"github.com/hupe1980/renderstream/internal/invariant"
)

// AddBounds stores a world-space bound owned by c.
func (s *State) AddBounds(c core.Component, p bounds.Params) core.BoundsIndex {
	p.Owner = c.ComponentID()
	i := s.bounds.Add(p)
	if i != core.NoBounds {
		s.refs[p.Owner] = c
	}
	return i
}

// AddPackedBounds stores a component-relative bound owned by c and queues it
// for Unpack once c is registered.
func (s *State) AddPackedBounds(c core.Component, p bounds.Params) core.BoundsIndex {
	p.Owner = c.ComponentID()
	i := s.bounds.AddPacked(p)
	if i != core.NoBounds {
		s.refs[p.Owner] = c
		s.unpack[p.Owner] = append(s.unpack[p.Owner], i)
	}
	return i
}

// RemoveBounds frees a bounds slot.
func (s *State) RemoveBounds(i core.BoundsIndex) bool {
	return s.bounds.Remove(i)
}

// AddElement links a new element at the head of the component chain and the
// asset chain. A compiled view, if present, is extended in place.
func (s *State) AddElement(c core.Component, asset core.RenderAsset, b core.BoundsIndex, texelFactor float32, forceLoad bool) arena.Ref {
	cid := c.ComponentID()
	aid := asset.AssetID()

	desc := s.assets[aid]
	if desc == nil {
		desc = &AssetDesc{Asset: asset, LODGroup: asset.LODGroup()}
		s.assets[aid] = desc
	}

	ref := s.elements.Alloc(Element{
		Component:   cid,
		Asset:       aid,
		Bounds:      b,
		TexelFactor: texelFactor,
		ForceLoad:   forceLoad,
		assetPos:    len(desc.elements),
	})
	desc.elements = append(desc.elements, ref)
	s.components[cid] = append(s.components[cid], ref)
	s.refs[cid] = c

	if texelFactor >= 0 && texelFactor > s.maxTexelFactor {
		s.maxTexelFactor = texelFactor
	}
	if s.compiled != nil {
		s.compiledFor(aid, desc).add(CompiledElement{Bounds: b, TexelFactor: texelFactor, ForceLoad: forceLoad})
	}
	return ref
}

// RemoveElement splices ref out of both chains. It returns the next element
// of the component chain, the element's bounds slot and, when ref was the
// last element of its asset, that asset's id.
func (s *State) RemoveElement(ref arena.Ref) (next arena.Ref, b core.BoundsIndex, removed core.AssetID, ok bool) {
	e, ok := s.elements.Get(ref)
	if !ok {
		return arena.Ref{}, core.NoBounds, 0, false
	}
	if e.Component != 0 {
		next = s.unlinkComponent(e.Component, ref)
	}
	b, removed = s.unlinkElement(ref)
	return next, b, removed, true
}

func (s *State) unlinkComponent(cid core.ComponentID, ref arena.Ref) arena.Ref {
	chain := s.components[cid]
	var next arena.Ref
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i] != ref {
			continue
		}
		if i > 0 {
			next = chain[i-1]
		}
		chain = append(chain[:i], chain[i+1:]...)
		break
	}
	if len(chain) == 0 {
		delete(s.components, cid)
	} else {
		s.components[cid] = chain
	}
	return next
}

// unlinkElement removes ref from its asset chain and frees it. The component
// chain is the caller's concern.
func (s *State) unlinkElement(ref arena.Ref) (core.BoundsIndex, core.AssetID) {
	e, ok := s.elements.Get(ref)
	if !ok {
		return core.NoBounds, 0
	}
	el := *e
	s.elements.Free(ref)

	desc := s.assets[el.Asset]
	invariant.Check(desc != nil, "asset descriptor missing on element removal")
	if desc == nil {
		return el.Bounds, 0
	}

	last := len(desc.elements) - 1
	pos := el.assetPos
	invariant.Check(pos <= last && desc.elements[pos] == ref, "element position out of sync with asset chain")
	if pos <= last && desc.elements[pos] == ref {
		moved := desc.elements[last]
		desc.elements[pos] = moved
		desc.elements = desc.elements[:last]
		if m, ok := s.elements.Get(moved); ok {
			m.assetPos = pos
		}
	}

	if ca := s.compiled[el.Asset]; ca != nil {
		ca.remove(CompiledElement{Bounds: el.Bounds, TexelFactor: el.TexelFactor, ForceLoad: el.ForceLoad})
	}

	if len(desc.elements) == 0 {
		delete(s.assets, el.Asset)
		delete(s.compiled, el.Asset)
		return el.Bounds, el.Asset
	}
	return el.Bounds, 0
}

// RemoveComponent removes every element and bound of the component in one
// step and returns the assets left without any reference.
// It must not run while a reader walks a snapshot of the arena.
func (s *State) RemoveComponent(id core.ComponentID) []core.AssetID {
	chain, ok := s.components[id]
	if !ok {
		s.dropHandle(id)
		return nil
	}
	delete(s.components, id)
	s.dropHandle(id)
	return s.reclaim(chain, nil)
}

// DetachComponentReferences clears every reference to the component without
// reclaiming slots. The chain is reclaimed by FlushPendingRemovals.
func (s *State) DetachComponentReferences(id core.ComponentID) bool {
	chain, ok := s.components[id]
	s.dropHandle(id)
	if !ok {
		return false
	}
	for _, ref := range chain {
		e, ok := s.elements.Get(ref)
		if !ok {
			continue
		}
		e.Component = 0
		if e.Bounds != core.NoBounds {
			s.bounds.ClearOwner(e.Bounds)
		}
	}
	delete(s.components, id)
	s.pending = append(s.pending, chain)
	return true
}

// FlushPendingRemovals reclaims every detached chain and returns the assets
// left without any reference. Call only between reader passes.
func (s *State) FlushPendingRemovals() []core.AssetID {
	if len(s.pending) == 0 {
		return nil
	}
	var removed []core.AssetID
	for _, chain := range s.pending {
		removed = s.reclaim(chain, removed)
	}
	n := len(s.pending)
	s.pending = s.pending[:0]
	s.logger.Debug("pending removals flushed", "components", n, "unreferenced_assets", len(removed))
	return removed
}

func (s *State) reclaim(chain []arena.Ref, removed []core.AssetID) []core.AssetID {
	var freed []core.BoundsIndex
	for i := len(chain) - 1; i >= 0; i-- {
		b, asset := s.unlinkElement(chain[i])
		if asset != 0 {
			removed = append(removed, asset)
		}
		if b == core.NoBounds || containsBounds(freed, b) {
			continue
		}
		freed = append(freed, b)
		s.bounds.Remove(b)
	}
	return removed
}

func (s *State) dropHandle(id core.ComponentID) {
	delete(s.refs, id)
	delete(s.unpack, id)
}

func containsBounds(list []core.BoundsIndex, b core.BoundsIndex) bool {
	for _, v := range list {
		if v == b {
			return true
		}
	}
	return false
}

// UnpackComponent resolves the packed bounds of c once it is registered and
// returns the number of slots unpacked.
func (s *State) UnpackComponent(c core.Component) int {
	id := c.ComponentID()
	list, ok := s.unpack[id]
	if !ok || !c.IsRegistered() {
		return 0
	}
	owner := c.Bounds()
	n := 0
	for _, i := range list {
		if s.bounds.Owner(i) == id && s.bounds.Unpack(i, owner) {
			n++
		}
	}
	delete(s.unpack, id)
	return n
}

// UnpackPending resolves packed bounds for every registered owner.
func (s *State) UnpackPending() int {
	n := 0
	for id := range s.unpack {
		if c := s.refs[id]; c != nil {
			n += s.UnpackComponent(c)
		}
	}
	return n
}

// PendingUnpack returns the number of components with packed bounds.
func (s *State) PendingUnpack() int { return len(s.unpack) }
