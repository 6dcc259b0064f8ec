package instance

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/renderstream/internal/arena"
	"github.com/hupe1980/renderstream/internal/bounds"
	"github.com/hupe1980/renderstream/internal/core"
	"github.com/hupe1980/renderstream/internal/resource"
)

// Element links one component, one asset and one bounds slot.
type Element struct {
	// Component is zero once the element has been detached.
	Component   core.ComponentID
	Asset       core.AssetID
	Bounds      core.BoundsIndex
	TexelFactor float32
	ForceLoad   bool

	assetPos int
}

// AssetDesc is the per-asset entry of the asset index. It exists while at
// least one live element references the asset.
type AssetDesc struct {
	Asset    core.RenderAsset
	LODGroup int
	elements []arena.Ref
}

// Len returns the number of elements referencing the asset.
func (d *AssetDesc) Len() int { return len(d.elements) }

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithController shares rc for lane memory and compile worker slots.
func WithController(rc *resource.Controller) Option {
	return func(s *State) {
		s.rc = rc
	}
}

// WithWorkers caps the number of concurrent compile batches.
func WithWorkers(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.workers = n
		}
	}
}

// State is the streaming instance state.
type State struct {
	bounds   *bounds.Table
	elements *arena.Arena[Element]

	components map[core.ComponentID][]arena.Ref
	assets     map[core.AssetID]*AssetDesc

	// refs resolves component handles. Entries vanish on detach.
	refs map[core.ComponentID]core.Component

	// unpack lists packed bounds waiting for their owner to register.
	unpack map[core.ComponentID][]core.BoundsIndex

	// pending holds detached element chains awaiting reclamation.
	pending [][]arena.Ref

	compiled       map[core.AssetID]*compiledAsset
	maxTexelFactor float32

	rc      *resource.Controller
	logger  *slog.Logger
	workers int
}

// New creates an empty State.
func New(opts ...Option) *State {
	s := &State{
		elements:   arena.New[Element](0),
		components: make(map[core.ComponentID][]arena.Ref),
		assets:     make(map[core.AssetID]*AssetDesc),
		refs:       make(map[core.ComponentID]core.Component),
		unpack:     make(map[core.ComponentID][]core.BoundsIndex),
		logger:     slog.New(slog.DiscardHandler),
		workers:    runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.bounds = bounds.New(bounds.WithController(s.rc), bounds.WithLogger(s.logger))
	return s
}

// Bounds returns the bounds table.
func (s *State) Bounds() *bounds.Table { return s.bounds }

// HasComponent reports whether the component has at least one live element.
func (s *State) HasComponent(id core.ComponentID) bool {
	_, ok := s.components[id]
	return ok
}

// Component resolves a component handle. Nil once detached or removed.
func (s *State) Component(id core.ComponentID) core.Component {
	return s.refs[id]
}

// ComponentCount returns the number of indexed components.
func (s *State) ComponentCount() int { return len(s.components) }

// AssetCount returns the number of referenced assets.
func (s *State) AssetCount() int { return len(s.assets) }

// Asset returns the descriptor of an asset, or nil.
func (s *State) Asset(id core.AssetID) *AssetDesc { return s.assets[id] }

// ElementCount returns the number of live elements referencing the asset.
func (s *State) ElementCount(id core.AssetID) int {
	if d := s.assets[id]; d != nil {
		return len(d.elements)
	}
	return 0
}

// TotalElements returns the number of live elements.
func (s *State) TotalElements() int { return s.elements.Live() }

// Element returns a copy of the element behind ref.
func (s *State) Element(ref arena.Ref) (Element, bool) {
	e, ok := s.elements.Get(ref)
	if !ok {
		return Element{}, false
	}
	return *e, true
}

// AssetElements calls fn for every element of the asset until fn returns false.
func (s *State) AssetElements(id core.AssetID, fn func(arena.Ref, Element) bool) {
	d := s.assets[id]
	if d == nil {
		return
	}
	for _, ref := range d.elements {
		e, ok := s.elements.Get(ref)
		if !ok {
			continue
		}
		if !fn(ref, *e) {
			return
		}
	}
}

// ComponentElements calls fn for every element of the component, newest
// first, until fn returns false.
func (s *State) ComponentElements(id core.ComponentID, fn func(arena.Ref, Element) bool) {
	chain := s.components[id]
	for i := len(chain) - 1; i >= 0; i-- {
		e, ok := s.elements.Get(chain[i])
		if !ok {
			continue
		}
		if !fn(chain[i], *e) {
			return
		}
	}
}

// Assets calls fn for every referenced asset until fn returns false.
func (s *State) Assets(fn func(core.AssetID, *AssetDesc) bool) {
	for id, d := range s.assets {
		if !fn(id, d) {
			return
		}
	}
}

// HasPendingRemovals reports whether detached chains await FlushPendingRemovals.
func (s *State) HasPendingRemovals() bool { return len(s.pending) > 0 }

// MaxTexelFactor returns the running maximum non-negative texel factor.
func (s *State) MaxTexelFactor() float32 { return s.maxTexelFactor }
