package renderstream

import (
	"github.com/hupe1980/renderstream/internal/core"
	"github.com/hupe1980/renderstream/internal/geom"
	"github.com/hupe1980/renderstream/internal/instance"
)

// Identity and collaborator types.
type (
	ComponentID   = core.ComponentID
	AssetID       = core.AssetID
	BoundsIndex   = core.BoundsIndex
	AssetKind     = core.AssetKind
	RenderAsset   = core.RenderAsset
	LODParent     = core.LODParent
	Component     = core.Component
	StreamingInfo = core.StreamingInfo
	AddResult     = core.AddResult
)

// Geometry types.
type (
	Vec3              = geom.Vec3
	Box               = geom.Box
	BoxSphere         = geom.BoxSphere
	PackedRelativeBox = geom.PackedRelativeBox
)

// Snapshot types.
type (
	View            = instance.View
	AssetView       = instance.AssetView
	AssetStats      = instance.AssetStats
	CompiledElement = instance.CompiledElement
)

const (
	AddSuccess               = core.AddSuccess
	AddFail                  = core.AddFail
	AddFailDensityConstraint = core.AddFailDensityConstraint

	KindTexture = core.KindTexture
	KindMesh    = core.KindMesh

	NoBounds = core.NoBounds
)

// PackedIdentity is the packed encoding of the component bounds themselves.
const PackedIdentity = geom.PackedIdentity

// NewBoxSphere derives origin, extent and radius from an axis-aligned box.
func NewBoxSphere(b Box) BoxSphere { return geom.NewBoxSphere(b) }

// PackRelativeBox encodes box relative to the component box ref.
func PackRelativeBox(box, ref Box) PackedRelativeBox { return geom.PackRelativeBox(box, ref) }
