package core

import "github.com/hupe1980/renderstream/internal/geom"

// AssetKind distinguishes the streamable asset families.
type AssetKind uint8

const (
	// KindTexture is a mip-streamed texture.
	KindTexture AssetKind = iota
	// KindMesh is a LOD-streamed mesh.
	KindMesh
)

func (k AssetKind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindMesh:
		return "mesh"
	default:
		return "unknown"
	}
}

// RenderAsset is a streamable resource with progressively loadable detail.
type RenderAsset interface {
	AssetID() AssetID
	Kind() AssetKind
	LODGroup() int
}

// LODParent is a grouping object (e.g. a hierarchical LOD aggregate) that
// takes over rendering of its children once the view is far enough away.
// The transition distance may change at runtime.
type LODParent interface {
	MinDrawDistance() float32
}

// Component is the scene component contract consumed by the tracker.
// Implementations live in the component system; the tracker only reads.
type Component interface {
	ComponentID() ComponentID
	IsRegistered() bool
	// Bounds returns the current world bounds. Only meaningful once registered.
	Bounds() geom.BoxSphere
	// MaxScale returns the largest axis of the component's world scale.
	MaxScale() float32
	LastRenderTime() float32
	// MinDrawDistance is the distance under which the component is hidden.
	MinDrawDistance() float32
	// MaxDrawDistance is the cull distance; zero means unlimited.
	MaxDrawDistance() float32
	// LODParent returns nil when the component is not part of a LOD group.
	LODParent() LODParent
	StreamingRenderAssets() []StreamingInfo
}

// StreamingInfo is one usage of a render asset by a component.
type StreamingInfo struct {
	Asset RenderAsset
	// TexelFactor is texels per world unit; negative forces full resolution.
	TexelFactor float32
	// Bounds is the world bound of the usage. Zero when unknown.
	Bounds geom.BoxSphere
	// PackedRelativeBox locates the usage relative to the component bounds.
	PackedRelativeBox geom.PackedRelativeBox
	// AffectedByScale multiplies the texel factor by the component scale.
	AffectedByScale bool
	ForceLoad       bool
}
