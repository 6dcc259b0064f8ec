package testutil

import (
	"github.com/hupe1980/renderstream/internal/core"
	"github.com/hupe1980/renderstream/internal/geom"
)

// Asset is a fake render asset.
type Asset struct {
	ID    core.AssetID
	K     core.AssetKind
	Group int
}

// NewTexture returns a texture asset.
func NewTexture(id core.AssetID) *Asset { return &Asset{ID: id, K: core.KindTexture} }

// NewMesh returns a mesh asset.
func NewMesh(id core.AssetID) *Asset { return &Asset{ID: id, K: core.KindMesh} }

func (a *Asset) AssetID() core.AssetID { return a.ID }
func (a *Asset) Kind() core.AssetKind  { return a.K }
func (a *Asset) LODGroup() int         { return a.Group }

// LODParent is a fake LOD aggregate.
type LODParent struct {
	Distance float32
}

func (p *LODParent) MinDrawDistance() float32 { return p.Distance }

// Component is a fake scene component. Fields may be changed between calls
// to simulate movement and registration.
type Component struct {
	ID         core.ComponentID
	Registered bool
	World      geom.BoxSphere
	Scale      float32
	RenderTime float32
	MinDraw    float32
	MaxDraw    float32
	Parent     *LODParent
	Infos      []core.StreamingInfo
}

// NewComponent returns a registered component with unit bounds at the origin.
func NewComponent(id core.ComponentID) *Component {
	return &Component{
		ID:         id,
		Registered: true,
		World:      BoxAt(0, 0, 0, 1),
		Scale:      1,
	}
}

// WithBounds sets the world bounds.
func (c *Component) WithBounds(b geom.BoxSphere) *Component {
	c.World = b
	return c
}

// Unregistered marks the component as not registered.
func (c *Component) Unregistered() *Component {
	c.Registered = false
	return c
}

// WithInfo appends a usage sharing the component bounds.
func (c *Component) WithInfo(a core.RenderAsset, texelFactor float32) *Component {
	c.Infos = append(c.Infos, core.StreamingInfo{Asset: a, TexelFactor: texelFactor, Bounds: c.World})
	return c
}

// WithStreamingInfo appends an arbitrary usage.
func (c *Component) WithStreamingInfo(info core.StreamingInfo) *Component {
	c.Infos = append(c.Infos, info)
	return c
}

func (c *Component) ComponentID() core.ComponentID { return c.ID }
func (c *Component) IsRegistered() bool            { return c.Registered }
func (c *Component) Bounds() geom.BoxSphere        { return c.World }
func (c *Component) MaxScale() float32             { return c.Scale }
func (c *Component) LastRenderTime() float32       { return c.RenderTime }
func (c *Component) MinDrawDistance() float32      { return c.MinDraw }
func (c *Component) MaxDrawDistance() float32      { return c.MaxDraw }

func (c *Component) LODParent() core.LODParent {
	if c.Parent == nil {
		return nil
	}
	return c.Parent
}

func (c *Component) StreamingRenderAssets() []core.StreamingInfo { return c.Infos }

// BoxAt returns cube bounds centered at (x, y, z) with half size e.
func BoxAt(x, y, z, e float32) geom.BoxSphere {
	return geom.NewBoxSphere(geom.Box{
		Min: geom.Vec3{X: x - e, Y: y - e, Z: z - e},
		Max: geom.Vec3{X: x + e, Y: y + e, Z: z + e},
	})
}
