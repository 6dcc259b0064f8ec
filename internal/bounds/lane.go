package bounds

import (
	"math"
	"unsafe"

	"github.com/hupe1980/renderstream/internal/geom"
)

// LaneWidth is the number of slots per lane.
const LaneWidth = 4

// Lane holds four bounds in structure-of-arrays form.
type Lane struct {
	OriginX, OriginY, OriginZ                [LaneWidth]float32
	RangeOriginX, RangeOriginY, RangeOriginZ [LaneWidth]float32
	ExtentX, ExtentY, ExtentZ                [LaneWidth]float32
	Radius                                   [LaneWidth]float32
	PackedRelativeBox                        [LaneWidth]uint32
	MinDistanceSq                            [LaneWidth]float32
	MinRangeSq                               [LaneWidth]float32
	MaxRangeSq                               [LaneWidth]float32
	LastRenderTime                           [LaneWidth]float32
}

// LaneBytes is the memory footprint of one lane.
const LaneBytes = int64(unsafe.Sizeof(Lane{}))

// UnlimitedRangeSq is the squared range used when no cull distance applies.
const UnlimitedRangeSq float32 = math.MaxFloat32

// Slot is the unpacked view of a single bounds slot.
type Slot struct {
	Bounds            geom.BoxSphere
	RangeOrigin       geom.Vec3
	PackedRelativeBox geom.PackedRelativeBox
	MinDistanceSq     float32
	MinRangeSq        float32
	MaxRangeSq        float32
	LastRenderTime    float32
}

func (l *Lane) set(k int, s Slot) {
	l.OriginX[k], l.OriginY[k], l.OriginZ[k] = s.Bounds.Origin.X, s.Bounds.Origin.Y, s.Bounds.Origin.Z
	l.ExtentX[k], l.ExtentY[k], l.ExtentZ[k] = s.Bounds.Extent.X, s.Bounds.Extent.Y, s.Bounds.Extent.Z
	l.Radius[k] = s.Bounds.Radius
	l.RangeOriginX[k], l.RangeOriginY[k], l.RangeOriginZ[k] = s.RangeOrigin.X, s.RangeOrigin.Y, s.RangeOrigin.Z
	l.PackedRelativeBox[k] = uint32(s.PackedRelativeBox)
	l.MinDistanceSq[k] = s.MinDistanceSq
	l.MinRangeSq[k] = s.MinRangeSq
	l.MaxRangeSq[k] = s.MaxRangeSq
	l.LastRenderTime[k] = s.LastRenderTime
}

func (l *Lane) get(k int) Slot {
	return Slot{
		Bounds: geom.BoxSphere{
			Origin: geom.Vec3{X: l.OriginX[k], Y: l.OriginY[k], Z: l.OriginZ[k]},
			Extent: geom.Vec3{X: l.ExtentX[k], Y: l.ExtentY[k], Z: l.ExtentZ[k]},
			Radius: l.Radius[k],
		},
		RangeOrigin:       geom.Vec3{X: l.RangeOriginX[k], Y: l.RangeOriginY[k], Z: l.RangeOriginZ[k]},
		PackedRelativeBox: geom.PackedRelativeBox(l.PackedRelativeBox[k]),
		MinDistanceSq:     l.MinDistanceSq[k],
		MinRangeSq:        l.MinRangeSq[k],
		MaxRangeSq:        l.MaxRangeSq[k],
		LastRenderTime:    l.LastRenderTime[k],
	}
}

func (l *Lane) setBounds(k int, b geom.BoxSphere) {
	l.OriginX[k], l.OriginY[k], l.OriginZ[k] = b.Origin.X, b.Origin.Y, b.Origin.Z
	l.ExtentX[k], l.ExtentY[k], l.ExtentZ[k] = b.Extent.X, b.Extent.Y, b.Extent.Z
	l.Radius[k] = b.Radius
}

func (l *Lane) setRangeOrigin(k int, o geom.Vec3) {
	l.RangeOriginX[k], l.RangeOriginY[k], l.RangeOriginZ[k] = o.X, o.Y, o.Z
}

func (l *Lane) offset(k int, d geom.Vec3) {
	l.OriginX[k] += d.X
	l.OriginY[k] += d.Y
	l.OriginZ[k] += d.Z
	l.RangeOriginX[k] += d.X
	l.RangeOriginY[k] += d.Y
	l.RangeOriginZ[k] += d.Z
}

func (l *Lane) clear(k int) {
	l.set(k, Slot{})
}
