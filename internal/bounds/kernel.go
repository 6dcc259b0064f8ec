package bounds

import (
	"os"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/hupe1980/renderstream/internal/geom"
)

// Kernel identifies the lane distance implementation.
type Kernel uint8

const (
	// Generic loops over the lane slots.
	Generic Kernel = iota
	// Wide evaluates all four slots in straight-line code so the compiler can
	// keep the lane in vector registers.
	Wide
)

// String returns the string representation of a Kernel.
func (k Kernel) String() string {
	switch k {
	case Generic:
		return "generic"
	case Wide:
		return "wide"
	default:
		return "unknown"
	}
}

// activeKernel is selected once at package init.
// RENDERSTREAM_LANE_KERNEL=generic forces the portable loop.
var activeKernel = selectKernel()

func selectKernel() Kernel {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("RENDERSTREAM_LANE_KERNEL")), "generic") {
		return Generic
	}
	if cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD {
		return Wide
	}
	return Generic
}

// ActiveKernel returns the kernel used by DistanceSq.
func ActiveKernel() Kernel { return activeKernel }

// DistanceSq returns the squared distance from view to each box of the lane.
// A view point inside a box yields 0.
func (l *Lane) DistanceSq(view geom.Vec3) [LaneWidth]float32 {
	if activeKernel == Wide {
		return l.distanceSqWide(view)
	}
	return l.distanceSqGeneric(view)
}

func (l *Lane) distanceSqGeneric(view geom.Vec3) [LaneWidth]float32 {
	var out [LaneWidth]float32
	for k := 0; k < LaneWidth; k++ {
		dx := axisGap(view.X, l.OriginX[k], l.ExtentX[k])
		dy := axisGap(view.Y, l.OriginY[k], l.ExtentY[k])
		dz := axisGap(view.Z, l.OriginZ[k], l.ExtentZ[k])
		out[k] = dx*dx + dy*dy + dz*dz
	}
	return out
}

func (l *Lane) distanceSqWide(view geom.Vec3) [LaneWidth]float32 {
	x0 := axisGap(view.X, l.OriginX[0], l.ExtentX[0])
	x1 := axisGap(view.X, l.OriginX[1], l.ExtentX[1])
	x2 := axisGap(view.X, l.OriginX[2], l.ExtentX[2])
	x3 := axisGap(view.X, l.OriginX[3], l.ExtentX[3])

	y0 := axisGap(view.Y, l.OriginY[0], l.ExtentY[0])
	y1 := axisGap(view.Y, l.OriginY[1], l.ExtentY[1])
	y2 := axisGap(view.Y, l.OriginY[2], l.ExtentY[2])
	y3 := axisGap(view.Y, l.OriginY[3], l.ExtentY[3])

	z0 := axisGap(view.Z, l.OriginZ[0], l.ExtentZ[0])
	z1 := axisGap(view.Z, l.OriginZ[1], l.ExtentZ[1])
	z2 := axisGap(view.Z, l.OriginZ[2], l.ExtentZ[2])
	z3 := axisGap(view.Z, l.OriginZ[3], l.ExtentZ[3])

	return [LaneWidth]float32{
		x0*x0 + y0*y0 + z0*z0,
		x1*x1 + y1*y1 + z1*z1,
		x2*x2 + y2*y2 + z2*z2,
		x3*x3 + y3*y3 + z3*z3,
	}
}

func axisGap(v, origin, extent float32) float32 {
	d := v - origin
	if d < 0 {
		d = -d
	}
	d -= extent
	if d < 0 {
		return 0
	}
	return d
}

// DistancesSq evaluates DistanceSq for every lane into out, which must hold
// at least len(lanes)*LaneWidth values. Free slots yield the distance to a
// degenerate box at the origin; callers skip them by their own bookkeeping.
func DistancesSq(lanes []Lane, view geom.Vec3, out []float32) {
	for i := range lanes {
		d := lanes[i].DistanceSq(view)
		copy(out[i*LaneWidth:], d[:])
	}
}
