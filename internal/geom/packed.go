package geom

import "math"

// PackedRelativeBox is a compact encoding of a box relative to a reference
// box (normally the owning component's world bounds). Each of the six corner
// coordinates is quantized to 5 bits; bit 31 marks the value as present.
//
// The zero value means "no packed box".
type PackedRelativeBox uint32

const (
	packedBits  = 5
	packedSteps = 1<<packedBits - 1
	packedMask  = packedSteps
	packedValid = PackedRelativeBox(1 << 31)
)

// PackedIdentity is the packed encoding of the reference box itself.
const PackedIdentity = packedValid |
	PackedRelativeBox(packedSteps)<<(3*packedBits) |
	PackedRelativeBox(packedSteps)<<(4*packedBits) |
	PackedRelativeBox(packedSteps)<<(5*packedBits)

// Valid reports whether p carries a packed box.
func (p PackedRelativeBox) Valid() bool { return p&packedValid != 0 }

func (p PackedRelativeBox) field(i int) float32 {
	return float32((uint32(p) >> (i * packedBits)) & packedMask)
}

// PackRelativeBox quantizes box relative to ref. Mins round down and maxes
// round up so the decoded box always contains the input.
func PackRelativeBox(box, ref Box) PackedRelativeBox {
	size := ref.Size()
	mins := [3]float32{
		steps(box.Min.X, ref.Min.X, size.X),
		steps(box.Min.Y, ref.Min.Y, size.Y),
		steps(box.Min.Z, ref.Min.Z, size.Z),
	}
	maxs := [3]float32{
		steps(box.Max.X, ref.Min.X, size.X),
		steps(box.Max.Y, ref.Min.Y, size.Y),
		steps(box.Max.Z, ref.Min.Z, size.Z),
	}

	p := packedValid
	for i := 0; i < 3; i++ {
		lo := quantize(float32(math.Floor(float64(mins[i]))))
		hi := quantize(float32(math.Ceil(float64(maxs[i]))))
		p |= PackedRelativeBox(lo) << (i * packedBits)
		p |= PackedRelativeBox(hi) << ((i + 3) * packedBits)
	}
	return p
}

// Unpack resolves p against ref. An invalid p resolves to ref.
func (p PackedRelativeBox) Unpack(ref Box) Box {
	if !p.Valid() {
		return ref
	}
	size := ref.Size()
	return Box{
		Min: Vec3{
			ref.Min.X + size.X*p.field(0)/packedSteps,
			ref.Min.Y + size.Y*p.field(1)/packedSteps,
			ref.Min.Z + size.Z*p.field(2)/packedSteps,
		},
		Max: Vec3{
			ref.Min.X + size.X*p.field(3)/packedSteps,
			ref.Min.Y + size.Y*p.field(4)/packedSteps,
			ref.Min.Z + size.Z*p.field(5)/packedSteps,
		},
	}
}

// steps maps v into [0, packedSteps] units of the reference range.
func steps(v, origin, size float32) float32 {
	if size <= 0 {
		return 0
	}
	return (v - origin) * packedSteps / size
}

func quantize(v float32) uint32 {
	if v < 0 {
		return 0
	}
	if v > packedSteps {
		return packedSteps
	}
	return uint32(v)
}
