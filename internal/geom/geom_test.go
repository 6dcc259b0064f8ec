package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBoxSphere(t *testing.T) {
	b := NewBoxSphere(Box{Min: Vec3{-1, -2, -2}, Max: Vec3{1, 2, 2}})

	assert.Equal(t, Vec3{0, 0, 0}, b.Origin)
	assert.Equal(t, Vec3{1, 2, 2}, b.Extent)
	assert.InDelta(t, 3.0, b.Radius, 1e-6)
	assert.True(t, b.IsCoherent())
	assert.Equal(t, Box{Min: Vec3{-1, -2, -2}, Max: Vec3{1, 2, 2}}, b.Box())
}

func TestBoxSphere_IsCoherent(t *testing.T) {
	tests := []struct {
		name string
		b    BoxSphere
		want bool
	}{
		{"cube", BoxSphere{Extent: Vec3{1, 1, 1}, Radius: 1.7320508}, true},
		{"radius too large", BoxSphere{Extent: Vec3{1, 1, 1}, Radius: 10}, false},
		{"radius too small", BoxSphere{Extent: Vec3{4, 4, 4}, Radius: 0.5}, false},
		{"point", BoxSphere{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.b.IsCoherent())
		})
	}
}

func TestPackedRelativeBox(t *testing.T) {
	ref := Box{Min: Vec3{0, 0, 0}, Max: Vec3{31, 31, 31}}

	t.Run("identity", func(t *testing.T) {
		assert.True(t, PackedIdentity.Valid())
		assert.Equal(t, ref, PackedIdentity.Unpack(ref))
	})

	t.Run("zero is invalid", func(t *testing.T) {
		var p PackedRelativeBox
		assert.False(t, p.Valid())
		assert.Equal(t, ref, p.Unpack(ref))
	})

	t.Run("round trip on grid", func(t *testing.T) {
		box := Box{Min: Vec3{1, 2, 3}, Max: Vec3{10, 20, 30}}
		p := PackRelativeBox(box, ref)
		assert.True(t, p.Valid())
		assert.Equal(t, box, p.Unpack(ref))
	})

	t.Run("decoded box contains input", func(t *testing.T) {
		ref := Box{Min: Vec3{-100, -100, 0}, Max: Vec3{100, 100, 50}}
		box := Box{Min: Vec3{-33.3, 12.1, 7.7}, Max: Vec3{40.2, 55.5, 8.1}}
		got := PackRelativeBox(box, ref).Unpack(ref)
		assert.LessOrEqual(t, got.Min.X, box.Min.X)
		assert.LessOrEqual(t, got.Min.Y, box.Min.Y)
		assert.LessOrEqual(t, got.Min.Z, box.Min.Z)
		assert.GreaterOrEqual(t, got.Max.X, box.Max.X)
		assert.GreaterOrEqual(t, got.Max.Y, box.Max.Y)
		assert.GreaterOrEqual(t, got.Max.Z, box.Max.Z)
	})

	t.Run("clamped to reference", func(t *testing.T) {
		box := Box{Min: Vec3{-50, -50, -50}, Max: Vec3{100, 100, 100}}
		assert.Equal(t, PackedIdentity, PackRelativeBox(box, ref))
	})
}
