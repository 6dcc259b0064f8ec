package dump

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(assets, elements int) *Report {
	r := &Report{MaxTexelFactor: 8, Lanes: 3}
	for a := 0; a < assets; a++ {
		ar := AssetReport{Asset: uint64(a + 1), Kind: "texture", Count: elements, MaxTexelFactor: 8}
		for e := 0; e < elements; e++ {
			ar.Elements = append(ar.Elements, ElementReport{Bounds: int32(e), TexelFactor: float32(e % 9)})
		}
		r.Assets = append(r.Assets, ar)
	}
	return r
}

func TestWriteRead(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			// Large enough to span several blocks.
			want := sampleReport(40, 200)

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, want, c))

			got, err := Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestWriteRead_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &Report{}, CompressionZSTD))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, got.Assets)
}

func TestCompressionShrinks(t *testing.T) {
	r := sampleReport(40, 200)

	var raw, packed bytes.Buffer
	require.NoError(t, Write(&raw, r, CompressionNone))
	require.NoError(t, Write(&packed, r, CompressionZSTD))
	assert.Less(t, packed.Len(), raw.Len())
}

func TestWrite_UnknownCompression(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, &Report{}, Compression(9))
	assert.ErrorIs(t, err, ErrUnknownCompression)
	assert.Zero(t, buf.Len())
}

func TestRead_Errors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(2, 4), CompressionLZ4))
	good := buf.Bytes()

	t.Run("bad magic", func(t *testing.T) {
		b := bytes.Clone(good)
		b[0] = 'X'
		_, err := Read(bytes.NewReader(b))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("short", func(t *testing.T) {
		_, err := Read(bytes.NewReader(good[:5]))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("version", func(t *testing.T) {
		b := bytes.Clone(good)
		binary.LittleEndian.PutUint16(b[4:], Version+1)
		_, err := Read(bytes.NewReader(b))

		var ve *VersionError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, Version+1, ve.Got)
		assert.Equal(t, Version, ve.Want)
	})

	t.Run("compression", func(t *testing.T) {
		b := bytes.Clone(good)
		b[6] = 7
		_, err := Read(bytes.NewReader(b))
		assert.ErrorIs(t, err, ErrUnknownCompression)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Read(bytes.NewReader(good[:len(good)-3]))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("checksum", func(t *testing.T) {
		b := bytes.Clone(good)
		b[12] ^= 0xFF
		_, err := Read(bytes.NewReader(b))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("trailing", func(t *testing.T) {
		b := append(bytes.Clone(good), 0)
		_, err := Read(bytes.NewReader(b))
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestDecompressBlock_OversizedHeader(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			b := make([]byte, blockHeaderSize+4)
			binary.LittleEndian.PutUint32(b[0:], 1<<31)
			if c != CompressionNone {
				binary.LittleEndian.PutUint32(b[4:], 4)
			}
			_, _, err := decompressBlock(b, c)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}
