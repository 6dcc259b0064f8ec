package dump

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/crc32"
	"github.com/sugawarayuuta/sonnet"
)

// Version is the current report format version.
const Version uint16 = 1

// BlockSize is the uncompressed size of a full block.
const BlockSize = 64 * 1024

const headerSize = 16

var magic = [4]byte{'R', 'S', 'D', 'R'}

var (
	// ErrCorrupt is returned when a report fails to parse or checksum.
	ErrCorrupt = errors.New("corrupt report")

	// ErrUnknownCompression is returned for an unsupported compression id.
	ErrUnknownCompression = errors.New("unknown compression")
)

// VersionError is returned when a report was written by another format version.
type VersionError struct {
	Got  uint16
	Want uint16
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("report version %d, want %d", e.Got, e.Want)
}

// Report is the diagnostic content of one snapshot.
type Report struct {
	MaxTexelFactor float32       `json:"max_texel_factor"`
	Lanes          int           `json:"lanes"`
	Assets         []AssetReport `json:"assets"`
}

// AssetReport describes one asset of the snapshot.
type AssetReport struct {
	Asset          uint64          `json:"asset"`
	Kind           string          `json:"kind"`
	Count          int             `json:"count"`
	Forced         int             `json:"forced"`
	MaxTexelFactor float32         `json:"max_texel_factor"`
	Elements       []ElementReport `json:"elements,omitempty"`
}

// ElementReport is one compiled element.
type ElementReport struct {
	Bounds      int32   `json:"bounds"`
	TexelFactor float32 `json:"texel_factor"`
	ForceLoad   bool    `json:"force_load,omitempty"`
}

// Write encodes r as JSON and writes it block-compressed with c.
func Write(w io.Writer, r *Report, c Compression) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}
	data, err := sonnet.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	blocks := (len(data) + BlockSize - 1) / BlockSize

	var hdr [headerSize]byte
	copy(hdr[0:4], magic[:])
	binary.LittleEndian.PutUint16(hdr[4:], Version)
	hdr[6] = byte(c)
	binary.LittleEndian.PutUint32(hdr[8:], uint32(blocks))
	binary.LittleEndian.PutUint32(hdr[12:], crc32.ChecksumIEEE(data))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	for off := 0; off < len(data); off += BlockSize {
		block, err := compressBlock(data[off:min(off+BlockSize, len(data))], c)
		if err != nil {
			return fmt.Errorf("compress block: %w", err)
		}
		if _, err := w.Write(block); err != nil {
			return err
		}
	}
	return nil
}

// Read parses a report written by Write.
func Read(rd io.Reader) (*Report, error) {
	buf, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	if len(buf) < headerSize || [4]byte(buf[0:4]) != magic {
		return nil, fmt.Errorf("%w: bad header", ErrCorrupt)
	}
	if v := binary.LittleEndian.Uint16(buf[4:]); v != Version {
		return nil, &VersionError{Got: v, Want: Version}
	}
	c := Compression(buf[6])
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}
	blocks := int(binary.LittleEndian.Uint32(buf[8:]))
	sum := binary.LittleEndian.Uint32(buf[12:])

	data := make([]byte, 0, len(buf))
	rest := buf[headerSize:]
	for i := 0; i < blocks; i++ {
		block, n, err := decompressBlock(rest, c)
		if err != nil {
			return nil, err
		}
		data = append(data, block...)
		rest = rest[n:]
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(rest))
	}
	if crc32.ChecksumIEEE(data) != sum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	var r Report
	if err := sonnet.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return &r, nil
}
