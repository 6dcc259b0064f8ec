package renderstream

import (
	"io"
	"sort"

	"github.com/hupe1980/renderstream/internal/dump"
)

// Compression selects the block compression of a diagnostic report.
type Compression = dump.Compression

const (
	CompressionNone = dump.CompressionNone
	CompressionLZ4  = dump.CompressionLZ4
	CompressionZSTD = dump.CompressionZSTD
)

// Report types.
type (
	Report        = dump.Report
	AssetReport   = dump.AssetReport
	ElementReport = dump.ElementReport
)

// NewReport summarizes a snapshot. Assets are ordered by id. When
// withElements is false only per-asset statistics are kept.
func NewReport(v *View, withElements bool) *Report {
	r := &Report{
		MaxTexelFactor: v.MaxTexelFactor(),
		Lanes:          len(v.Lanes()),
		Assets:         make([]AssetReport, 0, v.AssetCount()),
	}
	v.Range(func(id AssetID, a AssetView) bool {
		ar := AssetReport{
			Asset:          uint64(id),
			Kind:           a.Kind.String(),
			Count:          a.Stats.Count,
			Forced:         a.Stats.Forced,
			MaxTexelFactor: a.Stats.MaxTexelFactor,
		}
		if withElements {
			ar.Elements = make([]ElementReport, len(a.Elements))
			for i, e := range a.Elements {
				ar.Elements[i] = ElementReport{Bounds: int32(e.Bounds), TexelFactor: e.TexelFactor, ForceLoad: e.ForceLoad}
			}
		}
		r.Assets = append(r.Assets, ar)
		return true
	})
	sort.Slice(r.Assets, func(i, j int) bool { return r.Assets[i].Asset < r.Assets[j].Asset })
	return r
}

// WriteReport writes a block-compressed JSON report of v to w.
func WriteReport(w io.Writer, v *View, c Compression) error {
	return translateError(dump.Write(w, NewReport(v, true), c))
}

// ReadReport reads a report written by WriteReport.
func ReadReport(r io.Reader) (*Report, error) {
	rep, err := dump.Read(r)
	if err != nil {
		return nil, translateError(err)
	}
	return rep, nil
}
