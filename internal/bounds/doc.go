// Package bounds implements the bounds table: spatial bounds stored as
// structure-of-arrays lanes of four, sized for 4-wide distance evaluation.
//
// # Memory Layout
//
//	┌──────────────────────── Lane 0 ────────────────────────┐ ┌─ Lane 1 ─┐
//	│ OriginX   [s0 s1 s2 s3]                                 │ │ ...      │
//	│ OriginY   [s0 s1 s2 s3]                                 │ │          │
//	│ ...                                                     │ │          │
//	│ LastRenderTime [s0 s1 s2 s3]                            │ │          │
//	└─────────────────────────────────────────────────────────┘ └──────────┘
//
// Slot i lives in lane i/4 at position i%4. Owners are kept beside the lanes
// so the numeric data can be copied for a concurrent reader on its own.
//
// # Lifecycle
//
//	Free ──Add──▶ Unpacked ──Remove──▶ Free
//	Free ──AddPacked──▶ Packed ──Unpack──▶ Unpacked
//	Unpacked ──ConditionalUpdate──▶ Unpacked (may be skipped)
//
// Free slots are tracked in a roaring bitmap; the lowest free slot is reused
// first, which keeps the occupied range dense for Trim.
//
// # Concurrency
//
// Table is not safe for concurrent mutation. Readers work on CopyLanes.
package bounds
