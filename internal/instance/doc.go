// Package instance implements the per-asset streaming instance state: the
// element arena linking components to assets and bounds, the component and
// asset indices over it, the compiled per-asset view and the maintenance
// passes (detach/flush, move, trim, offset).
//
// # Indices
//
//	components: ComponentID ──▶ [ref, ref, ...]   (newest last)
//	assets:     AssetID     ──▶ AssetDesc{[ref, ref, ...], LODGroup}
//	elements:   arena.Arena[Element]               (generation-checked refs)
//
// Both indices point into the same element arena. Each element records its
// position in the asset list so it can be swapped out in O(1).
//
// # Concurrency
//
// State is owned by a single goroutine. A concurrent reader works on a View
// taken with Snapshot. Removal is split for that reader: Detach clears
// component references only, and FlushPendingRemovals reclaims the slots
// between reader passes.
package instance
