package core

// ComponentID identifies a scene component instance.
// Zero is never a valid component; it marks a detached reference.
type ComponentID uint64

// AssetID identifies a streamable render asset.
// Zero is never a valid asset.
type AssetID uint64

// BoundsIndex addresses one slot of the bounds table.
// An index remains valid until the slot is explicitly removed.
type BoundsIndex int32

// NoBounds is the bounds index of an element without spatial bounds.
const NoBounds BoundsIndex = -1
