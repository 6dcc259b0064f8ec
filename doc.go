// Package renderstream tracks which scene components reference which
// progressively loadable render assets (textures and meshes), where those
// references are in space, and how much detail each one needs.
//
// The tracker feeds a separate streaming-priority pass. That pass runs
// concurrently and only reads immutable snapshots; every structural change
// happens on one owning goroutine.
//
// # Quick Start
//
//	m := renderstream.NewStaticManager()
//	if r := m.AddComponent(c); r != renderstream.AddSuccess {
//	    log.Printf("component %d not tracked: %s", c.ComponentID(), r)
//	}
//	view := m.Snapshot() // hand over to the priority pass
//
// # Static and Dynamic Instances
//
// StaticManager removes components immediately. DynamicManager serves
// moving components: removal only detaches references, and slots are
// reclaimed by FlushPendingRemovals between reader passes.
//
//	m := renderstream.NewDynamicManager()
//	m.AddComponentIgnoreBounds(c)  // use the component's own bounds
//	m.RefreshBounds()              // once per frame
//	m.RemoveComponent(c)           // detach, safe while a reader runs
//	m.FlushPendingRemovals()       // reclaim, between reader passes
//
// # Two-Phase Add
//
// Prepare is a pure function of the component and may run on any
// goroutine. Commit applies the payload on the owning goroutine.
// AddComponents runs Prepare in parallel and commits in input order.
//
// # Diagnostics
//
// WriteReport serializes a snapshot as a block-compressed JSON report;
// ReadReport reads it back.
package renderstream
