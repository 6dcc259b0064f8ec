package renderstream

import "time"

// DynamicManager tracks moving components while a reader may be walking
// the previous snapshot. Removal only detaches references; slots are
// reclaimed by FlushPendingRemovals.
type DynamicManager struct {
	manager
}

// NewDynamicManager creates an empty DynamicManager.
func NewDynamicManager(optFns ...Option) *DynamicManager {
	return &DynamicManager{manager: newManager("dynamic", optFns)}
}

// AddComponentIgnoreBounds adds c using its own bounds for every entry.
// Unregistered components fail.
func (m *DynamicManager) AddComponentIgnoreBounds(c Component) AddResult {
	return m.add(c, true)
}

// AddComponents adds cs with parallel prepares. When ignoreBounds is set
// every entry uses its component's bounds.
func (m *DynamicManager) AddComponents(cs []Component, ignoreBounds bool, onFailure func(Component, AddResult)) int {
	return m.addBatch(cs, ignoreBounds, onFailure)
}

// RemoveComponent detaches the component. It is safe while a reader walks
// a snapshot. It returns false when the component was not tracked.
func (m *DynamicManager) RemoveComponent(id ComponentID) bool {
	start := time.Now()
	ok := m.state.DetachComponentReferences(id)
	m.metrics.RecordRemove(0, time.Since(start))
	m.logger.LogRemove(id, true, nil)
	return ok
}

// HasPendingRemovals reports whether detached components await a flush.
func (m *DynamicManager) HasPendingRemovals() bool {
	return m.state.HasPendingRemovals()
}

// FlushPendingRemovals reclaims every detached component and returns the
// assets left without any reference. Call only between reader passes.
func (m *DynamicManager) FlushPendingRemovals() []AssetID {
	return m.state.FlushPendingRemovals()
}

// RefreshBounds runs the per-frame update of every owned slot: a
// conditional bounds update followed by a cull range refresh. Slots whose
// owner is unregistered or reports incoherent bounds are left untouched.
func (m *DynamicManager) RefreshBounds() (updated, skipped int) {
	m.state.Bounds().Range(func(i BoundsIndex, owner ComponentID) bool {
		if owner == 0 {
			return true
		}
		if !m.state.ConditionalUpdateBounds(i) {
			skipped++
			return true
		}
		m.state.UpdateLastRenderTimeAndMaxDrawDistance(i)
		updated++
		return true
	})
	m.logger.LogRefresh(updated, skipped)
	return updated, skipped
}
