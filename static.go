package renderstream

import "time"

// StaticManager tracks components whose removal can be reclaimed at once:
// no reader walks a snapshot while it mutates.
type StaticManager struct {
	manager
}

// NewStaticManager creates an empty StaticManager.
func NewStaticManager(optFns ...Option) *StaticManager {
	return &StaticManager{manager: newManager("static", optFns)}
}

// AddComponents adds cs with parallel prepares and in-order commits.
// onFailure, if set, is called for every component that was not added.
// It returns the number of components added.
func (m *StaticManager) AddComponents(cs []Component, onFailure func(Component, AddResult)) int {
	return m.addBatch(cs, false, onFailure)
}

// RemoveComponent removes every element and bound of the component and
// returns the assets left without any reference.
func (m *StaticManager) RemoveComponent(id ComponentID) []AssetID {
	start := time.Now()
	removed := m.state.RemoveComponent(id)
	m.metrics.RecordRemove(len(removed), time.Since(start))
	m.logger.LogRemove(id, false, removed)
	return removed
}
