// Package animator implements the structure animator of spec.md §4.6: it
// maintains per-entity phased interpolation of backbone and sidechain
// positions, with preemption/handoff when a new animation target arrives for
// an entity that is already animating.
package animator

import "github.com/Carmen-Shannon/oxy-go/engine/scene/entity"

// StructureState owns the scene's current, renderer-visible backbone and
// sidechain positions. Per spec.md §9's "Cyclic references" design note, the
// animator owns this state and passes it to runner methods as a mutable
// argument rather than handing the runner a pointer back to shared state.
type StructureState struct {
	backbone   map[uint32][]entity.ResidueVisualState
	sidechain  map[uint32][][3]float32
	sidechainOK map[uint32]bool // whether sidechains are currently visible for this entity
}

// NewStructureState creates an empty StructureState.
func NewStructureState() *StructureState {
	return &StructureState{
		backbone:    make(map[uint32][]entity.ResidueVisualState),
		sidechain:   make(map[uint32][][3]float32),
		sidechainOK: make(map[uint32]bool),
	}
}

// Backbone returns the current backbone positions for an entity, or nil if
// the entity has never been animated.
func (s *StructureState) Backbone(entityID uint32) []entity.ResidueVisualState {
	return s.backbone[entityID]
}

// Sidechain returns the current sidechain positions for an entity.
func (s *StructureState) Sidechain(entityID uint32) [][3]float32 {
	return s.sidechain[entityID]
}

// SidechainVisible reports whether sidechains should currently render for
// this entity (false during phases with IncludeSidechains == false).
func (s *StructureState) SidechainVisible(entityID uint32) bool {
	return s.sidechainOK[entityID]
}

func (s *StructureState) setBackbone(entityID uint32, v []entity.ResidueVisualState) {
	s.backbone[entityID] = v
}

func (s *StructureState) setSidechain(entityID uint32, v [][3]float32, visible bool) {
	s.sidechain[entityID] = v
	s.sidechainOK[entityID] = visible
}

// Remove drops all state for an entity, e.g. when it is removed from the scene.
func (s *StructureState) Remove(entityID uint32) {
	delete(s.backbone, entityID)
	delete(s.sidechain, entityID)
	delete(s.sidechainOK, entityID)
}
