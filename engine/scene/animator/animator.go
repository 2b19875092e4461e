package animator

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-go/engine/scene/entity"
)

// Animator maintains per-entity animation state and advances it each frame.
// Mirrors the teacher engine's interface-plus-backend shape even though this
// renderer has only one backend kind — keeping the indirection makes future
// alternate interpolation strategies (e.g. a physics-driven backend) a
// drop-in.
type Animator interface {
	// AnimateEntity begins (or preempts) a transition for an entity.
	//
	// Parameters:
	//   - entityID: the entity to animate
	//   - targetBackbone: the target backbone state per residue, in the
	//     entity's local residue order
	//   - transition: the transition describing phases/easing/size-change
	//     permission
	//   - targetSidechain: the target sidechain positions, parallel to the
	//     entity's sidechain atom list
	//   - sidechainResidue: per-sidechain-atom owning residue local index,
	//     used to resolve each atom's collapse point
	AnimateEntity(entityID uint32, targetBackbone []entity.ResidueVisualState, transition entity.Transition, targetSidechain [][3]float32, sidechainResidue []uint32)

	// Update advances every active runner to the given time (seconds, any
	// monotonic clock) and writes interpolated positions into the shared
	// StructureState.
	Update(now float64)

	// Skip snaps every active entity's range to its target and clears all
	// runners.
	Skip()

	// Cancel drops every runner without changing scene state.
	Cancel()

	// State returns the shared StructureState the animator writes into.
	State() *StructureState

	// Active reports whether the given entity currently has a running
	// transition.
	Active(entityID uint32) bool

	// Remove drops any runner and state for an entity, e.g. on removal from
	// the scene.
	Remove(entityID uint32)
}

type structureAnimator struct {
	mu      sync.Mutex
	state   *StructureState
	runners map[uint32]*runner
}

var _ Animator = &structureAnimator{}

// New creates an empty structure Animator.
func New() Animator {
	return &structureAnimator{
		state:   NewStructureState(),
		runners: make(map[uint32]*runner),
	}
}

func (a *structureAnimator) State() *StructureState {
	return a.state
}

func (a *structureAnimator) Active(entityID uint32) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.runners[entityID]
	return ok
}

func (a *structureAnimator) Remove(entityID uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.runners, entityID)
	a.state.Remove(entityID)
}

// AnimateEntity implements preemption/handoff exactly as spec.md §4.6
// describes: if an entity is already animating, its current interpolated
// state (backbone and sidechain) at "now" becomes the new runner's start,
// instead of restarting from the pre-animation scene state.
func (a *structureAnimator) AnimateEntity(
	entityID uint32,
	targetBackbone []entity.ResidueVisualState,
	transition entity.Transition,
	targetSidechain [][3]float32,
	sidechainResidue []uint32,
) {
	a.animateEntityAt(entityID, targetBackbone, transition, targetSidechain, sidechainResidue, a.clockNow())
}

// animateEntityAt is the same operation parameterized by an explicit clock
// reading, allowing deterministic tests (spec.md §8 scenario 3: "animator
// handoff").
func (a *structureAnimator) animateEntityAt(
	entityID uint32,
	targetBackbone []entity.ResidueVisualState,
	transition entity.Transition,
	targetSidechain [][3]float32,
	sidechainResidue []uint32,
	now float64,
) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var startBackbone []entity.ResidueVisualState
	var startSidechain [][3]float32

	if prev, ok := a.runners[entityID]; ok {
		// Sync current state to the previous runner's interpolation at now,
		// then discard it — this is the handoff.
		t := prev.progress(now)
		startBackbone = prev.interpolateBackbone(t)
		prevSidechain := prev.interpolateSidechain(t)
		a.state.setBackbone(entityID, startBackbone)
		a.state.setSidechain(entityID, prevSidechain, prev.transition.ActivePhase(t).IncludeSidechains)

		if len(prevSidechain) == len(targetSidechain) {
			startSidechain = prevSidechain
		} else if transition.AllowsSizeChange {
			startSidechain = collapsedStart(targetSidechain, sidechainResidue, targetBackbone)
		} else {
			// Reject size change (snap): sidechains jump straight to target,
			// backbone still animates normally.
			startSidechain = append([][3]float32(nil), targetSidechain...)
		}
		delete(a.runners, entityID)
	} else {
		existingBackbone := a.state.Backbone(entityID)
		if len(existingBackbone) == len(targetBackbone) {
			startBackbone = existingBackbone
		} else {
			startBackbone = append([]entity.ResidueVisualState(nil), targetBackbone...)
		}
		existingSidechain := a.state.Sidechain(entityID)
		if len(existingSidechain) == len(targetSidechain) {
			startSidechain = existingSidechain
		} else if transition.AllowsSizeChange {
			startSidechain = collapsedStart(targetSidechain, sidechainResidue, targetBackbone)
		} else {
			startSidechain = append([][3]float32(nil), targetSidechain...)
		}
	}

	collapse := make([][3]float32, len(targetSidechain))
	for i, residueIdx := range sidechainResidue {
		if int(residueIdx) < len(targetBackbone) {
			collapse[i] = targetBackbone[residueIdx].CA
		}
	}

	r := &runner{
		entityID:         entityID,
		transition:       transition,
		startTime:        now,
		startBackbone:    startBackbone,
		targetBackbone:   append([]entity.ResidueVisualState(nil), targetBackbone...),
		startSidechain:   startSidechain,
		targetSidechain:  append([][3]float32(nil), targetSidechain...),
		collapsePoint:    collapse,
		sidechainResidue: append([]uint32(nil), sidechainResidue...),
	}

	if transition.TotalDuration() <= 0 {
		a.state.setBackbone(entityID, r.targetBackbone)
		a.state.setSidechain(entityID, r.targetSidechain, true)
		return
	}

	a.runners[entityID] = r
}

// collapsedStart builds sidechain start positions collapsed to each atom's
// residue Cα, used when a size change is permitted and the previous/target
// atom counts differ.
func collapsedStart(target [][3]float32, residueOf []uint32, backbone []entity.ResidueVisualState) [][3]float32 {
	out := make([][3]float32, len(target))
	for i, residueIdx := range residueOf {
		if int(residueIdx) < len(backbone) {
			out[i] = backbone[residueIdx].CA
		}
	}
	return out
}

func (a *structureAnimator) Update(now float64) {
	a.updateAt(now)
}

func (a *structureAnimator) updateAt(now float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id, r := range a.runners {
		if r.finished(now) {
			a.state.setBackbone(id, r.targetBackbone)
			a.state.setSidechain(id, r.targetSidechain, true)
			delete(a.runners, id)
			continue
		}
		t := r.progress(now)
		a.state.setBackbone(id, r.interpolateBackbone(t))
		phase := r.transition.ActivePhase(t)
		a.state.setSidechain(id, r.interpolateSidechain(t), phase.IncludeSidechains)
	}
}

func (a *structureAnimator) Skip() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, r := range a.runners {
		a.state.setBackbone(id, r.targetBackbone)
		a.state.setSidechain(id, r.targetSidechain, true)
	}
	a.runners = make(map[uint32]*runner)
}

func (a *structureAnimator) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runners = make(map[uint32]*runner)
}

// clockNow reads the monotonic wall clock via time.Since against a fixed
// epoch captured when the package is loaded. Tests bypass it by calling
// animateEntityAt and updateAt with explicit instants.
func (a *structureAnimator) clockNow() float64 {
	return nowSeconds()
}
