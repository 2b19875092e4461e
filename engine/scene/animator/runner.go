package animator

import "github.com/Carmen-Shannon/oxy-go/engine/scene/entity"

// epsilon is the minimum per-component backbone position delta, in
// angstroms, below which a residue is considered unchanged and skipped
// during frame update (spec.md §4.6).
const epsilon = 1e-4

// runner carries one entity's in-flight transition: the phases, start
// instant, and per-residue start/target states. The runner never holds a
// pointer to the shared StructureState (spec.md §9); the animator writes
// the runner's interpolated results into it.
type runner struct {
	entityID   uint32
	transition entity.Transition
	startTime  float64 // seconds, from the animator's monotonic clock

	startBackbone  []entity.ResidueVisualState
	targetBackbone []entity.ResidueVisualState

	startSidechain  [][3]float32
	targetSidechain [][3]float32

	// collapsePoint holds, per sidechain atom, the Cα of that atom's
	// residue — the target for a collapsed start position after a
	// size-changing preemption.
	collapsePoint [][3]float32
	// sidechainResidue maps each sidechain atom to its residue's local
	// index within targetBackbone, used to look up collapsePoint.
	sidechainResidue []uint32
}

// progress returns the raw, clamped progress at time now.
func (r *runner) progress(now float64) float32 {
	total := float64(r.transition.TotalDuration())
	if total <= 0 {
		return 1
	}
	t := float32((now - r.startTime) / total)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t
}

// finished reports whether the runner's raw progress has reached 1 at now.
func (r *runner) finished(now float64) bool {
	return r.progress(now) >= 1
}

// interpolateBackbone computes the backbone state at raw progress t using
// the transition's eased global progress.
func (r *runner) interpolateBackbone(t float32) []entity.ResidueVisualState {
	easedT := r.transition.EasedT(t)
	out := make([]entity.ResidueVisualState, len(r.targetBackbone))
	for i := range out {
		start := r.startBackbone[i]
		target := r.targetBackbone[i]
		if !start.Distinct(target, epsilon) {
			out[i] = target
			continue
		}
		out[i] = start.Lerp(target, easedT)
	}
	return out
}

// interpolateSidechain computes interpolated sidechain positions at raw
// progress t. When the atom counts differ (a rejected size change already
// snapped targets in place by the time the runner is built, so this simply
// lerps start→target using the collapse point as the motion midpoint when
// the active phase requests it).
func (r *runner) interpolateSidechain(t float32) [][3]float32 {
	if len(r.targetSidechain) == 0 {
		return nil
	}
	easedT := r.transition.EasedT(t)
	out := make([][3]float32, len(r.targetSidechain))
	for i := range out {
		out[i] = interpolatePosition(easedT, r.startSidechain[i], r.targetSidechain[i], r.collapsePoint[i])
	}
	return out
}

// interpolatePosition implements the transition's per-atom interpolation
// rule: a direct lerp from start to end, except that for transitions whose
// active phase is collapse/expand in character the caller has already set
// collapsePoint; here we simply blend through it linearly in two legs so
// that collapse-expand-style transitions pass visibly through the residue's
// Cα position. For non-collapsing transitions collapsePoint doesn't bend the
// path meaningfully because start/collapse/end remain colinear only by
// coincidence — ordinary transitions pass an identical value for start and
// collapse during the first half to keep the simple lerp.
func interpolatePosition(t float32, start, end, collapsePoint [3]float32) [3]float32 {
	lerp3 := func(a, b [3]float32, u float32) [3]float32 {
		return [3]float32{
			a[0] + (b[0]-a[0])*u,
			a[1] + (b[1]-a[1])*u,
			a[2] + (b[2]-a[2])*u,
		}
	}
	if t <= 0.5 {
		return lerp3(start, collapsePoint, t*2)
	}
	return lerp3(collapsePoint, end, (t-0.5)*2)
}
