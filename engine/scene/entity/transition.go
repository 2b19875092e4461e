package entity

import "github.com/tanema/gween/ease"

// EasingFunc maps a local progress t ∈ [0,1] to an eased progress, also in
// [0,1]. Built from github.com/tanema/gween/ease, whose Penner-style easing
// functions take (currentTime, begin, change, duration); wrapping them here
// normalizes the call to the single-argument shape the animator wants.
type EasingFunc func(t float32) float32

// EasingKind enumerates the easing curves a Transition phase may select.
type EasingKind int

const (
	// EasingLinear is a constant-rate interpolation.
	EasingLinear EasingKind = iota
	// EasingOutCubic decelerates towards the end of the phase.
	EasingOutCubic
	// EasingInOutCubic accelerates then decelerates.
	EasingInOutCubic
)

// Func resolves an EasingKind to its EasingFunc.
func (k EasingKind) Func() EasingFunc {
	switch k {
	case EasingOutCubic:
		return func(t float32) float32 { return ease.OutCubic(t, 0, 1, 1) }
	case EasingInOutCubic:
		return func(t float32) float32 { return ease.InOutCubic(t, 0, 1, 1) }
	default:
		return func(t float32) float32 { return ease.Linear(t, 0, 1, 1) }
	}
}

// Phase is one ordered stage of a Transition.
type Phase struct {
	// Duration is this phase's share of the transition's total duration,
	// in seconds.
	Duration float32
	// Easing selects the easing curve applied within this phase's local
	// progress.
	Easing EasingKind
	// RangeStart and RangeEnd define the lerp sub-range [s, e] ⊂ [0, 1] this
	// phase's eased local progress is remapped into.
	RangeStart, RangeEnd float32
	// IncludeSidechains controls whether sidechain atoms are drawn during
	// this phase.
	IncludeSidechains bool
	// StaggerDelay is not read by the animator, and every preset leaves it
	// zero (see DESIGN.md Open Questions — cascade behaves identically to
	// smooth).
	StaggerDelay float32
}

// Transition describes how to animate an entity's residues to a new target:
// one or more ordered phases, an overall size-change permission, and a
// derived total duration.
type Transition struct {
	// Name identifies the transition for logging/debugging.
	Name string
	// Phases are the ordered phases; TotalDuration is their duration sum.
	Phases []Phase
	// AllowsSizeChange permits the sidechain atom count to differ between
	// the previous and new runner without rejecting the size change.
	AllowsSizeChange bool
}

// TotalDuration returns the sum of all phase durations.
func (t Transition) TotalDuration() float32 {
	var sum float32
	for _, p := range t.Phases {
		sum += p.Duration
	}
	return sum
}

// PhaseAt resolves the phase active at raw progress t ∈ [0,1] and the local
// progress within that phase, also remapped to [0,1].
func (t Transition) PhaseAt(raw float32) (Phase, float32) {
	if len(t.Phases) == 0 {
		return Phase{RangeStart: 0, RangeEnd: 1, IncludeSidechains: true}, raw
	}
	total := t.TotalDuration()
	if total <= 0 {
		return t.Phases[len(t.Phases)-1], raw
	}
	target := raw * total
	var acc float32
	for i, p := range t.Phases {
		start := acc
		end := acc + p.Duration
		if target <= end || i == len(t.Phases)-1 {
			if p.Duration <= 0 {
				return p, 1
			}
			local := (target - start) / p.Duration
			if local < 0 {
				local = 0
			}
			if local > 1 {
				local = 1
			}
			return p, local
		}
		acc = end
	}
	return t.Phases[len(t.Phases)-1], 1
}

// EasedT computes the global eased progress for raw progress t: the active
// phase's easing function applied to local progress, remapped into the
// phase's [RangeStart, RangeEnd] sub-range.
func (t Transition) EasedT(raw float32) float32 {
	if raw < 0 {
		raw = 0
	}
	if raw > 1 {
		raw = 1
	}
	phase, local := t.PhaseAt(raw)
	easedLocal := phase.Easing.Func()(local)
	return phase.RangeStart + easedLocal*(phase.RangeEnd-phase.RangeStart)
}

// ActivePhase returns the phase active at raw progress t, without computing
// the eased value — used by the animator to test IncludeSidechains.
func (t Transition) ActivePhase(raw float32) Phase {
	phase, _ := t.PhaseAt(raw)
	return phase
}

// Preset transition constructors, matching spec.md §3's standard presets.

// SnapTransition has zero duration and permits size change; the animator
// treats t ≥ 1 immediately so the target is applied on the same frame.
func SnapTransition() Transition {
	return Transition{
		Name:             "snap",
		AllowsSizeChange: true,
		Phases: []Phase{
			{Duration: 0, Easing: EasingLinear, RangeStart: 0, RangeEnd: 1, IncludeSidechains: true},
		},
	}
}

// SmoothTransition is a single 300ms ease-out phase; does not allow size
// change (sidechain count mismatches snap to target instead).
func SmoothTransition() Transition {
	return Transition{
		Name:             "smooth",
		AllowsSizeChange: false,
		Phases: []Phase{
			{Duration: 0.3, Easing: EasingOutCubic, RangeStart: 0, RangeEnd: 1, IncludeSidechains: true},
		},
	}
}

// CollapseExpandTransition passes through each residue's Cα position across
// two phases and permits size change.
func CollapseExpandTransition() Transition {
	return Transition{
		Name:             "collapse-expand",
		AllowsSizeChange: true,
		Phases: []Phase{
			{Duration: 0.2, Easing: EasingInOutCubic, RangeStart: 0, RangeEnd: 0.5, IncludeSidechains: false},
			{Duration: 0.3, Easing: EasingOutCubic, RangeStart: 0.5, RangeEnd: 1, IncludeSidechains: true},
		},
	}
}

// BackboneThenExpandTransition lerps the backbone while sidechains stay
// hidden in phase 1, then grows sidechains from their Cα in phase 2.
func BackboneThenExpandTransition() Transition {
	return Transition{
		Name:             "backbone-then-expand",
		AllowsSizeChange: true,
		Phases: []Phase{
			{Duration: 0.25, Easing: EasingOutCubic, RangeStart: 0, RangeEnd: 0.5, IncludeSidechains: false},
			{Duration: 0.25, Easing: EasingOutCubic, RangeStart: 0.5, RangeEnd: 1, IncludeSidechains: true},
		},
	}
}

// CascadeTransition is defined per spec.md §9's open question: per-residue
// staggering is not wired through the runner here, so it behaves identically
// to SmoothTransition. See DESIGN.md Open Question Decisions.
func CascadeTransition() Transition {
	t := SmoothTransition()
	t.Name = "cascade"
	return t
}
