package animator

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-go/engine/scene/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ca(x float32) entity.ResidueVisualState {
	return entity.ResidueVisualState{
		N:  [3]float32{x, 0, 0},
		CA: [3]float32{x, 1, 0},
		C:  [3]float32{x, 2, 0},
	}
}

func TestAnimateEntityReachesTargetAtEnd(t *testing.T) {
	a := New().(*structureAnimator)
	target := []entity.ResidueVisualState{ca(1), ca(2)}

	a.animateEntityAt(1, target, entity.SmoothTransition(), nil, nil, 0)
	a.updateAt(float64(entity.SmoothTransition().TotalDuration()) + 1)

	got := a.State().Backbone(1)
	require.Len(t, got, 2)
	assert.Equal(t, target, got)
}

func TestAnimateEntityHandoffNoDiscontinuity(t *testing.T) {
	a := New().(*structureAnimator)
	first := []entity.ResidueVisualState{ca(1)}
	second := []entity.ResidueVisualState{ca(5)}

	transition := entity.SmoothTransition()
	half := transition.TotalDuration() / 2

	a.animateEntityAt(7, first, transition, nil, nil, 0)
	a.updateAt(float64(half))
	midState := a.State().Backbone(7)[0]

	a.animateEntityAt(7, second, transition, nil, nil, float64(half))
	newRunner := a.runners[7]

	// The new runner must start exactly where the old one was interpolating
	// to at the handoff instant — no jump back to the pre-animation state.
	assert.Equal(t, midState, newRunner.startBackbone[0])
}

func TestSizeChangeRejectionSnapsSidechains(t *testing.T) {
	a := New().(*structureAnimator)
	backbone := []entity.ResidueVisualState{ca(0)}
	oldSidechain := [][3]float32{{0, 0, 0}, {1, 0, 0}}
	newSidechain := [][3]float32{{2, 2, 2}} // different count

	transition := entity.SmoothTransition() // AllowsSizeChange == false
	require.False(t, transition.AllowsSizeChange)

	a.animateEntityAt(3, backbone, transition, oldSidechain, []uint32{0, 0}, 0)
	a.updateAt(float64(transition.TotalDuration()))

	a.animateEntityAt(3, backbone, transition, newSidechain, []uint32{0}, 0)
	r := a.runners[3]
	require.NotNil(t, r)
	assert.Equal(t, newSidechain, r.startSidechain)
}

func TestSkipSnapsAllAndClearsRunners(t *testing.T) {
	a := New().(*structureAnimator)
	target := []entity.ResidueVisualState{ca(9)}
	a.animateEntityAt(1, target, entity.SmoothTransition(), nil, nil, 0)

	a.Skip()

	assert.Equal(t, target, a.State().Backbone(1))
	assert.Empty(t, a.runners)
}

func TestCancelDropsRunnersWithoutChangingState(t *testing.T) {
	a := New().(*structureAnimator)
	target := []entity.ResidueVisualState{ca(9)}
	a.animateEntityAt(1, target, entity.SmoothTransition(), nil, nil, 0)
	a.updateAt(0.01)
	before := a.State().Backbone(1)

	a.Cancel()

	assert.Empty(t, a.runners)
	assert.Equal(t, before, a.State().Backbone(1))
}

func TestTransitionEasedTBounds(t *testing.T) {
	for _, tr := range []entity.Transition{
		entity.SnapTransition(),
		entity.SmoothTransition(),
		entity.CollapseExpandTransition(),
		entity.BackboneThenExpandTransition(),
		entity.CascadeTransition(),
	} {
		assert.InDelta(t, 0, tr.EasedT(0), 1e-5, tr.Name)
		assert.InDelta(t, 1, tr.EasedT(1), 1e-5, tr.Name)
		for _, raw := range []float32{0.1, 0.25, 0.5, 0.75, 0.9} {
			eased := tr.EasedT(raw)
			phase := tr.ActivePhase(raw)
			assert.GreaterOrEqual(t, eased, phase.RangeStart-1e-5, tr.Name)
			assert.LessOrEqual(t, eased, phase.RangeEnd+1e-5, tr.Name)
		}
	}
}

func TestTransitionTotalDuration(t *testing.T) {
	tr := entity.CollapseExpandTransition()
	var sum float32
	for _, p := range tr.Phases {
		sum += p.Duration
	}
	assert.Equal(t, sum, tr.TotalDuration())
}
