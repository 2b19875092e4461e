package processor

import (
	"github.com/Carmen-Shannon/oxy-go/engine/scene/entity"
	"github.com/Carmen-Shannon/oxy-go/internal/options"
)

// fallbackResidueColor is used when an entity has no scores and the color
// mode needs one, per spec.md §4.7 step 2.
var fallbackResidueColor = [3]float32{0.7, 0.7, 0.7}

var (
	scoreLow  = [3]float32{0.1, 0.3, 0.9}
	scoreMid  = [3]float32{0.85, 0.85, 0.85}
	scoreHigh = [3]float32{0.95, 0.3, 0.15}
)

var ssColors = map[entity.SSType][3]float32{
	entity.SSCoil:  {0.7, 0.7, 0.7},
	entity.SS310:   {0.6, 0.3, 0.8},
	entity.SSHelix: {0.9, 0.2, 0.5},
	entity.SSSheet: {0.9, 0.8, 0.1},
}

// residueColors computes one color per residue for an entity, in
// entity-local residue order, according to the active BackboneColorMode.
// ss, when non-nil, must be parallel to scores/residue count.
func residueColors(mode options.BackboneColorMode, scores []float64, ss []entity.SSType, residueCount int) [][3]float32 {
	out := make([][3]float32, residueCount)

	switch mode {
	case options.BackboneColorSecondaryStructure:
		for i := range out {
			s := entity.SSCoil
			if i < len(ss) {
				s = ss[i]
			}
			out[i] = ssColors[s]
		}
		return out

	case options.BackboneColorScoreRelative:
		if len(scores) == 0 {
			fill(out, fallbackResidueColor)
			return out
		}
		lo, hi := scores[0], scores[0]
		for _, s := range scores {
			if s < lo {
				lo = s
			}
			if s > hi {
				hi = s
			}
		}
		span := hi - lo
		for i := range out {
			if i >= len(scores) {
				out[i] = fallbackResidueColor
				continue
			}
			t := 0.5
			if span > 0 {
				t = (scores[i] - lo) / span
			}
			out[i] = scoreRamp(float32(t))
		}
		return out

	default: // BackboneColorScore
		if len(scores) == 0 {
			fill(out, fallbackResidueColor)
			return out
		}
		for i := range out {
			if i >= len(scores) {
				out[i] = fallbackResidueColor
				continue
			}
			t := scores[i]
			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}
			out[i] = scoreRamp(float32(t))
		}
		return out
	}
}

// scoreRamp interpolates the three-stop blue → white → warm-red heatmap used
// for score coloring.
func scoreRamp(t float32) [3]float32 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if t < 0.5 {
		return lerpColor(scoreLow, scoreMid, t*2)
	}
	return lerpColor(scoreMid, scoreHigh, (t-0.5)*2)
}

func lerpColor(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

func fill(dst [][3]float32, v [3]float32) {
	for i := range dst {
		dst[i] = v
	}
}
