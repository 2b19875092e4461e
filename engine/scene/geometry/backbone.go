package geometry

import (
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/mesh"
	"github.com/Carmen-Shannon/oxy-go/engine/scene/entity"
	"github.com/chewxy/math32"
)

// Cross-section radii, angstroms. Grounded on the original renderer's
// TUBE_RADIUS constant (0.3) for coil; helix and sheet widen it per
// spec.md §4.4 step 4.
const (
	coilTubeRadius    = 0.3
	helixTubeRadius   = 0.4
	sheetHalfWidth    = 1.1
	sheetHalfThick    = 0.18
	arrowHalfWidth    = 1.6 // bounding-radius allowance only; no cross section is emitted at this width
)

// ChainRange records one chain's contribution to the concatenated backbone
// buffers: its tube and ribbon index ranges (start, count) and a
// conservative bounding sphere (spec.md §4.4 step 7). Start fields are
// chain-local (always 0 from GenerateBackboneChain); the scene processor
// shifts them during cross-entity concatenation (spec.md §4.7).
type ChainRange struct {
	ChainID          uint8
	TubeIndexStart   uint32
	TubeIndexCount   uint32
	RibbonIndexStart uint32
	RibbonIndexCount uint32
	Center           [3]float32
	Radius           float32
}

// GeneratedBackbone is the per-chain output of GenerateBackboneChain, all
// index values 0-based within the chain's own vertex range.
type GeneratedBackbone struct {
	Vertices     []mesh.GPUBackboneVertex
	TubeIndices  []uint32
	RibbonIndices []uint32
	Range        ChainRange
	// SheetOffsets holds, per residue with SS == Sheet, the frame normal at
	// that residue's samples (spec.md §4.4 step 4). GenerateSidechainCapsules
	// does not read it.
	SheetOffsets map[uint32][3]float32
}

// ssAtResidue returns the SS type of the chain-local residue residueIdx,
// defaulting to SSCoil when chain.SS is absent or the index is out of range.
func ssAtResidue(chain entity.BackboneChain, residueIdx int) entity.SSType {
	if chain.SS == nil || residueIdx < 0 || residueIdx >= len(chain.SS) {
		return entity.SSCoil
	}
	return chain.SS[residueIdx]
}

// sampleResidueIdx maps a spline sample index (0..numSamples-1) to the
// chain-local residue index that owns it, mirroring the teacher-language
// original's interpolate_residue_indices.
func sampleResidueIdx(numResidues, numSamples, sampleIdx int) int {
	if numResidues <= 1 {
		return 0
	}
	f := float32(sampleIdx) / float32(numSamples-1)
	idx := int(f * float32(numResidues-1))
	if idx >= numResidues {
		idx = numResidues - 1
	}
	return idx
}

type crossSection struct {
	shape      entity.SSType
	widthScale float32 // 1.0 normally; ramps to 0 at a sheet arrowhead tip
}

// crossSectionsFor classifies each spline sample's shape and, for samples
// inside the final residue of a sheet run, computes the linear arrowhead
// taper (spec.md §4.4 step 4: "the last narrows linearly to a point").
func crossSectionsFor(chain entity.BackboneChain, numSamples int) []crossSection {
	out := make([]crossSection, numSamples)
	numResidues := len(chain.Residues)

	// Identify sheet runs so we know which residue is the last of its run.
	sheetRunEnd := make(map[int]bool)
	for i := 0; i < numResidues; i++ {
		if ssAtResidue(chain, i) == entity.SSSheet && (i == numResidues-1 || ssAtResidue(chain, i+1) != entity.SSSheet) {
			sheetRunEnd[i] = true
		}
	}

	for s := 0; s < numSamples; s++ {
		residueIdx := sampleResidueIdx(numResidues, numSamples, s)
		shape := ssAtResidue(chain, residueIdx)
		widthScale := float32(1.0)
		if shape == entity.SSSheet && sheetRunEnd[residueIdx] {
			// Linear taper across this residue's span of samples.
			span := numSamples
			if numResidues > 1 {
				span = (numSamples - 1) / (numResidues - 1)
			}
			localStart := residueIdx * span
			localT := float32(s-localStart) / float32(max(span, 1))
			if localT < 0 {
				localT = 0
			}
			if localT > 1 {
				localT = 1
			}
			widthScale = 1 - localT
		}
		out[s] = crossSection{shape: shape, widthScale: widthScale}
	}
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// crossSectionRing emits RadialSegments positions+normals around the frame
// plane for one sample, shaped according to cs.
func crossSectionRing(f Frame, cs crossSection) (positions, normals [][3]float32) {
	positions = make([][3]float32, RadialSegments)
	normals = make([][3]float32, RadialSegments)

	switch cs.shape {
	case entity.SSSheet:
		halfWidth := sheetHalfWidth * cs.widthScale
		if halfWidth < 0.02 {
			halfWidth = 0.02
		}
		for k := 0; k < RadialSegments; k++ {
			angle := float32(k) / float32(RadialSegments) * 2 * math32.Pi
			// Flattened ellipse: wide along binormal, thin along normal.
			cosA, sinA := math32.Cos(angle), math32.Sin(angle)
			offset := add(scale(f.Normal, cosA*sheetHalfThick), scale(f.Binormal, sinA*halfWidth))
			positions[k] = add(f.Pos, offset)
			normals[k] = normalize(offset)
		}
	case entity.SSHelix:
		for k := 0; k < RadialSegments; k++ {
			angle := float32(k) / float32(RadialSegments) * 2 * math32.Pi
			offset := add(scale(f.Normal, math32.Cos(angle)*helixTubeRadius), scale(f.Binormal, math32.Sin(angle)*helixTubeRadius))
			positions[k] = add(f.Pos, offset)
			normals[k] = normalize(offset)
		}
	default: // Coil, 3-10
		for k := 0; k < RadialSegments; k++ {
			angle := float32(k) / float32(RadialSegments) * 2 * math32.Pi
			offset := add(scale(f.Normal, math32.Cos(angle)*coilTubeRadius), scale(f.Binormal, math32.Sin(angle)*coilTubeRadius))
			positions[k] = add(f.Pos, offset)
			normals[k] = normalize(offset)
		}
	}
	return
}

// belongsToTube reports whether a span between two samples' cross sections
// should be emitted into the tube index range (both ends Coil/3-10) rather
// than the ribbon range.
func belongsToTube(a, b entity.SSType) bool {
	isTubeSS := func(s entity.SSType) bool { return s == entity.SSCoil || s == entity.SS310 }
	return isTubeSS(a) && isTubeSS(b)
}

// GenerateBackboneChain implements spec.md §4.4 end to end for one chain:
// tangent estimation, spline sampling, rotation-minimizing frames,
// SS-aware cross-section extrusion, and tube/ribbon index emission. Each span
// between two successive samples goes to exactly one range: the tube range
// when both samples are Coil/3-10, otherwise the ribbon range, so SS-run
// boundaries have no overlap. Vertex residue_idx values are in
// the entity-local domain; the scene processor offsets them to the global
// domain during concatenation (spec.md §4.7).
func GenerateBackboneChain(chain entity.BackboneChain, chainResidueBase uint32, perResidueColor func(localResidueIdx uint32) [3]float32) GeneratedBackbone {
	out := GeneratedBackbone{SheetOffsets: make(map[uint32][3]float32)}

	positions := make([][3]float32, len(chain.Residues))
	for i, r := range chain.Residues {
		positions[i] = r.CA
	}
	if len(positions) < 2 {
		return out
	}

	frames := sampleSpline(positions)
	sections := crossSectionsFor(chain, len(frames))

	numResidues := len(chain.Residues)
	var sumPos [3]float32
	maxDist := float32(0)

	for s, f := range frames {
		cs := sections[s]
		ring, normals := crossSectionRing(f, cs)
		residueIdx := uint32(sampleResidueIdx(numResidues, len(frames), s))
		color := [3]float32{0.7, 0.7, 0.7}
		if perResidueColor != nil {
			color = perResidueColor(residueIdx)
		}

		if cs.shape == entity.SSSheet {
			out.SheetOffsets[residueIdx] = f.Normal
		}

		for k := 0; k < RadialSegments; k++ {
			out.Vertices = append(out.Vertices, mesh.GPUBackboneVertex{
				Position:   ring[k],
				Normal:     normals[k],
				Color:      color,
				ResidueIdx: chainResidueBase + residueIdx,
				CenterPos:  f.Pos,
			})
		}

		for i := 0; i < 3; i++ {
			sumPos[i] += f.Pos[i]
		}
	}

	numRings := len(frames)
	center := scale(sumPos, 1/float32(numRings))
	for _, f := range frames {
		d := normLen(sub(f.Pos, center))
		if d > maxDist {
			maxDist = d
		}
	}
	maxCrossRadius := float32(arrowHalfWidth)
	out.Range = ChainRange{
		ChainID: chain.ChainID,
		Center:  center,
		Radius:  maxDist + maxCrossRadius,
	}

	for i := 0; i < numRings-1; i++ {
		ringStart := uint32(i * RadialSegments)
		nextRingStart := uint32((i + 1) * RadialSegments)
		tube := belongsToTube(sections[i].shape, sections[i+1].shape)

		var dst *[]uint32
		if tube {
			dst = &out.TubeIndices
		} else {
			dst = &out.RibbonIndices
		}
		for k := 0; k < RadialSegments; k++ {
			kNext := uint32((k + 1) % RadialSegments)
			v0 := ringStart + uint32(k)
			v1 := ringStart + kNext
			v2 := nextRingStart + uint32(k)
			v3 := nextRingStart + kNext
			*dst = append(*dst, v0, v2, v1, v1, v2, v3)
		}
	}

	out.Range.TubeIndexCount = uint32(len(out.TubeIndices))
	out.Range.RibbonIndexCount = uint32(len(out.RibbonIndices))
	return out
}

func normLen(v [3]float32) float32 {
	return math32.Sqrt(dot(v, v))
}
