package geometry

import (
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/impostor"
	"github.com/Carmen-Shannon/oxy-go/engine/scene/entity"
)

// stemRadius is the nucleic-acid stem capsule radius and ring half-thickness
// (spec.md §4.5), matching the original renderer's STEM_RADIUS.
const stemRadius = 0.25

// segmentsPerResidue is the spline subdivision per phosphorus-atom span used
// only for stem-anchor lookup, not for the ribbon/tube mesh.
const segmentsPerResidue = 16

// naBackboneColor is the default color for nucleic acid stems/rings,
// overridden by per-residue coloring when supplied.
var naBackboneColor = [3]float32{0.45, 0.55, 0.85}

// GenerateNucleicAcid implements spec.md §4.5: base rings as extruded-polygon
// impostors oriented by Newell's method, and stem capsules connecting the
// closest backbone-spline sample (preferring the sample closest to a ring's
// C1' atom, when available) to each ring's centroid.
func GenerateNucleicAcid(naChains [][][3]float32, rings []entity.NucleotideRing) ([]impostor.GPUCapsuleInstance, []impostor.GPUPolygonInstance) {
	var splinePoints [][3]float32
	for _, chain := range naChains {
		if len(chain) < 2 {
			continue
		}
		splinePoints = append(splinePoints, catmullRomPositions(chain, segmentsPerResidue)...)
	}

	var stems []impostor.GPUCapsuleInstance
	var polys []impostor.GPUPolygonInstance

	for _, ring := range rings {
		color := ring.Color
		if color == ([3]float32{}) {
			color = naBackboneColor
		}

		if len(splinePoints) > 0 {
			centroid := centroidOf(ring.HexRing)
			anchorTarget := centroid
			if ring.C1Prime != nil {
				anchorTarget = *ring.C1Prime
			}
			anchor := closestPoint(splinePoints, anchorTarget)
			stems = append(stems, impostor.GPUCapsuleInstance{
				EndpointA: anchor,
				Radius:    stemRadius,
				EndpointB: centroid,
				ColorA:    color,
				ColorB:    color,
			})
		}

		if p, ok := makePolygonInstance(ring.HexRing, color, stemRadius); ok {
			polys = append(polys, p)
		}
		if len(ring.PentRing) > 0 {
			if p, ok := makePolygonInstance(ring.PentRing, color, stemRadius); ok {
				polys = append(polys, p)
			}
		}
	}

	return stems, polys
}

// makePolygonInstance builds a GPUPolygonInstance from 3-6 coplanar
// positions, computing the face normal via Newell's method and padding
// unused vertex slots with the centroid so their triangles are degenerate.
// Ported from the original renderer's make_polygon_instance.
func makePolygonInstance(positions [][3]float32, color [3]float32, halfThickness float32) (impostor.GPUPolygonInstance, bool) {
	n := len(positions)
	if n < 3 || n > 6 {
		return impostor.GPUPolygonInstance{}, false
	}

	var normal [3]float32
	for i := 0; i < n; i++ {
		curr := positions[i]
		next := positions[(i+1)%n]
		normal[0] += (curr[1] - next[1]) * (curr[2] + next[2])
		normal[1] += (curr[2] - next[2]) * (curr[0] + next[0])
		normal[2] += (curr[0] - next[0]) * (curr[1] + next[1])
	}
	normal = normalize(normal)
	if normal == ([3]float32{}) {
		return impostor.GPUPolygonInstance{}, false
	}

	centroid := centroidOf(positions)

	var out impostor.GPUPolygonInstance
	for i := 0; i < 6; i++ {
		p := centroid
		if i < n {
			p = positions[i]
		}
		out.Vertices[i] = [4]float32{p[0], p[1], p[2], 0}
	}
	out.Vertices[0][3] = float32(n)
	out.Vertices[1][3] = halfThickness
	out.Normal = [4]float32{normal[0], normal[1], normal[2], 0}
	out.Color = [4]float32{color[0], color[1], color[2], 0}
	return out, true
}

func centroidOf(points [][3]float32) [3]float32 {
	var sum [3]float32
	for _, p := range points {
		sum = add(sum, p)
	}
	if len(points) == 0 {
		return sum
	}
	return scale(sum, 1/float32(len(points)))
}

func closestPoint(points [][3]float32, target [3]float32) [3]float32 {
	best := points[0]
	bestDistSq := distSq(best, target)
	for _, p := range points[1:] {
		d := distSq(p, target)
		if d < bestDistSq {
			bestDistSq = d
			best = p
		}
	}
	return best
}

func distSq(a, b [3]float32) float32 {
	d := sub(a, b)
	return dot(d, d)
}

// catmullRomPositions interpolates through every control point using a
// tau=0.5 Catmull-Rom spline with reflected endpoint padding, matching the
// original renderer's catmull_rom. Unlike sampleSpline, this produces plain
// positions with no frame data — nucleic-acid stems only need anchor points,
// not an extrusion surface.
func catmullRomPositions(points [][3]float32, segmentsPerSpan int) [][3]float32 {
	n := len(points)
	if n < 2 {
		out := make([][3]float32, n)
		copy(out, points)
		return out
	}
	if n < 3 {
		return linearInterpolate(points, segmentsPerSpan)
	}

	padded := make([][3]float32, 0, n+2)
	padded = append(padded, sub(scale(points[0], 2), points[1]))
	padded = append(padded, points...)
	padded = append(padded, sub(scale(points[n-1], 2), points[n-2]))

	var out [][3]float32
	for i := 0; i < n-1; i++ {
		p0, p1, p2, p3 := padded[i], padded[i+1], padded[i+2], padded[i+3]
		for j := 0; j < segmentsPerSpan; j++ {
			t := float32(j) / float32(segmentsPerSpan)
			t2 := t * t
			t3 := t2 * t
			term1 := scale(p1, 2)
			term2 := scale(sub(p2, p0), t)
			term3 := scale(add(add(scale(p0, 2), scale(p1, -5)), add(scale(p2, 4), scale(p3, -1))), t2)
			term4 := scale(add(add(scale(p0, -1), scale(p1, 3)), add(scale(p2, -3), p3)), t3)
			pos := scale(add(add(term1, term2), add(term3, term4)), 0.5)
			out = append(out, pos)
		}
	}
	out = append(out, points[n-1])
	return out
}

func linearInterpolate(points [][3]float32, segmentsPerSpan int) [][3]float32 {
	var out [][3]float32
	for i := 0; i < len(points)-1; i++ {
		for j := 0; j < segmentsPerSpan; j++ {
			t := float32(j) / float32(segmentsPerSpan)
			out = append(out, lerp3(points[i], points[i+1], t))
		}
	}
	if len(points) > 0 {
		out = append(out, points[len(points)-1])
	}
	return out
}

func lerp3(a, b [3]float32, t float32) [3]float32 {
	return add(a, scale(sub(b, a), t))
}
