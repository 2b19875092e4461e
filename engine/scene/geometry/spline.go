// Package geometry implements backbone mesh generation and nucleic-acid
// generation (spec.md §4.4, §4.5). It is pure CPU geometry with no GPU
// handles, so it can run unmodified on the background scene-processor
// worker (spec.md §4.7).
package geometry

import "github.com/chewxy/math32"

// SegmentsPerSpan is the number of spline samples generated per residue
// span, matching spec.md §4.4 step 2.
const SegmentsPerSpan = 16

// RadialSegments is the number of vertices emitted around the frame plane
// at each spline sample, matching spec.md §4.4 step 4.
const RadialSegments = 32

// coincidentEpsilonSq is the squared-distance threshold below which two
// successive spline samples are treated as coincident and the previous
// frame is carried unchanged (spec.md §4.4 step 3).
const coincidentEpsilonSq = 1e-10

// Frame is an orthonormal rotation-minimizing frame sample: a position, the
// spline tangent, and the normal/binormal computed by RMF propagation.
type Frame struct {
	Pos      [3]float32
	Tangent  [3]float32
	Normal   [3]float32
	Binormal [3]float32
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func add(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func scale(a [3]float32, s float32) [3]float32 {
	return [3]float32{a[0] * s, a[1] * s, a[2] * s}
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(a [3]float32) [3]float32 {
	l := math32.Sqrt(dot(a, a))
	if l < 1e-20 {
		return a
	}
	return scale(a, 1/l)
}

// estimateTangents implements spec.md §4.4 step 1: forward/backward
// differences at the endpoints, half of the two-neighbor secant (Catmull-Rom
// style) at interior points.
func estimateTangents(points [][3]float32) [][3]float32 {
	n := len(points)
	tangents := make([][3]float32, n)
	for i := 0; i < n; i++ {
		switch {
		case i == 0:
			tangents[i] = sub(points[1], points[0])
		case i == n-1:
			tangents[i] = sub(points[n-1], points[n-2])
		default:
			tangents[i] = scale(sub(points[i+1], points[i-1]), 0.5)
		}
	}
	return tangents
}

func hermitePoint(p0, m0, p1, m1 [3]float32, t float32) [3]float32 {
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return add(add(scale(p0, h00), scale(m0, h10)), add(scale(p1, h01), scale(m1, h11)))
}

func hermiteTangent(p0, m0, p1, m1 [3]float32, t float32) [3]float32 {
	t2 := t * t
	dh00 := 6*t2 - 6*t
	dh10 := 3*t2 - 4*t + 1
	dh01 := -6*t2 + 6*t
	dh11 := 3*t2 - 2*t
	return add(add(scale(p0, dh00), scale(m0, dh10)), add(scale(p1, dh01), scale(m1, dh11)))
}

// sampleSpline implements spec.md §4.4 step 2: cubic Hermite sampling
// between successive input points with SegmentsPerSpan samples per span,
// producing (N-1)*SegmentsPerSpan + 1 samples, then fills each sample's
// normal/binormal via computeRMF before returning.
func sampleSpline(points [][3]float32) []Frame {
	n := len(points)
	if n < 2 {
		frames := make([]Frame, n)
		for i, p := range points {
			frames[i] = Frame{Pos: p, Tangent: [3]float32{0, 0, 1}}
		}
		return frames
	}

	tangents := estimateTangents(points)
	frames := make([]Frame, 0, (n-1)*SegmentsPerSpan+1)

	for i := 0; i < n-1; i++ {
		p0, p1 := points[i], points[i+1]
		m0, m1 := tangents[i], tangents[i+1]
		for j := 0; j < SegmentsPerSpan; j++ {
			t := float32(j) / float32(SegmentsPerSpan)
			pos := hermitePoint(p0, m0, p1, m1, t)
			tan := normalize(hermiteTangent(p0, m0, p1, m1, t))
			frames = append(frames, Frame{Pos: pos, Tangent: tan})
		}
	}
	last := points[n-1]
	lastTangent := normalize(tangents[n-1])
	frames = append(frames, Frame{Pos: last, Tangent: lastTangent})

	computeRMF(frames)
	return frames
}

// computeRMF propagates rotation-minimizing frames in place using the
// double-reflection method of Wang et al. 2008 (spec.md §4.4 step 3).
func computeRMF(frames []Frame) {
	if len(frames) == 0 {
		return
	}

	t0 := frames[0].Tangent
	arbitrary := [3]float32{1, 0, 0}
	if math32.Abs(t0[0]) >= 0.9 {
		arbitrary = [3]float32{0, 1, 0}
	}
	n0 := normalize(cross(t0, arbitrary))
	b0 := normalize(cross(t0, n0))
	frames[0].Normal = n0
	frames[0].Binormal = b0

	for i := 0; i < len(frames)-1; i++ {
		xi := frames[i].Pos
		xi1 := frames[i+1].Pos
		ti := frames[i].Tangent
		ti1 := frames[i+1].Tangent
		ri := frames[i].Normal
		si := frames[i].Binormal

		v1 := sub(xi1, xi)
		c1 := dot(v1, v1)

		if c1 < coincidentEpsilonSq {
			frames[i+1].Normal = ri
			frames[i+1].Binormal = si
			continue
		}

		riL := sub(ri, scale(v1, 2/c1*dot(v1, ri)))
		tiL := sub(ti, scale(v1, 2/c1*dot(v1, ti)))

		v2 := sub(ti1, tiL)
		c2 := dot(v2, v2)

		var ri1 [3]float32
		if c2 < coincidentEpsilonSq {
			ri1 = riL
		} else {
			ri1 = sub(riL, scale(v2, 2/c2*dot(v2, riL)))
		}

		ri1 = normalize(sub(ri1, scale(ti1, dot(ti1, ri1))))
		si1 := normalize(cross(ti1, ri1))

		frames[i+1].Normal = ri1
		frames[i+1].Binormal = si1
	}
}
