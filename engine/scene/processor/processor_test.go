package processor

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-go/engine/scene/entity"
	"github.com/Carmen-Shannon/oxy-go/internal/options"
	"github.com/stretchr/testify/require"
)

// residueAtoms builds the N/CA/C atom triple of one protein residue at
// position p, on chainID, with the given serial.
func residueAtoms(chainID uint8, serial int32, p [3]float32) []entity.Atom {
	return []entity.Atom{
		{Position: p, AtomName: "N", ChainID: chainID, ResidueSerial: serial},
		{Position: p, AtomName: "CA", ChainID: chainID, ResidueSerial: serial},
		{Position: p, AtomName: "C", ChainID: chainID, ResidueSerial: serial},
	}
}

// chainAtoms builds n contiguous residues on chainID starting at serial 1,
// each one angstrom further along x than the last so the spline has distinct
// control points.
func chainAtoms(chainID uint8, n int, xStart float32) []entity.Atom {
	var out []entity.Atom
	for i := 0; i < n; i++ {
		p := [3]float32{xStart + float32(i), 0, 0}
		out = append(out, residueAtoms(chainID, int32(i+1), p)...)
	}
	return out
}

func vertexResidueIdx(t *testing.T, buf []byte, vertexIdx int) uint32 {
	t.Helper()
	const stride = 52
	const residueIdxOffset = 36
	off := vertexIdx*stride + residueIdxOffset
	require.LessOrEqual(t, off+4, len(buf))
	return binary.LittleEndian.Uint32(buf[off : off+4])
}

func awaitResult(t *testing.T, p *Processor) Result {
	t.Helper()
	var r Result
	require.Eventually(t, func() bool {
		res, ok := p.PollResult()
		if !ok {
			return false
		}
		r = res
		return true
	}, 2*time.Second, time.Millisecond)
	return r
}

// Scenario from spec.md §8: one entity with two chains, of lengths 3 and 2
// residues. Expect a single EntityResidueRange spanning all 5 residues, a
// non-empty backbone vertex buffer, RibbonIndexCount == 0 (both chains are
// all-coil), TubeIndexCount > 0, and every vertex's residue_idx in [0,5).
func TestProcessor_StaticRebuild(t *testing.T) {
	p := New()
	defer p.Close()

	atoms := append(chainAtoms(0, 3, 0), chainAtoms(1, 2, 10)...)

	ok := p.SubmitFullRebuild(FullRebuildRequest{
		Generation: 1,
		Entities: []PerEntityData{
			{EntityID: 7, Atoms: atoms},
		},
		Display:  options.Default().Display,
		Colors:   options.Default().Colors,
		Geometry: options.Default().Geometry,
	})
	require.True(t, ok)

	r := awaitResult(t, p)
	require.NotNil(t, r.Scene)
	scene := r.Scene

	require.Equal(t, []EntityResidueRange{{EntityID: 7, Offset: 0, Count: 5}}, scene.EntityResidueRanges)
	require.NotEmpty(t, scene.BackboneVertices)
	require.Zero(t, len(scene.RibbonIndices))
	require.Greater(t, len(scene.TubeIndices), 0)

	const stride = 52
	numVertices := len(scene.BackboneVertices) / stride
	require.Equal(t, 0, len(scene.BackboneVertices)%stride)
	for i := 0; i < numVertices; i++ {
		idx := vertexResidueIdx(t, scene.BackboneVertices, i)
		require.Less(t, idx, uint32(5))
	}

	require.GreaterOrEqual(t, len(scene.ResidueColors)/12, 5)
	require.Len(t, scene.SSTypes, 5)
}

// Scenario from spec.md §8: entity A (residues 0..3) concatenated before
// entity B (residues 0..2). B's vertices must carry residue_idx in {3,4},
// B's tube indices must be shifted by A's vertex count, and the residue
// ranges must record each entity's own span.
func TestProcessor_ConcatenationOffsetting(t *testing.T) {
	p := New()
	defer p.Close()

	atomsA := chainAtoms(0, 3, 0)
	atomsB := chainAtoms(0, 2, 10)

	ok := p.SubmitFullRebuild(FullRebuildRequest{
		Generation: 1,
		Entities: []PerEntityData{
			{EntityID: 1, Atoms: atomsA},
			{EntityID: 2, Atoms: atomsB},
		},
		Display:  options.Default().Display,
		Colors:   options.Default().Colors,
		Geometry: options.Default().Geometry,
	})
	require.True(t, ok)

	r := awaitResult(t, p)
	require.NotNil(t, r.Scene)
	scene := r.Scene

	require.Equal(t, []EntityResidueRange{
		{EntityID: 1, Offset: 0, Count: 3},
		{EntityID: 2, Offset: 3, Count: 2},
	}, scene.EntityResidueRanges)

	var layoutA, layoutB EntityByteLayout
	for _, l := range scene.EntityLayouts {
		switch l.EntityID {
		case 1:
			layoutA = l
		case 2:
			layoutB = l
		}
	}
	require.NotZero(t, layoutA.VertexByteLen)
	require.NotZero(t, layoutB.VertexByteLen)

	const stride = 52
	aVertexCount := uint32(layoutA.VertexByteLen / stride)

	require.Equal(t, layoutA.VertexByteOffset+layoutA.VertexByteLen, layoutB.VertexByteOffset)

	bStart := int(layoutB.VertexByteOffset / stride)
	bCount := int(layoutB.VertexByteLen / stride)
	for i := bStart; i < bStart+bCount; i++ {
		idx := vertexResidueIdx(t, scene.BackboneVertices, i)
		require.GreaterOrEqual(t, idx, uint32(3))
		require.Less(t, idx, uint32(5))
	}

	var minBIndex uint32 = ^uint32(0)
	bIndexCount := 0
	for _, idx := range scene.TubeIndices {
		if idx >= aVertexCount {
			bIndexCount++
			if idx < minBIndex {
				minBIndex = idx
			}
		}
	}
	require.Greater(t, bIndexCount, 0)
	require.GreaterOrEqual(t, minBIndex, aVertexCount)
}

// AnimationFrame requests against a stale BaseGeneration are rejected rather
// than silently patching a byte layout that no longer matches the cache.
func TestProcessor_AnimationFrame_StaleGeneration(t *testing.T) {
	p := New()
	defer p.Close()

	atoms := chainAtoms(0, 3, 0)
	require.True(t, p.SubmitFullRebuild(FullRebuildRequest{
		Generation: 1,
		Entities:   []PerEntityData{{EntityID: 1, Atoms: atoms}},
		Display:    options.Default().Display,
		Colors:     options.Default().Colors,
		Geometry:   options.Default().Geometry,
	}))
	_ = awaitResult(t, p)

	require.True(t, p.SubmitAnimationFrame(AnimationFrameRequest{
		Generation:     2,
		BaseGeneration: 999,
		Entities: []AnimatedEntity{
			{EntityID: 1, Backbone: make([]entity.ResidueVisualState, 3)},
		},
	}))

	r := awaitResult(t, p)
	require.NotNil(t, r.Frame)
	require.True(t, r.Frame.Stale)
}

// A fresh AnimationFrame patches the backbone vertex bytes for the animated
// entity without re-running ExtractTopology or touching the mesh cache.
func TestProcessor_AnimationFrame_PatchesVertices(t *testing.T) {
	p := New()
	defer p.Close()

	atoms := chainAtoms(0, 3, 0)
	require.True(t, p.SubmitFullRebuild(FullRebuildRequest{
		Generation: 1,
		Entities:   []PerEntityData{{EntityID: 1, Atoms: atoms}},
		Display:    options.Default().Display,
		Colors:     options.Default().Colors,
		Geometry:   options.Default().Geometry,
	}))
	first := awaitResult(t, p)
	require.NotNil(t, first.Scene)

	moved := []entity.ResidueVisualState{
		{N: [3]float32{0, 5, 0}, CA: [3]float32{0, 5, 0}, C: [3]float32{0, 5, 0}},
		{N: [3]float32{1, 5, 0}, CA: [3]float32{1, 5, 0}, C: [3]float32{1, 5, 0}},
		{N: [3]float32{2, 5, 0}, CA: [3]float32{2, 5, 0}, C: [3]float32{2, 5, 0}},
	}
	require.True(t, p.SubmitAnimationFrame(AnimationFrameRequest{
		Generation:     2,
		BaseGeneration: first.Scene.Generation,
		Entities: []AnimatedEntity{
			{EntityID: 1, Backbone: moved},
		},
	}))

	r := awaitResult(t, p)
	require.NotNil(t, r.Frame)
	require.False(t, r.Frame.Stale)
	require.Len(t, r.Frame.VertexPatches, 1)
	require.NotEmpty(t, r.Frame.VertexPatches[0].Data)
	require.Equal(t, 0, len(r.Frame.VertexPatches[0].Data)%52)
}
