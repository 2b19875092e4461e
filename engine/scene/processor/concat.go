package processor

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-go/engine/renderer/mesh"
)

// concatenate implements spec.md §4.7 step 2-3: walks each entity's cached
// mesh in order, patching residue indices and shifting index/byte offsets
// into the scene-global space, and assembles one PreparedScene. Grounded on
// the original renderer's concatenate_meshes/offset_vertex_residue_idx.
func concatenate(generation uint64, order []uint32, cache map[uint32]*cachedEntityMesh) *PreparedScene {
	out := &PreparedScene{Generation: generation}

	var globalResidueOffset uint32
	var globalVertexOffset uint32
	var globalTubeOffset uint32
	var globalRibbonOffset uint32

	for _, id := range order {
		m, ok := cache[id]
		if !ok {
			continue
		}

		vertexBytes := append([]byte(nil), m.vertices...)
		mesh.PatchResidueIdx(vertexBytes, globalResidueOffset)
		out.BackboneVertices = append(out.BackboneVertices, vertexBytes...)

		for _, idx := range m.tubeIndices {
			out.TubeIndices = append(out.TubeIndices, idx+globalVertexOffset)
		}
		for _, idx := range m.ribbonIndices {
			out.RibbonIndices = append(out.RibbonIndices, idx+globalVertexOffset)
		}

		for _, cr := range m.chainRanges {
			out.ChainRanges = append(out.ChainRanges, geometryChainRange{
				EntityID:         id,
				ChainID:          cr.ChainID,
				TubeIndexStart:   cr.TubeIndexStart + globalTubeOffset,
				TubeIndexCount:   cr.TubeIndexCount,
				RibbonIndexStart: cr.RibbonIndexStart + globalRibbonOffset,
				RibbonIndexCount: cr.RibbonIndexCount,
				Center:           cr.Center,
				Radius:           cr.Radius,
			})
		}

		// Impostor instance bytes embed absolute world positions, so they
		// concatenate directly with no offset patching.
		out.SidechainInstances = append(out.SidechainInstances, m.sidechainInstances...)
		out.NaStemInstances = append(out.NaStemInstances, m.naStemInstances...)
		out.NaRingInstances = append(out.NaRingInstances, m.naRingInstances...)

		for _, c := range m.residueColors {
			out.ResidueColors = append(out.ResidueColors, marshalColor(c)...)
		}
		out.SSTypes = append(out.SSTypes, m.ssTypes...)
		out.AllPositions = append(out.AllPositions, m.positions...)

		out.EntityResidueRanges = append(out.EntityResidueRanges, EntityResidueRange{
			EntityID: id,
			Offset:   globalResidueOffset,
			Count:    uint32(m.residueCount),
		})
		out.EntityLayouts = append(out.EntityLayouts, EntityByteLayout{
			EntityID:            id,
			ResidueOffset:       globalResidueOffset,
			VertexByteOffset:    uint64(len(out.BackboneVertices) - len(vertexBytes)),
			VertexByteLen:       uint64(len(vertexBytes)),
			SidechainByteOffset: uint64(len(out.SidechainInstances) - len(m.sidechainInstances)),
			SidechainByteLen:    uint64(len(m.sidechainInstances)),
		})

		globalResidueOffset += uint32(m.residueCount)
		globalVertexOffset += uint32(len(m.vertices) / 52)
		globalTubeOffset += uint32(len(m.tubeIndices))
		globalRibbonOffset += uint32(len(m.ribbonIndices))
	}

	return out
}

func marshalColor(c [3]float32) []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(c[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(c[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(c[2]))
	return buf
}
