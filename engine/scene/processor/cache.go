package processor

import (
	"github.com/Carmen-Shannon/oxy-go/engine/scene/entity"
	"github.com/Carmen-Shannon/oxy-go/engine/scene/geometry"
	"github.com/Carmen-Shannon/oxy-go/internal/options"
)

// colorCacheKey is the comparable subset of options.ColorOptions included in
// the mesh cache key. ColorOptions itself holds a map (CofactorTints) and so
// is not comparable with ==. The geometry package uses its own fixed
// sidechain and nucleic-acid colors, so a change to these fields regenerates
// meshes without changing their colors.
type colorCacheKey struct {
	hydrophobic [3]float32
	hydrophilic [3]float32
	nucleicAcid [3]float32
}

func colorKeyOf(c options.ColorOptions) colorCacheKey {
	return colorCacheKey{
		hydrophobic: c.HydrophobicSidechain,
		hydrophilic: c.HydrophilicSidechain,
		nucleicAcid: c.NucleicAcid,
	}
}

// meshCacheKey identifies one generation of an entity's mesh, per spec.md
// §4.7 step 1: "(entity_id, mesh_version, display, colors, geometry)".
type meshCacheKey struct {
	entityID    uint32
	meshVersion uint64
	display     options.DisplayOptions
	colors      colorCacheKey
	geometry    options.GeometryOptions
}

// cachedEntityMesh is one entity's generated geometry, entity-local: vertex
// residue indices start at 0 and index buffers are 0-based within the
// entity's own vertex range. concatenate shifts these into the scene-global
// space.
type cachedEntityMesh struct {
	key meshCacheKey

	vertices      []byte
	tubeIndices   []uint32
	ribbonIndices []uint32
	chainRanges   []geometry.ChainRange

	sidechainInstances []byte
	naStemInstances    []byte
	naRingInstances    []byte

	sidechainAtoms []entity.SidechainAtom
	caPositions    map[uint32][3]float32
	chains         []entity.BackboneChain

	residueColors [][3]float32
	ssTypes       []entity.SSType
	positions     [][3]float32
	residueCount  int
}

// generateEntityMesh builds a cachedEntityMesh from scratch for one entity.
// Grounded on spec.md §4.4/§4.5's generation pipeline: topology extraction,
// then backbone, sidechain, and nucleic-acid geometry generation, all in the
// entity's own local residue-index space.
func generateEntityMesh(data PerEntityData, display options.DisplayOptions, colors options.ColorOptions, geomOpts options.GeometryOptions) *cachedEntityMesh {
	chains, sidechainAtoms, caPositions := ExtractTopology(data.Atoms)

	residueCount := 0
	for _, c := range chains {
		residueCount += len(c.Residues)
	}

	ss := flattenSS(chains, residueCount)
	colorsOut := residueColors(display.BackboneColorMode, data.Scores, ss, residueCount)

	out := &cachedEntityMesh{
		key: meshCacheKey{
			entityID:    data.EntityID,
			meshVersion: data.MeshVersion,
			display:     display,
			colors:      colorKeyOf(colors),
			geometry:    geomOpts,
		},
		sidechainAtoms: sidechainAtoms,
		caPositions:    caPositions,
		chains:         chains,
		residueColors:  colorsOut,
		ssTypes:        ss,
		residueCount:   residueCount,
	}

	var chainResidueBase uint32
	for _, chain := range chains {
		base := chainResidueBase
		chainResidueBase += uint32(len(chain.Residues))

		if chain.IsNucleicAcid {
			continue
		}

		perResidueColor := func(localResidueIdx uint32) [3]float32 {
			global := int(base + localResidueIdx)
			if global < len(colorsOut) {
				return colorsOut[global]
			}
			return fallbackResidueColor
		}

		gen := geometry.GenerateBackboneChain(chain, base, perResidueColor)
		vertexBase := uint32(len(out.vertices) / 52)

		for i := range gen.Vertices {
			out.positions = append(out.positions, gen.Vertices[i].Position)
			buf := gen.Vertices[i].Marshal()
			out.vertices = append(out.vertices, buf...)
		}
		for _, idx := range gen.TubeIndices {
			out.tubeIndices = append(out.tubeIndices, idx+vertexBase)
		}
		for _, idx := range gen.RibbonIndices {
			out.ribbonIndices = append(out.ribbonIndices, idx+vertexBase)
		}
		gen.Range.TubeIndexStart += uint32(len(out.tubeIndices)) - gen.Range.TubeIndexCount
		gen.Range.RibbonIndexStart += uint32(len(out.ribbonIndices)) - gen.Range.RibbonIndexCount
		out.chainRanges = append(out.chainRanges, gen.Range)
	}

	if display.ShowSidechains && len(sidechainAtoms) > 0 {
		capsules := geometry.GenerateSidechainCapsules(sidechainAtoms, caPositions)
		for i := range capsules {
			out.sidechainInstances = append(out.sidechainInstances, capsules[i].Marshal()...)
		}
	}

	if len(data.Rings) > 0 {
		var naChains [][][3]float32
		for _, c := range chains {
			if !c.IsNucleicAcid {
				continue
			}
			pts := make([][3]float32, len(c.Residues))
			for i, r := range c.Residues {
				pts[i] = r.CA
			}
			naChains = append(naChains, pts)
		}
		stems, rings := geometry.GenerateNucleicAcid(naChains, data.Rings)
		for i := range stems {
			out.naStemInstances = append(out.naStemInstances, stems[i].Marshal()...)
		}
		for i := range rings {
			out.naRingInstances = append(out.naRingInstances, rings[i].Marshal()...)
		}
	}

	return out
}

func flattenSS(chains []entity.BackboneChain, residueCount int) []entity.SSType {
	out := make([]entity.SSType, 0, residueCount)
	for _, c := range chains {
		if c.SS == nil {
			for range c.Residues {
				out = append(out, entity.SSCoil)
			}
			continue
		}
		out = append(out, c.SS...)
	}
	return out
}
