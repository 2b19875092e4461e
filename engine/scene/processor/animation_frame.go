package processor

import (
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/mesh"
	"github.com/Carmen-Shannon/oxy-go/engine/scene/entity"
	"github.com/Carmen-Shannon/oxy-go/engine/scene/geometry"
)

// regenerateBackboneBytes rebuilds one entity's backbone vertex bytes from
// freshly interpolated positions, reusing the chain topology (SS, chain
// boundaries, IsNucleicAcid) and per-residue colors captured at the last
// FullRebuild — spec.md §4.7 step 4: "regenerates backbone ... instance
// bytes from the interpolated positions but does not touch cached per-entity
// meshes". newBackbone is entity-local, parallel to the flattened residue
// order of cached.chains.
func regenerateBackboneBytes(cached *cachedEntityMesh, newBackbone []entity.ResidueVisualState, globalResidueOffset uint32) []byte {
	var out []byte
	var chainResidueBase uint32
	var consumed int

	for _, chain := range cached.chains {
		n := len(chain.Residues)
		base := chainResidueBase
		chainResidueBase += uint32(n)

		if chain.IsNucleicAcid {
			consumed += n
			continue
		}

		updated := chain
		if consumed+n <= len(newBackbone) {
			updated.Residues = append([]entity.ResidueVisualState(nil), newBackbone[consumed:consumed+n]...)
		}
		consumed += n

		perResidueColor := func(localResidueIdx uint32) [3]float32 {
			global := int(base + localResidueIdx)
			if global < len(cached.residueColors) {
				return cached.residueColors[global]
			}
			return fallbackResidueColor
		}

		gen := geometry.GenerateBackboneChain(updated, base, perResidueColor)
		for i := range gen.Vertices {
			out = append(out, gen.Vertices[i].Marshal()...)
		}
	}

	mesh.PatchResidueIdx(out, globalResidueOffset)
	return out
}

// regenerateSidechainBytes rebuilds one entity's sidechain capsule instance
// bytes from freshly interpolated atom positions, parallel to
// cached.sidechainAtoms.
func regenerateSidechainBytes(cached *cachedEntityMesh, positions [][3]float32) []byte {
	if len(positions) != len(cached.sidechainAtoms) {
		return cached.sidechainInstances
	}

	atoms := make([]entity.SidechainAtom, len(cached.sidechainAtoms))
	for i, a := range cached.sidechainAtoms {
		a.Position = positions[i]
		atoms[i] = a
	}

	capsules := geometry.GenerateSidechainCapsules(atoms, cached.caPositions)
	var out []byte
	for i := range capsules {
		out = append(out, capsules[i].Marshal()...)
	}
	return out
}
