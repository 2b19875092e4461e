package geometry

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-go/engine/renderer/impostor"
	"github.com/Carmen-Shannon/oxy-go/engine/scene/entity"
)

// sidechainCapsuleRadius matches the original renderer's CAPSULE_RADIUS.
const sidechainCapsuleRadius = 0.3

var (
	hydrophobicColor = [3]float32{0.3, 0.5, 0.9}
	hydrophilicColor = [3]float32{0.95, 0.6, 0.2}
)

// GenerateSidechainCapsules implements the sidechain half of spec.md §4.4's
// sidechain/backbone split: sidechains render as a chain of capsules, not a
// separate sphere pass — "atoms" are simply the hemispherical caps at
// capsule endpoints (grounded on
// original_source/src/renderer/molecular/capsule_sidechain.rs).
//
// This package's input model has no explicit covalent bond list, so bonds
// are approximated: atoms of the same residue are connected in file order
// (PDB sidechain atoms are conventionally emitted in bonded branch order),
// and each residue's first sidechain atom is bonded back to its Cα.
func GenerateSidechainCapsules(atoms []entity.SidechainAtom, caPositions map[uint32][3]float32) []impostor.GPUCapsuleInstance {
	byResidue := make(map[uint32][]entity.SidechainAtom)
	for _, a := range atoms {
		byResidue[a.ResidueLocalIndex] = append(byResidue[a.ResidueLocalIndex], a)
	}

	residueIDs := make([]uint32, 0, len(byResidue))
	for id := range byResidue {
		residueIDs = append(residueIDs, id)
	}
	sort.Slice(residueIDs, func(i, j int) bool { return residueIDs[i] < residueIDs[j] })

	var out []impostor.GPUCapsuleInstance
	for _, residueIdx := range residueIDs {
		residueAtoms := byResidue[residueIdx]
		if ca, ok := caPositions[residueIdx]; ok && len(residueAtoms) > 0 {
			out = append(out, capsuleBetween(ca, residueAtoms[0].Position, residueAtoms[0].Hydrophobic))
		}
		for i := 0; i+1 < len(residueAtoms); i++ {
			a, b := residueAtoms[i], residueAtoms[i+1]
			out = append(out, capsuleBetween(a.Position, b.Position, a.Hydrophobic || b.Hydrophobic))
		}
	}
	return out
}

func capsuleBetween(a, b [3]float32, hydrophobic bool) impostor.GPUCapsuleInstance {
	color := hydrophilicColor
	if hydrophobic {
		color = hydrophobicColor
	}
	return impostor.GPUCapsuleInstance{
		EndpointA: a,
		Radius:    sidechainCapsuleRadius,
		EndpointB: b,
		ColorA:    color,
		ColorB:    color,
	}
}
