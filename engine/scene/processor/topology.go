package processor

import "github.com/Carmen-Shannon/oxy-go/engine/scene/entity"

// ExtractTopology groups an entity's flat atom list into backbone chains and
// sidechain atoms. Chain and residue boundaries are contiguous runs of equal
// ChainID and ResidueSerial in atom order — the host loader is expected to
// emit atoms residue-by-residue, so no sorting is performed.
//
// The returned residue-local indices (SidechainAtom.ResidueLocalIndex and the
// keys of caPositions) are entity-local, counted across all chains in
// encounter order: chain 0's residues occupy [0, len(chain0.Residues)), chain
// 1's occupy the next span, and so on. This matches the chainResidueBase a
// caller passes to geometry.GenerateBackboneChain, so sidechain anchors and
// backbone vertices agree on residue numbering before the scene processor's
// concatenation step shifts everything into the scene-global space.
func ExtractTopology(atoms []entity.Atom) (chains []entity.BackboneChain, sidechains []entity.SidechainAtom, caPositions map[uint32][3]float32) {
	caPositions = make(map[uint32][3]float32)
	if len(atoms) == 0 {
		return nil, nil, caPositions
	}

	var entityResidueIdx uint32
	i := 0
	for i < len(atoms) {
		chainID := atoms[i].ChainID
		chain := entity.BackboneChain{ChainID: chainID}

		for i < len(atoms) && atoms[i].ChainID == chainID {
			serial := atoms[i].ResidueSerial
			j := i
			var residueAtoms []entity.Atom
			for j < len(atoms) && atoms[j].ChainID == chainID && atoms[j].ResidueSerial == serial {
				residueAtoms = append(residueAtoms, atoms[j])
				j++
			}

			visual, isNA, c1prime, extras := classifyResidue(residueAtoms)
			chain.Residues = append(chain.Residues, visual)
			chain.SS = append(chain.SS, entity.SSCoil)
			chain.C1Prime = append(chain.C1Prime, c1prime)
			if isNA {
				chain.IsNucleicAcid = true
			}

			localIdx := entityResidueIdx
			if !isNA {
				caPositions[localIdx] = visual.CA
			}
			for _, a := range extras {
				sidechains = append(sidechains, entity.SidechainAtom{
					ResidueLocalIndex: localIdx,
					Position:          a.Position,
					Hydrophobic:       a.Hydrophobic,
					AtomName:          a.AtomName,
				})
			}

			entityResidueIdx++
			i = j
		}

		chains = append(chains, chain)
	}

	return chains, sidechains, caPositions
}

// classifyResidue splits one residue's atoms into its backbone visual state
// and its sidechain (non-backbone) atoms. A "P" atom with no "CA" marks a
// nucleic acid residue, whose single phosphorus position is replicated
// across all three ResidueVisualState slots per entity.ResidueVisualState's
// nucleic-acid convention.
func classifyResidue(atoms []entity.Atom) (visual entity.ResidueVisualState, isNucleicAcid bool, c1prime [3]float32, sidechain []entity.Atom) {
	var n, ca, c, p [3]float32
	var haveN, haveCA, haveC, haveP bool

	for _, a := range atoms {
		switch a.AtomName {
		case "N":
			n, haveN = a.Position, true
		case "CA":
			ca, haveCA = a.Position, true
		case "C":
			c, haveC = a.Position, true
		case "P":
			p, haveP = a.Position, true
		case "C1'":
			c1prime = a.Position
		}
	}

	if haveP && !haveCA {
		isNucleicAcid = true
		visual = entity.ResidueVisualState{N: p, CA: p, C: p}
	} else {
		visual = entity.ResidueVisualState{N: n, CA: ca, C: c}
	}
	_ = haveN
	_ = haveC

	for _, a := range atoms {
		if isNucleicAcid {
			if a.AtomName == "P" {
				continue
			}
		} else if a.AtomName == "N" || a.AtomName == "CA" || a.AtomName == "C" {
			continue
		}
		sidechain = append(sidechain, a)
	}
	return visual, isNucleicAcid, c1prime, sidechain
}
