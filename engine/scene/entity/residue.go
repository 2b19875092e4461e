package entity

// Residue is the unit of picking, selection, and coloring. Residues are
// addressed by a global u32 index assigned by the scene processor when
// concatenating per-entity meshes (see engine/scene/processor).
type Residue struct {
	// GlobalIndex is the residue's position in the flat, scene-wide arrays
	// (per-residue color buffer, SS-type buffer, selection bitset).
	GlobalIndex uint32
	// EntityID is the owning entity's id.
	EntityID uint32
	// LocalIndex is the residue's position within its owning entity, before
	// the scene processor's base-offset shift.
	LocalIndex uint32
	// ChainID is the entity-local chain this residue belongs to.
	ChainID uint8
	// Serial is the residue's serial number in the source file.
	Serial int32
	// SS is the residue's secondary-structure classification.
	SS SSType
}

// ResidueVisualState is the backbone N-Cα-C triple (or, for nucleic acids,
// the single phosphorus position replicated across all three slots) used by
// the animator as an interpolation endpoint.
type ResidueVisualState struct {
	N  [3]float32
	CA [3]float32
	C  [3]float32
}

// Lerp linearly interpolates between two visual states by t ∈ [0,1].
func (s ResidueVisualState) Lerp(to ResidueVisualState, t float32) ResidueVisualState {
	lerp3 := func(a, b [3]float32) [3]float32 {
		return [3]float32{
			a[0] + (b[0]-a[0])*t,
			a[1] + (b[1]-a[1])*t,
			a[2] + (b[2]-a[2])*t,
		}
	}
	return ResidueVisualState{
		N:  lerp3(s.N, to.N),
		CA: lerp3(s.CA, to.CA),
		C:  lerp3(s.C, to.C),
	}
}

// Distinct reports whether any of the three backbone atom positions differ
// from other by more than eps in any component. Used by the animator to skip
// writing residues whose start and target coincide (spec.md §4.6 epsilon of
// 1e-4 Å).
func (s ResidueVisualState) Distinct(other ResidueVisualState, eps float32) bool {
	differs := func(a, b [3]float32) bool {
		for i := 0; i < 3; i++ {
			d := a[i] - b[i]
			if d < 0 {
				d = -d
			}
			if d > eps {
				return true
			}
		}
		return false
	}
	return differs(s.N, other.N) || differs(s.CA, other.CA) || differs(s.C, other.C)
}

// BackboneChain is a sequence of N-Cα-C atom triplets (proteins) or a
// sequence of phosphorus atoms (nucleic acids), forming one independent
// spline domain. Chain boundaries within an entity are determined by
// contiguous runs of the same ChainID.
type BackboneChain struct {
	// ChainID is the entity-local chain identifier.
	ChainID uint8
	// Residues holds one ResidueVisualState per residue in chain order.
	Residues []ResidueVisualState
	// SS holds one SSType per residue, parallel to Residues. Nil means all
	// residues default to SSCoil.
	SS []SSType
	// IsNucleicAcid marks a phosphorus-only chain (nucleic acid) rather than
	// an N-Cα-C protein backbone.
	IsNucleicAcid bool
	// C1Prime optionally holds the C1' atom position per residue, used to
	// anchor nucleic-acid base rings (spec.md §4.5). Nil if not available.
	C1Prime [][3]float32
}

// SidechainAtom is a non-backbone atom bearing a local residue index.
type SidechainAtom struct {
	// ResidueLocalIndex is the owning residue's index within the entity.
	ResidueLocalIndex uint32
	// Position is the atom's xyz position in angstroms.
	Position [3]float32
	// Hydrophobic marks the residue as hydrophobic for ball-and-stick coloring.
	Hydrophobic bool
	// AtomName is the PDB atom name.
	AtomName string
}
