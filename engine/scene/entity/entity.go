// Package entity defines the molecular data model: entities, residues,
// backbone chains, and sidechain atoms. These are plain data records, not
// interface-wrapped GPU resources — they are owned by the scene and consumed
// by the background scene processor to generate geometry.
package entity

// MoleculeKind classifies the kind of molecular assembly an Entity represents.
type MoleculeKind int

const (
	// KindProtein is a polypeptide chain with an N-Cα-C backbone.
	KindProtein MoleculeKind = iota
	// KindDNA is a deoxyribonucleic acid chain.
	KindDNA
	// KindRNA is a ribonucleic acid chain.
	KindRNA
	// KindLigand is a small-molecule ligand.
	KindLigand
	// KindIon is a single monatomic ion.
	KindIon
	// KindWater is a water molecule.
	KindWater
	// KindLipid is a lipid molecule.
	KindLipid
)

// SSType is the per-residue secondary-structure classification.
type SSType int

const (
	// SSCoil is the default, unstructured classification.
	SSCoil SSType = iota
	// SS310 is a 3-10 helix.
	SS310
	// SSHelix is an alpha helix.
	SSHelix
	// SSSheet is a beta sheet strand.
	SSSheet
)

// Element is the periodic-table element of an atom, restricted to the subset
// commonly found in macromolecular structures.
type Element uint8

// Common elements found in PDB/mmCIF coordinate data. Unlisted elements fall
// back to ElementOther and are colored/radiused via the generic default.
const (
	ElementOther Element = iota
	ElementC
	ElementN
	ElementO
	ElementS
	ElementP
	ElementH
	ElementFe
	ElementZn
	ElementMg
	ElementCa
	ElementNa
	ElementCl
	ElementK
)

// VdWRadius returns the van der Waals radius in angstroms for this element,
// used as the default sphere-impostor radius for space-filling display.
func (e Element) VdWRadius() float32 {
	switch e {
	case ElementH:
		return 1.10
	case ElementC:
		return 1.70
	case ElementN:
		return 1.55
	case ElementO:
		return 1.52
	case ElementS:
		return 1.80
	case ElementP:
		return 1.80
	case ElementFe:
		return 1.94
	case ElementZn:
		return 1.39
	case ElementMg:
		return 1.73
	case ElementCa:
		return 1.97
	case ElementNa:
		return 2.27
	case ElementCl:
		return 1.75
	case ElementK:
		return 2.75
	default:
		return 1.70
	}
}

// CPKColor returns the default CPK-convention RGB color for this element.
func (e Element) CPKColor() [3]float32 {
	switch e {
	case ElementH:
		return [3]float32{1, 1, 1}
	case ElementC:
		return [3]float32{0.3, 0.3, 0.3}
	case ElementN:
		return [3]float32{0.2, 0.2, 1}
	case ElementO:
		return [3]float32{1, 0.2, 0.2}
	case ElementS:
		return [3]float32{1, 0.85, 0.2}
	case ElementP:
		return [3]float32{1, 0.5, 0}
	case ElementFe:
		return [3]float32{0.8, 0.4, 0.2}
	default:
		return [3]float32{0.9, 0.4, 0.9}
	}
}

// Atom is a single coordinate-block record.
type Atom struct {
	// Position is the atom's xyz position in angstroms.
	Position [3]float32
	// Element is the atom's periodic-table element.
	Element Element
	// ChainID is the entity-local chain identifier.
	ChainID uint8
	// ResidueSerial is the residue's serial number in the source file.
	ResidueSerial int32
	// AtomName is the PDB atom name, e.g. "CA", "N", "C", "P".
	AtomName string
	// Hydrophobic marks sidechain atoms belonging to a hydrophobic residue,
	// consumed only when the atom is not a backbone atom.
	Hydrophobic bool
}

// Entity is a molecular assembly: a unique id, a molecule kind, and a
// coordinate block. Mutating an entity's atoms must go through
// BumpMeshVersion so the scene processor's per-entity cache is invalidated.
type Entity struct {
	// ID is the globally unique identifier assigned by Scene.AddEntities.
	ID uint32
	// Kind is the molecule kind.
	Kind MoleculeKind
	// Atoms holds every atom's coordinate-block record, in file order.
	Atoms []Atom
	// SecondaryStructure optionally holds a per-residue SS type, indexed by
	// the residue's position in BackboneChains, not by ResidueSerial
	// directly. The scene processor does not read it: ExtractTopology
	// classifies every residue as SSCoil.
	SecondaryStructure []SSType
	// Scores optionally carries a per-residue score used for coloring.
	// Nil means no scores were supplied; the scene processor then uses the
	// fallback color (0.7, 0.7, 0.7).
	Scores []float64
	// Rings optionally carries nucleic-acid base ring topology (KindDNA/
	// KindRNA only). Ring membership depends on per-residue base identity,
	// which the host loader already resolved when it parsed the structure,
	// so it arrives pre-built rather than being derived from AtomName here.
	Rings []NucleotideRing
	// meshVersion increments on every coordinate or topology mutation.
	meshVersion uint64
}

// MeshVersion returns the entity's current mesh-version counter.
func (e *Entity) MeshVersion() uint64 {
	return e.meshVersion
}

// BumpMeshVersion increments the mesh-version counter, invalidating any
// scene-processor cache entry keyed on the previous value. Call this after
// any mutation to Atoms, SecondaryStructure topology, or Kind.
func (e *Entity) BumpMeshVersion() {
	e.meshVersion++
}

// SetPerResidueScores replaces the entity's per-residue scores. Unlike
// BumpMeshVersion-triggering mutations, this does not invalidate the mesh
// cache — per spec, score changes recolor existing geometry rather than
// regenerating it.
func (e *Entity) SetPerResidueScores(scores []float64) {
	e.Scores = scores
}

// UpdateProteinCoords replaces the backbone/sidechain coordinates for a
// protein entity in place and bumps the mesh-version counter.
func (e *Entity) UpdateProteinCoords(atoms []Atom) {
	e.Atoms = atoms
	e.BumpMeshVersion()
}
