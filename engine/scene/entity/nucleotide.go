package entity

// NucleotideRing is one nucleotide's base-ring geometry: the six-membered
// ring shared by all bases, and, for purines, the additional five-membered
// ring. Rings are supplied pre-extracted from the source coordinate block —
// this package does not know which atom names compose a ring, only their
// resolved positions.
type NucleotideRing struct {
	// ResidueLocalIndex is the owning residue's index within the chain.
	ResidueLocalIndex uint32
	// HexRing holds the six-membered ring's atom positions in order.
	HexRing [][3]float32
	// PentRing holds the five-membered ring's atom positions in order, or nil
	// for pyrimidines (which have only the hex ring).
	PentRing [][3]float32
	// C1Prime is the ring's C1' anchor position, if available.
	C1Prime *[3]float32
	// Color is the ring's base color (e.g. per-nucleotide-type coloring).
	Color [3]float32
}
