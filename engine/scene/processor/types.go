// Package processor implements the background scene processor of spec.md
// §4.7: a single worker that caches per-entity generated geometry and
// concatenates it into the scene-global byte buffers the renderer uploads.
package processor

import (
	"github.com/Carmen-Shannon/oxy-go/engine/scene/entity"
	"github.com/Carmen-Shannon/oxy-go/internal/options"
)

// PerEntityData is one entity's raw input to a FullRebuild: its atoms,
// optional per-residue scores, and (for nucleic acids) pre-resolved ring
// topology.
type PerEntityData struct {
	EntityID    uint32
	Kind        entity.MoleculeKind
	MeshVersion uint64
	Atoms       []entity.Atom
	Scores      []float64
	Rings       []entity.NucleotideRing
}

// AnimatedEntity is one entity's interpolated positions for an
// AnimationFrame request, in the same entity-local residue/atom ordering the
// prior FullRebuild established for it.
type AnimatedEntity struct {
	EntityID         uint32
	Backbone         []entity.ResidueVisualState
	Sidechain        [][3]float32
	SidechainVisible bool
}

// FullRebuildRequest asks the worker to regenerate any entity whose cache
// key changed and re-concatenate the whole scene.
type FullRebuildRequest struct {
	Generation  uint64
	Entities    []PerEntityData
	Transitions map[uint32]entity.Transition
	Display     options.DisplayOptions
	Colors      options.ColorOptions
	Geometry    options.GeometryOptions
}

// AnimationFrameRequest asks the worker to regenerate only the byte ranges
// touched by currently-animating entities, without disturbing the per-entity
// mesh cache. BaseGeneration must match the generation of the FullRebuild
// the caller's byte offsets were computed against; a mismatch means the
// scene topology changed underneath the animation and the result is stale.
type AnimationFrameRequest struct {
	Generation     uint64
	BaseGeneration uint64
	Entities       []AnimatedEntity
	Colors         options.ColorOptions
	Geometry       options.GeometryOptions
}

// EntityResidueRange records one entity's contribution to the scene-global
// residue index space: residues [Offset, Offset+Count) belong to EntityID.
type EntityResidueRange struct {
	EntityID uint32
	Offset   uint32
	Count    uint32
}

// EntityByteLayout records the scene-global byte/element offsets a later
// AnimationFrame needs to patch an entity's contribution in place, without
// re-running concatenation for the whole scene.
type EntityByteLayout struct {
	EntityID            uint32
	ResidueOffset       uint32
	VertexByteOffset    uint64
	VertexByteLen       uint64
	SidechainByteOffset uint64
	SidechainByteLen    uint64
}

// PreparedScene is the result of a FullRebuild: scene-global byte buffers
// ready for GPU upload, plus metadata the renderer needs to draw and fit the
// camera.
type PreparedScene struct {
	Generation uint64

	BackboneVertices []byte
	TubeIndices      []uint32
	RibbonIndices    []uint32
	ChainRanges      []geometryChainRange

	SphereInstances    []byte
	SidechainInstances []byte // capsule impostor instances
	ConeInstances      []byte
	NaStemInstances    []byte // capsule impostor instances
	NaRingInstances    []byte // extruded-polygon impostor instances

	ResidueColors       []byte // vec3 per residue, scene-global order
	SSTypes             []entity.SSType
	EntityResidueRanges []EntityResidueRange
	EntityLayouts       []EntityByteLayout
	AllPositions        [][3]float32 // every backbone sample, for camera fit
	Transitions         map[uint32]entity.Transition
}

// PreparedAnimationFrame is the result of an AnimationFrame request: only
// the buffers that changed, addressed by byte offset into the buffers
// established by the most recent PreparedScene.
type PreparedAnimationFrame struct {
	Generation     uint64
	BaseGeneration uint64
	Stale          bool

	VertexPatches    []BytePatch
	SidechainPatches []BytePatch
}

// BytePatch is a contiguous byte range replacement within an already-sized
// GPU buffer.
type BytePatch struct {
	Offset uint64
	Data   []byte
}

// geometryChainRange mirrors geometry.ChainRange with scene-global index
// offsets substituted for entity-local ones, avoiding an import of the
// geometry package's entity-local type into this package's public result.
type geometryChainRange struct {
	EntityID         uint32
	ChainID          uint8
	TubeIndexStart   uint32
	TubeIndexCount   uint32
	RibbonIndexStart uint32
	RibbonIndexCount uint32
	Center           [3]float32
	Radius           float32
}
