// annotations.go defines the annotation types, argument constants, and parser for the
// Oxy WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed
// with @oxy: that drive automatic struct injection, bind group declaration, and resource
// provider registration. The parsed results are stored as Annotation values and consumed
// by the PreProcessor and Scene to wire GPU resources without manual low-level plumbing.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a WGSL comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
// Each type corresponds to a distinct pre-processor action and produces different
// fields on the resulting Annotation struct.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct definition
	// into the shader at the annotation site. The struct source is embedded from the
	// corresponding Go GPU type's .wgsl asset file. This annotation does not produce
	// a declaration and is consumed entirely during pre-processing.
	//
	// Syntax: //@oxy:include <struct_type>
	//
	// Example: //@oxy:include camera
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration
	// and appends an Annotation to the PreProcessor's declarations list. The declaration
	// carries the group index, binding index, and the resolved struct type, enabling the
	// Scene to semantically match bindings to resource providers without string lookups.
	//
	// Syntax: //@oxy:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@oxy:group 0 0 storage_uniform camera camera
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider registers a resource provider identity for a group and binding
	// without generating any WGSL output. The WGSL binding declaration remains hand-written
	// in the shader source directly below the annotation. This is used for bindings that
	// contain raw WGSL types (textures, samplers, flat arrays of primitives) which have no
	// corresponding registered struct in the pre-processor's struct registry.
	//
	// An optional binding role can be appended after the provider identity to declare the
	// semantic purpose of an individual binding within a multi-binding provider group.
	//
	// Syntax:
	//   //@oxy:provider <group> <binding> <provider_identity>
	//   //@oxy:provider <group> <binding> <provider_identity> <binding_role>
	//
	// Examples:
	//   //@oxy:provider 3 0 lighting irradiance_cubemap
	//   //@oxy:provider 4 0 picking
	AnnotationTypeProvider AnnotationType = "provider"
)

// Annotation represents a single parsed @oxy: annotation from a WGSL shader source line.
// It carries the annotation type, its arguments, the source line number, and optional
// group/binding indices. Annotations of type AnnotationTypeBindingGroup and
// AnnotationTypeProvider are appended to the PreProcessor's declarations list for
// consumption by the Scene during resource wiring.
type Annotation struct {
	// Type identifies which annotation was parsed (include, group, or provider).
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include:  [0] = struct type key (e.g. "camera")
	//   - group:    [0] = address space, [1] = var name, [2] = WGSL type key
	//   - provider: [0] = provider identity (e.g. "lighting", "picking"), [1] = binding role (optional)
	Args []AnnotationArg

	// Line is the 1-based line number in the original WGSL source where this annotation
	// was found. Used for error reporting.
	Line int

	// Group is the @group index for group and provider annotations. Nil for include annotations.
	Group *int

	// Binding is the @binding index for group and provider annotations. Nil for include annotations.
	Binding *int
}

// AnnotationArg is a typed string constant used as an argument in annotations.
// Arguments fall into three categories: struct type keys (used with include and group),
// address space identifiers (used with group), and provider identity keys (used with provider).
type AnnotationArg string

// ── Struct type arguments ──────────────────────────────────────────────────────
// These identify registered WGSL struct types. They can appear in @oxy:include annotations
// (to inject the struct source) and in @oxy:group annotations (as the type field, optionally
// wrapped in array<>). Each maps to a Go GPU type with an embedded .wgsl asset file.

const (
	// AnnotationArgCamera identifies the CameraUniform struct.
	// Source: engine/camera/assets/camera_uniform.wgsl
	AnnotationArgCamera AnnotationArg = "camera"

	// AnnotationArgBackboneVertex identifies the GPUBackboneVertex struct shared by the
	// tube and ribbon passes.
	// Source: engine/renderer/mesh/assets/backbone_vertex.wgsl
	AnnotationArgBackboneVertex AnnotationArg = "backbone_vertex"

	// AnnotationArgSphereInstance identifies the per-instance sphere impostor struct.
	// Source: engine/renderer/impostor/assets/sphere.wgsl
	AnnotationArgSphereInstance AnnotationArg = "sphere_instance"

	// AnnotationArgCapsuleInstance identifies the per-instance capsule impostor struct,
	// shared by the sidechain-bond pass and the nucleic-acid backbone-stem pass.
	// Source: engine/renderer/impostor/assets/capsule.wgsl
	AnnotationArgCapsuleInstance AnnotationArg = "capsule_instance"

	// AnnotationArgConeInstance identifies the per-instance truncated-cone impostor struct.
	// Source: engine/renderer/impostor/assets/cone.wgsl
	AnnotationArgConeInstance AnnotationArg = "cone_instance"

	// AnnotationArgPolygonInstance identifies the per-instance extruded-polygon impostor
	// struct used for nucleic-acid base rings.
	// Source: engine/renderer/impostor/assets/polygon.wgsl
	AnnotationArgPolygonInstance AnnotationArg = "polygon_instance"

	// AnnotationArgOverlayParams identifies the OverlayParams material struct, used by the
	// picking pass's selection-highlight overlay.
	// Source: engine/renderer/material/assets/overlay_params.wgsl
	AnnotationArgOverlayParams AnnotationArg = "overlay_params"

	// AnnotationArgEffectParams identifies the EffectParams material struct, used by the
	// post-process composite pass's tint/fade.
	// Source: engine/renderer/material/assets/effect_params.wgsl
	AnnotationArgEffectParams AnnotationArg = "effect_params"

	// AnnotationArgLightingUniform identifies the IBL lighting uniform struct (exposure,
	// ambient intensity, prefiltered mip count).
	// Source: engine/lighting/assets/lighting_uniform.wgsl
	AnnotationArgLightingUniform AnnotationArg = "lighting_uniform"

	// AnnotationArgSSAOParams identifies the SSAO pass's sample-kernel uniform struct.
	// Source: engine/renderer/postprocess/assets/ssao_params.wgsl
	AnnotationArgSSAOParams AnnotationArg = "ssao_params"

	// AnnotationArgCompositeParams identifies the composite pass's fog/tonemap/outline
	// uniform struct.
	// Source: engine/renderer/postprocess/assets/composite_params.wgsl
	AnnotationArgCompositeParams AnnotationArg = "composite_params"

	// AnnotationArgPickingUniform identifies the picking pass's cursor-position uniform
	// struct. No package in this repository registers a struct source for it, so
	// Process returns an error for an @oxy:include of it.
	AnnotationArgPickingUniform AnnotationArg = "picking_uniform"
)

// ── Address space arguments ────────────────────────────────────────────────────
// These specify the WGSL variable address space in @oxy:group annotations.
// They map to WGSL var<> declarations.

const (
	// annotationArgStorageTypeUniform maps to var<uniform> in WGSL.
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	// annotationArgStorageTypeRead maps to var<storage, read> in WGSL.
	annotationArgStorageTypeRead AnnotationArg = "storage_read"

	// annotationArgStorageTypeReadWrite maps to var<storage, read_write> in WGSL.
	annotationArgStorageTypeReadWrite AnnotationArg = "storage_read_write"
)

// ── Provider identity arguments ────────────────────────────────────────────────
// These identify which Scene-level resource provider owns a bind group. Used in
// @oxy:provider annotations and matched by the Scene's draw call resolution logic to
// wire the correct BindGroupProvider for each group.

const (
	// AnnotationArgCameraProvider identifies the camera uniform provider.
	AnnotationArgCameraProvider AnnotationArg = "camera"

	// AnnotationArgLighting identifies the IBL lighting provider (uniform + irradiance,
	// prefiltered, and BRDF LUT textures + one shared sampler).
	AnnotationArgLighting AnnotationArg = "lighting"

	// AnnotationArgPicking identifies the picking pass's R32Uint target and selection
	// bitset storage buffer.
	AnnotationArgPicking AnnotationArg = "picking"

	// AnnotationArgOverlay identifies the selection-highlight overlay provider.
	AnnotationArgOverlay AnnotationArg = "overlay"

	// AnnotationArgGBuffer identifies the post-process chain's color/normal/depth
	// G-buffer provider, read by SSAO and composite.
	AnnotationArgGBuffer AnnotationArg = "gbuffer"

	// AnnotationArgSSAO identifies the SSAO occlusion texture provider, read by composite.
	AnnotationArgSSAO AnnotationArg = "ssao"

	// AnnotationArgBloom identifies the bloom half-res texture provider, read by composite.
	AnnotationArgBloom AnnotationArg = "bloom"

	// AnnotationArgComposite identifies the composite output texture provider. No FXAA
	// pass exists in this repository; CompositePass renders to the swapchain.
	AnnotationArgComposite AnnotationArg = "composite"
)

// ── Lighting texture binding role arguments ────────────────────────────────────
// These qualify individual bindings within the lighting provider group. They appear
// as the optional fourth argument of an @oxy:provider annotation when the provider
// identity is "lighting", telling the loader which IBL texture or sampler role each
// binding fulfils without relying on variable-name string matching.

const (
	// AnnotationArgIrradianceCubemap identifies the diffuse irradiance cubemap binding.
	AnnotationArgIrradianceCubemap AnnotationArg = "irradiance_cubemap"

	// AnnotationArgPrefilteredCubemap identifies the roughness-mipped prefiltered
	// environment cubemap binding.
	AnnotationArgPrefilteredCubemap AnnotationArg = "prefiltered_cubemap"

	// AnnotationArgBRDFLut identifies the split-sum BRDF integration LUT binding.
	AnnotationArgBRDFLut AnnotationArg = "brdf_lut"

	// AnnotationArgIBLSampler identifies the shared filtering sampler for all three IBL
	// textures.
	AnnotationArgIBLSampler AnnotationArg = "ibl_sampler"
)

// validStructTypes lists all AnnotationArg values that are accepted as struct type
// arguments in @oxy:include and @oxy:group annotations. Each entry must have a
// corresponding registryEntry in the PreProcessor's structRegistry.
var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgBackboneVertex,
	AnnotationArgSphereInstance,
	AnnotationArgCapsuleInstance,
	AnnotationArgConeInstance,
	AnnotationArgPolygonInstance,
	AnnotationArgOverlayParams,
	AnnotationArgEffectParams,
	AnnotationArgLightingUniform,
	AnnotationArgSSAOParams,
	AnnotationArgCompositeParams,
	AnnotationArgPickingUniform,
}

// validAddressSpaces lists all AnnotationArg values that are accepted as address
// space arguments in @oxy:group annotations. Each maps to a WGSL var<> declaration.
var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
	annotationArgStorageTypeReadWrite,
}

// validProviderIdentities lists all AnnotationArg values that are accepted as
// provider identity arguments in @oxy:provider annotations. Each maps to a
// Scene-level resource provider used during draw call wiring.
var validProviderIdentities = []AnnotationArg{
	AnnotationArgCameraProvider,
	AnnotationArgLighting,
	AnnotationArgPicking,
	AnnotationArgOverlay,
	AnnotationArgGBuffer,
	AnnotationArgSSAO,
	AnnotationArgBloom,
	AnnotationArgComposite,
}

// validBindingRoles lists all AnnotationArg values that are accepted as binding
// role qualifiers in @oxy:provider annotations. These identify the semantic purpose
// of individual bindings within a multi-binding provider group.
var validBindingRoles = []AnnotationArg{
	AnnotationArgIrradianceCubemap,
	AnnotationArgPrefilteredCubemap,
	AnnotationArgBRDFLut,
	AnnotationArgIBLSampler,
}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix. Returns
// a populated Annotation for valid annotations, or an error describing the problem for
// malformed annotations with correct prefix but invalid syntax or unknown arguments.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @oxy group annotation requires exactly four arguments (group number, binding number, address space, struct type)", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q in @oxy group annotation: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @oxy group annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @oxy group annotation", lineNum, args[3])
		}
		typeArg := args[5]
		if inner, ok := strings.CutPrefix(typeArg, "array<"); ok {
			inner = strings.TrimSuffix(inner, ">")
			if !slices.Contains(validStructTypes, AnnotationArg(inner)) {
				return nil, fmt.Errorf("line %d: unknown array element type %q in @oxy group annotation", lineNum, inner)
			}
		} else {
			if !slices.Contains(validStructTypes, AnnotationArg(typeArg)) {
				return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy group annotation", lineNum, typeArg)
			}
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	case string(AnnotationTypeProvider):
		if len(args) < 4 || len(args) > 5 {
			return nil, fmt.Errorf("line %d: @oxy provider annotation requires three or four arguments (group, binding, provider identity[, binding role])", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @oxy provider annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validProviderIdentities, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown provider identity %q in @oxy provider annotation", lineNum, args[3])
		}
		providerArgs := []AnnotationArg{AnnotationArg(args[3])}
		if len(args) == 5 {
			if !slices.Contains(validBindingRoles, AnnotationArg(args[4])) {
				return nil, fmt.Errorf("line %d: unknown binding role %q in @oxy provider annotation", lineNum, args[4])
			}
			providerArgs = append(providerArgs, AnnotationArg(args[4]))
		}
		return &Annotation{
			Type:    AnnotationTypeProvider,
			Args:    providerArgs,
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}
