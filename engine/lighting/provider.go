package lighting

import (
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-go/internal/options"
)

// Binding indices within the lighting bind group, matching the
// @oxy:group declarations in the shader assets that include
// lighting_uniform.wgsl.
const (
	BindingUniform     = 0
	BindingIrradiance  = 1
	BindingPrefiltered = 2
	BindingBRDFLut     = 3
	BindingSampler     = 4
)

// Lighting owns the baked IBL textures and the per-frame uniform buffer,
// and exposes the BindGroupProvider that lit passes bind as group 2.
//
// This package deliberately has no dependency on engine/renderer: it is
// embedded into engine/renderer/shader's struct registry for
// GPULightingUniformSource, and engine/renderer itself imports
// engine/renderer/shader, so a reverse edge here would form an import
// cycle. A caller holding a renderer.Renderer handle performs the actual
// InitTextureView/InitSampler/InitBindGroup calls against the Baked
// textures and this provider, the same way scene.go wires the camera's
// bind group rather than the camera package. No package in this
// repository constructs a Lighting.
type Lighting struct {
	provider bind_group_provider.BindGroupProvider
	baked    Baked
	uniform  GPULightingUniform
}

// New creates a Lighting resource holder from already-baked IBL data and an
// empty BindGroupProvider. The caller is responsible for
// populating the provider's texture views, sampler, and uniform buffer via
// the renderer before using BindGroupProvider() in a DrawCall.
func New(opts options.LightingOptions) *Lighting {
	baked := Bake(opts)
	return &Lighting{
		provider: bind_group_provider.NewBindGroupProvider("Lighting"),
		baked:    baked,
		uniform:  UniformFromOptions(opts, baked.MipCount),
	}
}

// BindGroupProvider returns the bind-group provider for this lighting
// resource set, for use as a bindGroups entry in DrawCall. It is empty
// until the caller wires its textures, sampler, and uniform buffer onto it.
func (l *Lighting) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return l.provider
}

// Baked returns the CPU-synthesized IBL textures for the caller to upload.
func (l *Lighting) Baked() Baked {
	return l.baked
}

// SetOptions updates the scalar uniform fields from a (possibly
// hot-reloaded) options snapshot. The caller is responsible for writing
// the marshaled bytes to the GPU buffer via the renderer's WriteBuffers.
func (l *Lighting) SetOptions(opts options.LightingOptions) {
	l.uniform = UniformFromOptions(opts, l.baked.MipCount)
}

// Uniform returns the current CPU-side uniform snapshot.
func (l *Lighting) Uniform() GPULightingUniform {
	return l.uniform
}

// UniformFromOptions maps lighting options onto the GPU uniform layout.
func UniformFromOptions(opts options.LightingOptions, mipCount int) GPULightingUniform {
	return GPULightingUniform{
		Light1Dir:           opts.Light1Dir,
		Light1Intensity:     opts.Light1Intensity,
		Light2Dir:           opts.Light2Dir,
		Light2Intensity:     opts.Light2Intensity,
		Ambient:             opts.Ambient,
		RimPower:            opts.RimPower,
		RimIntensity:        opts.RimIntensity,
		RimDirectionality:   opts.RimDirectionality,
		RimColor:            opts.RimColor,
		IblStrength:         opts.IblStrength,
		SpecularIntensity:   opts.SpecularIntensity,
		Shininess:           opts.Shininess,
		Roughness:           opts.Roughness,
		Metalness:           opts.Metalness,
		PrefilteredMipCount: float32(mipCount),
	}
}
