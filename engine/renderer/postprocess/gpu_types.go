// Package postprocess implements the screen-space ambient occlusion, bloom,
// and tonemap/fog/outline composite passes chained after the geometry pass,
// each owning one intermediate texture recreated on resize.
package postprocess

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-go/internal/options"
)

// GPUSSAOParamsSource is the canonical WGSL definition of SSAOParams.
//
//go:embed assets/ssao_params.wgsl
var GPUSSAOParamsSource string

// GPUCompositeParamsSource is the canonical WGSL definition of CompositeParams.
//
//go:embed assets/composite_params.wgsl
var GPUCompositeParamsSource string

// GPUSSAOParams mirrors SSAOParams in ssao_params.wgsl (16 bytes).
type GPUSSAOParams struct {
	Radius   float32
	Bias     float32
	Power    float32
	Strength float32
}

func (g *GPUSSAOParams) Size() int { return int(unsafe.Sizeof(*g)) }

func (g *GPUSSAOParams) Marshal() []byte {
	buf := make([]byte, 16)
	putF32(buf[0:4], g.Radius)
	putF32(buf[4:8], g.Bias)
	putF32(buf[8:12], g.Power)
	putF32(buf[12:16], g.Strength)
	return buf
}

// SSAOParamsFromOptions builds GPUSSAOParams from the geometry/postprocess
// options the renderer is configured with.
func SSAOParamsFromOptions(geo options.GeometryOptions, pp options.PostProcessingOptions) GPUSSAOParams {
	return GPUSSAOParams{
		Radius:   pp.AoRadius,
		Bias:     pp.AoBias,
		Power:    pp.AoPower,
		Strength: pp.AoStrength,
	}
}

// GPUCompositeParams mirrors CompositeParams in composite_params.wgsl (32 bytes).
type GPUCompositeParams struct {
	FogStart              float32
	FogDensity            float32
	Exposure              float32
	AoStrength            float32
	OutlineThickness      float32
	OutlineStrength       float32
	NormalOutlineStrength float32
	BloomIntensity        float32
}

func (g *GPUCompositeParams) Size() int { return int(unsafe.Sizeof(*g)) }

func (g *GPUCompositeParams) Marshal() []byte {
	buf := make([]byte, 32)
	putF32(buf[0:4], g.FogStart)
	putF32(buf[4:8], g.FogDensity)
	putF32(buf[8:12], g.Exposure)
	putF32(buf[12:16], g.AoStrength)
	putF32(buf[16:20], g.OutlineThickness)
	putF32(buf[20:24], g.OutlineStrength)
	putF32(buf[24:28], g.NormalOutlineStrength)
	putF32(buf[28:32], g.BloomIntensity)
	return buf
}

// CompositeParamsFromOptions builds GPUCompositeParams from the live options.
func CompositeParamsFromOptions(pp options.PostProcessingOptions) GPUCompositeParams {
	return GPUCompositeParams{
		FogStart:              pp.FogStart,
		FogDensity:            pp.FogDensity,
		Exposure:              pp.Exposure,
		AoStrength:            pp.AoStrength,
		OutlineThickness:      pp.OutlineThickness,
		OutlineStrength:       pp.OutlineStrength,
		NormalOutlineStrength: pp.NormalOutlineStrength,
		BloomIntensity:        pp.BloomIntensity,
	}
}

func putF32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}
