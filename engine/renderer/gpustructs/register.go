// Package gpustructs wires every GPU struct's embedded WGSL source into the
// shader pre-processor's struct registry. It exists purely to break an
// import cycle: engine/renderer/shader cannot import camera, mesh, impostor,
// material, lighting, or postprocess directly, because engine/renderer/pipeline
// imports shader, and mesh/impostor import pipeline. Any binary that
// constructs shaders must blank-import this package first, so its init()
// runs before the first shader.NewShader call. No package in this
// repository imports it.
package gpustructs

import (
	"github.com/Carmen-Shannon/oxy-go/engine/camera"
	"github.com/Carmen-Shannon/oxy-go/engine/lighting"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/impostor"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/mesh"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/postprocess"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/shader"
)

func init() {
	shader.RegisterStruct(shader.AnnotationArgCamera, camera.GPUCameraUniformSource, "CameraUniform")
	shader.RegisterStruct(shader.AnnotationArgBackboneVertex, mesh.GPUBackboneVertexSource, "VertexInput")
	shader.RegisterStruct(shader.AnnotationArgSphereInstance, impostor.GPUSphereInstanceSource, "SphereInstance")
	shader.RegisterStruct(shader.AnnotationArgCapsuleInstance, impostor.GPUCapsuleInstanceSource, "CapsuleInstance")
	shader.RegisterStruct(shader.AnnotationArgConeInstance, impostor.GPUConeInstanceSource, "ConeInstance")
	shader.RegisterStruct(shader.AnnotationArgPolygonInstance, impostor.GPUPolygonInstanceSource, "ExtrudedPolygonInstance")
	shader.RegisterStruct(shader.AnnotationArgOverlayParams, material.GPUOverlayParamsSource, "OverlayParams")
	shader.RegisterStruct(shader.AnnotationArgEffectParams, material.GPUEffectParamsSource, "EffectParams")
	shader.RegisterStruct(shader.AnnotationArgLightingUniform, lighting.GPULightingUniformSource, "LightingUniform")
	shader.RegisterStruct(shader.AnnotationArgSSAOParams, postprocess.GPUSSAOParamsSource, "SSAOParams")
	shader.RegisterStruct(shader.AnnotationArgCompositeParams, postprocess.GPUCompositeParamsSource, "CompositeParams")
}
