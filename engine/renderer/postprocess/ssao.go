package postprocess

import (
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group 1 layout for the SSAO pass: SSAOParams uniform, depth texture,
// normal texture, and a shared clamp-to-edge sampler. Group 0 is the
// screen quad's CameraUniform, bound the same way every other pass binds it.
const (
	BindingSSAOParams = 0
	BindingSSAODepth  = 1
	BindingSSAONormal = 2
	BindingSSAOSamp   = 3
)

// SSAOPass computes a screen-space ambient occlusion factor into a single-
// channel intermediate texture by sampling the geometry pass's depth and
// normal outputs over a radius-bounded hemisphere, spec.md §4.8. It is an
// offscreen pass: its target is the AO texture the composite pass later
// samples, not the swapchain.
type SSAOPass struct {
	label     string
	pipeline  pipeline.Pipeline
	bindGroup bind_group_provider.BindGroupProvider
}

// NewSSAOPass wraps an already-built pipeline and bind group provider. The
// scene constructs the pipeline (PipelineTypeOffscreen, color-only,
// R8Unorm target) and wires the provider's depth/normal texture views and
// sampler before passes are drawn.
func NewSSAOPass(label string, p pipeline.Pipeline, bg bind_group_provider.BindGroupProvider) *SSAOPass {
	return &SSAOPass{label: label, pipeline: p, bindGroup: bg}
}

func (s *SSAOPass) Label() string { return s.label }

func (s *SSAOPass) Pipeline() pipeline.Pipeline { return s.pipeline }

func (s *SSAOPass) BindGroupProvider() bind_group_provider.BindGroupProvider { return s.bindGroup }

// WriteParams uploads the SSAOParams uniform directly, bypassing the
// renderer's WriteBuffers helper since this pass never needs to batch the
// write with other providers' buffers.
func (s *SSAOPass) WriteParams(queue *wgpu.Queue, params GPUSSAOParams) {
	buf := s.bindGroup.Buffer(BindingSSAOParams)
	if buf == nil {
		return
	}
	queue.WriteBuffer(buf, 0, params.Marshal())
}

func (s *SSAOPass) Release() {
	s.bindGroup.Release()
}
