package postprocess

import (
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group 1 layout for the composite pass: CompositeParams uniform, the
// lit color target, the SSAO texture, the bloom texture, and one shared
// sampler for all three.
const (
	BindingCompositeParams = 0
	BindingCompositeColor  = 1
	BindingCompositeAO     = 2
	BindingCompositeBloom  = 3
	BindingCompositeSamp   = 4
)

// CompositePass combines the lit color, AO, and bloom textures into the
// final presented frame: exposure tonemap, distance fog, AO darkening, and
// the silhouette/normal outline, spec.md §4.8. Unlike SSAOPass and
// BloomPass it targets the swapchain directly through the regular DrawCall
// path, not an offscreen pass, since nothing downstream of it samples its
// output.
type CompositePass struct {
	label     string
	pipeline  pipeline.Pipeline
	bindGroup bind_group_provider.BindGroupProvider
}

// NewCompositePass wraps an already-built swapchain-format pipeline and its
// bind group provider.
func NewCompositePass(label string, p pipeline.Pipeline, bg bind_group_provider.BindGroupProvider) *CompositePass {
	return &CompositePass{label: label, pipeline: p, bindGroup: bg}
}

func (c *CompositePass) Label() string { return c.label }

func (c *CompositePass) Pipeline() pipeline.Pipeline { return c.pipeline }

func (c *CompositePass) BindGroupProvider() bind_group_provider.BindGroupProvider { return c.bindGroup }

// WriteParams uploads the CompositeParams uniform directly.
func (c *CompositePass) WriteParams(queue *wgpu.Queue, params GPUCompositeParams) {
	buf := c.bindGroup.Buffer(BindingCompositeParams)
	if buf == nil {
		return
	}
	queue.WriteBuffer(buf, 0, params.Marshal())
}

func (c *CompositePass) Release() {
	c.bindGroup.Release()
}
