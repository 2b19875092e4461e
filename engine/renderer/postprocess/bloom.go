package postprocess

import (
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group 1 layouts for the bloom pass's two stages. The threshold stage
// reads the lit color target; the blur stage reads the threshold stage's
// output. Both share a binding layout shape (one source texture + sampler)
// since only the bound texture view differs between them.
const (
	BindingBloomSource = 0
	BindingBloomSamp   = 1
)

// BloomPass is a two-stage threshold-then-blur pass, spec.md §4.8. The
// original bloom implementation this is grounded on
// (original_source/src/renderer/postprocess/bloom.rs) scaffolds a
// multi-mip downsample chain but its own render_bloom method only ever
// drives mip 0 — "single-level bloom: only mip[0] is used" — so this port
// keeps that single-level shape rather than building the unused chain.
type BloomPass struct {
	label             string
	thresholdPipeline pipeline.Pipeline
	thresholdBind     bind_group_provider.BindGroupProvider
	blurPipeline      pipeline.Pipeline
	blurBind          bind_group_provider.BindGroupProvider
}

// NewBloomPass wraps the already-built threshold and blur pipelines and
// their bind group providers. The scene wires the threshold stage's source
// to the lit color target and the blur stage's source to the threshold
// stage's output texture.
func NewBloomPass(label string, thresholdPipeline pipeline.Pipeline, thresholdBind bind_group_provider.BindGroupProvider, blurPipeline pipeline.Pipeline, blurBind bind_group_provider.BindGroupProvider) *BloomPass {
	return &BloomPass{
		label:             label,
		thresholdPipeline: thresholdPipeline,
		thresholdBind:     thresholdBind,
		blurPipeline:      blurPipeline,
		blurBind:          blurBind,
	}
}

func (b *BloomPass) Label() string { return b.label }

func (b *BloomPass) ThresholdPipeline() pipeline.Pipeline { return b.thresholdPipeline }

func (b *BloomPass) ThresholdBindGroupProvider() bind_group_provider.BindGroupProvider {
	return b.thresholdBind
}

func (b *BloomPass) BlurPipeline() pipeline.Pipeline { return b.blurPipeline }

func (b *BloomPass) BlurBindGroupProvider() bind_group_provider.BindGroupProvider {
	return b.blurBind
}

func (b *BloomPass) Release() {
	b.thresholdBind.Release()
	b.blurBind.Release()
}

// This blank declaration is unused at runtime; it documents the intermediate
// texture format the scene allocates via Renderer.CreateRenderTexture for
// the threshold stage's output (also the blur stage's source).
var _ wgpu.TextureFormat = wgpu.TextureFormatRGBA16Float
