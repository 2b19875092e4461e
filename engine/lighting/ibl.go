package lighting

import (
	"image"
	"image/color"

	"github.com/Carmen-Shannon/oxy-go/common"
	"github.com/Carmen-Shannon/oxy-go/internal/options"
	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
)

// irradianceSize is the equirectangular diffuse-irradiance map resolution.
// Small: the convolution integral is low-frequency by construction.
const irradianceSize = 32

// prefilterBaseWidth is the width of the roughness-0 (mirror) mip of the
// prefiltered specular map; each subsequent mip halves in both dimensions.
const prefilterBaseWidth = 128

// prefilterMipCount is the number of roughness mip levels baked into the
// prefiltered atlas, matching GPULightingUniform.PrefilteredMipCount.
const prefilterMipCount = 6

// brdfLutSize is the resolution of the split-sum BRDF integration LUT.
const brdfLutSize = 256

// Baked holds the CPU-synthesized IBL resources ready for GPU upload via
// Renderer.InitTextureView. The renderer's texture-upload primitive is a
// flat 2D RGBA8 texture (see wgpu_renderer_backend.go InitTextureView), so
// environment maps are stored equirectangularly rather than as true cube
// textures, and the prefiltered mip chain is baked into one horizontally
// tiled atlas rather than a real mipmapped texture — both are sampled in
// the lit fragment shader with direction-to-UV / roughness-to-atlas-offset
// math instead of hardware cubemap/mip sampling.
type Baked struct {
	Irradiance  common.TextureStagingData
	Prefiltered common.TextureStagingData
	BRDFLut     common.TextureStagingData
	MipCount    int
	MipOffsets  []float32 // normalized [0,1) U-offset of each mip within the atlas
	MipWidths   []float32 // normalized [0,1) U-width of each mip within the atlas
}

// environment is the analytic source "sky" sampled during convolution: a
// three-band gradient (zenith/horizon/ground) standing in for an HDR
// environment capture, since this renderer has no environment texture
// import pipeline (spec.md Non-goals exclude asset import beyond PDB/CIF).
type environment struct {
	zenith, horizon, ground [3]float32
}

func defaultEnvironment() environment {
	return environment{
		zenith:  [3]float32{0.45, 0.55, 0.75},
		horizon: [3]float32{0.75, 0.78, 0.80},
		ground:  [3]float32{0.20, 0.19, 0.17},
	}
}

// sample returns the environment radiance along a normalized direction.
func (e environment) sample(dir [3]float32) [3]float32 {
	t := dir[1] // -1 (down) .. 1 (up)
	if t >= 0 {
		return lerp3(e.horizon, e.zenith, t)
	}
	return lerp3(e.horizon, e.ground, -t)
}

func lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// Bake synthesizes the irradiance map, prefiltered atlas, and BRDF LUT for
// the given lighting options. New calls it once per Lighting; SetOptions
// does not re-bake, and nothing calls it per frame.
func Bake(opts options.LightingOptions) Baked {
	env := defaultEnvironment()

	irr := bakeIrradiance(env)
	pref, offsets, widths := bakePrefiltered(env)
	lut := bakeBRDFLut()

	return Baked{
		Irradiance:  irr,
		Prefiltered: pref,
		BRDFLut:     lut,
		MipCount:    prefilterMipCount,
		MipOffsets:  offsets,
		MipWidths:   widths,
	}
}

// equirectDir converts equirectangular pixel coordinates to a world direction.
func equirectDir(u, v float32) [3]float32 {
	phi := (u - 0.5) * 2 * math32.Pi
	theta := v * math32.Pi
	sinTheta := math32.Sin(theta)
	return [3]float32{
		sinTheta * math32.Sin(phi),
		math32.Cos(theta),
		sinTheta * math32.Cos(phi),
	}
}

// bakeIrradiance convolves the environment with a cosine lobe at every
// output texel by sampling a coarse hemisphere grid — cheap because the
// source environment is itself a 3-band analytic gradient with no
// high-frequency content to alias against.
func bakeIrradiance(env environment) common.TextureStagingData {
	const w, h = irradianceSize * 2, irradianceSize
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	const sampleSteps = 8
	for y := 0; y < h; y++ {
		v := (float32(y) + 0.5) / float32(h)
		for x := 0; x < w; x++ {
			u := (float32(x) + 0.5) / float32(w)
			n := equirectDir(u, v)

			var sum [3]float32
			var weight float32
			for i := 0; i < sampleSteps; i++ {
				for j := 0; j < sampleSteps; j++ {
					su := (float32(i) + 0.5) / sampleSteps
					sv := (float32(j) + 0.5) / sampleSteps
					dir := equirectDir(su, sv)
					ndotl := dot3(n, dir)
					if ndotl <= 0 {
						continue
					}
					c := env.sample(dir)
					sum[0] += c[0] * ndotl
					sum[1] += c[1] * ndotl
					sum[2] += c[2] * ndotl
					weight += ndotl
				}
			}
			if weight > 0 {
				sum[0] /= weight
				sum[1] /= weight
				sum[2] /= weight
			}
			img.Set(x, y, toRGBA(sum))
		}
	}

	return common.TextureStagingData{Pixels: img.Pix, Width: uint32(w), Height: uint32(h)}
}

// bakePrefiltered builds a GGX-importance-sampled specular environment at
// prefilterMipCount roughness levels, laid out left-to-right in one atlas
// texture (mip 0 = mirror reflection, full resolution; each subsequent mip
// is blurred for a higher roughness and rendered at half the previous
// width, then scaled with golang.org/x/image/draw into its shrinking slot,
// which spans the full atlas height).
func bakePrefiltered(env environment) (common.TextureStagingData, []float32, []float32) {
	levels := make([]*image.RGBA, prefilterMipCount)
	widths := make([]int, prefilterMipCount)
	totalWidth := 0
	height := prefilterBaseWidth / 2

	for mip := 0; mip < prefilterMipCount; mip++ {
		roughness := float32(mip) / float32(prefilterMipCount-1)
		mipWidth := prefilterBaseWidth >> mip
		if mipWidth < 4 {
			mipWidth = 4
		}
		mipHeight := mipWidth / 2
		levels[mip] = renderPrefilteredLevel(env, mipWidth, mipHeight, roughness)
		widths[mip] = mipWidth
		totalWidth += mipWidth
	}

	atlas := image.NewRGBA(image.Rect(0, 0, totalWidth, height))
	offsets := make([]float32, prefilterMipCount)
	normWidths := make([]float32, prefilterMipCount)
	x := 0
	for mip, lvl := range levels {
		dst := image.Rect(x, 0, x+widths[mip], height)
		draw.CatmullRom.Scale(atlas, dst, lvl, lvl.Bounds(), draw.Over, nil)
		offsets[mip] = float32(x) / float32(totalWidth)
		normWidths[mip] = float32(widths[mip]) / float32(totalWidth)
		x += widths[mip]
	}

	return common.TextureStagingData{Pixels: atlas.Pix, Width: uint32(totalWidth), Height: uint32(height)}, offsets, normWidths
}

func renderPrefilteredLevel(env environment, w, h int, roughness float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	sampleCount := 16
	if roughness < 0.05 {
		sampleCount = 1
	}

	for y := 0; y < h; y++ {
		v := (float32(y) + 0.5) / float32(h)
		for x := 0; x < w; x++ {
			u := (float32(x) + 0.5) / float32(w)
			n := equirectDir(u, v)

			var sum [3]float32
			var weight float32
			for i := 0; i < sampleCount; i++ {
				xi := hammersley(uint32(i), uint32(sampleCount))
				h3 := importanceSampleGGX(xi, n, roughness)
				l := reflect3(scale3(n, -1), h3)
				ndotl := dot3(n, l)
				if ndotl <= 0 {
					continue
				}
				c := env.sample(l)
				sum[0] += c[0] * ndotl
				sum[1] += c[1] * ndotl
				sum[2] += c[2] * ndotl
				weight += ndotl
			}
			if weight > 0 {
				sum[0] /= weight
				sum[1] /= weight
				sum[2] /= weight
			} else {
				sum = env.sample(n)
			}
			img.Set(x, y, toRGBA(sum))
		}
	}
	return img
}

// bakeBRDFLut integrates the split-sum BRDF scale/bias terms over
// (NdotV, roughness), storing scale in the red channel and bias in the
// green channel of an RGBA8 texture (the renderer's fixed upload format has
// no RG16Float path — see Baked's doc comment).
func bakeBRDFLut() common.TextureStagingData {
	img := image.NewRGBA(image.Rect(0, 0, brdfLutSize, brdfLutSize))
	const sampleCount = 32

	for y := 0; y < brdfLutSize; y++ {
		roughness := (float32(y) + 0.5) / brdfLutSize
		for x := 0; x < brdfLutSize; x++ {
			ndotv := (float32(x) + 0.5) / brdfLutSize
			v := [3]float32{math32.Sqrt(1 - ndotv*ndotv), 0, ndotv}

			var scale, bias float32
			for i := 0; i < sampleCount; i++ {
				xi := hammersley(uint32(i), sampleCount)
				h3 := importanceSampleGGX(xi, [3]float32{0, 0, 1}, roughness)
				l := reflect3(scale3(v, -1), h3)

				ndotl := l[2]
				ndoth := h3[2]
				vdoth := dot3(v, h3)
				if ndotl <= 0 {
					continue
				}

				g := geometrySmithIBL(ndotv, ndotl, roughness)
				gVis := (g * vdoth) / (ndoth*ndotv + 1e-5)
				fc := math32.Pow(1-vdoth, 5)

				scale += (1 - fc) * gVis
				bias += fc * gVis
			}
			scale /= sampleCount
			bias /= sampleCount

			img.Set(x, y, color.RGBA{
				R: clampByte(scale),
				G: clampByte(bias),
				B: 0,
				A: 255,
			})
		}
	}
	return common.TextureStagingData{Pixels: img.Pix, Width: brdfLutSize, Height: brdfLutSize}
}

func geometrySmithIBL(ndotv, ndotl, roughness float32) float32 {
	k := roughness * roughness / 2
	gv := ndotv / (ndotv*(1-k) + k)
	gl := ndotl / (ndotl*(1-k) + k)
	return gv * gl
}

// hammersley generates the i-th point of an n-point Hammersley
// low-discrepancy sequence via the Van der Corput radical inverse.
func hammersley(i, n uint32) [2]float32 {
	bits := i
	bits = (bits << 16) | (bits >> 16)
	bits = ((bits & 0x55555555) << 1) | ((bits & 0xAAAAAAAA) >> 1)
	bits = ((bits & 0x33333333) << 2) | ((bits & 0xCCCCCCCC) >> 2)
	bits = ((bits & 0x0F0F0F0F) << 4) | ((bits & 0xF0F0F0F0) >> 4)
	bits = ((bits & 0x00FF00FF) << 8) | ((bits & 0xFF00FF00) >> 8)
	vdc := float32(bits) * 2.3283064365386963e-10
	return [2]float32{float32(i) / float32(n), vdc}
}

// importanceSampleGGX maps a low-discrepancy 2D sample to a halfway vector
// distributed according to the GGX normal distribution function around n,
// tilted by roughness.
func importanceSampleGGX(xi [2]float32, n [3]float32, roughness float32) [3]float32 {
	a := roughness * roughness
	phi := 2 * math32.Pi * xi[0]
	cosTheta := math32.Sqrt((1 - xi[1]) / (1 + (a*a-1)*xi[1]))
	sinTheta := math32.Sqrt(1 - cosTheta*cosTheta)

	hx := sinTheta * math32.Cos(phi)
	hy := sinTheta * math32.Sin(phi)
	hz := cosTheta

	up := [3]float32{0, 0, 1}
	if math32.Abs(n[2]) > 0.999 {
		up = [3]float32{1, 0, 0}
	}
	tangent := normalize3(cross3(up, n))
	bitangent := cross3(n, tangent)

	return normalize3([3]float32{
		tangent[0]*hx + bitangent[0]*hy + n[0]*hz,
		tangent[1]*hx + bitangent[1]*hy + n[1]*hz,
		tangent[2]*hx + bitangent[2]*hy + n[2]*hz,
	})
}

func dot3(a, b [3]float32) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func scale3(a [3]float32, s float32) [3]float32 {
	return [3]float32{a[0] * s, a[1] * s, a[2] * s}
}

func normalize3(a [3]float32) [3]float32 {
	l := math32.Sqrt(dot3(a, a))
	if l < 1e-8 {
		return a
	}
	return scale3(a, 1/l)
}

func reflect3(i, n [3]float32) [3]float32 {
	d := dot3(i, n)
	return [3]float32{
		i[0] - 2*d*n[0],
		i[1] - 2*d*n[1],
		i[2] - 2*d*n[2],
	}
}

func toRGBA(c [3]float32) color.RGBA {
	return color.RGBA{R: clampByte(c[0]), G: clampByte(c[1]), B: clampByte(c[2]), A: 255}
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
