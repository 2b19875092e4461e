// Package options implements the Options TOML configuration of spec.md §6:
// a single top-level struct with display/lighting/post_processing/camera/
// colors/geometry/keybindings sections, named-preset load/save, a
// dotted-key setter for runtime option changes, and a preset-directory
// watch for live reload.
package options

// Options is the top-level configuration container. Every section has a
// corresponding struct with sensible defaults so a TOML file overriding
// only one field — e.g. `[lighting]\nshininess = 80.0` — leaves every other
// field at its default (spec.md §6, §8 "TOML round-trip").
type Options struct {
	Display        DisplayOptions        `toml:"display"`
	Lighting       LightingOptions       `toml:"lighting"`
	PostProcessing PostProcessingOptions `toml:"post_processing"`
	Camera         CameraOptions         `toml:"camera"`
	Colors         ColorOptions          `toml:"colors"`
	Geometry       GeometryOptions       `toml:"geometry"`
	Keybindings    KeybindingOptions     `toml:"keybindings"`
}

// BackboneColorMode selects how protein backbone geometry is colored.
type BackboneColorMode string

const (
	BackboneColorScore              BackboneColorMode = "score"
	BackboneColorScoreRelative      BackboneColorMode = "score_relative"
	BackboneColorSecondaryStructure BackboneColorMode = "secondary_structure"
)

// SidechainColorMode selects how sidechain geometry is colored.
type SidechainColorMode string

const (
	SidechainColorHydrophobicity SidechainColorMode = "hydrophobicity"
)

// NaColorMode selects how nucleic acid backbone geometry is colored.
type NaColorMode string

const (
	NaColorUniform NaColorMode = "uniform"
)

// LipidMode selects the lipid display style.
type LipidMode string

const (
	LipidModeCoarse       LipidMode = "coarse"
	LipidModeBallAndStick LipidMode = "ball_and_stick"
)

// DisplayOptions controls which molecule kinds are shown and how backbone,
// sidechain, and nucleic-acid geometry is colored.
type DisplayOptions struct {
	ShowWaters          bool               `toml:"show_waters"`
	ShowIons            bool               `toml:"show_ions"`
	ShowSolvent         bool               `toml:"show_solvent"`
	LipidMode           LipidMode          `toml:"lipid_mode"`
	ShowSidechains      bool               `toml:"show_sidechains"`
	ShowHydrogens       bool               `toml:"show_hydrogens"`
	BackboneColorMode   BackboneColorMode  `toml:"backbone_color_mode"`
	SidechainColorMode  SidechainColorMode `toml:"sidechain_color_mode"`
	NaColorMode         NaColorMode        `toml:"na_color_mode"`
}

// LipidBallAndStick reports whether lipid mode renders full ball-and-stick
// geometry rather than coarse-grained spheres.
func (d DisplayOptions) LipidBallAndStick() bool {
	return d.LipidMode == LipidModeBallAndStick
}

func defaultDisplayOptions() DisplayOptions {
	return DisplayOptions{
		ShowWaters:         false,
		ShowIons:           false,
		ShowSolvent:        false,
		LipidMode:          LipidModeCoarse,
		ShowSidechains:     true,
		ShowHydrogens:      false,
		BackboneColorMode:  BackboneColorScore,
		SidechainColorMode: SidechainColorHydrophobicity,
		NaColorMode:        NaColorUniform,
	}
}

// LightingOptions parameterizes the procedural two-light + IBL shading
// model of spec.md §4.11.
type LightingOptions struct {
	Light1Dir          [3]float32 `toml:"light1_dir"`
	Light2Dir          [3]float32 `toml:"light2_dir"`
	Light1Intensity    float32    `toml:"light1_intensity"`
	Light2Intensity    float32    `toml:"light2_intensity"`
	Ambient            float32    `toml:"ambient"`
	SpecularIntensity  float32    `toml:"specular_intensity"`
	Shininess          float32    `toml:"shininess"`
	RimPower           float32    `toml:"rim_power"`
	RimIntensity       float32    `toml:"rim_intensity"`
	RimDirectionality  float32    `toml:"rim_directionality"`
	RimColor           [3]float32 `toml:"rim_color"`
	IblStrength        float32    `toml:"ibl_strength"`
	RimDir             [3]float32 `toml:"rim_dir"`
	Roughness          float32    `toml:"roughness"`
	Metalness          float32    `toml:"metalness"`
}

func defaultLightingOptions() LightingOptions {
	return LightingOptions{
		Light1Dir:         [3]float32{-0.3, 0.9, -0.3},
		Light2Dir:         [3]float32{0.3, 0.6, -0.4},
		Light1Intensity:   2.0,
		Light2Intensity:   1.1,
		Ambient:           0.45,
		SpecularIntensity: 0.35,
		Shininess:         38.0,
		RimPower:          5.0,
		RimIntensity:      0.3,
		RimDirectionality: 0.3,
		RimColor:          [3]float32{1.0, 0.85, 0.7},
		IblStrength:       0.6,
		RimDir:            [3]float32{0.0, -0.7, 0.5},
		Roughness:         0.35,
		Metalness:         0.15,
	}
}

// PostProcessingOptions parameterizes the SSAO/bloom/composite chain (no FXAA pass is present)
// of spec.md §4.8.
type PostProcessingOptions struct {
	OutlineThickness       float32 `toml:"outline_thickness"`
	OutlineStrength        float32 `toml:"outline_strength"`
	AoStrength             float32 `toml:"ao_strength"`
	AoRadius               float32 `toml:"ao_radius"`
	AoBias                 float32 `toml:"ao_bias"`
	AoPower                float32 `toml:"ao_power"`
	FogStart               float32 `toml:"fog_start"`
	FogDensity             float32 `toml:"fog_density"`
	Exposure               float32 `toml:"exposure"`
	NormalOutlineStrength  float32 `toml:"normal_outline_strength"`
	BloomIntensity         float32 `toml:"bloom_intensity"`
	BloomThreshold         float32 `toml:"bloom_threshold"`
}

func defaultPostProcessingOptions() PostProcessingOptions {
	return PostProcessingOptions{
		OutlineThickness:      1.0,
		OutlineStrength:       0.7,
		AoStrength:            0.85,
		AoRadius:              0.5,
		AoBias:                0.025,
		AoPower:               2.0,
		FogStart:              100.0,
		FogDensity:            0.005,
		Exposure:              1.0,
		NormalOutlineStrength: 0.5,
		BloomIntensity:        0.0,
		BloomThreshold:        1.0,
	}
}

// CameraOptions parameterizes the projection and interaction speeds.
type CameraOptions struct {
	Fovy        float32 `toml:"fovy"`
	Znear       float32 `toml:"znear"`
	Zfar        float32 `toml:"zfar"`
	RotateSpeed float32 `toml:"rotate_speed"`
	PanSpeed    float32 `toml:"pan_speed"`
	ZoomSpeed   float32 `toml:"zoom_speed"`
}

func defaultCameraOptions() CameraOptions {
	return CameraOptions{
		Fovy:        45.0,
		Znear:       5.0,
		Zfar:        2000.0,
		RotateSpeed: 0.5,
		PanSpeed:    0.5,
		ZoomSpeed:   0.1,
	}
}

// ColorOptions holds the palette used across display modes, including a
// per-cofactor-residue-name tint table.
type ColorOptions struct {
	LipidCarbonTint      [3]float32           `toml:"lipid_carbon_tint"`
	HydrophobicSidechain [3]float32           `toml:"hydrophobic_sidechain"`
	HydrophilicSidechain [3]float32           `toml:"hydrophilic_sidechain"`
	NucleicAcid          [3]float32           `toml:"nucleic_acid"`
	BandDefault          [3]float32           `toml:"band_default"`
	BandBackbone         [3]float32           `toml:"band_backbone"`
	BandDisulfide        [3]float32           `toml:"band_disulfide"`
	BandHbond            [3]float32           `toml:"band_hbond"`
	SolventColor         [3]float32           `toml:"solvent_color"`
	CofactorTints        map[string][3]float32 `toml:"cofactor_tints"`
}

// CofactorTint looks up the carbon tint for a 3-letter cofactor residue
// name, falling back to neutral gray.
func (c ColorOptions) CofactorTint(resName string) [3]float32 {
	if tint, ok := c.CofactorTints[resName]; ok {
		return tint
	}
	return [3]float32{0.5, 0.5, 0.5}
}

func defaultColorOptions() ColorOptions {
	return ColorOptions{
		LipidCarbonTint:      [3]float32{0.76, 0.70, 0.50},
		HydrophobicSidechain: [3]float32{0.3, 0.5, 0.9},
		HydrophilicSidechain: [3]float32{0.95, 0.6, 0.2},
		NucleicAcid:          [3]float32{0.45, 0.55, 0.85},
		BandDefault:          [3]float32{0.5, 0.0, 0.5},
		BandBackbone:         [3]float32{1.0, 0.75, 0.0},
		BandDisulfide:        [3]float32{0.5, 1.0, 0.0},
		BandHbond:            [3]float32{0.0, 0.75, 1.0},
		SolventColor:         [3]float32{0.6, 0.6, 0.6},
		CofactorTints: map[string][3]float32{
			"CLA": {0.2, 0.7, 0.3},
			"CHL": {0.2, 0.6, 0.35},
			"BCR": {0.9, 0.5, 0.1},
			"BCB": {0.9, 0.5, 0.1},
			"HEM": {0.7, 0.15, 0.15},
			"HEC": {0.7, 0.15, 0.15},
			"HEA": {0.7, 0.15, 0.15},
			"HEB": {0.7, 0.15, 0.15},
			"PHO": {0.5, 0.7, 0.3},
			"PL9": {0.6, 0.5, 0.2},
			"PLQ": {0.6, 0.5, 0.2},
		},
	}
}

// GeometryOptions parameterizes the mesh-generation constants of spec.md
// §4.4/§4.5.
type GeometryOptions struct {
	TubeRadius         float32 `toml:"tube_radius"`
	TubeRadialSegments uint32  `toml:"tube_radial_segments"`
	SolventRadius      float32 `toml:"solvent_radius"`
	LigandSphereRadius float32 `toml:"ligand_sphere_radius"`
	LigandBondRadius   float32 `toml:"ligand_bond_radius"`
}

func defaultGeometryOptions() GeometryOptions {
	return GeometryOptions{
		TubeRadius:         0.3,
		TubeRadialSegments: 32,
		SolventRadius:      0.15,
		LigandSphereRadius: 0.3,
		LigandBondRadius:   0.12,
	}
}

// KeybindingOptions maps action names to key strings, with a reverse
// lookup cache rebuilt after load.
type KeybindingOptions struct {
	Bindings     map[string]string `toml:"bindings"`
	keyToAction  map[string]string `toml:"-"`
}

// RebuildReverseMap rebuilds the key-string → action-name lookup cache.
// Call after loading or mutating Bindings.
func (k *KeybindingOptions) RebuildReverseMap() {
	k.keyToAction = make(map[string]string, len(k.Bindings))
	for action, key := range k.Bindings {
		k.keyToAction[key] = action
	}
}

// Lookup returns the action bound to a key string, if any.
func (k KeybindingOptions) Lookup(key string) (string, bool) {
	action, ok := k.keyToAction[key]
	return action, ok
}

func defaultKeybindingOptions() KeybindingOptions {
	k := KeybindingOptions{
		Bindings: map[string]string{
			"recenter_camera":   "KeyQ",
			"toggle_trajectory": "KeyT",
			"toggle_ions":       "KeyI",
			"toggle_waters":     "KeyU",
			"toggle_solvent":    "KeyO",
			"toggle_lipids":     "KeyL",
			"cycle_focus":       "Tab",
			"toggle_auto_rotate": "KeyR",
			"reset_focus":       "Backquote",
			"cancel":            "Escape",
		},
	}
	k.RebuildReverseMap()
	return k
}

// Default returns the full default Options tree.
func Default() Options {
	return Options{
		Display:        defaultDisplayOptions(),
		Lighting:       defaultLightingOptions(),
		PostProcessing: defaultPostProcessingOptions(),
		Camera:         defaultCameraOptions(),
		Colors:         defaultColorOptions(),
		Geometry:       defaultGeometryOptions(),
		Keybindings:    defaultKeybindingOptions(),
	}
}
