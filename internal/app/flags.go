package app

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"planetsynth/internal/prompt"
	"planetsynth/internal/render"
	"planetsynth/internal/surface"
	"planetsynth/pkg/core"
	"planetsynth/pkg/params"
)

// Config represents the command-line parameters shared by the planet tools.
type Config struct {
	Preset   string
	Prompt   string
	Set      KVList
	Seed     int64
	Width    int
	Height   int
	Scale    int
	TPS      int
	Workers  int
	HUDWidth int
	View     string
	Spin     float64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Preset:   "earthLike",
		Width:    256,
		Height:   128,
		Scale:    3,
		TPS:      30,
		HUDWidth: 280,
		View:     render.ViewColor.String(),
		Spin:     0.25,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Preset, "preset", c.Preset, "preset to start from ("+strings.Join(params.PresetNames(), ", ")+")")
	fs.StringVar(&c.Prompt, "prompt", c.Prompt, "free-text planet description, applied instead of the preset")
	fs.Var(&c.Set, "set", "override a parameter (key=value); repeatable")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random source seed (0 draws from the global source)")
	fs.IntVar(&c.Width, "width", c.Width, "map raster width")
	fs.IntVar(&c.Height, "height", c.Height, "map raster height")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Workers, "workers", c.Workers, "evaluation goroutines (0 uses GOMAXPROCS)")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.StringVar(&c.View, "view", c.View, "map view: color, elevation, emission or biome")
	fs.Float64Var(&c.Spin, "spin", c.Spin, "globe spin in radians per second at rotationSpeed 1")
}

// RNG returns the configured random source. Seed 0 yields nil, which draws
// from the auto-seeded global source.
func (c *Config) RNG() *core.RNG {
	if c.Seed == 0 {
		return nil
	}
	return core.NewRNG(c.Seed)
}

// Initial builds the starting vector: the prompt if one is given, otherwise
// the preset, then every -set override on top.
func (c *Config) Initial(rng *core.RNG) (params.Vector, error) {
	var v params.Vector
	switch {
	case strings.TrimSpace(c.Prompt) != "":
		v = params.Merge(params.DefaultsWith(rng), prompt.NewKeywords(rng).Translate(c.Prompt))
	case c.Preset != "":
		var ok bool
		v, ok = params.ApplyPresetWith(rng, nil, c.Preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (want one of %s)", c.Preset, strings.Join(params.PresetNames(), ", "))
		}
	default:
		v = params.DefaultsWith(rng)
	}
	if len(c.Set) > 0 {
		v = params.Merge(v, params.FromMap(c.Set.Map()))
	}
	return v, nil
}

// Editor builds an editor over the initial vector.
func (c *Config) Editor() (*surface.Editor, error) {
	rng := c.RNG()
	v, err := c.Initial(rng)
	if err != nil {
		return nil, err
	}
	return surface.NewEditor(v, rng, prompt.NewKeywords(rng)), nil
}

// Validate checks the numeric flags and the view name.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid raster size %dx%d", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("invalid scale %d", c.Scale)
	}
	if _, err := render.ParseView(c.View); err != nil {
		return err
	}
	return nil
}

// KVList collects repeatable key=value flags.
type KVList []string

func (k *KVList) String() string {
	if k == nil {
		return ""
	}
	return strings.Join(*k, ",")
}

// Set appends one key=value pair.
func (k *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("invalid override %q (want key=value)", value)
	}
	*k = append(*k, value)
	return nil
}

// Map returns the pairs as a map. Later duplicates win.
func (k KVList) Map() map[string]string {
	out := make(map[string]string, len(k))
	for _, kv := range k {
		parts := strings.SplitN(kv, "=", 2)
		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(parts[1])
	}
	return out
}

// Keys lists the override keys in sorted order.
func (k KVList) Keys() []string {
	m := k.Map()
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
