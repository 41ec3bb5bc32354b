// Package tuning loads optional difficulty-preset overrides from a
// YAML file. Missing file means compiled defaults; a present file only
// overrides the fields it names. The tier ordering is validated after
// merging so a bad file cannot invert easy and hard.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/laser-lock/evolve"
	"github.com/lixenwraith/laser-lock/puzzle"
)

type fileSchema struct {
	Presets map[string]presetOverride `yaml:"presets"`
}

type presetOverride struct {
	LitMin      *int `yaml:"lit_min"`
	LitMax      *int `yaml:"lit_max"`
	EmitterMin  *int `yaml:"emitter_min"`
	EmitterMax  *int `yaml:"emitter_max"`
	BlockerMin  *int `yaml:"blocker_min"`
	BlockerMax  *int `yaml:"blocker_max"`
	RotationMin *int `yaml:"rotation_min"`
	RotationMax *int `yaml:"rotation_max"`

	Weights *evolve.Weights `yaml:"weights"`
}

// Load returns the preset table with the file's overrides applied.
// A missing file is not an error.
func Load(path string) (map[puzzle.Difficulty]evolve.Preset, error) {
	presets := evolve.DefaultPresets()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return presets, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tuning: read %s: %w", path, err)
	}

	var f fileSchema
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("tuning: parse %s: %w", path, err)
	}

	for name, ov := range f.Presets {
		tier := puzzle.ParseDifficulty(name)
		p := presets[tier]
		merge(&p, ov)
		presets[tier] = p
	}

	if err := evolve.ValidatePresets(presets); err != nil {
		return nil, fmt.Errorf("tuning: %s: %w", path, err)
	}
	return presets, nil
}

// Apply loads the file and installs the merged presets on a generator.
func Apply(g *evolve.Generator, path string) error {
	presets, err := Load(path)
	if err != nil {
		return err
	}
	for tier, p := range presets {
		g.SetPreset(tier, p)
	}
	return nil
}

func merge(p *evolve.Preset, ov presetOverride) {
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setInt(&p.LitMin, ov.LitMin)
	setInt(&p.LitMax, ov.LitMax)
	setInt(&p.EmitterMin, ov.EmitterMin)
	setInt(&p.EmitterMax, ov.EmitterMax)
	setInt(&p.BlockerMin, ov.BlockerMin)
	setInt(&p.BlockerMax, ov.BlockerMax)
	setInt(&p.TargetRotationMin, ov.RotationMin)
	setInt(&p.TargetRotationMax, ov.RotationMax)
	if ov.Weights != nil {
		p.Weights = *ov.Weights
	}
}
