package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPresetsFile is looked up in the working directory when no path is given.
const DefaultPresetsFile = "commands.yaml"

// Preset is a named set of arguments, the equivalent of a command palette entry.
type Preset struct {
	Caption     string         `yaml:"caption" json:"caption"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Args        map[string]any `yaml:"args" json:"args"`
}

// File represents the structure of commands.yaml
type File struct {
	Commands []Preset `yaml:"commands" json:"commands"`
}

// Presets maps captions to presets.
type Presets map[string]Preset

// Find returns the preset with the given caption.
func (p Presets) Find(caption string) (Preset, error) {
	preset, ok := p[caption]
	if !ok {
		return Preset{}, fmt.Errorf("preset %q not found", caption)
	}
	return preset, nil
}

// Sorted returns the presets ordered by caption.
func (p Presets) Sorted() []Preset {
	out := make([]Preset, 0, len(p))
	for _, preset := range p {
		out = append(out, preset)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Caption < out[j].Caption })
	return out
}

// LoadPresets reads a presets file (YAML or JSON).
// A missing file yields an empty set.
func LoadPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Presets{}, nil
		}
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}

	var cfg File
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	presets := make(Presets, len(cfg.Commands))
	for _, preset := range cfg.Commands {
		if preset.Caption == "" {
			continue
		}
		if preset.Args == nil {
			preset.Args = map[string]any{}
		}
		presets[preset.Caption] = preset
	}
	return presets, nil
}
