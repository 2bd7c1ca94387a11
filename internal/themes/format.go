package themes

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLPack is the on-disk structure of a theme pack file.
type YAMLPack struct {
	Language string      `yaml:"language,omitempty"`
	Themes   []YAMLTheme `yaml:"themes"`
}

// YAMLTheme is one theme inside a pack.
type YAMLTheme struct {
	Name     string   `yaml:"name"`
	Language string   `yaml:"language,omitempty"` // Overrides the pack language
	Words    []string `yaml:"words"`
}

// ParseYAML parses a theme pack. Themes without a name are rejected.
func ParseYAML(data []byte) ([]Theme, error) {
	var pack YAMLPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(pack.Themes) == 0 {
		return nil, errors.New("no themes defined")
	}

	out := make([]Theme, 0, len(pack.Themes))
	for i, yt := range pack.Themes {
		name := strings.TrimSpace(yt.Name)
		if name == "" {
			return nil, fmt.Errorf("theme %d has no name", i+1)
		}
		lang := yt.Language
		if lang == "" {
			lang = pack.Language
		}
		out = append(out, Theme{
			Name:     name,
			Language: lang,
			Words:    yt.Words,
		})
	}
	return out, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
