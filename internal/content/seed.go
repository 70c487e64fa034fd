package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedCategory is one category entry of the YAML content pack, with its
// triggers and response variants nested.
type SeedCategory struct {
	Slug      string   `yaml:"slug"`
	Name      string   `yaml:"name"`
	Emoji     string   `yaml:"emoji"`
	Triggers  []string `yaml:"triggers"`
	Responses []string `yaml:"responses"`
}

// SeedIntervention is one micro-intervention entry of the content pack.
type SeedIntervention struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

// Pack is the full parsed content pack.
type Pack struct {
	Categories         []SeedCategory     `yaml:"categories"`
	MicroInterventions []SeedIntervention `yaml:"micro_interventions"`
}

// DefaultPack parses the embedded seed file.
func DefaultPack() (*Pack, error) {
	return ParsePack(seedYAML)
}

// ParsePack parses a YAML content pack.
func ParsePack(data []byte) (*Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse content pack: %w", err)
	}
	for _, c := range p.Categories {
		if c.Slug == "" {
			return nil, fmt.Errorf("content pack: category without slug")
		}
	}
	return &p, nil
}
