package tile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Archetype holds the per-dungeon generation settings the pair finder reads.
//
// Precondition: ID must be non-empty and StraightenChance in [0, 1] after loading.
type Archetype struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// StraightenChance is the probability of boosting a doorway that continues
	// the main path in a straight line.
	StraightenChance float64 `yaml:"straighten_chance"`
	// TileSets lists the tile set IDs this archetype draws candidates from.
	TileSets []string `yaml:"tilesets"`
}

// Validate checks the archetype invariants.
func (a *Archetype) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("archetype id must not be empty")
	}
	if a.StraightenChance < 0 || a.StraightenChance > 1 {
		return fmt.Errorf("archetype %q: straighten_chance must be in [0, 1], got %g", a.ID, a.StraightenChance)
	}
	return nil
}

// LoadArchetypes reads all .yaml files in dir and parses each as an Archetype.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all validated archetypes (may be empty slice) or a non-nil error.
func LoadArchetypes(dir string) ([]*Archetype, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	archetypes := make([]*Archetype, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var a Archetype
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("parsing archetype file %s: %w", path, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("archetype file %s: %w", path, err)
		}
		archetypes = append(archetypes, &a)
	}
	return archetypes, nil
}
