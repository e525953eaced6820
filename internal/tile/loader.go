package tile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/tilegrow/internal/geom"
)

// yamlTileFile is the top-level YAML structure for tile template files.
type yamlTileFile struct {
	Tiles []yamlTile `yaml:"tiles"`
}

// yamlTile is the YAML representation of a template.
type yamlTile struct {
	ID            string        `yaml:"id"`
	AllowRotation *bool         `yaml:"allow_rotation"`
	Entrance      string        `yaml:"entrance"`
	Doorways      []yamlDoorway `yaml:"doorways"`
}

// yamlDoorway is the YAML representation of a doorway.
type yamlDoorway struct {
	ID      string    `yaml:"id"`
	Socket  string    `yaml:"socket"`
	Forward []float64 `yaml:"forward"`
	Up      []float64 `yaml:"up"`
}

// yamlSocketFile is the top-level YAML structure for socket rule files.
type yamlSocketFile struct {
	Sockets []struct {
		Group   string   `yaml:"group"`
		Accepts []string `yaml:"accepts"`
	} `yaml:"sockets"`
}

// yamlTileSetFile is the top-level YAML structure for tile set files.
type yamlTileSetFile struct {
	TileSet struct {
		ID    string          `yaml:"id"`
		Tiles []yamlTileEntry `yaml:"tiles"`
	} `yaml:"tileset"`
}

// yamlTileEntry is one weighted template inside a tile set.
type yamlTileEntry struct {
	Template         string     `yaml:"template"`
	MainPathWeight   *float64   `yaml:"main_path_weight"`
	BranchPathWeight *float64   `yaml:"branch_path_weight"`
	DepthCurve       []Keyframe `yaml:"depth_curve"`
}

// LoadTemplatesFromBytes parses and validates templates from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the tile schema.
// Postcondition: Returns validated templates in file order or a non-nil error.
func LoadTemplatesFromBytes(data []byte) ([]*Template, error) {
	var file yamlTileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing tile YAML: %w", err)
	}

	templates := make([]*Template, 0, len(file.Tiles))
	for i, yt := range file.Tiles {
		tmpl, err := convertYAMLTile(yt)
		if err != nil {
			return nil, fmt.Errorf("tile[%d]: %w", i, err)
		}
		if err := tmpl.Validate(); err != nil {
			return nil, fmt.Errorf("validating tile[%d]: %w", i, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// LoadTemplatesFromFile reads and validates a single tile YAML file.
//
// Precondition: path must point to a valid YAML tile file.
// Postcondition: Returns validated templates or a non-nil error.
func LoadTemplatesFromFile(path string) ([]*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tile file %s: %w", path, err)
	}
	return LoadTemplatesFromBytes(data)
}

// LoadTemplatesFromDir loads every YAML file in dir as tile templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all validated templates (files in lexical order) or
// the first error encountered; an empty directory is an error.
func LoadTemplatesFromDir(dir string) ([]*Template, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	var all []*Template
	for _, path := range files {
		templates, err := LoadTemplatesFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading tiles from %s: %w", filepath.Base(path), err)
		}
		all = append(all, templates...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no tile templates found in %s", dir)
	}
	return all, nil
}

// LoadSocketRulesFromBytes parses socket rules from YAML bytes.
//
// Postcondition: Returns a non-nil SocketRules or a non-nil error.
func LoadSocketRulesFromBytes(data []byte) (*SocketRules, error) {
	var file yamlSocketFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing socket YAML: %w", err)
	}
	rules := NewSocketRules()
	for i, s := range file.Sockets {
		if s.Group == "" {
			return nil, fmt.Errorf("socket[%d] must have a non-empty group", i)
		}
		others := make([]SocketGroup, 0, len(s.Accepts))
		for _, a := range s.Accepts {
			others = append(others, SocketGroup(a))
		}
		rules.Accept(SocketGroup(s.Group), others...)
	}
	return rules, nil
}

// LoadSocketRules reads socket rules from path.
func LoadSocketRules(path string) (*SocketRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading socket file %s: %w", path, err)
	}
	return LoadSocketRulesFromBytes(data)
}

// LoadTileSetFromBytes parses a tile set from YAML bytes. Weights default to 1.
//
// Postcondition: Returns a validated TileSet or a non-nil error.
func LoadTileSetFromBytes(data []byte) (*TileSet, error) {
	var file yamlTileSetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing tileset YAML: %w", err)
	}
	ts := &TileSet{ID: file.TileSet.ID}
	for i, e := range file.TileSet.Tiles {
		chance := Chance{MainPathWeight: 1, BranchPathWeight: 1}
		if e.MainPathWeight != nil {
			chance.MainPathWeight = *e.MainPathWeight
		}
		if e.BranchPathWeight != nil {
			chance.BranchPathWeight = *e.BranchPathWeight
		}
		if len(e.DepthCurve) > 0 {
			curve, err := NewCurve(e.DepthCurve...)
			if err != nil {
				return nil, fmt.Errorf("tileset %q entry[%d]: %w", ts.ID, i, err)
			}
			chance.DepthCurve = curve
		}
		ts.Entries = append(ts.Entries, TileSetEntry{Template: e.Template, Chance: chance})
	}
	if err := ts.Validate(); err != nil {
		return nil, fmt.Errorf("validating tileset: %w", err)
	}
	return ts, nil
}

// LoadTileSetsFromDir loads every YAML file in dir as a tile set.
func LoadTileSetsFromDir(dir string) ([]*TileSet, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	sets := make([]*TileSet, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		ts, err := LoadTileSetFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading tileset from %s: %w", filepath.Base(path), err)
		}
		sets = append(sets, ts)
	}
	return sets, nil
}

func convertYAMLTile(yt yamlTile) (*Template, error) {
	tmpl := &Template{
		ID:            yt.ID,
		AllowRotation: true,
		Doorways:      make([]*Doorway, 0, len(yt.Doorways)),
	}
	if yt.AllowRotation != nil {
		tmpl.AllowRotation = *yt.AllowRotation
	}
	for _, yd := range yt.Doorways {
		fwd, err := geom.FromSlice(yd.Forward)
		if err != nil {
			return nil, fmt.Errorf("doorway %q forward: %w", yd.ID, err)
		}
		up := geom.Up
		if len(yd.Up) > 0 {
			if up, err = geom.FromSlice(yd.Up); err != nil {
				return nil, fmt.Errorf("doorway %q up: %w", yd.ID, err)
			}
		}
		tmpl.Doorways = append(tmpl.Doorways, &Doorway{
			ID:      yd.ID,
			Socket:  SocketGroup(yd.Socket).Normalize(),
			Forward: fwd,
			Up:      up,
		})
	}
	if yt.Entrance != "" {
		d, ok := tmpl.DoorwayByID(yt.Entrance)
		if !ok {
			return nil, fmt.Errorf("tile %q: entrance %q is not a declared doorway", yt.ID, yt.Entrance)
		}
		tmpl.Entrance = d
	}
	return tmpl, nil
}

// yamlFiles returns the .yaml/.yml files in dir, sorted by name.
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}
