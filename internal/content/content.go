// Package content loads the YAML tile library, socket rules, archetypes, and
// optional Lua admission scripts a pair-finding run draws from.
package content

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tilegrow/internal/config"
	"github.com/cory-johannsen/tilegrow/internal/geom"
	"github.com/cory-johannsen/tilegrow/internal/scripting"
	"github.com/cory-johannsen/tilegrow/internal/tile"
)

// Bundle is everything loaded from a ContentConfig.
type Bundle struct {
	Library    *tile.Library
	Sockets    *tile.SocketRules
	Archetypes map[string]*tile.Archetype
	// Admission is nil when no admission script directory is configured.
	Admission *scripting.AdmissionScript
}

// Load reads every configured content source.
//
// Precondition: cfg.TilesDir and cfg.TileSetsDir must be readable directories;
// logger must be non-nil.
// Postcondition: Returns a Bundle the caller must Close, or a non-nil error.
func Load(cfg config.ContentConfig, instLimit int, logger *zap.Logger) (*Bundle, error) {
	templates, err := tile.LoadTemplatesFromDir(cfg.TilesDir)
	if err != nil {
		return nil, fmt.Errorf("loading tiles: %w", err)
	}
	tileSets, err := tile.LoadTileSetsFromDir(cfg.TileSetsDir)
	if err != nil {
		return nil, fmt.Errorf("loading tilesets: %w", err)
	}
	lib, err := tile.NewLibrary(templates, tileSets)
	if err != nil {
		return nil, err
	}

	b := &Bundle{Library: lib, Archetypes: make(map[string]*tile.Archetype)}

	if cfg.SocketsFile != "" {
		if b.Sockets, err = tile.LoadSocketRules(cfg.SocketsFile); err != nil {
			return nil, fmt.Errorf("loading sockets: %w", err)
		}
	}

	if cfg.ArchetypesDir != "" {
		archetypes, err := tile.LoadArchetypes(cfg.ArchetypesDir)
		if err != nil {
			return nil, fmt.Errorf("loading archetypes: %w", err)
		}
		for _, a := range archetypes {
			if _, dup := b.Archetypes[a.ID]; dup {
				return nil, fmt.Errorf("duplicate archetype id %q", a.ID)
			}
			for _, id := range a.TileSets {
				if _, ok := lib.TileSet(id); !ok {
					return nil, fmt.Errorf("archetype %q references unknown tileset %q", a.ID, id)
				}
			}
			b.Archetypes[a.ID] = a
		}
	}

	if cfg.AdmissionScriptDir != "" {
		if b.Admission, err = scripting.LoadAdmissionScripts(cfg.AdmissionScriptDir, instLimit, logger); err != nil {
			return nil, err
		}
	}

	logger.Info("content loaded",
		zap.Int("templates", lib.TemplateCount()),
		zap.Int("tilesets", len(tileSets)),
		zap.Int("archetypes", len(b.Archetypes)),
		zap.Bool("socket_rules", b.Sockets != nil),
		zap.Bool("admission_scripts", b.Admission != nil),
	)
	return b, nil
}

// Close releases the admission script VM, if any.
func (b *Bundle) Close() {
	if b.Admission != nil {
		b.Admission.Close()
	}
}

// Archetype looks up an archetype by ID. An empty ID yields (nil, nil).
func (b *Bundle) Archetype(id string) (*tile.Archetype, error) {
	if id == "" {
		return nil, nil
	}
	a, ok := b.Archetypes[id]
	if !ok {
		return nil, fmt.Errorf("unknown archetype %q", id)
	}
	return a, nil
}

// Candidates returns the candidate table for archetype: its tile sets in
// declared order, or every tile set in lexical order when archetype is nil
// or names none.
func (b *Bundle) Candidates(archetype *tile.Archetype) ([]tile.Candidate, error) {
	ids := b.Library.TileSetIDs()
	if archetype != nil && len(archetype.TileSets) > 0 {
		ids = archetype.TileSets
	}
	return b.Library.Candidates(ids...)
}

// Placement describes the tile already in the dungeon that the next tile
// attaches to.
type Placement struct {
	// Template is the placed template's ID.
	Template string
	// Yaw rotates the template about the up axis, in degrees.
	Yaw float64
	// Used lists doorway IDs already connected, in connection order.
	Used []string
	// Exit names the doorway the next tile must attach to, if any.
	Exit string
}

// ParseDoorwayList splits a comma-separated doorway ID list, dropping blanks.
func ParseDoorwayList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Place instantiates the placement's template and applies its used doorways
// and exit.
//
// Postcondition: Returns a PlacedTile or an error naming the unknown template
// or doorway.
func (b *Bundle) Place(p Placement, up geom.Vec3) (*tile.PlacedTile, error) {
	tmpl, err := b.Library.Resolve(p.Template)
	if err != nil {
		return nil, fmt.Errorf("placing previous tile: %w", err)
	}
	placed := tile.Place(tmpl, p.Yaw, up)
	for _, id := range p.Used {
		d, ok := placed.DoorwayByID(id)
		if !ok {
			return nil, fmt.Errorf("placing previous tile: %q has no doorway %q", p.Template, id)
		}
		if err := placed.Connect(d); err != nil {
			return nil, fmt.Errorf("placing previous tile: %w", err)
		}
	}
	if p.Exit != "" {
		d, ok := placed.DoorwayByID(p.Exit)
		if !ok {
			return nil, fmt.Errorf("placing previous tile: %q has no exit doorway %q", p.Template, p.Exit)
		}
		if err := placed.SetExit(d); err != nil {
			return nil, fmt.Errorf("placing previous tile: %w", err)
		}
	}
	return placed, nil
}
