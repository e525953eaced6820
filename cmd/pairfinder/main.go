// Package main provides the pairfinder CLI: it loads tile content, optionally
// places a previous tile, and prints the ranked doorway pairs for the next one.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tilegrow/internal/config"
	"github.com/cory-johannsen/tilegrow/internal/content"
	"github.com/cory-johannsen/tilegrow/internal/geom"
	"github.com/cory-johannsen/tilegrow/internal/observability"
	"github.com/cory-johannsen/tilegrow/internal/pairing"
	"github.com/cory-johannsen/tilegrow/internal/random"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	archetypeID := flag.String("archetype", "", "archetype ID (default: every tileset, no straightening)")
	previous := flag.String("previous", "", "template ID of the tile being extended (empty: first tile)")
	yaw := flag.Float64("yaw", 0, "rotation of the previous tile about the up axis, in degrees")
	used := flag.String("used", "", "comma-separated doorway IDs already connected on the previous tile")
	exit := flag.String("exit", "", "doorway on the previous tile the next tile must attach to")
	seed := flag.Uint64("seed", 0, "override generator.seed (0 keeps the configured seed)")
	maxPairs := flag.Int("max", -2, "override generator.max_pairs (-1 for all)")
	branch := flag.Bool("branch", false, "generate on a branch path instead of the main path")
	depth := flag.Float64("depth", -1, "override generator.normalized_depth")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	gen := cfg.Generator
	if *seed != 0 {
		gen.Seed = *seed
	}
	if *maxPairs != -2 {
		gen.MaxPairs = *maxPairs
	}
	if *branch {
		gen.MainPath = false
	}
	if *depth >= 0 {
		gen.NormalizedDepth = *depth
	}
	cfg.Generator = gen
	if err := cfg.Validate(); err != nil {
		log.Fatalf("validating overrides: %v", err)
	}

	base, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer base.Sync()

	if gen.Seed == 0 {
		gen.Seed = random.NewSeed()
	}
	logger := observability.RunLogger(base, gen.Seed)

	bundle, err := content.Load(cfg.Content, gen.ScriptInstructionLimit, logger)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	defer bundle.Close()

	archetype, err := bundle.Archetype(*archetypeID)
	if err != nil {
		logger.Fatal("selecting archetype", zap.Error(err))
	}
	candidates, err := bundle.Candidates(archetype)
	if err != nil {
		logger.Fatal("building candidate table", zap.Error(err))
	}

	up, err := geom.FromSlice(gen.UpAxis)
	if err != nil {
		logger.Fatal("parsing up axis", zap.Error(err))
	}
	up = up.Normalized()

	finder := &pairing.Finder{
		Candidates:      candidates,
		OnMainPath:      gen.MainPath,
		NormalizedDepth: gen.NormalizedDepth,
		Archetype:       archetype,
		AllowRotation:   gen.RotationOverride(),
		Up:              up,
		Resolver:        bundle.Library,
		Sockets:         bundle.Sockets,
		Logger:          logger,
	}
	if bundle.Admission != nil {
		finder.Admission = bundle.Admission
	}
	if *previous != "" {
		finder.PreviousRef = *previous
		finder.PreviousTile, err = bundle.Place(content.Placement{
			Template: *previous,
			Yaw:      *yaw,
			Used:     content.ParseDoorwayList(*used),
			Exit:     *exit,
		}, up)
		if err != nil {
			logger.Fatal("placing previous tile", zap.Error(err))
		}
	}

	var src random.Source = random.NewSeededSource(gen.Seed)
	if observability.TraceDraws(logger) {
		src = random.NewLogged(src, logger)
	}
	finder.Random = src

	queue, err := finder.DoorwayPairs(gen.MaxPairs)
	if err != nil {
		logger.Fatal("finding doorway pairs", zap.Error(err))
	}

	if err := writeQueue(os.Stdout, queue); err != nil {
		logger.Fatal("writing output", zap.Error(err))
	}
	logger.Info("pairfinder finished",
		zap.Int("pairs", queue.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// writeQueue prints one ranked pair per line, best first.
func writeQueue(w io.Writer, q *pairing.PairQueue) error {
	for i, p := range q.Remaining() {
		prev := "-"
		if !p.IsFirst() {
			prev = p.PreviousDoorway().ID
		}
		if _, err := fmt.Fprintf(w, "%3d  %-24s %-12s %-12s -> %-12s tile=%.4f door=%.4f\n",
			i+1, p.NextTemplate().ID, p.NextTileSet(), prev, p.NextDoorway().ID,
			p.TileWeight(), p.DoorwayWeight()); err != nil {
			return err
		}
	}
	return nil
}
