// Package pipeline orchestrates the medallion stages in dependency order.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/awlake/medallion-pipeline/internal/bronze"
	"github.com/awlake/medallion-pipeline/internal/config"
	"github.com/awlake/medallion-pipeline/internal/gold"
	"github.com/awlake/medallion-pipeline/internal/logging"
	"github.com/awlake/medallion-pipeline/internal/report"
	"github.com/awlake/medallion-pipeline/internal/silver"
	"github.com/awlake/medallion-pipeline/internal/storage"
)

// Layer selectors accepted by Run.
const (
	LayerBronzeToSilver = "bronze_to_silver"
	LayerSilverToGold   = "silver_to_gold"
	LayerVisualize      = "visualize"
	LayerAll            = "all"
)

// Pipeline wires the stages together. Stages never share in-memory state;
// each reads its input layer from storage and fully rewrites its output.
type Pipeline struct {
	cfg   config.Config
	runID string
	log   *slog.Logger
}

// New creates a pipeline with a fresh run ID.
func New(cfg config.Config) *Pipeline {
	return &Pipeline{
		cfg:   cfg,
		runID: uuid.New().String(),
		log:   logging.Component("pipeline"),
	}
}

// RunID returns the identifier stamped into layer manifests for this run.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run executes the selected layers in fixed dependency order. The first
// failure aborts the remaining stages.
func (p *Pipeline) Run(ctx context.Context, layers string) error {
	switch layers {
	case LayerBronzeToSilver, LayerSilverToGold, LayerVisualize, LayerAll:
	default:
		return fmt.Errorf("unknown layer selector %q", layers)
	}

	p.log.Info("pipeline starting", "layers", layers, "run_id", p.runID)

	stages := []struct {
		name string
		run  func(context.Context) error
	}{
		{LayerBronzeToSilver, p.runBronzeToSilver},
		{LayerSilverToGold, p.runSilverToGold},
		{LayerVisualize, p.runVisualize},
	}
	for _, stage := range stages {
		if layers != LayerAll && layers != stage.name {
			continue
		}
		log := logging.StageLogger(stage.name, p.runID)
		log.Info("stage starting")
		if err := stage.run(ctx); err != nil {
			log.Error("stage failed", "error", err)
			return fmt.Errorf("%s: %w", stage.name, err)
		}
		log.Info("stage complete")
	}

	p.log.Info("pipeline complete", "run_id", p.runID)
	return nil
}

func (p *Pipeline) runBronzeToSilver(ctx context.Context) error {
	loader, err := bronze.NewLoader(p.cfg.Dirs.Bronze)
	if err != nil {
		return err
	}
	defer loader.Close()

	store, err := p.openStore(ctx, p.cfg.Dirs.Silver, "silver/")
	if err != nil {
		return err
	}
	defer store.Close()

	return silver.New(loader, store, p.cfg, p.producer(), p.runID).Run(ctx)
}

func (p *Pipeline) runSilverToGold(ctx context.Context) error {
	silverStore, err := p.openStore(ctx, p.cfg.Dirs.Silver, "silver/")
	if err != nil {
		return err
	}
	defer silverStore.Close()

	goldStore, err := p.openStore(ctx, p.cfg.Dirs.Gold, "gold/")
	if err != nil {
		return err
	}
	defer goldStore.Close()

	return gold.New(silverStore, goldStore, p.cfg.Storage.Compression, p.producer(), p.runID).Run(ctx)
}

func (p *Pipeline) runVisualize(ctx context.Context) error {
	goldStore, err := p.openStore(ctx, p.cfg.Dirs.Gold, "gold/")
	if err != nil {
		return err
	}
	defer goldStore.Close()

	vizStore, err := p.openStore(ctx, p.cfg.Dirs.Visualizations, "visualizations/")
	if err != nil {
		return err
	}
	defer vizStore.Close()

	return report.New(goldStore, vizStore).Run(ctx)
}

// openStore opens the layer store for the configured backend: dir for the
// local backend, prefix within the bucket for the blob backend.
func (p *Pipeline) openStore(ctx context.Context, dir, prefix string) (storage.Store, error) {
	return storage.NewStore(ctx, storage.Config{
		Backend:   p.cfg.Storage.Backend,
		Dir:       dir,
		BucketURL: p.cfg.Storage.BucketURL,
		Prefix:    prefix,
	})
}

func (p *Pipeline) producer() storage.ProducerInfo {
	return storage.ProducerInfo{
		Name:    "medallion-pipeline",
		Version: Version,
	}
}
