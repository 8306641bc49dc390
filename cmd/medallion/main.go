package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/awlake/medallion-pipeline/internal/config"
	"github.com/awlake/medallion-pipeline/internal/logging"
	"github.com/awlake/medallion-pipeline/internal/pipeline"
)

func main() {
	layers := flag.String("layers", pipeline.LayerAll,
		fmt.Sprintf("layers to run: %s | %s | %s | %s",
			pipeline.LayerBronzeToSilver, pipeline.LayerSilverToGold,
			pipeline.LayerVisualize, pipeline.LayerAll))
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	logging.Setup(logging.Config(cfg.Log))

	slog.Info("medallion pipeline", "version", pipeline.Version, "git_sha", pipeline.GitSHA)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown handler
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		sig := <-ch
		slog.Info("received signal, stopping", "signal", sig.String())
		cancel()
	}()

	p := pipeline.New(cfg)
	if err := p.Run(ctx, *layers); err != nil {
		slog.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
}
