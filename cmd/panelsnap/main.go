// Command panelsnap generates a synthetic panel, normalizes it into a
// grouped array and writes it as a snapshot file.
//
// Settings come from an optional YAML file (-config) and PANEL_*
// environment variables, the environment taking precedence.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/marcozanotti/utilsforecast/internal/logging"
	"github.com/marcozanotti/utilsforecast/processing"
	"github.com/marcozanotti/utilsforecast/snapshot"
	"github.com/marcozanotti/utilsforecast/synth"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "panelsnap:", err)
		os.Exit(1)
	}
}

func run(configPath string, logOut io.Writer) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(logOut, cfg.Logging)
	if err != nil {
		return err
	}

	stats, err := buildSnapshot(cfg, logger)
	if err != nil {
		logger.Error("snapshot failed", "error", err)
		return err
	}

	logger.Info("snapshot written",
		"output", cfg.Snapshot.Output,
		"groups", stats.groups,
		"rows", stats.rows,
		"bytes", stats.bytes,
		"elapsed", stats.elapsed,
	)

	return nil
}

type runStats struct {
	groups  int
	rows    int
	bytes   int
	elapsed time.Duration
}

func buildSnapshot(cfg *Config, logger *slog.Logger) (runStats, error) {
	start := time.Now()

	genOpts, err := cfg.generatorOptions()
	if err != nil {
		return runStats{}, err
	}
	snapOpts, err := cfg.snapshotOptions()
	if err != nil {
		return runStats{}, err
	}

	src, err := synth.GenerateSeries(cfg.Generator.Series, genOpts...)
	if err != nil {
		return runStats{}, fmt.Errorf("generate: %w", err)
	}
	if r, ok := src.(interface{ Release() }); ok {
		defer r.Release()
	}

	procOpts := []processing.Option{processing.WithLogger(logger)}
	if cfg.Generator.NumericIDs {
		procOpts = append(procOpts, processing.WithNumericIDs())
	}

	res, err := processing.Process(src, procOpts...)
	if err != nil {
		return runStats{}, fmt.Errorf("process: %w", err)
	}
	defer res.Release()

	if res.Array.Len() > 0 {
		sizes := res.Array.Sizes()
		shortest, longest := sizes[0], sizes[0]
		for _, s := range sizes[1:] {
			shortest = min(shortest, s)
			longest = max(longest, s)
		}
		logger.Debug("group sizes", "min", shortest, "max", longest)
	}

	data, err := snapshot.EncodeResult(res, snapOpts...)
	if err != nil {
		return runStats{}, fmt.Errorf("encode: %w", err)
	}

	if err := os.WriteFile(cfg.Snapshot.Output, data, 0o644); err != nil {
		return runStats{}, fmt.Errorf("write snapshot: %w", err)
	}

	return runStats{
		groups:  res.Array.Len(),
		rows:    res.Array.Rows(),
		bytes:   len(data),
		elapsed: time.Since(start),
	}, nil
}
