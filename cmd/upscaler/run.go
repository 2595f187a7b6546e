package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"upscaler/internal/config"
	"upscaler/internal/denoise"
	"upscaler/internal/device"
	"upscaler/internal/engine/ncnn"
	"upscaler/internal/history"
	"upscaler/internal/imaging"
	"upscaler/internal/job"
	"upscaler/internal/logging"
	"upscaler/internal/model"
	"upscaler/internal/pipeline"
	"upscaler/internal/resolve"
	"upscaler/internal/weights"
)

func runUpscale(ctx context.Context, flags *rootFlags) error {
	spec := flags.toSpec()
	if err := spec.Validate(); err != nil {
		return err
	}

	cfg, _, _, err := config.Load(flags.config)
	if err != nil {
		return err
	}

	logger, err := newRunLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Fail on a bad input path before touching device, weights, or config
	// directories.
	items, err := resolve.Resolve(spec)
	if err != nil {
		return err
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	dev := device.Detect(spec.GPUID)
	engineCfg, err := model.Select(spec, dev)
	if err != nil {
		return err
	}

	logger.Info("starting run",
		logging.String("input", spec.Input),
		logging.String("output", spec.Output),
		logging.Int("scale", spec.Scale),
		logging.String("model", engineCfg.Variant.Name),
		logging.String("device", dev.String()),
		logging.Bool("half_precision", engineCfg.HalfPrecision),
		logging.Bool("face_enhance", spec.FaceEnhance),
		logging.Bool("denoise", spec.Denoise),
		logging.Int("tile", spec.Tile),
		logging.String("suffix", spec.Suffix),
		logging.String("format", string(spec.Format)))

	fetcher := weights.NewFetcher(cfg.Paths.WeightsDir, weights.WithLogger(logger))
	engineCfg.WeightsPath, err = fetcher.Fetch(ctx, engineCfg.Variant.WeightsURL)
	if err != nil {
		return fmt.Errorf("fetch model weights: %w", err)
	}
	if spec.FaceEnhance {
		engineCfg.FaceWeightsPath, err = fetcher.Fetch(ctx, model.FaceWeightsURL)
		if err != nil {
			return fmt.Errorf("fetch face weights: %w", err)
		}
	}

	opts := pipeline.Options{
		Logger:   logger,
		Enhancer: buildEnhancer(cfg, spec, engineCfg),
		Encode:   imaging.EncodeOptions{JPEGQuality: cfg.Output.JPEGQuality},
	}
	if spec.Denoise {
		denoiser := ncnn.NewDenoiser(dev,
			ncnn.WithBinary(cfg.Engine.DenoiseBinary),
			ncnn.WithTimeout(engineTimeout(cfg)))
		opts.Prepass = denoise.New(denoiser)
	}

	fmt.Printf("Found %d image(s) to process\n", len(items))
	started := time.Now()
	report := pipeline.Run(ctx, items, opts)
	fmt.Printf("\nDone: %d succeeded, %d failed\n", report.Succeeded, report.Failed)

	recordRun(logger, cfg, spec, started, report)

	// Partial per-item failures leave the exit code at zero; only setup
	// errors are fatal.
	return ctx.Err()
}

func buildEnhancer(cfg *config.Config, spec job.Spec, engineCfg model.EngineConfig) pipeline.Enhancer {
	timeout := engineTimeout(cfg)
	if spec.FaceEnhance {
		return pipeline.FaceEnhance{
			Engine: ncnn.NewFaceRestorer(engineCfg, spec.Scale,
				ncnn.WithBinary(cfg.Engine.FaceBinary),
				ncnn.WithTimeout(timeout)),
		}
	}
	return pipeline.PlainUpscale{
		Engine: ncnn.NewUpscaler(engineCfg,
			ncnn.WithBinary(cfg.Engine.UpscaleBinary),
			ncnn.WithTimeout(timeout)),
		Scale: spec.Scale,
		Tile:  spec.Tile,
	}
}

func engineTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Engine.TimeoutSeconds) * time.Second
}

func newRunLogger(cfg *config.Config) (*slog.Logger, error) {
	outputs := []string{"stderr"}
	if cfg.Paths.LogDir != "" {
		outputs = append(outputs, filepath.Join(cfg.Paths.LogDir, "upscaler.log"))
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}

// recordRun appends the run to the history database. History problems are
// warnings only; they never affect the run's outcome.
func recordRun(logger *slog.Logger, cfg *config.Config, spec job.Spec, started time.Time, report job.Report) {
	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		logger.Warn("history unavailable", logging.Error(err))
		return
	}
	defer store.Close()

	_, err = store.RecordRun(context.Background(), history.Run{
		StartedAt:   started,
		FinishedAt:  time.Now(),
		Input:       spec.Input,
		Output:      spec.Output,
		Scale:       spec.Scale,
		Model:       string(spec.Model),
		FaceEnhance: spec.FaceEnhance,
		Denoise:     spec.Denoise,
		Attempted:   report.Attempted,
		Succeeded:   report.Succeeded,
		Failed:      report.Failed,
	}, report.Failures)
	if err != nil {
		logger.Warn("record run history", logging.Error(err))
	}
}

// loadConfig is shared by the informational subcommands.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, _, _, err := config.Load(flags.config)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func isTerminal(f *os.File) bool {
	return terminalCheck(f.Fd())
}
