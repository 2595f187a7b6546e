// Package pipeline drives a batch of work items through decode, optional
// denoise, enhancement, and encode. Items run strictly sequentially: the
// device and loaded weights are shared, expensive, and not re-entrant.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"upscaler/internal/imaging"
	"upscaler/internal/job"
	"upscaler/internal/logging"
)

var (
	// ErrDecode marks an unreadable or corrupt source file.
	ErrDecode = errors.New("decode error")
	// ErrEncode marks a failure writing the result.
	ErrEncode = errors.New("encode error")
)

// Enhancer is the per-image enhancement strategy: plain super-resolution or
// face-enhanced upscaling, chosen once at setup.
type Enhancer interface {
	Enhance(ctx context.Context, buf *imaging.Buffer) (*imaging.Buffer, error)
}

// Prepass is an optional stage run before enhancement.
type Prepass interface {
	Denoise(ctx context.Context, buf *imaging.Buffer) (*imaging.Buffer, error)
}

// Options wires the orchestrator's collaborators.
type Options struct {
	Logger   *slog.Logger
	Enhancer Enhancer
	Prepass  Prepass
	Encode   imaging.EncodeOptions
	// Progress receives the per-item outcome lines. Defaults to stdout.
	Progress io.Writer
}

// Run processes the items in order, isolating failures per item: a bad input
// is recorded and the batch continues. A canceled context stops further
// items; outputs already written stay on disk.
func Run(ctx context.Context, items []job.WorkItem, opts Options) job.Report {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	progress := opts.Progress
	if progress == nil {
		progress = os.Stdout
	}

	var report job.Report
	for i, item := range items {
		if ctx.Err() != nil {
			logger.Warn("batch interrupted",
				logging.Int("remaining", len(items)-i),
				logging.Error(ctx.Err()))
			break
		}

		outW, outH, err := processItem(ctx, item, opts)
		if err != nil {
			report.RecordFailure(item.Source, err)
			fmt.Fprintf(progress, "[%d/%d] %s ERROR: %v\n", i+1, len(items), filepath.Base(item.Source), err)
			logger.Error("item failed",
				logging.String("source", item.Source),
				logging.Error(err))
			continue
		}

		report.RecordSuccess()
		fmt.Fprintf(progress, "[%d/%d] %s -> %s (%dx%d)\n",
			i+1, len(items), filepath.Base(item.Source), filepath.Base(item.Destination), outW, outH)
		logger.Info("item complete",
			logging.String("source", item.Source),
			logging.String("destination", item.Destination),
			logging.Int("width", outW),
			logging.Int("height", outH))
	}
	return report
}

func processItem(ctx context.Context, item job.WorkItem, opts Options) (int, int, error) {
	buf, err := imaging.Decode(item.Source)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if opts.Prepass != nil {
		buf, err = opts.Prepass.Denoise(ctx, buf)
		if err != nil {
			return 0, 0, err
		}
	}

	result, err := opts.Enhancer.Enhance(ctx, buf)
	if err != nil {
		return 0, 0, err
	}

	if err := imaging.Encode(item.Destination, result, opts.Encode); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return result.Width(), result.Height(), nil
}
