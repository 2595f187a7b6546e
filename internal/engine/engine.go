// Package engine defines the contracts for the external inference
// collaborators. The networks themselves are pretrained third-party models;
// this codebase only hands buffers across the boundary.
package engine

import (
	"context"
	"errors"

	"upscaler/internal/imaging"
)

// ErrInference marks a collaborator failure. Per-item recoverable; the batch
// continues.
var ErrInference = errors.New("inference error")

// Upscaler runs super-resolution on a whole image. outScale is the final
// magnification the caller wants; implementations running at a different
// native scale resample to outScale before returning. A positive tile bounds
// memory by processing the image in overlapping tiles; 0 means whole-image
// inference. Tiling internals belong to the engine.
type Upscaler interface {
	Upscale(ctx context.Context, buf *imaging.Buffer, outScale, tile int) (*imaging.Buffer, error)
}

// FaceRestorer restores face regions and pastes them back onto an upscaled
// background (the background upscale happens inside the collaborator).
type FaceRestorer interface {
	Restore(ctx context.Context, buf *imaging.Buffer) (*imaging.Buffer, error)
}

// Denoiser cleans a three-channel buffer, returning the result at the
// network's own native scale. Callers restore the original resolution.
type Denoiser interface {
	Denoise(ctx context.Context, buf *imaging.Buffer) (*imaging.Buffer, error)
}
