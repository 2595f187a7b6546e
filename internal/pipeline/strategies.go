package pipeline

import (
	"context"

	"upscaler/internal/engine"
	"upscaler/internal/imaging"
)

// PlainUpscale delegates straight to the super-resolution engine.
type PlainUpscale struct {
	Engine engine.Upscaler
	Scale  int
	Tile   int
}

func (p PlainUpscale) Enhance(ctx context.Context, buf *imaging.Buffer) (*imaging.Buffer, error) {
	return p.Engine.Upscale(ctx, buf, p.Scale, p.Tile)
}

// FaceEnhance delegates to the face-restoration engine, which performs its
// own background upscaling.
type FaceEnhance struct {
	Engine engine.FaceRestorer
}

func (f FaceEnhance) Enhance(ctx context.Context, buf *imaging.Buffer) (*imaging.Buffer, error) {
	return f.Engine.Restore(ctx, buf)
}
