// Package denoise is the channel-normalizing pre-pass in front of the
// denoising network. The network only accepts three channels and returns
// output at its own native scale; this stage owns getting arbitrary-channel
// buffers in and byte-faithful shapes back out.
package denoise

import (
	"context"

	"upscaler/internal/engine"
	"upscaler/internal/imaging"
)

// Normalizer runs the denoising collaborator on arbitrary-channel buffers.
type Normalizer struct {
	engine engine.Denoiser
}

// New constructs a Normalizer over the given denoising engine.
func New(eng engine.Denoiser) *Normalizer {
	return &Normalizer{engine: eng}
}

// Denoise cleans the buffer. The output has exactly the input's dimensions
// and channel count: grayscale is expanded to three channels for inference
// only, an alpha plane is detached beforehand and reattached unchanged, and
// the network's native-scale output is resampled back down with a Lanczos
// filter. No disk I/O happens here.
func (n *Normalizer) Denoise(ctx context.Context, buf *imaging.Buffer) (*imaging.Buffer, error) {
	origW, origH := buf.Width(), buf.Height()
	origChannels := buf.Channels

	work := buf
	var alpha []uint8
	if origChannels == 4 {
		alpha = buf.AlphaPlane()
		work = buf.Clone()
		opaque := make([]uint8, origW*origH)
		for i := range opaque {
			opaque[i] = 0xFF
		}
		work.SetAlphaPlane(opaque)
		work.Channels = 3
	} else if origChannels == 1 {
		// Gray pixels are already replicated across RGB in storage; only
		// the channel tag changes for the engine.
		work = buf.Clone()
		work.Channels = 3
	}

	out, err := n.engine.Denoise(ctx, work)
	if err != nil {
		return nil, err
	}

	out = imaging.Resample(out, origW, origH)
	out.Channels = origChannels
	if alpha != nil {
		out.SetAlphaPlane(alpha)
	}
	return out, nil
}
