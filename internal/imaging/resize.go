package imaging

import (
	"github.com/nfnt/resize"
)

// Resample scales the buffer to the given size with a Lanczos filter,
// preserving the channel count.
func Resample(buf *Buffer, width, height int) *Buffer {
	if buf.Width() == width && buf.Height() == height {
		return buf
	}
	scaled := resize.Resize(uint(width), uint(height), buf.Pix, resize.Lanczos3)
	out := FromImage(scaled)
	out.Channels = buf.Channels
	return out
}
