package imaging

import (
	"image"
	"image/color"
)

// Buffer is an in-memory raster with an explicit channel count. Pixels are
// stored as NRGBA regardless of channel count; Channels records the source
// layout (1 grayscale, 3 color, 4 color with alpha) so pipeline stages can
// restore it.
type Buffer struct {
	Pix      *image.NRGBA
	Channels int
}

// NewBuffer allocates a zeroed buffer of the given size and channel count.
func NewBuffer(width, height, channels int) *Buffer {
	return &Buffer{
		Pix:      image.NewNRGBA(image.Rect(0, 0, width, height)),
		Channels: channels,
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.Pix.Rect.Dx() }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.Pix.Rect.Dy() }

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	dst := image.NewNRGBA(b.Pix.Rect)
	copy(dst.Pix, b.Pix.Pix)
	return &Buffer{Pix: dst, Channels: b.Channels}
}

// AlphaPlane extracts the alpha channel as a packed byte slice in row-major
// order.
func (b *Buffer) AlphaPlane() []uint8 {
	w, h := b.Width(), b.Height()
	plane := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		row := b.Pix.Pix[y*b.Pix.Stride : y*b.Pix.Stride+w*4]
		for x := 0; x < w; x++ {
			plane[y*w+x] = row[x*4+3]
		}
	}
	return plane
}

// SetAlphaPlane writes a packed alpha plane back into the buffer and marks it
// four-channel. The plane length must match the pixel count.
func (b *Buffer) SetAlphaPlane(plane []uint8) {
	w, h := b.Width(), b.Height()
	for y := 0; y < h; y++ {
		row := b.Pix.Pix[y*b.Pix.Stride : y*b.Pix.Stride+w*4]
		for x := 0; x < w; x++ {
			row[x*4+3] = plane[y*w+x]
		}
	}
	b.Channels = 4
}

// Opaque reports whether every pixel has full alpha.
func (b *Buffer) Opaque() bool {
	w, h := b.Width(), b.Height()
	for y := 0; y < h; y++ {
		row := b.Pix.Pix[y*b.Pix.Stride : y*b.Pix.Stride+w*4]
		for x := 0; x < w; x++ {
			if row[x*4+3] != 0xFF {
				return false
			}
		}
	}
	return true
}

// FromImage converts any decoded image into a Buffer, deriving the channel
// count from the source color model and alpha usage.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	buf := &Buffer{Pix: dst, Channels: 3}
	if isGrayModel(img) {
		buf.Channels = 1
	} else if !buf.Opaque() {
		buf.Channels = 4
	}
	return buf
}

func isGrayModel(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return true
	}
	return false
}
