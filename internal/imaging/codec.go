package imaging

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageExtensions is the set of source file extensions the batch accepts,
// lowercase with leading dot.
var ImageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".bmp":  {},
	".tiff": {},
}

// Decode reads and parses an image file, preserving any alpha channel.
func Decode(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return FromImage(img), nil
}

// EncodeOptions controls lossy output encoding.
type EncodeOptions struct {
	JPEGQuality int
}

// Encode writes the buffer to path, choosing the codec by the destination
// extension. Alpha survives PNG and TIFF output; JPEG and BMP flatten it.
// webp has no Go encoder, so .webp destinations receive PNG bytes, matching
// the extension-driven codec dispatch of the tools this replaces.
func Encode(path string, buf *Buffer, opts EncodeOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	quality := opts.JPEGQuality
	if quality <= 0 {
		quality = jpeg.DefaultQuality
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, buf.Pix, &jpeg.Options{Quality: quality})
	case ".bmp":
		err = bmp.Encode(f, buf.Pix)
	case ".tiff":
		err = tiff.Encode(f, buf.Pix, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(f, buf.Pix)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
