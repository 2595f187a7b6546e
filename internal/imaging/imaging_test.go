package imaging_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"upscaler/internal/imaging"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestDecodeDerivesChannels(t *testing.T) {
	dir := t.TempDir()

	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	writePNG(t, filepath.Join(dir, "gray.png"), gray)

	opaque := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 0xFF
	}
	writePNG(t, filepath.Join(dir, "rgb.png"), opaque)

	translucent := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	translucent.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	writePNG(t, filepath.Join(dir, "rgba.png"), translucent)

	cases := []struct {
		file     string
		channels int
	}{
		{"gray.png", 1},
		{"rgb.png", 3},
		{"rgba.png", 4},
	}
	for _, tc := range cases {
		buf, err := imaging.Decode(filepath.Join(dir, tc.file))
		if err != nil {
			t.Fatalf("decode %s: %v", tc.file, err)
		}
		if buf.Channels != tc.channels {
			t.Fatalf("%s: got %d channels, want %d", tc.file, buf.Channels, tc.channels)
		}
	}
}

func TestDecodeRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := imaging.Decode(path); err == nil {
		t.Fatal("expected decode error for corrupt file")
	}
}

func TestAlphaPlaneRoundTrip(t *testing.T) {
	buf := imaging.NewBuffer(3, 2, 4)
	plane := []uint8{0, 50, 100, 150, 200, 250}
	buf.SetAlphaPlane(plane)

	got := buf.AlphaPlane()
	if len(got) != len(plane) {
		t.Fatalf("plane length mismatch: %d vs %d", len(got), len(plane))
	}
	for i := range plane {
		if got[i] != plane[i] {
			t.Fatalf("alpha[%d] = %d, want %d", i, got[i], plane[i])
		}
	}
}

func TestResampleKeepsChannels(t *testing.T) {
	buf := imaging.NewBuffer(8, 8, 1)
	out := imaging.Resample(buf, 4, 4)
	if out.Width() != 4 || out.Height() != 4 {
		t.Fatalf("unexpected size %dx%d", out.Width(), out.Height())
	}
	if out.Channels != 1 {
		t.Fatalf("channel count changed: %d", out.Channels)
	}
}

func TestEncodeDecodeJPEG(t *testing.T) {
	dir := t.TempDir()
	buf := imaging.NewBuffer(4, 4, 3)
	for i := 3; i < len(buf.Pix.Pix); i += 4 {
		buf.Pix.Pix[i] = 0xFF
	}

	path := filepath.Join(dir, "out.jpg")
	if err := imaging.Encode(path, buf, imaging.EncodeOptions{JPEGQuality: 90}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := imaging.Decode(path)
	if err != nil {
		t.Fatalf("decode written jpeg: %v", err)
	}
	if decoded.Width() != 4 || decoded.Height() != 4 {
		t.Fatalf("unexpected size %dx%d", decoded.Width(), decoded.Height())
	}
}
