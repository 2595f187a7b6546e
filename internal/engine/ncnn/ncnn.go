// Package ncnn adapts the ncnn-vulkan inference binaries to the engine
// contracts. Images cross the process boundary as temporary PNG files; the
// binaries own tiling, padding, and stitching.
package ncnn

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"upscaler/internal/device"
	"upscaler/internal/engine"
	"upscaler/internal/imaging"
	"upscaler/internal/model"
)

var commandContext = exec.CommandContext

// Option configures a client.
type Option func(*client)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithTimeout bounds a single inference invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

type client struct {
	binary  string
	timeout time.Duration
}

func newClient(binary string, opts ...Option) client {
	c := client{binary: binary, timeout: 10 * time.Minute}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// run writes buf to a temp PNG, invokes the binary with -i/-o filled in, and
// decodes the result. The channel count of the input is carried over.
func (c client) run(ctx context.Context, buf *imaging.Buffer, extraArgs []string) (*imaging.Buffer, error) {
	workDir, err := os.MkdirTemp("", "upscaler-ncnn-*")
	if err != nil {
		return nil, fmt.Errorf("%w: create work dir: %v", engine.ErrInference, err)
	}
	defer os.RemoveAll(workDir)

	inPath := filepath.Join(workDir, "in.png")
	outPath := filepath.Join(workDir, "out.png")
	if err := imaging.Encode(inPath, buf, imaging.EncodeOptions{}); err != nil {
		return nil, fmt.Errorf("%w: stage input: %v", engine.ErrInference, err)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := append([]string{"-i", inPath, "-o", outPath}, extraArgs...)
	cmd := commandContext(runCtx, c.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return nil, fmt.Errorf("%w: %s: %v: %s", engine.ErrInference, c.binary, err, detail)
		}
		return nil, fmt.Errorf("%w: %s: %v", engine.ErrInference, c.binary, err)
	}

	result, err := imaging.Decode(outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read engine output: %v", engine.ErrInference, err)
	}
	result.Channels = buf.Channels
	return result, nil
}

func deviceArg(dev device.Device) string {
	if dev.Kind == device.KindCUDA {
		return strconv.Itoa(dev.Index)
	}
	// The ncnn binaries treat -1 as CPU inference.
	return "-1"
}

// Upscaler wraps the Real-ESRGAN ncnn binary.
type Upscaler struct {
	client
	cfg model.EngineConfig
}

// NewUpscaler constructs an Upscaler for the resolved engine config.
func NewUpscaler(cfg model.EngineConfig, opts ...Option) *Upscaler {
	return &Upscaler{client: newClient("realesrgan-ncnn-vulkan", opts...), cfg: cfg}
}

// Upscale runs super-resolution at the variant's native scale and resamples
// to outScale when they differ (the anime variant only ships at 4x).
func (u *Upscaler) Upscale(ctx context.Context, buf *imaging.Buffer, outScale, tile int) (*imaging.Buffer, error) {
	args := []string{
		"-n", u.cfg.Variant.Name,
		"-s", strconv.Itoa(u.cfg.Variant.NativeScale),
		"-t", strconv.Itoa(tile),
		"-g", deviceArg(u.cfg.Device),
	}
	if tile > 0 {
		args = append(args, "-p", strconv.Itoa(model.TilePad))
	}
	if u.cfg.WeightsPath != "" {
		args = append(args, "-m", filepath.Dir(u.cfg.WeightsPath))
	}

	result, err := u.run(ctx, buf, args)
	if err != nil {
		return nil, err
	}

	wantW := buf.Width() * outScale
	wantH := buf.Height() * outScale
	if result.Width() != wantW || result.Height() != wantH {
		result = imaging.Resample(result, wantW, wantH)
	}
	return result, nil
}

// FaceRestorer wraps the GFPGAN ncnn binary. The binary performs its own
// background upscaling at the configured scale.
type FaceRestorer struct {
	client
	cfg   model.EngineConfig
	scale int
}

// NewFaceRestorer constructs a FaceRestorer that upscales by scale.
func NewFaceRestorer(cfg model.EngineConfig, scale int, opts ...Option) *FaceRestorer {
	return &FaceRestorer{client: newClient("gfpgan-ncnn-vulkan", opts...), cfg: cfg, scale: scale}
}

// Restore enhances face regions and returns the pasted-back result.
func (f *FaceRestorer) Restore(ctx context.Context, buf *imaging.Buffer) (*imaging.Buffer, error) {
	args := []string{
		"-s", strconv.Itoa(f.scale),
		"-g", deviceArg(f.cfg.Device),
	}
	if f.cfg.FaceWeightsPath != "" {
		args = append(args, "-m", filepath.Dir(f.cfg.FaceWeightsPath))
	}
	return f.run(ctx, buf, args)
}

// Denoiser wraps the Swin2SR ncnn binary. Output comes back at the
// checkpoint's native 4x scale; callers resample.
type Denoiser struct {
	client
	dev device.Device
}

// NewDenoiser constructs a Denoiser on the given device.
func NewDenoiser(dev device.Device, opts ...Option) *Denoiser {
	return &Denoiser{client: newClient("swin2sr-ncnn-vulkan", opts...), dev: dev}
}

// Denoise cleans the buffer, returning the network's native-scale output.
func (d *Denoiser) Denoise(ctx context.Context, buf *imaging.Buffer) (*imaging.Buffer, error) {
	args := []string{
		"-n", model.DenoiseCheckpoint,
		"-s", strconv.Itoa(model.DenoiseNativeScale),
		"-g", deviceArg(d.dev),
	}
	return d.run(ctx, buf, args)
}
