// Package model maps the requested model family and scale onto a concrete
// network configuration. Selection is pure: identical job specs and device
// availability yield identical configs, and the only process-wide state (the
// weights cache) lives behind the fetcher, not here.
package model

import (
	"errors"
	"fmt"

	"upscaler/internal/device"
	"upscaler/internal/job"
)

// ErrModelConfig marks an unsupported model/scale combination. Fatal at setup.
var ErrModelConfig = errors.New("model config error")

// Canonical checkpoint URLs.
const (
	urlGeneralX4 = "https://github.com/xinntao/Real-ESRGAN/releases/download/v0.1.0/RealESRGAN_x4plus.pth"
	urlGeneralX2 = "https://github.com/xinntao/Real-ESRGAN/releases/download/v0.2.1/RealESRGAN_x2plus.pth"
	urlAnimeX4   = "https://github.com/xinntao/Real-ESRGAN/releases/download/v0.2.2.4/RealESRGAN_x4plus_anime_6B.pth"

	// FaceWeightsURL is the GFPGAN checkpoint used by the face-restoration
	// stage.
	FaceWeightsURL = "https://github.com/TencentARC/GFPGAN/releases/download/v1.3.0/GFPGANv1.3.pth"

	// DenoiseCheckpoint names the Swin2SR checkpoint behind the denoising
	// pre-pass. Its native output scale drives the normalizer's downsample.
	DenoiseCheckpoint  = "swin2SR-realworld-sr-x4-64-bsrgan-psnr"
	DenoiseNativeScale = 4
)

// TilePad is the overlap in pixels between adjacent tiles, forwarded to the
// upscale engine whenever tiling is enabled.
const TilePad = 10

// Variant describes one published network architecture.
type Variant struct {
	Name           string
	Blocks         int
	Features       int
	GrowthChannels int
	NativeScale    int
	WeightsURL     string
}

// Variants returns the supported variants in display order.
func Variants() []Variant {
	return []Variant{
		{Name: "RealESRGAN_x4plus", Blocks: 23, Features: 64, GrowthChannels: 32, NativeScale: 4, WeightsURL: urlGeneralX4},
		{Name: "RealESRGAN_x2plus", Blocks: 23, Features: 64, GrowthChannels: 32, NativeScale: 2, WeightsURL: urlGeneralX2},
		{Name: "RealESRGAN_x4plus_anime_6B", Blocks: 6, Features: 64, GrowthChannels: 32, NativeScale: 4, WeightsURL: urlAnimeX4},
	}
}

// EngineConfig is the resolved network and device configuration for a run.
// Created once at setup, owned by the orchestrator, never mutated afterwards.
type EngineConfig struct {
	Variant       Variant
	Device        device.Device
	HalfPrecision bool
	// WeightsPath is the local checkpoint location, filled in by the
	// weights fetcher after Select.
	WeightsPath     string
	FaceWeightsPath string
}

// Select resolves the network variant for the job on the given device.
//
// The anime checkpoint only ships at 4x: requesting scale=2 with model=anime
// is accepted, the engine still runs at its native 4x, and the final output
// scale is reached by resampling in the engine client.
func Select(spec job.Spec, dev device.Device) (EngineConfig, error) {
	var variant Variant
	switch {
	case spec.Model == job.ModelGeneral && spec.Scale == 4:
		variant = Variants()[0]
	case spec.Model == job.ModelGeneral && spec.Scale == 2:
		variant = Variants()[1]
	case spec.Model == job.ModelAnime:
		variant = Variants()[2]
	default:
		return EngineConfig{}, fmt.Errorf("%w: no variant for model %q at scale %d", ErrModelConfig, spec.Model, spec.Scale)
	}

	return EngineConfig{
		Variant:       variant,
		Device:        dev,
		HalfPrecision: dev.HalfPrecision,
	}, nil
}
