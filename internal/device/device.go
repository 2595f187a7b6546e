// Package device probes the hardware tiers available for inference. The
// probe is a one-shot PATH/platform check; the chosen device is held for the
// whole run.
package device

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Kind identifies a compute tier.
type Kind string

const (
	// KindCUDA is a dedicated GPU driven through the CUDA/Vulkan stack.
	KindCUDA Kind = "cuda"
	// KindMPS is the Apple unified-memory backend.
	KindMPS Kind = "mps"
	// KindCPU is the general-purpose fallback.
	KindCPU Kind = "cpu"
)

// Device is the compute target selected for a run. HalfPrecision is enabled
// only on the CUDA tier; reduced precision is numerically unsafe or
// unsupported elsewhere.
type Device struct {
	Kind          Kind
	Index         int
	HalfPrecision bool
}

func (d Device) String() string {
	if d.Kind == KindCUDA {
		return fmt.Sprintf("cuda:%d", d.Index)
	}
	return string(d.Kind)
}

// Test seams.
var (
	lookPath = exec.LookPath
	goos     = runtime.GOOS
)

// Detect picks the best available device: CUDA GPU first (honoring gpuID
// when >= 0), then the Apple backend on darwin, then CPU. Identical
// availability always yields an identical result.
func Detect(gpuID int) Device {
	if cudaAvailable() {
		index := 0
		if gpuID >= 0 {
			index = gpuID
		}
		return Device{Kind: KindCUDA, Index: index, HalfPrecision: true}
	}
	if goos == "darwin" {
		return Device{Kind: KindMPS}
	}
	return Device{Kind: KindCPU}
}

func cudaAvailable() bool {
	_, err := lookPath("nvidia-smi")
	return err == nil
}
