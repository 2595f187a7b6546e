package device

import (
	"errors"
	"testing"
)

func withProbe(t *testing.T, cuda bool, platform string) {
	t.Helper()
	origLook, origGOOS := lookPath, goos
	t.Cleanup(func() {
		lookPath, goos = origLook, origGOOS
	})
	lookPath = func(string) (string, error) {
		if cuda {
			return "/usr/bin/nvidia-smi", nil
		}
		return "", errors.New("not found")
	}
	goos = platform
}

func TestDetectPrefersCUDA(t *testing.T) {
	withProbe(t, true, "linux")
	dev := Detect(-1)
	if dev.Kind != KindCUDA || dev.Index != 0 {
		t.Fatalf("unexpected device: %+v", dev)
	}
	if !dev.HalfPrecision {
		t.Fatal("expected half precision on cuda tier")
	}
	if dev.String() != "cuda:0" {
		t.Fatalf("unexpected string: %s", dev)
	}
}

func TestDetectHonorsGPUIndex(t *testing.T) {
	withProbe(t, true, "linux")
	dev := Detect(2)
	if dev.Index != 2 {
		t.Fatalf("gpu index override ignored: %+v", dev)
	}
}

func TestDetectAppleBackend(t *testing.T) {
	withProbe(t, false, "darwin")
	dev := Detect(-1)
	if dev.Kind != KindMPS || dev.HalfPrecision {
		t.Fatalf("unexpected device: %+v", dev)
	}
}

func TestDetectCPUFallback(t *testing.T) {
	withProbe(t, false, "linux")
	dev := Detect(-1)
	if dev.Kind != KindCPU || dev.HalfPrecision {
		t.Fatalf("unexpected device: %+v", dev)
	}
}

func TestDetectDeterministic(t *testing.T) {
	withProbe(t, true, "linux")
	if Detect(1) != Detect(1) {
		t.Fatal("identical availability must yield identical devices")
	}
}
