package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootRejectsInvalidScale(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCommand()
	cmd.SetArgs([]string{"-i", "in.png", "-o", "out.png", "--scale", "3"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "scale must be 2 or 4") {
		t.Fatalf("expected scale validation error, got %v", err)
	}
}

func TestRootRejectsInvalidModel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCommand()
	cmd.SetArgs([]string{"-i", "in.png", "-o", "out.png", "--model", "photo"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "model must be general or anime") {
		t.Fatalf("expected model validation error, got %v", err)
	}
}

func TestRootFailsOnMissingInputPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	missing := filepath.Join(t.TempDir(), "gone")
	cmd := newRootCommand()
	cmd.SetArgs([]string{"-i", missing, "-o", filepath.Join(home, "out")})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing-path error, got %v", err)
	}
}

func TestRootRequiresInputFlag(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"-o", "out.png"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when --input is missing")
	}
}

func TestModelsCommandListsVariants(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"models"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("models command: %v", err)
	}

	for _, name := range []string{"RealESRGAN_x4plus", "RealESRGAN_x2plus", "RealESRGAN_x4plus_anime_6B"} {
		if !strings.Contains(out.String(), name) {
			t.Fatalf("models output missing %s:\n%s", name, out.String())
		}
	}
}

func TestConfigShowPrintsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "show"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out.String(), "jpeg_quality") {
		t.Fatalf("config show output missing jpeg_quality:\n%s", out.String())
	}
}

func TestFlagsToSpec(t *testing.T) {
	flags := &rootFlags{
		input:       "/in",
		output:      "/out",
		scale:       2,
		model:       "anime",
		faceEnhance: true,
		denoise:     true,
		tile:        128,
		gpuID:       1,
		suffix:      "_big",
		format:      "jpg",
	}
	spec := flags.toSpec()
	if spec.Scale != 2 || spec.Model != "anime" || !spec.FaceEnhance || !spec.Denoise {
		t.Fatalf("unexpected spec: %+v", spec)
	}
	if spec.Tile != 128 || spec.GPUID != 1 || spec.Suffix != "_big" || spec.Format != "jpg" {
		t.Fatalf("unexpected spec: %+v", spec)
	}
	if err := spec.Validate(); err != nil {
		t.Fatalf("spec should validate: %v", err)
	}
}
