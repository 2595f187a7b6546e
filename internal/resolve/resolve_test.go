package resolve_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"upscaler/internal/job"
	"upscaler/internal/resolve"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func dirSpec(input, output string) job.Spec {
	return job.Spec{
		Input:  input,
		Output: output,
		Scale:  4,
		Model:  job.ModelGeneral,
		Suffix: job.DefaultSuffix,
		Format: job.FormatAuto,
	}
}

func TestResolveDirectoryFiltersAndSorts(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	touch(t, filepath.Join(in, "c.gif"))
	touch(t, filepath.Join(in, "b.jpg"))
	touch(t, filepath.Join(in, "a.png"))

	items, err := resolve.Resolve(dirSpec(in, out))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if filepath.Base(items[0].Destination) != "a_upscaled.png" {
		t.Fatalf("unexpected first destination: %s", items[0].Destination)
	}
	if filepath.Base(items[1].Destination) != "b_upscaled.jpg" {
		t.Fatalf("unexpected second destination: %s", items[1].Destination)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output directory not created: %v", err)
	}
}

func TestResolveDirectoryCaseInsensitiveExtensions(t *testing.T) {
	in := t.TempDir()
	touch(t, filepath.Join(in, "photo.JPG"))

	items, err := resolve.Resolve(dirSpec(in, filepath.Join(t.TempDir(), "out")))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].OutputExt != ".JPG" {
		t.Fatalf("expected source extension preserved, got %q", items[0].OutputExt)
	}
}

func TestResolveDirectoryEmptyIsNotAnError(t *testing.T) {
	in := t.TempDir()
	touch(t, filepath.Join(in, "notes.txt"))

	items, err := resolve.Resolve(dirSpec(in, filepath.Join(t.TempDir(), "out")))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected 0 items, got %d", len(items))
	}
}

func TestResolveSingleFileFormatOverride(t *testing.T) {
	in := t.TempDir()
	src := filepath.Join(in, "img.png")
	touch(t, src)

	spec := dirSpec(src, filepath.Join(t.TempDir(), "nested", "out.png"))
	spec.Format = job.FormatJPG

	items, err := resolve.Resolve(spec)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if !strings.HasSuffix(items[0].Destination, "out.jpg") {
		t.Fatalf("format override not applied: %s", items[0].Destination)
	}
	if items[0].OutputExt != ".jpg" {
		t.Fatalf("unexpected output extension: %q", items[0].OutputExt)
	}
	if _, err := os.Stat(filepath.Dir(items[0].Destination)); err != nil {
		t.Fatalf("destination parent not created: %v", err)
	}
}

func TestResolveDirectoryFormatOverride(t *testing.T) {
	in := t.TempDir()
	touch(t, filepath.Join(in, "a.webp"))

	spec := dirSpec(in, filepath.Join(t.TempDir(), "out"))
	spec.Format = job.FormatPNG

	items, err := resolve.Resolve(spec)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if filepath.Base(items[0].Destination) != "a_upscaled.png" {
		t.Fatalf("unexpected destination: %s", items[0].Destination)
	}
}

func TestResolveMissingInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	_, err := resolve.Resolve(dirSpec(filepath.Join(t.TempDir(), "gone"), out))
	if !errors.Is(err, resolve.ErrPath) {
		t.Fatalf("expected ErrPath, got %v", err)
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("error message missing phrase: %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatal("output directory must not be created for missing input")
	}
}
