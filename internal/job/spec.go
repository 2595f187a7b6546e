package job

import (
	"fmt"
	"strings"
)

// ModelFamily selects the network variant.
type ModelFamily string

const (
	ModelGeneral ModelFamily = "general"
	ModelAnime   ModelFamily = "anime"
)

// OutputFormat controls the destination file extension.
type OutputFormat string

const (
	FormatAuto OutputFormat = "auto"
	FormatPNG  OutputFormat = "png"
	FormatJPG  OutputFormat = "jpg"
)

// DefaultSuffix is appended to directory-mode output filenames.
const DefaultSuffix = "_upscaled"

// Spec is the immutable per-run configuration resolved from CLI flags.
type Spec struct {
	Input       string
	Output      string
	Scale       int
	Model       ModelFamily
	FaceEnhance bool
	Denoise     bool
	Tile        int
	GPUID       int // -1 means auto-detect
	Suffix      string
	Format      OutputFormat
}

// Validate rejects field combinations the pipeline cannot execute.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Input) == "" {
		return fmt.Errorf("input path is required")
	}
	if strings.TrimSpace(s.Output) == "" {
		return fmt.Errorf("output path is required")
	}
	if s.Scale != 2 && s.Scale != 4 {
		return fmt.Errorf("scale must be 2 or 4, got %d", s.Scale)
	}
	switch s.Model {
	case ModelGeneral, ModelAnime:
	default:
		return fmt.Errorf("model must be general or anime, got %q", s.Model)
	}
	if s.Tile < 0 {
		return fmt.Errorf("tile size must be >= 0, got %d", s.Tile)
	}
	switch s.Format {
	case FormatAuto, FormatPNG, FormatJPG:
	default:
		return fmt.Errorf("format must be auto, png, or jpg, got %q", s.Format)
	}
	return nil
}

// WorkItem is one resolved (source, destination) pair in a batch. Immutable
// once produced by the resolver.
type WorkItem struct {
	Source      string
	Destination string
	// OutputExt is the resolved destination extension including the dot.
	OutputExt string
}
