package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"upscaler/internal/fileutil"
	"upscaler/internal/imaging"
	"upscaler/internal/job"
)

// ErrPath marks a bad or missing input path. Fatal; nothing is processed.
var ErrPath = errors.New("path error")

// Resolve turns the job's input and output specs into an ordered list of
// work items. Single files yield exactly one item; directories are visited
// in lexicographic filename order so batch runs are reproducible. Needed
// output directories are created here, but only after the input path is
// known to exist.
func Resolve(spec job.Spec) ([]job.WorkItem, error) {
	info, err := os.Stat(spec.Input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: input path does not exist: %s", ErrPath, spec.Input)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", ErrPath, spec.Input, err)
	}

	if !info.IsDir() {
		return resolveFile(spec)
	}
	return resolveDir(spec)
}

func resolveFile(spec job.Spec) ([]job.WorkItem, error) {
	dest := applyFormat(spec.Output, spec.Format)
	if err := fileutil.EnsureDir(filepath.Dir(dest)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPath, err)
	}
	return []job.WorkItem{{
		Source:      spec.Input,
		Destination: dest,
		OutputExt:   filepath.Ext(dest),
	}}, nil
}

func resolveDir(spec job.Spec) ([]job.WorkItem, error) {
	if err := fileutil.EnsureDir(spec.Output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPath, err)
	}

	entries, err := os.ReadDir(spec.Input)
	if err != nil {
		return nil, fmt.Errorf("%w: read directory %s: %v", ErrPath, spec.Input, err)
	}

	// os.ReadDir returns entries sorted by filename.
	items := make([]job.WorkItem, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		srcExt := filepath.Ext(name)
		if _, ok := imaging.ImageExtensions[strings.ToLower(srcExt)]; !ok {
			continue
		}
		stem := strings.TrimSuffix(name, srcExt)
		outExt := resolveExtension(spec.Format, srcExt)
		items = append(items, job.WorkItem{
			Source:      filepath.Join(spec.Input, name),
			Destination: filepath.Join(spec.Output, stem+spec.Suffix+outExt),
			OutputExt:   outExt,
		})
	}
	return items, nil
}

func resolveExtension(format job.OutputFormat, srcExt string) string {
	if format == job.FormatAuto || format == "" {
		return srcExt
	}
	return "." + string(format)
}

func applyFormat(output string, format job.OutputFormat) string {
	if format == job.FormatAuto || format == "" {
		return output
	}
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "." + string(format)
}
