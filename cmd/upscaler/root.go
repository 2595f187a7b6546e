package main

import (
	"github.com/spf13/cobra"

	"upscaler/internal/job"
)

type rootFlags struct {
	config      string
	input       string
	output      string
	scale       int
	model       string
	faceEnhance bool
	denoise     bool
	tile        int
	gpuID       int
	suffix      string
	format      string
}

func (f *rootFlags) toSpec() job.Spec {
	return job.Spec{
		Input:       f.input,
		Output:      f.output,
		Scale:       f.scale,
		Model:       job.ModelFamily(f.model),
		FaceEnhance: f.faceEnhance,
		Denoise:     f.denoise,
		Tile:        f.tile,
		GPUID:       f.gpuID,
		Suffix:      f.suffix,
		Format:      job.OutputFormat(f.format),
	}
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "upscaler",
		Short:         "Batch image upscaler backed by Real-ESRGAN",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpscale(cmd.Context(), flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Configuration file path")

	rootCmd.Flags().StringVarP(&flags.input, "input", "i", "", "Path to an image file or folder of images")
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "", "Path for output image or output folder")
	rootCmd.Flags().IntVar(&flags.scale, "scale", 4, "Upscale factor: 2 or 4")
	rootCmd.Flags().StringVar(&flags.model, "model", "general", "Model choice: general or anime")
	rootCmd.Flags().BoolVar(&flags.faceEnhance, "face-enhance", false, "Enable GFPGAN face enhancement")
	rootCmd.Flags().BoolVar(&flags.denoise, "denoise", false, "Run the Swin2SR denoising pre-pass")
	rootCmd.Flags().IntVar(&flags.tile, "tile", 0, "Tile size for large images, 0 = no tiling")
	rootCmd.Flags().IntVar(&flags.gpuID, "gpu-id", -1, "GPU device ID, omit for auto-detect")
	rootCmd.Flags().StringVar(&flags.suffix, "suffix", job.DefaultSuffix, "Suffix appended to output filenames")
	rootCmd.Flags().StringVar(&flags.format, "format", "auto", "Output format: auto, png, or jpg")

	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(newModelsCommand())
	rootCmd.AddCommand(newWeightsCommand(flags))
	rootCmd.AddCommand(newHistoryCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))

	return rootCmd
}
