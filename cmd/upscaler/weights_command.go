package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newWeightsCommand(flags *rootFlags) *cobra.Command {
	weightsCmd := &cobra.Command{
		Use:   "weights",
		Short: "Inspect the model weights cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			entries, err := os.ReadDir(cfg.Paths.WeightsDir)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Fprintf(cmd.OutOrStdout(), "Weights cache is empty (%s)\n", cfg.Paths.WeightsDir)
					return nil
				}
				return fmt.Errorf("read weights cache: %w", err)
			}

			var rows [][]string
			var total uint64
			for _, entry := range entries {
				if entry.IsDir() || strings.HasSuffix(entry.Name(), ".lock") {
					continue
				}
				info, err := entry.Info()
				if err != nil {
					continue
				}
				total += uint64(info.Size())
				rows = append(rows, []string{
					entry.Name(),
					humanize.IBytes(uint64(info.Size())),
					info.ModTime().Format("2006-01-02 15:04"),
				})
			}

			if len(rows) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Weights cache is empty (%s)\n", cfg.Paths.WeightsDir)
				return nil
			}

			out := renderTable(
				[]string{"Checkpoint", "Size", "Downloaded"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
				isTerminal(os.Stdout),
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %s in %s\n", humanize.IBytes(total), cfg.Paths.WeightsDir)
			return nil
		},
	}

	weightsCmd.AddCommand(newWeightsClearCommand(flags))
	return weightsCmd
}

func newWeightsClearCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached checkpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			entries, err := os.ReadDir(cfg.Paths.WeightsDir)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Fprintln(cmd.OutOrStdout(), "Weights cache is already empty")
					return nil
				}
				return fmt.Errorf("read weights cache: %w", err)
			}

			removed := 0
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				if err := os.Remove(filepath.Join(cfg.Paths.WeightsDir, entry.Name())); err != nil {
					return fmt.Errorf("remove %s: %w", entry.Name(), err)
				}
				removed++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d file(s) from %s\n", removed, cfg.Paths.WeightsDir)
			return nil
		},
	}
}
