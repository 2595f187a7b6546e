package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"upscaler/internal/history"
)

func newHistoryCommand(flags *rootFlags) *cobra.Command {
	var limit int
	var showFailures bool

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show past batch runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				mode := run.Model
				if run.FaceEnhance {
					mode += "+face"
				}
				if run.Denoise {
					mode += "+denoise"
				}
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.Input,
					strconv.Itoa(run.Scale) + "x",
					mode,
					strconv.Itoa(run.Succeeded),
					strconv.Itoa(run.Failed),
				})
			}
			out := renderTable(
				[]string{"Started", "Input", "Scale", "Mode", "OK", "Failed"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight},
				isTerminal(os.Stdout),
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)

			if showFailures {
				for _, run := range runs {
					if run.Failed == 0 {
						continue
					}
					failures, err := store.Failures(cmd.Context(), run.ID)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "\nFailures for %s (%s):\n", run.Input, run.StartedAt.Local().Format("2006-01-02 15:04"))
					for _, failure := range failures {
						fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", failure.Source, failure.Message)
					}
				}
			}
			return nil
		},
	}

	historyCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	historyCmd.Flags().BoolVar(&showFailures, "failures", false, "Show per-item failure details")
	return historyCmd
}
