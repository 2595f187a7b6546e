package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"upscaler/internal/model"
)

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the supported model variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, 3)
			for _, v := range model.Variants() {
				rows = append(rows, []string{
					v.Name,
					strconv.Itoa(v.Blocks),
					strconv.Itoa(v.Features),
					strconv.Itoa(v.GrowthChannels),
					strconv.Itoa(v.NativeScale) + "x",
				})
			}
			out := renderTable(
				[]string{"Model", "Blocks", "Features", "Growth", "Native scale"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
				isTerminal(os.Stdout),
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
