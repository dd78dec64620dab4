package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gradewise/internal/report"
)

// render lays out a local text file into a PDF without touching any
// LLM. Useful for inspecting the formatter offline.
var renderCmd = &cobra.Command{
	Use:   "render <input.txt> <output.pdf>",
	Short: "Render a text file into a paginated PDF report",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		pdf, err := report.Build(string(text))
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if err := os.WriteFile(args[1], pdf, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", args[1], len(pdf))
		return nil
	},
}
