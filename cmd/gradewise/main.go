package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gradewise",
	Short: "Gradewise - LLM grading backend with PDF report rendering",
	Long: `Gradewise is a backend service for teachers. It grades student
submissions against a rubric using a third-party LLM, renders the
feedback into a paginated PDF report, and serves the artifact back.
Sibling endpoints generate lesson plans and assignments the same way.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(renderCmd)
}
