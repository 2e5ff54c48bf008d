package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeclock/internal/cli"
	"github.com/theirongolddev/lifeclock/internal/pipeline"
)

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Show the live daily total without projecting",
	RunE:  runTotal,
}

func init() {
	rootCmd.AddCommand(totalCmd)
}

// runTotal mirrors the banner the form shows while editing: it never
// rejects, it only reports.
func runTotal(cmd *cobra.Command, _ []string) error {
	al, age := inputsFromFlags(cmd, loadConfig())
	if err := checkInputs(al, age); err != nil {
		return err
	}

	v := pipeline.Validate(al)
	if flagJSON {
		return printJSON(v)
	}

	fmt.Println()
	fmt.Println("  " + cli.RenderTotalBanner(v))
	if !v.Exceeds() {
		fmt.Printf("  %s unallocated\n", cli.FormatHours(v.Unallocated()))
	}
	fmt.Println()
	return nil
}
