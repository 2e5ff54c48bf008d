// Package cmd implements the lifeclock CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeclock/internal/config"
	"github.com/theirongolddev/lifeclock/internal/model"
	"github.com/theirongolddev/lifeclock/internal/tui/theme"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default age: %d\n", cfg.Age())
	for _, a := range model.Activities {
		fmt.Printf("    %-11s %s\n", a.String()+":", formatDefault(cfg.General.Defaults.Field(a)))
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	if !theme.Known(cfg.Appearance.Theme) {
		fmt.Printf("    (unknown theme, falling back to %s)\n", theme.FlexokiDark.Name)
	}
	palette := theme.NewPalette(cfg.Appearance.Palette)
	for _, a := range model.Activities {
		fmt.Printf("    %-11s %s\n", a.String()+":", palette.Color(a))
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Printf("    Dev log: %v\n", cfg.Server.DevLog)
	fmt.Println()

	fmt.Println("  Run `lifeclock setup` to reconfigure.")
	return nil
}

func formatDefault(v *float64) string {
	if v == nil {
		return "unset"
	}
	return fmt.Sprintf("%gh", *v)
}
