package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/theirongolddev/lifeclock/internal/config"
	"github.com/theirongolddev/lifeclock/internal/model"
	"github.com/theirongolddev/lifeclock/internal/pipeline"
)

var (
	flagAge   int
	flagHours [model.ActivityCount]float64
	flagJSON  bool
)

var rootCmd = &cobra.Command{
	Use:          "lifeclock",
	Short:        "See where the days of your life go",
	Long:         "Project how many days of your life go to sleep, work, phone, exercise and everything else.",
	RunE:         runProject,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	registerInputFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print the result as JSON")
}

func registerInputFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&flagAge, "age", "a", 0, "Your age in whole years (default from config)")
	for _, a := range model.Activities {
		fs.Float64Var(&flagHours[a], a.Key(), 0,
			fmt.Sprintf("Hours per day spent on %s (default from config)", a.Key()))
	}
}

// inputsFromFlags merges explicitly passed flags over the configured
// defaults. A flag that was not passed keeps the config value.
func inputsFromFlags(cmd *cobra.Command, cfg config.Config) (model.Allocation, int) {
	al := cfg.General.Defaults.Clone()
	flags := cmd.Flags()
	for _, a := range model.Activities {
		if flags.Changed(a.Key()) {
			al.Set(a, model.Hours(flagHours[a]))
		}
	}

	age := cfg.Age()
	if flags.Changed("age") {
		age = flagAge
	}
	return al, age
}

// seedFromFlags returns only what was passed on the command line, so the
// TUI can fill the rest from config once it loads.
func seedFromFlags(cmd *cobra.Command) (model.Allocation, *int) {
	var al model.Allocation
	flags := cmd.Flags()
	for _, a := range model.Activities {
		if flags.Changed(a.Key()) {
			al.Set(a, model.Hours(flagHours[a]))
		}
	}
	if flags.Changed("age") {
		age := flagAge
		return al, &age
	}
	return al, nil
}

// loadConfig falls back to the built-in defaults when the config cannot be
// read, the same way the TUI does.
func loadConfig() config.Config {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v (using defaults)\n", err)
	}
	return cfg
}

// checkInputs runs the boundary checks without the feasibility gate.
func checkInputs(al model.Allocation, age int) error {
	if err := pipeline.CheckBounds(al, age); err != nil {
		return fmt.Errorf("checking inputs: %w", err)
	}
	return nil
}
