package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeclock/internal/config"
	"github.com/theirongolddev/lifeclock/internal/model"
	"github.com/theirongolddev/lifeclock/internal/pipeline"
	"github.com/theirongolddev/lifeclock/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg := loadConfig()

	fmt.Println()
	fmt.Println("  Welcome to lifeclock!")
	fmt.Println()

	// 1. Age
	fmt.Println("  1. Your age")
	fmt.Printf("     Whole years, %d-%d. Current: %d\n", model.MinAge, model.MaxAge, cfg.Age())
	for {
		fmt.Print("     > ")
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		age, err := pipeline.ParseAge(line)
		if err == nil {
			err = pipeline.CheckBounds(model.Allocation{}, age)
		}
		if err != nil {
			fmt.Printf("     %v\n", err)
			continue
		}
		cfg.General.DefaultAge = age
		break
	}
	fmt.Println()

	// 2. Default hours
	fmt.Println("  2. Default hours per day (blank keeps the current value)")
	for _, a := range model.Activities {
		fmt.Printf("     %-9s [%s] > ", a.String(), formatDefault(cfg.General.Defaults.Field(a)))
		line, _ := reader.ReadString('\n')
		if v := pipeline.ParseHours(line); v != nil && *v >= 0 && *v <= model.HoursPerDay {
			cfg.General.Defaults.Set(a, v)
		}
	}
	if v := pipeline.Validate(cfg.General.Defaults); v.Exceeds() {
		fmt.Printf("     Note: defaults total %s hours, more than a day.\n",
			strconv.FormatFloat(v.Total, 'f', -1, 64))
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	for i, t := range theme.All {
		marker := ""
		if t.Name == cfg.Appearance.Theme {
			marker = " [current]"
		}
		fmt.Printf("     (%d) %s%s\n", i+1, t.Name, marker)
	}
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	if n, err := strconv.Atoi(strings.TrimSpace(themeChoice)); err == nil && n >= 1 && n <= len(theme.All) {
		cfg.Appearance.Theme = theme.All[n-1].Name
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `lifeclock setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
