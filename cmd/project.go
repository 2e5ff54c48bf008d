package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeclock/internal/cli"
	"github.com/theirongolddev/lifeclock/internal/model"
	"github.com/theirongolddev/lifeclock/internal/pipeline"
	"github.com/theirongolddev/lifeclock/internal/tui/theme"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project days lived and remaining per activity",
	RunE:  runProject,
}

func init() {
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	al, age := inputsFromFlags(cmd, cfg)

	dash, err := pipeline.Compute(al, age)
	if err != nil {
		if rej, ok := pipeline.AsRejection(err); ok {
			if flagJSON {
				_ = printJSON(rej)
			} else {
				fmt.Println()
				fmt.Println("  " + cli.RenderRejection(rej))
				fmt.Println()
			}
		}
		return err
	}

	if flagJSON {
		return printJSON(dash)
	}

	palette := theme.NewPalette(cfg.Appearance.Palette)
	printDashboard(dash, palette)
	return nil
}

func printDashboard(dash *model.Dashboard, palette theme.Palette) {
	s := dash.Summary
	proj := dash.Projection

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LIFE CLOCK  Age %d of %d", s.Age, proj.LifespanYears)))
	fmt.Println()
	fmt.Println("  " + cli.RenderTotalBanner(pipeline.Validation{Total: dash.TotalHours, Feasible: true}))
	fmt.Println()

	rows := make([][]string, 0, model.ActivityCount+2)
	for _, d := range proj.Activities {
		rows = append(rows, []string{
			d.Activity.String(),
			cli.FormatHours(d.HoursPerDay),
			cli.FormatDays(d.DaysLived),
			cli.FormatYears(d.DaysLived),
			cli.FormatDays(d.DaysRemaining),
			cli.FormatYears(d.DaysRemaining),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"Whole life",
		"24h",
		cli.FormatDays(proj.DaysLivedSoFar),
		cli.FormatYears(proj.DaysLivedSoFar),
		cli.FormatDays(proj.DaysRemainingTotal),
		cli.FormatYears(proj.DaysRemainingTotal),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Days by Activity",
		Headers: []string{"Activity", "Per Day", "Lived", "Years", "Remaining", "Years"},
		Rows:    rows,
	}))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title: "Summary",
		Rows: [][]string{
			{"Years left", fmt.Sprintf("%d", s.YearsLeft)},
			{"Days left", cli.FormatNumber(int64(s.DaysLeft))},
			{"Unallocated", cli.FormatHours(s.UnallocatedHours) + "/day"},
			{"Life progress", cli.FormatPercent(s.LifeProgress)},
			{"vs midlife", cli.FormatDelta(s.AgeDelta) + "y"},
		},
	}))
	fmt.Println()

	fmt.Println("  Share of day")
	for _, d := range proj.Activities {
		fmt.Println(cli.RenderHorizontalBar(d.Activity.String(), d.HoursPerDay, model.HoursPerDay, 40,
			palette.Color(d.Activity)))
	}
	fmt.Println()

	fmt.Println("  Life progress")
	fmt.Println(cli.RenderGauge(s.Age, dash.GaugeBands, 48))
	fmt.Println()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
