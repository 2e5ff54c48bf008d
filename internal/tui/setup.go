package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/lifeclock/internal/config"
	"github.com/theirongolddev/lifeclock/internal/model"
	"github.com/theirongolddev/lifeclock/internal/tui/theme"
)

// setupValues holds the bound form values for the first-run wizard.
type setupValues struct {
	age   string
	theme string
}

// newSetupForm builds the huh form for first-run setup.
func newSetupForm(cfg config.Config, vals *setupValues) *huh.Form {
	vals.age = strconv.Itoa(cfg.Age())
	vals.theme = cfg.Appearance.Theme

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to lifeclock").
				Description("See how a typical day adds up over a lifetime.\n\n"+
					"These answers only set the starting values.\n"+
					"You can change them anytime on the Settings tab."),

			huh.NewInput().
				Title("How old are you?").
				Description(fmt.Sprintf("Whole years, %d to %d.", model.MinAge, model.MaxAge)).
				Value(&vals.age).
				Validate(validateAge),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
}

func validateAge(s string) error {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || age < model.MinAge || age > model.MaxAge {
		return fmt.Errorf("enter a whole number from %d to %d", model.MinAge, model.MaxAge)
	}
	return nil
}

// saveSetupConfig persists the wizard values and applies them to the form.
func (a *App) saveSetupConfig() error {
	cfg := a.cfg

	if age, err := strconv.Atoi(strings.TrimSpace(a.setupVals.age)); err == nil {
		cfg.General.DefaultAge = age
		if a.seed.Age == nil {
			a.inputs[fieldAge].SetValue(strconv.Itoa(cfg.Age()))
		}
	}

	if theme.Known(a.setupVals.theme) {
		cfg.Appearance.Theme = a.setupVals.theme
		theme.SetActive(cfg.Appearance.Theme)
		a.styleInputs()
	}

	a.cfg = cfg
	a.edited()
	return config.Save(cfg)
}
