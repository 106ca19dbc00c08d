package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change editor preferences",
}

var darkModeCmd = &cobra.Command{
	Use:       "dark-mode [on|off|toggle]",
	Short:     "Print or set the preview dark mode",
	ValidArgs: []string{"on", "off", "toggle"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
		var err error
		on := a.prefs.DarkMode()
		if len(args) == 1 {
			switch args[0] {
			case "on":
				on, err = true, a.prefs.SetDarkMode(true)
			case "off":
				on, err = false, a.prefs.SetDarkMode(false)
			case "toggle":
				on, err = a.prefs.ToggleDarkMode()
			}
		}
		if err != nil {
			return fmt.Errorf("save preference: %w", err)
		}
		fmt.Fprintln(a.out, onOff(on))
		return nil
	}),
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func init() {
	prefsCmd.AddCommand(darkModeCmd)
}
