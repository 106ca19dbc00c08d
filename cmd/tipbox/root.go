package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tipbox",
	Short: "Style editor for the donation-goal widget of tip pages",
	Long: `Edit the custom CSS of a tip page's donation-goal widget.
Basic mode derives the CSS from a handful of style settings. Advanced mode
edits the CSS text directly, by hand, from a template or through the AI
assistant. Snapshots keep the last few versions around.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", defaultConfigFile, "Config file path")
	pf.String("state-dir", "", "Directory holding the editor state (default: user config dir)")
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.BoolP("yes", "y", false, "Skip confirmation prompts")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(cssCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(aiCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// withApp opens the editor state around fn.
func withApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, a, args)
	}
}
