package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/tipbox"
)

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"tpl"},
	Short:   "Browse and apply gallery templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List gallery templates",
	RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
		colors := a.useColors()
		for _, t := range a.gallery() {
			mark := " "
			if t.Featured {
				mark = "★"
			}
			source := "built-in"
			if t.SourceFile != "" {
				source = t.SourceFile
			}
			fmt.Fprintf(a.out, "%s %-12s %-20s %s\n", mark, t.ID, t.Name, renderMuted(source, colors))
		}
		return nil
	}),
}

var templatesApplyCmd = &cobra.Command{
	Use:   "apply ID",
	Short: "Load a template's CSS (switches to advanced mode)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
		t, ok := tipbox.FindTemplate(a.gallery(), args[0])
		if !ok {
			return fmt.Errorf("unknown template %q (see \"tipbox templates list\")", args[0])
		}
		a.printTransition(a.session.ApplyTemplate(t))
		a.printf("Applied template %s\n", t.Name)
		return nil
	}),
}

func init() {
	templatesCmd.PersistentFlags().String("templates-dir", "", "Directory with extra template .css files")
	templatesCmd.PersistentFlags().StringSlice("include", nil, "Glob patterns for template files")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesApplyCmd)
}
