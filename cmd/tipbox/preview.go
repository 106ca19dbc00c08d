package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/tipbox"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Write an HTML page showing the styled widget",
	RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
		output, _ := cmd.Flags().GetString("output")
		title, _ := cmd.Flags().GetString("title")
		opts := tipbox.PreviewOptions{Title: title, DarkMode: a.prefs.DarkMode()}

		if output == "" || output == "-" {
			return tipbox.RenderPreview(a.out, a.session.CSSText(), opts)
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		if err := tipbox.RenderPreview(f, a.session.CSSText(), opts); err != nil {
			_ = f.Close()
			return fmt.Errorf("render preview: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		a.printf("Wrote %s\n", output)
		return nil
	}),
}

func init() {
	previewCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	previewCmd.Flags().String("title", "", "Page title")
}
