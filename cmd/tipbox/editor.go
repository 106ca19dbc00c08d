package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/yacobolo/tipbox"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current mode and CSS",
	RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
		friendly, _ := cmd.Flags().GetBool("friendly")
		raw, _ := cmd.Flags().GetBool("raw")

		css := a.session.CSSText()
		if friendly {
			css = tipbox.ToFriendly(css)
		}
		if raw {
			fmt.Fprintln(a.out, css)
			return nil
		}

		a.printf("%s %s\n\n", renderHeading("Mode:", a.useColors()), a.session.Mode())
		if a.session.Mode() == tipbox.ModeBasic {
			printStyleModel(a, a.session.StyleModel())
			a.printf("\n")
		}
		a.printf("%s\n", css)
		return nil
	}),
}

func printStyleModel(a *app, m tipbox.StyleModel) {
	group := ""
	for _, f := range tipbox.StyleFields {
		if f.Group != group {
			group = f.Group
			a.printf("%s\n", renderHeading(group, a.useColors()))
		}
		v, _ := m.Field(f.Key)
		a.printf("  %-26s %s\n", f.Key, *v)
	}
	a.printf("  %-26s %t\n", "fixOverflow", m.FixOverflow)
}

var setCmd = &cobra.Command{
	Use:   "set field=value...",
	Short: "Change basic-mode style settings",
	Long: `Change one or more basic-mode style settings and regenerate the CSS.
Field names are those listed by "tipbox show", e.g.

  tipbox set barBackground=#123456 emoji=🎃 fixOverflow=false`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
		m := a.session.StyleModel()
		for _, arg := range args {
			if err := applyAssignment(&m, arg); err != nil {
				return err
			}
		}
		if err := a.session.SetStyleModel(m); err != nil {
			return modeError(err, tipbox.ModeBasic)
		}
		a.printf("Updated %s\n", pluralize(len(args), "setting", "settings"))
		return nil
	}),
}

func applyAssignment(m *tipbox.StyleModel, arg string) error {
	key, value, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("invalid assignment %q (want field=value)", arg)
	}
	key = strings.TrimSpace(key)
	if key == "fixOverflow" {
		on, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("fixOverflow: %w", err)
		}
		m.FixOverflow = on
		return nil
	}
	field, ok := m.Field(key)
	if !ok {
		return fmt.Errorf("unknown field %q", key)
	}
	*field = value
	return nil
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default style in the current mode",
	RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
		ok, err := confirm(a, "Reset the style to the defaults?")
		if err != nil || !ok {
			return err
		}
		a.session.Reset()
		a.printf("Reset to defaults (%s mode)\n", a.session.Mode())
		return nil
	}),
}

var modeCmd = &cobra.Command{
	Use:       "mode [basic|advanced]",
	Short:     "Print or switch the editing mode",
	ValidArgs: []string{string(tipbox.ModeBasic), string(tipbox.ModeAdvanced)},
	Args:      cobra.MaximumNArgs(1),
	RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(a.out, a.session.Mode())
			return nil
		}
		to, err := tipbox.ParseMode(args[0])
		if err != nil {
			return err
		}
		t, err := a.session.SwitchMode(to)
		if err != nil {
			return err
		}
		a.printTransition(t)
		return nil
	}),
}

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Replace the CSS text (advanced mode)",
	Long: `Replace the CSS text with the contents of a file, or stdin with "--file -".
The text is stored verbatim. With --friendly, short class names such as
.goal are rewritten to the widget's real class names first.`,
	RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
		path, _ := cmd.Flags().GetString("file")
		friendly, _ := cmd.Flags().GetBool("friendly")

		text, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		if friendly {
			text = tipbox.ToCanonical(text)
		}
		if err := a.session.SetCSSTextDirect(text); err != nil {
			return modeError(err, tipbox.ModeAdvanced)
		}
		a.printf("CSS updated (%d bytes)\n", len(text))
		return nil
	}),
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "" {
		return "", errors.New("--file is required (use - for stdin)")
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit basic-mode settings interactively",
	RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
		if a.session.Mode() != tipbox.ModeBasic {
			return modeError(tipbox.ErrModeMismatch, tipbox.ModeBasic)
		}
		m := a.session.StyleModel()
		if err := styleForm(&m).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				a.printf("Nothing changed\n")
				return nil
			}
			return err
		}
		if err := a.session.SetStyleModel(m); err != nil {
			return err
		}
		a.printf("%s\n", renderOK("Style saved", a.useColors()))
		return nil
	}),
}

// styleForm builds one form page per field group.
func styleForm(m *tipbox.StyleModel) *huh.Form {
	var groups []*huh.Group
	var fields []huh.Field
	group := ""
	flush := func() {
		if len(fields) > 0 {
			groups = append(groups, huh.NewGroup(fields...).Title(group))
			fields = nil
		}
	}
	for _, f := range tipbox.StyleFields {
		if f.Group != group {
			flush()
			group = f.Group
		}
		v, _ := m.Field(f.Key)
		fields = append(fields, huh.NewInput().Title(f.Label).Value(v))
	}
	flush()

	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().
			Title("Keep long goal names inside the widget?").
			Value(&m.FixOverflow).
			Affirmative("Yes").
			Negative("No"),
	).Title("Layout"))

	return huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
}

// confirm asks before destructive actions unless --yes was given.
func confirm(a *app, title string) (bool, error) {
	if a.config.Yes {
		return true, nil
	}
	ok := false
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func modeError(err error, want tipbox.Mode) error {
	if errors.Is(err, tipbox.ErrModeMismatch) {
		return fmt.Errorf("%w: requires %s mode (run \"tipbox mode %s\")", err, want, want)
	}
	return err
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}

func init() {
	showCmd.Flags().Bool("friendly", false, "Use short class names (.goal, .done, ...)")
	showCmd.Flags().Bool("raw", false, "Print only the CSS")

	cssCmd.Flags().StringP("file", "f", "", "CSS file to load, - for stdin")
	cssCmd.Flags().Bool("friendly", false, "Input uses short class names")
}
