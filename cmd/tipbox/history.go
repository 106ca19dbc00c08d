package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yacobolo/tipbox"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [name]",
	Short: "Save the current CSS and style settings to the history",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		// Advanced-mode text has no model behind it
		var styles *tipbox.StyleModel
		if a.session.Mode() == tipbox.ModeBasic {
			m := a.session.StyleModel()
			styles = &m
		}
		rev := a.revisions.Create(a.session.CSSText(), styles, name)
		a.printf("Saved #%d %s\n", rev.Number, rev.Name)
		return nil
	}),
}

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"hist"},
	Short:   "Manage saved snapshots",
	Long: `Manage saved snapshots. Snapshots are addressed by their number
(1 = most recent) or by id.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
		revs := a.revisions.List()
		if len(revs) == 0 {
			a.printf("No snapshots yet (create one with \"tipbox snapshot\")\n")
			return nil
		}
		colors := a.useColors()
		for _, rev := range revs {
			fmt.Fprintf(a.out, "%3d  %-40s %s  %s\n",
				rev.Number, rev.Name,
				rev.Timestamp.Local().Format("2006-01-02 15:04"),
				renderMuted(shortID(rev.ID), colors))
		}
		limit := "unlimited"
		if a.revisions.MaxRevisions() > 0 {
			limit = strconv.Itoa(a.revisions.MaxRevisions())
		}
		a.printf("%s\n", renderMuted(fmt.Sprintf("%d of %s kept", len(revs), limit), colors))
		return nil
	}),
}

var historyRenameCmd = &cobra.Command{
	Use:   "rename REF NAME",
	Short: "Rename a snapshot",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
		rev, ok := findRevision(a.revisions, args[0])
		if !ok {
			return nil
		}
		a.revisions.Rename(rev.ID, args[1])
		return nil
	}),
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete REF",
	Aliases: []string{"rm"},
	Short:   "Delete a snapshot",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
		rev, ok := findRevision(a.revisions, args[0])
		if !ok {
			return nil
		}
		a.revisions.Delete(rev.ID)
		a.printf("Deleted %s\n", rev.Name)
		return nil
	}),
}

var historyRestoreCmd = &cobra.Command{
	Use:   "restore REF",
	Short: "Replace the current style with a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
		rev, ok := findRevision(a.revisions, args[0])
		if !ok {
			return nil
		}
		yes, err := confirm(a, fmt.Sprintf("Restore %q? Unsaved changes will be lost.", rev.Name))
		if err != nil || !yes {
			return err
		}
		a.printTransition(a.session.Restore(rev))
		a.printf("Restored %s\n", rev.Name)
		return nil
	}),
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every snapshot",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
		if a.revisions.Len() == 0 {
			return nil
		}
		yes, err := confirm(a, fmt.Sprintf("Delete all %d snapshots?", a.revisions.Len()))
		if err != nil || !yes {
			return err
		}
		a.revisions.ClearAll()
		a.printf("History cleared\n")
		return nil
	}),
}

// findRevision resolves a snapshot number, id or unique id prefix.
// Unknown references resolve to nothing and the caller does nothing.
func findRevision(store *tipbox.RevisionStore, ref string) (tipbox.Revision, bool) {
	revs := store.List()
	if n, err := strconv.Atoi(ref); err == nil {
		for _, rev := range revs {
			if rev.Number == n {
				return rev, true
			}
		}
		return tipbox.Revision{}, false
	}
	if rev, ok := store.Restore(ref); ok {
		return rev, true
	}

	var match tipbox.Revision
	found := 0
	for _, rev := range revs {
		if strings.HasPrefix(rev.ID, ref) {
			match = rev
			found++
		}
	}
	return match, found == 1
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyRenameCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyRestoreCmd)
	historyCmd.AddCommand(historyClearCmd)
}
