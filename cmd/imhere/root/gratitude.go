package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tunsimp/imhere/internal/i18n"
	"github.com/tunsimp/imhere/internal/journal"
	"github.com/tunsimp/imhere/internal/ui"
)

func newGratitudeCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gratitude",
		Short: "Keep a gratitude journal",
	}
	cmd.AddCommand(
		newGratitudeAddCmd(o),
		newGratitudeRmCmd(o),
		newGratitudeLsCmd(o),
	)
	return cmd
}

func newGratitudeAddCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Write down something you are grateful for",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, o)
			if err != nil {
				return err
			}
			defer cleanup()

			date, err := a.day(o)
			if err != nil {
				return err
			}
			entry, err := a.svc.AddGratitude(ctx, date, strings.Join(args, " "))
			if err != nil {
				return err
			}
			a.tip(ctx, cmd.OutOrStdout(), journal.TabGratitude)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconGratitude+" Saved"), entry.Text, ui.Muted.Render(ui.ShortID(entry.ID)))
			return nil
		},
	}
}

func newGratitudeRmCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a gratitude entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, o)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := journal.ResolveID(gratitudeIDs(a.svc.Gratitude(ctx)), args[0])
			if err != nil {
				return err
			}
			if _, err := a.svc.DeleteGratitude(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconTrash+" Deleted"), ui.Muted.Render(ui.ShortID(id)))
			return nil
		},
	}
}

func newGratitudeLsCmd(o *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List gratitude entries, newest date first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, o)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			title := i18n.T(a.lang, "tab.gratitude")
			var entries []journal.GratitudeEntry
			if all {
				entries = a.svc.Gratitude(ctx)
			} else {
				date, err := a.day(o)
				if err != nil {
					return err
				}
				if entries, err = a.svc.GratitudeForDate(ctx, date); err != nil {
					return err
				}
				title += " " + ui.Muted.Render(date)
			}
			fmt.Fprintln(out, ui.Heading(ui.IconGratitude, title))
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none yet)"))
				return nil
			}
			for _, g := range entries {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Muted.Render(ui.ShortID(g.ID)), ui.Muted.Render(g.Date), g.Text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every date")
	return cmd
}
