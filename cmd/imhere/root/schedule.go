package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tunsimp/imhere/internal/i18n"
	"github.com/tunsimp/imhere/internal/journal"
	"github.com/tunsimp/imhere/internal/ui"
)

func newScheduleCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage the day's timed schedule",
	}
	cmd.AddCommand(
		newScheduleAddCmd(o),
		newScheduleRmCmd(o),
		newScheduleLsCmd(o),
	)
	return cmd
}

func newScheduleAddCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <HH:MM> <text>",
		Short: "Add a schedule item",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("time and text are required")
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
			item, err := a.svc.AddScheduleItem(ctx, date, strings.Join(args[1:], " "), args[0])
			if err != nil {
				return err
			}
			a.tip(ctx, cmd.OutOrStdout(), journal.TabSchedule)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconClock+" Scheduled"), ui.Key.Render(item.Time), item.Text, ui.Muted.Render(ui.ShortID(item.ID)))
			return nil
		},
	}
}

func newScheduleRmCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a schedule item",
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

			date, err := a.day(o)
			if err != nil {
				return err
			}
			items, err := a.svc.Schedule(ctx, date)
			if err != nil {
				return err
			}
			id, err := journal.ResolveID(scheduleIDs(items), args[0])
			if err != nil {
				return err
			}
			if _, err := a.svc.DeleteScheduleItem(ctx, date, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconTrash+" Deleted"), ui.Muted.Render(ui.ShortID(id)))
			return nil
		},
	}
}

func newScheduleLsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the day's schedule in time order",
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
			items, err := a.svc.Schedule(ctx, date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconClock, i18n.T(a.lang, "export.schedule.header")+" "+ui.Muted.Render(date)))
			writeSchedule(out, a.lang, items)
			return nil
		},
	}
}

func writeSchedule(w io.Writer, lang string, items []journal.ScheduleItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, ui.Muted.Render(i18n.T(lang, "export.schedule.empty")))
		return
	}
	for _, s := range items {
		fmt.Fprintf(w, "- %s %s %s\n", ui.Muted.Render(ui.ShortID(s.ID)), ui.Key.Render(s.Time), s.Text)
	}
}
