package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tunsimp/imhere/internal/i18n"
	"github.com/tunsimp/imhere/internal/ui"
)

func newTodayCmd(o *options) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Summarize the day's records",
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
			rec, err := a.svc.RecordsForDate(ctx, date)
			if err != nil {
				return err
			}
			grateful, err := a.svc.GratitudeForDate(ctx, date)
			if err != nil {
				return err
			}

			day, _ := time.Parse("2006-01-02", date)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, i18n.T(a.lang, "today.heading", i18n.FormatLongDate(a.lang, day))))

			done := 0
			for _, t := range rec.Todos {
				if t.Completed {
					done++
				}
			}
			fmt.Fprintln(out, "- "+ui.IconDone+" "+i18n.T(a.lang, "today.todos", done, len(rec.Todos)))
			fmt.Fprintln(out, "- "+ui.IconClock+" "+i18n.T(a.lang, "today.schedule", len(rec.Schedule)))
			fmt.Fprintln(out, "- "+ui.IconThought+" "+i18n.T(a.lang, "today.thoughts", len(rec.Thoughts)))
			fmt.Fprintln(out, "- "+ui.IconGratitude+" "+i18n.T(a.lang, "today.gratitude", len(grateful)))

			if !full {
				return nil
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render(i18n.T(a.lang, "export.todos.header")))
			writeTodos(out, a.lang, rec.Todos)
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render(i18n.T(a.lang, "export.schedule.header")))
			writeSchedule(out, a.lang, rec.Schedule)
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render(i18n.T(a.lang, "export.thoughts.header")))
			writeThoughts(out, a.lang, rec.Thoughts, false)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&full, "full", "f", false, "Print every record, not just counts")
	return cmd
}
