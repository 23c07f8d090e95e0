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

func newTodoCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the day's to-do list",
	}
	cmd.AddCommand(
		newTodoAddCmd(o),
		newTodoDoneCmd(o),
		newTodoRmCmd(o),
		newTodoLsCmd(o),
	)
	return cmd
}

func newTodoAddCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a to-do",
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
			item, err := a.svc.AddTodo(ctx, date, strings.Join(args, " "))
			if err != nil {
				return err
			}
			a.tip(ctx, cmd.OutOrStdout(), journal.TabSchedule)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconPlus+" Added"), item.Text, ui.Muted.Render(ui.ShortID(item.ID)))
			return nil
		},
	}
}

// resolveTodo finds the to-do on date whose id starts with prefix.
func resolveTodo(ctx context.Context, a *app, date, prefix string) (string, error) {
	todos, err := a.svc.Todos(ctx, date)
	if err != nil {
		return "", err
	}
	return journal.ResolveID(todoIDs(todos), prefix)
}

func newTodoDoneCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a to-do between done and open",
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
			id, err := resolveTodo(ctx, a, date, args[0])
			if err != nil {
				return err
			}
			item, err := a.svc.ToggleTodo(ctx, date, id)
			if err != nil {
				return err
			}
			if item.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconDone+" Done"), item.Text)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconOpen+" Reopened"), item.Text)
			}
			return nil
		},
	}
}

func newTodoRmCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a to-do",
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
			id, err := resolveTodo(ctx, a, date, args[0])
			if err != nil {
				return err
			}
			if _, err := a.svc.DeleteTodo(ctx, date, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconTrash+" Deleted"), ui.Muted.Render(ui.ShortID(id)))
			return nil
		},
	}
}

func newTodoLsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the day's to-dos",
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
			todos, err := a.svc.Todos(ctx, date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconDone, i18n.T(a.lang, "export.todos.header")+" "+ui.Muted.Render(date)))
			writeTodos(out, a.lang, todos)
			return nil
		},
	}
}

func writeTodos(w io.Writer, lang string, todos []journal.TodoItem) {
	if len(todos) == 0 {
		fmt.Fprintln(w, ui.Muted.Render(i18n.T(lang, "export.todos.empty")))
		return
	}
	done := 0
	for _, t := range todos {
		if t.Completed {
			done++
		}
	}
	fmt.Fprintln(w, ui.Muted.Render(i18n.T(lang, "export.todos.completed", done, len(todos))))
	for _, t := range todos {
		fmt.Fprintf(w, "- %s %s\n", ui.Muted.Render(ui.ShortID(t.ID)), ui.TodoLine(t.Text, t.Completed))
	}
}
