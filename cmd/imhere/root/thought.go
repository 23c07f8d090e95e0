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

func newThoughtCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "thought",
		Aliases: []string{"thoughts"},
		Short:   "Record and review thoughts",
	}
	cmd.AddCommand(
		newThoughtAddCmd(o),
		newThoughtEvidenceCmd(o),
		newThoughtRmCmd(o),
		newThoughtLsCmd(o),
	)
	return cmd
}

func newThoughtAddCmd(o *options) *cobra.Command {
	var emotion string
	var intensity int
	var evidence string

	cmd := &cobra.Command{
		Use:   "add <thought>",
		Short: "Record a thought with its emotion and intensity",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("thought is required")
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

			entry, err := a.svc.AddThought(ctx, journal.ThoughtInput{
				Date:      o.date,
				Thought:   strings.Join(args, " "),
				Emotion:   emotion,
				Intensity: intensity,
				Evidence:  evidence,
			})
			if err != nil {
				return err
			}
			a.tip(ctx, cmd.OutOrStdout(), journal.TabThoughts)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconThought+" Logged"), entry.Thought, ui.Muted.Render(ui.ShortID(entry.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&emotion, "emotion", "e", "", "What you felt (required)")
	cmd.Flags().IntVarP(&intensity, "intensity", "i", 5, "How strongly (1-10)")
	cmd.Flags().StringVar(&evidence, "evidence", "", "Evidence for or against the thought")
	_ = cmd.MarkFlagRequired("emotion")

	return cmd
}

func resolveThought(ctx context.Context, a *app, prefix string) (string, error) {
	return journal.ResolveID(thoughtIDs(a.svc.Thoughts(ctx)), prefix)
}

func newThoughtEvidenceCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "evidence <id> <text>",
		Short: "Replace the evidence on a thought",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
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

			id, err := resolveThought(ctx, a, args[0])
			if err != nil {
				return err
			}
			entry, err := a.svc.UpdateEvidence(ctx, id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if entry.Evidence == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("Evidence cleared"), ui.Muted.Render(ui.ShortID(id)))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Evidence updated"), entry.Evidence)
			return nil
		},
	}
}

func newThoughtRmCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a thought",
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

			id, err := resolveThought(ctx, a, args[0])
			if err != nil {
				return err
			}
			if _, err := a.svc.DeleteThought(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconTrash+" Deleted"), ui.Muted.Render(ui.ShortID(id)))
			return nil
		},
	}
}

func newThoughtLsCmd(o *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List thoughts, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, o)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			var entries []journal.ThoughtEntry
			if all {
				entries = a.svc.Thoughts(ctx)
				fmt.Fprintln(out, ui.Heading(ui.IconThought, i18n.T(a.lang, "export.thoughts.header")))
			} else {
				date, err := a.day(o)
				if err != nil {
					return err
				}
				if entries, err = a.svc.ThoughtsForDate(ctx, date); err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Heading(ui.IconThought, i18n.T(a.lang, "export.thoughts.header")+" "+ui.Muted.Render(date)))
			}
			writeThoughts(out, a.lang, entries, all)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every date")
	return cmd
}

func writeThoughts(w io.Writer, lang string, entries []journal.ThoughtEntry, withDate bool) {
	if len(entries) == 0 {
		fmt.Fprintln(w, ui.Muted.Render(i18n.T(lang, "export.thoughts.empty")))
		return
	}
	for _, e := range entries {
		when := e.Time
		if withDate {
			when = e.Date + " " + e.Time
		}
		fmt.Fprintf(w, "- %s %s %s\n", ui.Muted.Render(ui.ShortID(e.ID)), ui.Muted.Render(when), e.Thought)
		fmt.Fprintf(w, "  %s %s\n", ui.LabelValue("Emotion", e.Emotion), ui.TierText(e.Intensity))
		if e.Evidence != "" {
			fmt.Fprintf(w, "  %s\n", ui.Muted.Render(i18n.T(lang, "export.thoughts.evidence", e.Evidence)))
		}
	}
}
