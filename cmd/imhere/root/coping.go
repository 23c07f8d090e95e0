package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tunsimp/imhere/internal/content"
	"github.com/tunsimp/imhere/internal/journal"
	"github.com/tunsimp/imhere/internal/ui"
)

func newCopingCmd(o *options) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "coping",
		Short: "Browse coping strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := content.Strategies(category)
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx, o)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			a.tip(ctx, out, journal.TabCoping)
			fmt.Fprintln(out, ui.Heading(ui.IconCoping, "Coping Strategies"))
			labels := map[string]string{}
			for _, c := range content.Categories() {
				labels[c.ID] = c.Label
			}
			for _, s := range list {
				fmt.Fprintf(out, "%s %s\n", ui.H2.Render(s.Title), ui.Muted.Render("("+labels[s.Category]+")"))
				fmt.Fprintf(out, "  %s\n", s.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", content.AllCategories, "breathing|grounding|physical|mental|emotional|sensory|all")
	return cmd
}
