package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tunsimp/imhere/internal/tui"
)

func newBoardCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive day board",
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
			return tui.RunBoard(ctx, a.svc, a.engine, a.cfg.ExportDir, date, cmd.OutOrStdout())
		},
	}
}
