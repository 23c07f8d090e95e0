package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tunsimp/imhere/internal/content"
	"github.com/tunsimp/imhere/internal/journal"
	"github.com/tunsimp/imhere/internal/ui"
)

func newSongCmd(o *options) *cobra.Command {
	var after string
	var embed bool

	cmd := &cobra.Command{
		Use:   "song",
		Short: "Get a random song recommendation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, o)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			a.tip(ctx, out, journal.TabMusic)

			song := content.RandomSong(nil)
			if after != "" {
				song = content.AnotherSong(nil, after)
			}
			link := song.URL
			if embed {
				link = song.EmbedURL
			}
			fmt.Fprintf(out, "%s %s\n", ui.Gold.Render(ui.IconMusic+" Try this one:"), link)

			if m := a.svc.Settings(ctx).Music; m.Enabled {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("Background music is on at %.0f%% volume.", m.Volume*100)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&after, "after", "", "Track id to avoid repeating")
	cmd.Flags().BoolVar(&embed, "embed", false, "Print the embeddable player link")
	return cmd
}
