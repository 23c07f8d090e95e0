package root

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tunsimp/imhere/internal/i18n"
	"github.com/tunsimp/imhere/internal/journal"
	"github.com/tunsimp/imhere/internal/ui"
)

func newSettingsCmd(o *options) *cobra.Command {
	show := func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, cleanup, err := openApp(ctx, o)
		if err != nil {
			return err
		}
		defer cleanup()
		writeSettings(cmd.OutOrStdout(), a.lang, a.svc.Settings(ctx))
		return nil
	}

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
		RunE:  show,
	}
	cmd.AddCommand(
		&cobra.Command{Use: "show", Short: "Show preferences", RunE: show},
		newSettingsThemeCmd(o),
		newSettingsLangCmd(o),
		newSettingsMusicCmd(o),
		newSettingsTutorialsCmd(o),
	)
	return cmd
}

func writeSettings(w io.Writer, lang string, st journal.Settings) {
	fmt.Fprintln(w, ui.Heading(ui.IconInfo, "Settings"))
	fmt.Fprintln(w, ui.LabelValue("Theme", st.Theme))
	fmt.Fprintln(w, ui.LabelValue("Language", st.Language))
	music := ui.Muted.Render("off")
	if st.Music.Enabled {
		music = ui.Good.Render("on")
	}
	fmt.Fprintln(w, ui.LabelValue("Background music", fmt.Sprintf("%s (volume %.2f)", music, st.Music.Volume)))
	fmt.Fprintln(w, ui.Key.Render("Tutorials:"))
	for _, tab := range journal.Tabs {
		seen := ui.Muted.Render("not yet")
		if st.TutorialSeen[tab] {
			seen = ui.Good.Render("seen")
		}
		fmt.Fprintf(w, "- %s %s %s\n", ui.TabIcon(tab), i18n.T(lang, "tab."+string(tab)), seen)
	}
}

func newSettingsThemeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "theme <light|dark|toggle>",
		Short: "Set the color theme",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("theme is required")
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

			var st journal.Settings
			if args[0] == "toggle" {
				st, err = a.svc.ToggleTheme(ctx)
			} else {
				var t journal.Theme
				if t, err = journal.ParseTheme(args[0]); err != nil {
					return err
				}
				st, err = a.svc.SetTheme(ctx, t)
			}
			if err != nil {
				return err
			}
			ui.Use(st.Theme)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Theme", st.Theme))
			return nil
		},
	}
}

func newSettingsLangCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lang <en|vi>",
		Short: "Set the display language",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("language is required")
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

			l, err := journal.ParseLanguage(args[0])
			if err != nil {
				return err
			}
			st, err := a.svc.SetLanguage(ctx, l)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Language", st.Language))
			return nil
		},
	}
}

func newSettingsMusicCmd(o *options) *cobra.Command {
	var enabled bool
	var volume float64

	cmd := &cobra.Command{
		Use:   "music",
		Short: "Turn background music on or off and set its volume",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, o)
			if err != nil {
				return err
			}
			defer cleanup()

			cur := a.svc.Settings(ctx).Music
			if !cmd.Flags().Changed("enabled") {
				enabled = cur.Enabled
			}
			if !cmd.Flags().Changed("volume") {
				volume = cur.Volume
			}
			st, err := a.svc.SetMusic(ctx, enabled, volume)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Background music", fmt.Sprintf("enabled=%t volume=%.2f", st.Music.Enabled, st.Music.Volume)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&enabled, "enabled", false, "Play background music")
	cmd.Flags().Float64Var(&volume, "volume", journal.DefaultMusicVolume, "Volume between 0 and 1")
	return cmd
}

func newSettingsTutorialsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-tips",
		Short: "Show every first-use tip again",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, o)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.ResetTutorials(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconTip+" Tips will show again"))
			return nil
		},
	}
}
