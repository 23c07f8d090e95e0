package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tunsimp/imhere/internal/logging"
	"github.com/tunsimp/imhere/internal/ui"
)

const Version = "0.1.0"

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "imhere",
		Short:         "I'm Here - a local-first wellness journal",
		Long:          "imhere keeps your daily to-dos, schedule, thought records and gratitude notes on this machine, and turns a day into a shareable summary image.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig()
			if err != nil {
				return err
			}
			o.cfg = cfg
			if o.log == nil {
				logger, err := logging.New(cfg.LogLevel, o.verbose)
				if err != nil {
					return err
				}
				o.log = logger
			}
			return nil
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&o.dbPath, "db", "", "Journal database path (default ~/.imhere.db)")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&o.ephemeral, "ephemeral", false, "Keep records in memory only")
	cmd.PersistentFlags().StringVar(&o.date, "date", "", "Journal date YYYY-MM-DD (default today)")
	cmd.PersistentFlags().StringVar(&o.lang, "lang", "", "Language for labels (en|vi)")

	cmd.AddCommand(
		newTodoCmd(o),
		newScheduleCmd(o),
		newThoughtCmd(o),
		newGratitudeCmd(o),
		newCopingCmd(o),
		newSongCmd(o),
		newExportCmd(o),
		newSettingsCmd(o),
		newDataCmd(o),
		newTodayCmd(o),
		newBoardCmd(o),
	)
	return cmd
}

// runRoot executes cmd and flushes the logger, including when a command fails.
func runRoot(o *options, cmd *cobra.Command) error {
	defer func() {
		if o.log != nil {
			_ = o.log.Sync()
		}
	}()
	return cmd.Execute()
}

func Execute() {
	o := &options{}
	if err := runRoot(o, newRootCmd(o)); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
