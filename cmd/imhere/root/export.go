package root

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tunsimp/imhere/internal/compose"
	"github.com/tunsimp/imhere/internal/journal"
	"github.com/tunsimp/imhere/internal/ui"
)

func newExportCmd(o *options) *cobra.Command {
	var portraitPath string
	var outDir string
	var dataURI bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the day as a summary image",
		Long: `Render the day's to-dos, schedule and thoughts into a 1275x1650 PNG.

The image is saved as wellness-journey-<date>.png in the export directory
(IMHERE_EXPORT_DIR, or --out). With --data-uri the image is printed as a
data URI instead of being written to disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
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

			var portrait string
			if portraitPath != "" {
				raw, err := os.ReadFile(portraitPath)
				if err != nil {
					return fmt.Errorf("read portrait: %w", err)
				}
				if portrait, err = compose.PortraitDataURI(raw); err != nil {
					o.log.Warn("portrait unreadable, exporting without it",
						zap.String("path", portraitPath), zap.Error(err))
					fmt.Fprintf(cmd.ErrOrStderr(), "%s portrait skipped: %v\n", ui.IconWarn, err)
				}
			}

			data, err := a.engine.Export(ctx, compose.InputsFromRecords(rec, portrait))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dataURI {
				fmt.Fprintln(out, compose.DataURI(data))
				return nil
			}

			a.tip(ctx, out, journal.TabExport)
			dir := outDir
			if dir == "" {
				dir = a.cfg.ExportDir
			}
			path, err := compose.Save(dir, date, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconExport+" Exported"), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&portraitPath, "portrait", "", "Image file to place at the top of the page")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory to write the image to")
	cmd.Flags().BoolVar(&dataURI, "data-uri", false, "Print a data URI preview instead of saving")
	return cmd
}
