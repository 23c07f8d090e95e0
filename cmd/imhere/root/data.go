package root

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tunsimp/imhere/internal/ui"
)

func newDataCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Back up or restore every stored record",
	}
	cmd.AddCommand(newDataExportCmd(o), newDataImportCmd(o))
	return cmd
}

func newDataExportCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file|->",
		Short: "Write all records as one JSON object keyed by storage key",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("file is required")
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

			docs, err := a.svc.Store().Snapshot(ctx)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(docs, "", "  ")
			if err != nil {
				return fmt.Errorf("encode backup: %w", err)
			}
			b = append(b, '\n')

			if args[0] == "-" {
				_, err := cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(args[0], b, 0o600); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d keys to %s\n", ui.Good.Render("Backed up"), len(docs), args[0])
			return nil
		},
	}
}

func newDataImportCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load records from a backup, overwriting matching keys",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("file is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}
			var docs map[string]json.RawMessage
			if err := json.Unmarshal(raw, &docs); err != nil {
				return fmt.Errorf("decode backup: %w", err)
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx, o)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.Store().Restore(ctx, docs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d keys from %s\n", ui.Good.Render("Restored"), len(docs), args[0])
			return nil
		},
	}
}
