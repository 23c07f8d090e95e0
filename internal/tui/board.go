package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tunsimp/imhere/internal/journal"
)

// RunBoard opens the interactive day board on date ("" means today).
// exporter may be nil, which disables the export key.
func RunBoard(ctx context.Context, svc *journal.Service, exporter Exporter, exportDir, date string, out io.Writer) error {
	m := newBoardModel(ctx, svc, exporter, exportDir, date)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
