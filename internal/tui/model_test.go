package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunsimp/imhere/internal/compose"
	"github.com/tunsimp/imhere/internal/journal"
	"github.com/tunsimp/imhere/internal/storage"
)

type fakeExporter struct {
	got compose.Inputs
}

func (f *fakeExporter) Export(_ context.Context, in compose.Inputs) ([]byte, error) {
	f.got = in
	return []byte("png"), nil
}

func newTestBoard(t *testing.T, exporter Exporter, dir string) (boardModel, *journal.Service) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2024, 3, 14, 9, 30, 0, 0, time.Local)
	svc := journal.NewService(
		storage.NewStore(storage.NewMemoryBackend()),
		journal.WithClock(func() time.Time { return now }),
	)
	_, err := svc.AddTodo(ctx, "2024-03-14", "Walk")
	require.NoError(t, err)
	_, err = svc.AddTodo(ctx, "2024-03-14", "Read")
	require.NoError(t, err)
	_, err = svc.AddTodo(ctx, "2024-03-13", "Yesterday")
	require.NoError(t, err)

	m := newBoardModel(ctx, svc, exporter, dir, "")
	return run(t, m, m.Init()), svc
}

// run feeds cmd's message back into m, following chained commands.
func run(t *testing.T, m boardModel, cmd tea.Cmd) boardModel {
	t.Helper()
	for cmd != nil {
		next, c := m.Update(cmd())
		m = next.(boardModel)
		cmd = c
	}
	return m
}

func press(t *testing.T, m boardModel, key string) boardModel {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return run(t, next.(boardModel), cmd)
}

func TestBoardLoadsToday(t *testing.T) {
	m, _ := newTestBoard(t, nil, "")
	assert.False(t, m.loading)
	assert.Equal(t, "2024-03-14", m.date)
	require.Len(t, m.rec.Todos, 2)
	assert.Contains(t, m.View(), "Walk")
}

func TestBoardTogglesSelectedTodo(t *testing.T) {
	ctx := context.Background()
	m, svc := newTestBoard(t, nil, "")

	m = press(t, m, "j")
	assert.Equal(t, 1, m.selected)
	m = press(t, m, "space")

	todos, err := svc.Todos(ctx, "2024-03-14")
	require.NoError(t, err)
	assert.False(t, todos[0].Completed)
	assert.True(t, todos[1].Completed)
	assert.Equal(t, "Done: Read", m.lastLog)
	assert.True(t, m.rec.Todos[1].Completed)
}

func TestBoardDeleteClampsSelection(t *testing.T) {
	m, _ := newTestBoard(t, nil, "")
	m = press(t, m, "j")
	m = press(t, m, "d")
	require.Len(t, m.rec.Todos, 1)
	assert.Equal(t, 0, m.selected)
	assert.Equal(t, "Deleted: Read", m.lastLog)
}

func TestBoardChangesDay(t *testing.T) {
	m, _ := newTestBoard(t, nil, "")
	m = press(t, m, "h")
	assert.Equal(t, "2024-03-13", m.date)
	require.Len(t, m.rec.Todos, 1)
	assert.Equal(t, "Yesterday", m.rec.Todos[0].Text)

	m = press(t, m, "t")
	assert.Equal(t, "2024-03-14", m.date)
}

func TestBoardExportWritesFile(t *testing.T) {
	dir := t.TempDir()
	exp := &fakeExporter{}
	m, _ := newTestBoard(t, exp, dir)

	m = press(t, m, "e")
	assert.Equal(t, "2024-03-14", exp.got.Date)
	assert.Len(t, exp.got.Todos, 2)

	path := filepath.Join(dir, "wellness-journey-2024-03-14.png")
	assert.Equal(t, "Saved "+path, m.lastLog)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestBoardWithoutExporter(t *testing.T) {
	m, _ := newTestBoard(t, nil, "")
	m = press(t, m, "e")
	assert.Equal(t, "Export is not available.", m.lastLog)
}
