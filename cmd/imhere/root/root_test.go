package root

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tunsimp/imhere/internal/journal"
	"github.com/tunsimp/imhere/internal/storage"
)

const testDate = "2024-03-14"

type harness struct {
	t       *testing.T
	dbPath  string
	environ map[string]string
	log     *zap.Logger
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	return &harness{
		t:      t,
		dbPath: filepath.Join(dir, "imhere.db"),
		environ: map[string]string{
			"IMHERE_EXPORT_DIR": filepath.Join(dir, "exports"),
		},
		log: zap.NewNop(),
	}
}

// run executes one command against the harness database and returns stdout.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	o := &options{environ: h.environ, log: h.log}
	cmd := newRootCmd(o)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--db", h.dbPath, "--date", testDate}, args...))
	err := runRoot(o, cmd)
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "imhere %s", strings.Join(args, " "))
	return out
}

// service opens the harness database directly for assertions.
func (h *harness) service() *journal.Service {
	h.t.Helper()
	db, err := storage.Open(context.Background(), h.dbPath)
	require.NoError(h.t, err)
	h.t.Cleanup(func() { _ = db.Close() })
	return journal.NewService(storage.NewStore(storage.NewSQLiteBackend(db, 0)))
}

func TestTodoCommands(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	out := h.mustRun("todo", "add", "Drink", "water")
	assert.Contains(t, out, "Added")
	assert.Contains(t, out, "Drink water")
	assert.Contains(t, out, "check it off", "first use prints the tip")

	out = h.mustRun("todo", "add", "Stretch")
	assert.NotContains(t, out, "check it off", "tip is shown once")

	todos, err := h.service().Todos(ctx, testDate)
	require.NoError(t, err)
	require.Len(t, todos, 2)

	out = h.mustRun("todo", "done", todos[0].ID[:8])
	assert.Contains(t, out, "Done")

	out = h.mustRun("todo", "ls")
	assert.Contains(t, out, "To-Do List")
	assert.Contains(t, out, "Completed: 1/2")

	h.mustRun("todo", "rm", todos[1].ID)
	todos, err = h.service().Todos(ctx, testDate)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].Completed)

	_, err = h.run("todo", "done", "no-such-id")
	assert.ErrorIs(t, err, journal.ErrNotFound)
}

func TestScheduleCommands(t *testing.T) {
	h := newHarness(t)

	h.mustRun("schedule", "add", "14:00", "Therapy")
	h.mustRun("schedule", "add", "9:05", "Walk", "the", "dog")

	out := h.mustRun("schedule", "ls")
	walk := strings.Index(out, "09:05")
	therapy := strings.Index(out, "14:00")
	require.NotEqual(t, -1, walk)
	require.NotEqual(t, -1, therapy)
	assert.Less(t, walk, therapy)
	assert.Contains(t, out, "Walk the dog")

	_, err := h.run("schedule", "add", "25:00", "Late")
	var verr journal.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestThoughtCommands(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("thought", "add", "Nobody likes me", "--emotion", "sad", "--intensity", "11")
	require.Error(t, err)

	h.mustRun("thought", "add", "Nobody likes me", "--emotion", "sad", "--intensity", "8")
	entries := h.service().Thoughts(context.Background())
	require.Len(t, entries, 1)
	assert.Equal(t, testDate, entries[0].Date)

	h.mustRun("thought", "evidence", entries[0].ID[:8], "A", "friend", "called")
	out := h.mustRun("thought", "ls")
	assert.Contains(t, out, "Nobody likes me")
	assert.Contains(t, out, "8/10")
	assert.Contains(t, out, "Evidence: A friend called")
}

func TestExportWritesPNG(t *testing.T) {
	h := newHarness(t)
	h.mustRun("todo", "add", "Journal")

	out := h.mustRun("export")
	path := filepath.Join(h.environ["IMHERE_EXPORT_DIR"], "wellness-journey-"+testDate+".png")
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))

	out = h.mustRun("export", "--data-uri")
	assert.True(t, strings.HasPrefix(out, "data:image/png;base64,"))
}

func TestExportSkipsUnreadablePortrait(t *testing.T) {
	h := newHarness(t)
	core, logs := observer.New(zapcore.WarnLevel)
	h.log = zap.New(core)

	notImage := filepath.Join(t.TempDir(), "me.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("just some text"), 0o600))

	out := h.mustRun("export", "--portrait", notImage)
	assert.Contains(t, out, "wellness-journey-"+testDate+".png")

	warned := logs.FilterMessage("portrait unreadable, exporting without it").All()
	require.Len(t, warned, 1)
	assert.Equal(t, notImage, warned[0].ContextMap()["path"])
}

// syncCounter is a log sink that records flushes.
type syncCounter struct {
	bytes.Buffer
	syncs int
}

func (s *syncCounter) Sync() error {
	s.syncs++
	return nil
}

func TestLoggerFlushedWhenCommandFails(t *testing.T) {
	h := newHarness(t)
	sink := &syncCounter{}
	h.log = zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, zap.DebugLevel))

	_, err := h.run("todo", "done", "no-such-id")
	require.Error(t, err)
	assert.Equal(t, 1, sink.syncs)

	h.mustRun("todo", "ls")
	assert.Equal(t, 2, sink.syncs)
}

func TestDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.mustRun("todo", "add", "Backup me")
	h.mustRun("gratitude", "add", "Sunshine")

	backup := filepath.Join(t.TempDir(), "backup.json")
	h.mustRun("data", "export", backup)

	raw, err := os.ReadFile(backup)
	require.NoError(t, err)
	var docs map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &docs))
	assert.Contains(t, docs, "todos_"+testDate)
	assert.Contains(t, docs, "gratitude_entries")

	other := newHarness(t)
	other.mustRun("data", "import", backup)
	todos, err := other.service().Todos(ctx, testDate)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Backup me", todos[0].Text)
}

func TestLanguageAndSettings(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("--lang", "vi", "todo", "ls")
	assert.Contains(t, out, "Không có việc cần làm hôm nay")

	h.mustRun("settings", "lang", "vi")
	out = h.mustRun("todo", "ls")
	assert.Contains(t, out, "Danh Sách Việc Cần Làm")

	h.mustRun("settings", "theme", "toggle")
	h.mustRun("settings", "music", "--enabled", "--volume", "0.5")
	st := h.service().Settings(context.Background())
	assert.Equal(t, journal.ThemeDark, st.Theme)
	assert.True(t, st.Music.Enabled)
	assert.InDelta(t, 0.5, st.Music.Volume, 1e-9)

	_, err := h.run("settings", "music", "--volume", "2")
	assert.Error(t, err)
}

func TestEphemeralLeavesNoDatabase(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("--ephemeral", "todo", "add", "Gone soon")
	assert.Contains(t, out, "Gone soon")
	_, err := os.Stat(h.dbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestConfigAndDateErrors(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("--date", "14/03/2024", "todo", "ls")
	assert.Error(t, err)

	h.environ["IMHERE_RESILIENCE"] = "sometimes"
	_, err = h.run("todo", "ls")
	assert.ErrorContains(t, err, "resilience")
}

func TestCopingAndSong(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("coping", "--category", "breathing")
	assert.Contains(t, out, "Box Breathing")
	assert.NotContains(t, out, "Progressive Muscle Relaxation")

	_, err := h.run("coping", "--category", "dancing")
	assert.Error(t, err)

	out = h.mustRun("song")
	assert.Contains(t, out, "https://open.spotify.com/track/")
}

func TestTodaySummary(t *testing.T) {
	h := newHarness(t)
	h.mustRun("todo", "add", "Breathe")
	h.mustRun("gratitude", "add", "Tea")

	out := h.mustRun("today")
	assert.Contains(t, out, "Thursday, March 14, 2024")
	assert.Contains(t, out, "0 of 1 tasks done")
	assert.Contains(t, out, "1 things you're grateful for")

	out = h.mustRun("today", "--full")
	assert.Contains(t, out, "Breathe")
	assert.Contains(t, out, "No schedule items for today")
}
