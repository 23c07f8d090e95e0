package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tunsimp/imhere/internal/compose"
	"github.com/tunsimp/imhere/internal/i18n"
	"github.com/tunsimp/imhere/internal/journal"
	"github.com/tunsimp/imhere/internal/ui"
)

// Exporter turns one day's records into encoded image bytes.
type Exporter interface {
	Export(ctx context.Context, in compose.Inputs) ([]byte, error)
}

type boardModel struct {
	ctx       context.Context
	svc       *journal.Service
	exporter  Exporter
	exportDir string
	lang      string

	width  int
	height int

	date      string
	rec       journal.DayRecords
	gratitude []journal.GratitudeEntry
	selected  int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	date      string
	rec       journal.DayRecords
	gratitude []journal.GratitudeEntry
	err       error
}

type toggledMsg struct {
	item *journal.TodoItem
	err  error
}

type deletedMsg struct {
	text    string
	removed bool
	err     error
}

type exportedMsg struct {
	path string
	err  error
}

func newBoardModel(ctx context.Context, svc *journal.Service, exporter Exporter, exportDir, date string) boardModel {
	if date == "" {
		date = svc.Today()
	}
	return boardModel{
		ctx:       ctx,
		svc:       svc,
		exporter:  exporter,
		exportDir: exportDir,
		lang:      string(svc.Settings(ctx).Language),
		date:      date,
		loading:   true,
		lastLog:   "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd(m.date)
}

func (m boardModel) loadCmd(date string) tea.Cmd {
	return func() tea.Msg {
		rec, err := m.svc.RecordsForDate(m.ctx, date)
		if err != nil {
			return loadedMsg{date: date, err: err}
		}
		g, err := m.svc.GratitudeForDate(m.ctx, date)
		if err != nil {
			return loadedMsg{date: date, err: err}
		}
		return loadedMsg{date: date, rec: rec, gratitude: g}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		item, err := m.svc.ToggleTodo(m.ctx, m.date, id)
		return toggledMsg{item: item, err: err}
	}
}

func (m boardModel) deleteCmd(item journal.TodoItem) tea.Cmd {
	return func() tea.Msg {
		ok, err := m.svc.DeleteTodo(m.ctx, m.date, item.ID)
		return deletedMsg{text: item.Text, removed: ok, err: err}
	}
}

func (m boardModel) exportCmd() tea.Cmd {
	rec := m.rec
	return func() tea.Msg {
		data, err := m.exporter.Export(m.ctx, compose.InputsFromRecords(rec, ""))
		if err != nil {
			return exportedMsg{err: err}
		}
		path, err := compose.Save(m.exportDir, rec.Date, data)
		return exportedMsg{path: path, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.date = msg.date
		m.rec = msg.rec
		m.gratitude = msg.gratitude
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		if msg.item.Completed {
			m.lastLog = "Done: " + msg.item.Text
		} else {
			m.lastLog = "Reopened: " + msg.item.Text
		}
		return m, m.loadCmd(m.date)
	case deletedMsg:
		switch {
		case msg.err != nil:
			m.lastLog = "Delete failed: " + msg.err.Error()
			return m, nil
		case !msg.removed:
			m.lastLog = "Already gone."
		default:
			m.lastLog = "Deleted: " + msg.text
		}
		return m, m.loadCmd(m.date)
	case exportedMsg:
		if msg.err != nil {
			m.lastLog = "Export failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = "Saved " + msg.path
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd(m.date)
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rec.Todos)-1 {
				m.selected++
			}
			return m, nil
		case "left", "h":
			return m.shift(-1)
		case "right", "l":
			return m.shift(1)
		case "t":
			m.loading = true
			m.selected = 0
			return m, m.loadCmd(m.svc.Today())
		case " ", "x":
			item, ok := m.current()
			if !ok {
				m.lastLog = "No to-do selected."
				return m, nil
			}
			return m, m.toggleCmd(item.ID)
		case "d":
			item, ok := m.current()
			if !ok {
				m.lastLog = "No to-do selected."
				return m, nil
			}
			return m, m.deleteCmd(item)
		case "e":
			if m.exporter == nil {
				m.lastLog = "Export is not available."
				return m, nil
			}
			m.lastLog = "Exporting " + m.date + "…"
			return m, m.exportCmd()
		}
	}
	return m, nil
}

func (m boardModel) shift(days int) (tea.Model, tea.Cmd) {
	next, err := journal.ShiftDate(m.date, days)
	if err != nil {
		m.lastLog = err.Error()
		return m, nil
	}
	m.loading = true
	m.selected = 0
	return m, m.loadCmd(next)
}

func (m boardModel) current() (journal.TodoItem, bool) {
	if m.selected < 0 || m.selected >= len(m.rec.Todos) {
		return journal.TodoItem{}, false
	}
	return m.rec.Todos[m.selected], true
}

func (m *boardModel) clampSelection() {
	if m.selected >= len(m.rec.Todos) {
		m.selected = len(m.rec.Todos) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	left := lipgloss.JoinVertical(lipgloss.Left, m.renderTodos(), m.renderSchedule())
	right := lipgloss.JoinVertical(lipgloss.Left, m.renderThoughts(), m.renderGratitude(), m.renderKeys())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	return m.renderHeader() + "\n\n" + body + "\n" + m.renderFooter()
}

func (m boardModel) renderHeader() string {
	day, err := time.Parse("2006-01-02", m.date)
	if err != nil {
		return ui.Heading(ui.IconJournal, "imhere")
	}
	line := ui.Heading(ui.IconJournal, i18n.FormatLongDate(m.lang, day))
	if m.date == m.svc.Today() {
		line += " " + ui.Muted.Render("(today)")
	}
	if m.loading {
		line += " " + ui.Muted.Render("loading…")
	}
	return line
}

func (m boardModel) panel(title string, lines []string) string {
	w := m.columnWidth()
	body := strings.Join(lines, "\n")
	return ui.Panel.Width(w).Render(ui.PanelTitle.Render(title) + "\n" + body)
}

func (m boardModel) columnWidth() int {
	w := 44
	if m.width > 0 {
		w = m.width/2 - 4
	}
	if w < 24 {
		w = 24
	}
	return w
}

func (m boardModel) renderTodos() string {
	title := i18n.T(m.lang, "export.todos.header")
	if len(m.rec.Todos) == 0 {
		return m.panel(title, []string{ui.Muted.Render(i18n.T(m.lang, "export.todos.empty"))})
	}
	done := 0
	for _, t := range m.rec.Todos {
		if t.Completed {
			done++
		}
	}
	lines := []string{ui.Muted.Render(i18n.T(m.lang, "export.todos.completed", done, len(m.rec.Todos)))}
	for i, t := range m.rec.Todos {
		row := ui.TodoLine(t.Text, t.Completed)
		if i == m.selected {
			row = ui.SelectedRow.Render("> ") + row
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	return m.panel(title, lines)
}

func (m boardModel) renderSchedule() string {
	title := i18n.T(m.lang, "export.schedule.header")
	if len(m.rec.Schedule) == 0 {
		return m.panel(title, []string{ui.Muted.Render(i18n.T(m.lang, "export.schedule.empty"))})
	}
	var lines []string
	for _, s := range m.rec.Schedule {
		lines = append(lines, ui.Key.Render(s.Time)+" "+s.Text)
	}
	return m.panel(title, lines)
}

func (m boardModel) renderThoughts() string {
	title := i18n.T(m.lang, "export.thoughts.header")
	if len(m.rec.Thoughts) == 0 {
		return m.panel(title, []string{ui.Muted.Render(i18n.T(m.lang, "export.thoughts.empty"))})
	}
	var lines []string
	for _, t := range m.rec.Thoughts {
		lines = append(lines, fmt.Sprintf("%s %s %s", ui.Muted.Render(t.Time), t.Thought, ui.TierText(t.Intensity)))
		lines = append(lines, "  "+ui.Muted.Render(t.Emotion))
	}
	return m.panel(title, lines)
}

func (m boardModel) renderGratitude() string {
	title := i18n.T(m.lang, "tab.gratitude")
	if len(m.gratitude) == 0 {
		return m.panel(title, []string{ui.Muted.Render("-")})
	}
	var lines []string
	for _, g := range m.gratitude {
		lines = append(lines, ui.IconGratitude+" "+g.Text)
	}
	return m.panel(title, lines)
}

func (m boardModel) renderKeys() string {
	return m.panel("Keys", []string{
		"↑/↓ or j/k: move",
		"space/x: toggle to-do",
		"d: delete to-do",
		"←/→ or h/l: change day",
		"t: today",
		"e: export image",
		"r: refresh  q: quit",
	})
}

func (m boardModel) renderFooter() string {
	return "\n" + ui.Dim.Render(m.lastLog)
}
