package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tunsimp/imhere/internal/journal"
)

// imhere theme (CLI + TUI). Light and dark palettes follow the stored theme setting.

const (
	IconJournal   = "📔"
	IconSparkle   = "✨"
	IconPlus      = "➕"
	IconDone      = "✅"
	IconOpen      = "⭕"
	IconClock     = "🕐"
	IconThought   = "💭"
	IconGratitude = "🙏"
	IconCoping    = "🌿"
	IconMusic     = "🎵"
	IconExport    = "🖼️"
	IconInfo      = "ℹ️"
	IconWarn      = "⚠️"
	IconError     = "🧨"
	IconTrash     = "🗑️"
	IconTip       = "💡"
)

type palette struct {
	primary, accent, good, warn, bad, muted, gold lipgloss.Color
}

var (
	lightPalette = palette{
		primary: "94",  // brown
		accent:  "130", // amber
		good:    "34",
		warn:    "172",
		bad:     "160",
		muted:   "244",
		gold:    "178",
	}
	darkPalette = palette{
		primary: "180", // tan
		accent:  "216", // peach
		good:    "42",
		warn:    "214",
		bad:     "196",
		muted:   "246",
		gold:    "220",
	}
)

var (
	Title       lipgloss.Style
	H2          lipgloss.Style
	Muted       lipgloss.Style
	Key         lipgloss.Style
	Good        lipgloss.Style
	Warn        lipgloss.Style
	Bad         lipgloss.Style
	Gold        lipgloss.Style
	Dim         lipgloss.Style
	Struck      lipgloss.Style
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	SelectedRow lipgloss.Style
)

func init() { Use(journal.ThemeLight) }

// Use switches every style to the palette for t. Unknown themes use light.
func Use(t journal.Theme) {
	p := lightPalette
	if t == journal.ThemeDark {
		p = darkPalette
	}
	Title = lipgloss.NewStyle().Bold(true).Foreground(p.accent)
	H2 = lipgloss.NewStyle().Bold(true).Foreground(p.primary)
	Muted = lipgloss.NewStyle().Foreground(p.muted)
	Key = lipgloss.NewStyle().Bold(true).Foreground(p.primary)
	Good = lipgloss.NewStyle().Bold(true).Foreground(p.good)
	Warn = lipgloss.NewStyle().Bold(true).Foreground(p.warn)
	Bad = lipgloss.NewStyle().Bold(true).Foreground(p.bad)
	Gold = lipgloss.NewStyle().Bold(true).Foreground(p.gold)
	Dim = lipgloss.NewStyle().Foreground(p.muted)
	Struck = lipgloss.NewStyle().Italic(true).Strikethrough(true).Foreground(p.muted)
	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.muted).Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(p.primary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(p.gold).Background(p.primary)
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// TierText renders an intensity as "n/10" in its tier color.
func TierText(intensity int) string {
	s := fmt.Sprintf("%d/10", intensity)
	switch journal.TierFor(intensity) {
	case journal.TierLow:
		return Good.Render(s)
	case journal.TierModerate:
		return Warn.Render(s)
	default:
		return Bad.Render(s)
	}
}

// TodoLine renders a to-do with its completion mark.
func TodoLine(text string, done bool) string {
	if done {
		return IconDone + " " + Struck.Render(text)
	}
	return IconOpen + " " + text
}

func TabIcon(tab journal.Tab) string {
	switch tab {
	case journal.TabGratitude:
		return IconGratitude
	case journal.TabSchedule:
		return IconClock
	case journal.TabCoping:
		return IconCoping
	case journal.TabThoughts:
		return IconThought
	case journal.TabMusic:
		return IconMusic
	case journal.TabExport:
		return IconExport
	default:
		return IconJournal
	}
}

// ShortID trims a uuid to the prefix the CLI accepts back.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
