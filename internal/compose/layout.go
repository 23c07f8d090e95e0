package compose

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/text/message"

	"github.com/tunsimp/imhere/internal/journal"
)

// PageCapacity is the fixed-page policy. Content that does not fit is
// dropped, never reflowed onto a second page.
type PageCapacity struct {
	Width  int
	Height int
	// MaxThoughts caps the thought entries rendered, taken in log order.
	// Non-positive values keep the default cap.
	MaxThoughts int
	// ItemCutoff and ThoughtCutoff are distances from the bottom edge. An
	// item whose first baseline would fall below Height-cutoff is dropped.
	ItemCutoff    int
	ThoughtCutoff int
}

// DefaultCapacity is a US letter page at 150 DPI.
func DefaultCapacity() PageCapacity {
	return PageCapacity{
		Width:         1275,
		Height:        1650,
		MaxThoughts:   5,
		ItemCutoff:    200,
		ThoughtCutoff: 300,
	}
}

type Section string

const (
	SectionHeader   Section = "header"
	SectionPortrait Section = "portrait"
	SectionTodos    Section = "todos"
	SectionSchedule Section = "schedule"
	SectionThoughts Section = "thoughts"
	SectionFooter   Section = "footer"
)

type Kind int

const (
	KindText Kind = iota
	KindGlyph
	KindStrike
	KindBand
	KindPortrait
)

type Glyph int

const (
	GlyphNone Glyph = iota
	GlyphCheck
	GlyphCircle
)

// Element is one entry of the page display list. Text elements use X/Y as the
// left baseline point; every other kind fills Rect.
type Element struct {
	Kind    Kind
	Section Section
	Role    Role
	Text    string
	X, Y    int
	Rect    image.Rectangle
	Color   color.RGBA
	Glyph   Glyph
	Tier    journal.IntensityTier
}

// Page is the laid-out document, ready to rasterize.
type Page struct {
	Width    int
	Height   int
	Elements []Element
	// Dropped counts records per section that did not fit the page.
	Dropped map[Section]int
	// Portrait is the scaled portrait, nil when none was supplied or it failed to decode.
	Portrait image.Image
	// FallbackFonts reports that the bitmap fallback face was used.
	FallbackFonts bool
}

// Texts returns the text of every text element in sec, top to bottom.
func (p *Page) Texts(sec Section) []string {
	var out []string
	for _, el := range p.Elements {
		if el.Kind == KindText && el.Section == sec {
			out = append(out, el.Text)
		}
	}
	return out
}

func (p *Page) Find(kind Kind, sec Section) []Element {
	var out []Element
	for _, el := range p.Elements {
		if el.Kind == kind && el.Section == sec {
			out = append(out, el)
		}
	}
	return out
}

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

var (
	colorInk   = hex(0x543a28)
	colorSoft  = hex(0x8b6544)
	colorFaded = hex(0x6b6544)
)

// TierColor is the band color for an intensity tier.
func TierColor(t journal.IntensityTier) color.RGBA {
	switch t {
	case journal.TierLow:
		return hex(0x22c55e)
	case journal.TierModerate:
		return hex(0xeab308)
	default:
		return hex(0xef4444)
	}
}

// Layout constants, in pixels.
const (
	titleY       = 60
	dateY        = 100
	contentTop   = 150
	portraitSize = 200
	portraitGap  = 30
	sectionGap   = 20
	headerGap    = 40
	sectionX     = 50
	itemX        = 70
	glyphSize    = 16
	glyphGap     = 12
	scheduleX    = 150
	bodyLine     = 30
	thoughtLine  = 28
	evidenceLine = 26
	itemGap      = 10
	bandX        = 56
	bandWidth    = 6
	footerInset  = 30
)

type pageBuilder struct {
	page  *Page
	faces *FaceSet
	p     *message.Printer
	pc    PageCapacity
	y     int
}

func (b *pageBuilder) text(sec Section, role Role, x, y int, s string, c color.RGBA) {
	b.page.Elements = append(b.page.Elements, Element{
		Kind: KindText, Section: sec, Role: role, Text: s, X: x, Y: y, Color: c,
	})
}

func (b *pageBuilder) centered(sec Section, role Role, y int, s string, c color.RGBA) {
	x := (b.page.Width - b.faces.Measure(role, s)) / 2
	b.text(sec, role, x, y, s, c)
}

// wrapped emits text wrapped to width starting at baseline b.y and advances
// b.y by one line height per line. It returns the emitted lines.
func (b *pageBuilder) wrapped(sec Section, role Role, x, width, lineHeight int, s string, c color.RGBA) []string {
	lines := Wrap(s, width, func(l string) int { return b.faces.Measure(role, l) })
	for _, l := range lines {
		b.text(sec, role, x, b.y, l, c)
		b.y += lineHeight
	}
	return lines
}

func (b *pageBuilder) header(sec Section, key string) {
	b.y += sectionGap
	b.text(sec, RoleHeader, sectionX, b.y, b.p.Sprintf(key), colorInk)
	b.y += headerGap
}

func (b *pageBuilder) drop(sec Section) {
	b.page.Dropped[sec]++
}

func (b *pageBuilder) todos(items []journal.TodoItem) {
	b.header(SectionTodos, "export.todos.header")
	if len(items) == 0 {
		b.text(SectionTodos, RolePlaceholder, sectionX, b.y, b.p.Sprintf("export.todos.empty"), colorSoft)
		b.y += headerGap
		return
	}

	done := 0
	for _, it := range items {
		if it.Completed {
			done++
		}
	}
	b.text(SectionTodos, RoleCount, sectionX, b.y, b.p.Sprintf("export.todos.completed", done, len(items)), colorSoft)
	b.y += headerGap

	textX := itemX + glyphSize + glyphGap
	width := b.pc.Width - 2*itemX - (textX - itemX)
	for _, it := range items {
		if b.y > b.pc.Height-b.pc.ItemCutoff {
			b.drop(SectionTodos)
			continue
		}
		role, c, g := RoleBody, colorInk, GlyphCircle
		if it.Completed {
			role, c, g = RoleBodyDone, colorFaded, GlyphCheck
		}
		b.page.Elements = append(b.page.Elements, Element{
			Kind:    KindGlyph,
			Section: SectionTodos,
			Rect:    image.Rect(itemX, b.y-glyphSize+1, itemX+glyphSize, b.y+1),
			Color:   c,
			Glyph:   g,
		})
		start := b.y
		lines := b.wrapped(SectionTodos, role, textX, width, bodyLine, it.Text, c)
		if it.Completed {
			for i, l := range lines {
				ly := start + i*bodyLine
				w := b.faces.Measure(role, l)
				b.page.Elements = append(b.page.Elements, Element{
					Kind:    KindStrike,
					Section: SectionTodos,
					Rect:    image.Rect(textX, ly-7, textX+w, ly-5),
					Color:   c,
				})
			}
		}
		b.y += itemGap
	}
}

func (b *pageBuilder) schedule(items []journal.ScheduleItem) {
	b.header(SectionSchedule, "export.schedule.header")
	if len(items) == 0 {
		b.text(SectionSchedule, RolePlaceholder, sectionX, b.y, b.p.Sprintf("export.schedule.empty"), colorSoft)
		b.y += headerGap
		return
	}

	width := b.pc.Width - 200
	for _, it := range items {
		if b.y > b.pc.Height-b.pc.ItemCutoff {
			b.drop(SectionSchedule)
			continue
		}
		b.text(SectionSchedule, RoleTime, itemX, b.y, it.Time, colorInk)
		b.wrapped(SectionSchedule, RoleBody, scheduleX, width, bodyLine, "- "+it.Text, colorSoft)
		b.y += itemGap
	}
}

func (b *pageBuilder) thoughts(entries []journal.ThoughtEntry) {
	b.header(SectionThoughts, "export.thoughts.header")
	if len(entries) == 0 {
		b.text(SectionThoughts, RolePlaceholder, sectionX, b.y, b.p.Sprintf("export.thoughts.empty"), colorSoft)
		return
	}

	limit := b.pc.MaxThoughts
	if limit <= 0 {
		limit = DefaultCapacity().MaxThoughts
	}
	shown := entries
	if len(shown) > limit {
		b.page.Dropped[SectionThoughts] += len(shown) - limit
		shown = shown[:limit]
	}

	width := b.pc.Width - 2*itemX
	for _, e := range shown {
		if b.y > b.pc.Height-b.pc.ThoughtCutoff {
			b.drop(SectionThoughts)
			continue
		}
		top := b.y
		b.wrapped(SectionThoughts, RoleThought, itemX, width, thoughtLine, e.Thought, colorInk)
		b.y += itemGap

		metaY := b.y
		b.text(SectionThoughts, RoleMeta, itemX, metaY, b.p.Sprintf("export.thoughts.meta", e.Emotion, e.Intensity), colorSoft)
		b.y += 30

		if ev := strings.TrimSpace(e.Evidence); ev != "" {
			b.wrapped(SectionThoughts, RoleEvidence, itemX, width, evidenceLine, b.p.Sprintf("export.thoughts.evidence", ev), colorFaded)
			b.y += 15
		}
		b.y += 15

		tier := journal.TierFor(e.Intensity)
		b.page.Elements = append(b.page.Elements, Element{
			Kind:    KindBand,
			Section: SectionThoughts,
			Rect:    image.Rect(bandX, top-18, bandX+bandWidth, metaY+4),
			Color:   TierColor(tier),
			Tier:    tier,
		})
	}
}

// layoutPage places every element for in onto a page of pc's size.
// portrait may be nil.
func layoutPage(faces *FaceSet, p *message.Printer, pc PageCapacity, in Inputs, dateLine string, portrait image.Image) *Page {
	page := &Page{
		Width:         pc.Width,
		Height:        pc.Height,
		Dropped:       map[Section]int{},
		FallbackFonts: faces.Fallback,
	}
	b := &pageBuilder{page: page, faces: faces, p: p, pc: pc}

	b.centered(SectionHeader, RoleTitle, titleY, p.Sprintf("export.title"), colorInk)
	b.centered(SectionHeader, RoleDate, dateY, dateLine, colorSoft)

	b.y = contentTop
	if portrait != nil {
		x := (pc.Width - portraitSize) / 2
		page.Portrait = portrait
		page.Elements = append(page.Elements, Element{
			Kind:    KindPortrait,
			Section: SectionPortrait,
			Rect:    image.Rect(x, b.y, x+portraitSize, b.y+portraitSize),
		})
		b.y += portraitSize + portraitGap
	}

	b.todos(in.Todos)
	b.schedule(in.Schedule)
	b.thoughts(in.Thoughts)

	b.centered(SectionFooter, RoleFooter, pc.Height-footerInset, p.Sprintf("export.footer"), colorSoft)
	return page
}
