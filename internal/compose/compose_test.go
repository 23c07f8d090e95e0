package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tunsimp/imhere/internal/journal"
)

const testDate = "2024-03-14"

func layoutOf(t *testing.T, in Inputs, opts ...Option) *Page {
	t.Helper()
	page, err := NewEngine(opts...).Layout(context.Background(), in)
	require.NoError(t, err)
	return page
}

func thought(text string, intensity int) journal.ThoughtEntry {
	return journal.ThoughtEntry{
		ID: text, Thought: text, Emotion: "anxious", Intensity: intensity, Date: testDate, Time: "10:00",
	}
}

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 5), G: uint8(y * 5), B: 0x80, A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	uri, err := PortraitDataURI(buf.Bytes())
	require.NoError(t, err)
	return uri
}

func TestEmptyDayShowsPlaceholders(t *testing.T) {
	page := layoutOf(t, Inputs{Date: testDate})

	assert.Equal(t, 1275, page.Width)
	assert.Equal(t, 1650, page.Height)
	assert.Contains(t, page.Texts(SectionTodos), "No tasks for today")
	assert.Contains(t, page.Texts(SectionSchedule), "No schedule items for today")
	assert.Contains(t, page.Texts(SectionThoughts), "No thoughts logged for today")
	assert.Empty(t, page.Find(KindPortrait, SectionPortrait))
	assert.Nil(t, page.Portrait)
	assert.Empty(t, page.Dropped)

	assert.Equal(t, []string{"My Wellness Journey", "Thursday, March 14, 2024"}, page.Texts(SectionHeader))
	assert.Equal(t, []string{"Generated by I'm Here - Your Wellness Companion"}, page.Texts(SectionFooter))
}

func TestSectionOrderAndBaselines(t *testing.T) {
	page := layoutOf(t, Inputs{Date: testDate})

	headers := map[Section]int{}
	for _, el := range page.Elements {
		if el.Kind == KindText && el.Role == RoleHeader {
			headers[el.Section] = el.Y
			assert.Equal(t, 50, el.X)
		}
	}
	// 150 + 20 for the first header, then header gap 40 and placeholder gap 40.
	assert.Equal(t, 170, headers[SectionTodos])
	assert.Equal(t, 270, headers[SectionSchedule])
	assert.Equal(t, 370, headers[SectionThoughts])

	footer := page.Find(KindText, SectionFooter)
	require.Len(t, footer, 1)
	assert.Equal(t, 1650-30, footer[0].Y)

	title := page.Find(KindText, SectionHeader)[0]
	assert.Equal(t, 60, title.Y)
	assert.Greater(t, title.X, sectionX, "title is centered")
	assert.Less(t, title.X, 1275/2)
}

func TestCompletedTodo(t *testing.T) {
	page := layoutOf(t, Inputs{
		Date:  testDate,
		Todos: []journal.TodoItem{{ID: "1", Text: "Drink water", Completed: true}},
	})

	texts := page.Texts(SectionTodos)
	assert.Contains(t, texts, "Completed: 1/1")
	assert.Contains(t, texts, "Drink water")

	glyphs := page.Find(KindGlyph, SectionTodos)
	require.Len(t, glyphs, 1)
	assert.Equal(t, GlyphCheck, glyphs[0].Glyph)
	assert.Len(t, page.Find(KindStrike, SectionTodos), 1)

	for _, el := range page.Find(KindText, SectionTodos) {
		if el.Text == "Drink water" {
			assert.Equal(t, RoleBodyDone, el.Role)
			assert.Greater(t, el.X, glyphs[0].Rect.Max.X, "glyph prefixes the text")
			assert.Equal(t, el.Y+1, glyphs[0].Rect.Max.Y)
		}
	}
}

func TestOpenTodoUsesCircleAndNoStrike(t *testing.T) {
	page := layoutOf(t, Inputs{
		Date: testDate,
		Todos: []journal.TodoItem{
			{ID: "1", Text: "Stretch"},
			{ID: "2", Text: "Call mom", Completed: true},
		},
	})
	assert.Contains(t, page.Texts(SectionTodos), "Completed: 1/2")
	glyphs := page.Find(KindGlyph, SectionTodos)
	require.Len(t, glyphs, 2)
	assert.Equal(t, GlyphCircle, glyphs[0].Glyph)
	assert.Equal(t, GlyphCheck, glyphs[1].Glyph)
	assert.Len(t, page.Find(KindStrike, SectionTodos), 1)
}

func TestScheduleRendersTimeThenText(t *testing.T) {
	page := layoutOf(t, Inputs{
		Date: testDate,
		Schedule: []journal.ScheduleItem{
			{ID: "a", Text: "Standup", Time: "09:00"},
			{ID: "b", Text: "Lunch", Time: "12:30"},
		},
	})
	assert.Equal(t, []string{"Daily Schedule", "09:00", "- Standup", "12:30", "- Lunch"}, page.Texts(SectionSchedule))

	els := page.Find(KindText, SectionSchedule)
	assert.Equal(t, RoleTime, els[1].Role)
	assert.Equal(t, 70, els[1].X)
	assert.Equal(t, 150, els[2].X)
	assert.Equal(t, els[1].Y, els[2].Y)
	assert.Equal(t, els[1].Y+bodyLine+itemGap, els[3].Y)
}

func TestThoughtIntensityTiers(t *testing.T) {
	page := layoutOf(t, Inputs{
		Date:     testDate,
		Thoughts: []journal.ThoughtEntry{thought("high", 8), thought("low", 2), thought("mid", 5)},
	})

	bands := page.Find(KindBand, SectionThoughts)
	require.Len(t, bands, 3)
	assert.Equal(t, journal.TierHigh, bands[0].Tier)
	assert.Equal(t, journal.TierLow, bands[1].Tier)
	assert.Equal(t, journal.TierModerate, bands[2].Tier)

	assert.Equal(t, color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}, bands[0].Color)
	assert.NotEqual(t, bands[0].Color, bands[1].Color)
	assert.NotEqual(t, bands[0].Color, bands[2].Color)
	assert.NotEqual(t, bands[1].Color, bands[2].Color)

	assert.Contains(t, page.Texts(SectionThoughts), "Emotion: anxious | Intensity: 8/10")
}

func TestThoughtEvidenceLine(t *testing.T) {
	e := thought("I always fail", 7)
	e.Evidence = "I passed the last exam"
	page := layoutOf(t, Inputs{Date: testDate, Thoughts: []journal.ThoughtEntry{e}})

	texts := page.Texts(SectionThoughts)
	assert.Contains(t, texts, "Evidence: I passed the last exam")
	for _, el := range page.Find(KindText, SectionThoughts) {
		if strings.HasPrefix(el.Text, "Evidence:") {
			assert.Equal(t, RoleEvidence, el.Role)
		}
	}
}

func TestThoughtsCappedAtFive(t *testing.T) {
	var entries []journal.ThoughtEntry
	for i := 1; i <= 7; i++ {
		entries = append(entries, thought(fmt.Sprintf("thought %d", i), 3))
	}
	page := layoutOf(t, Inputs{Date: testDate, Thoughts: entries})

	var rendered []string
	for _, el := range page.Find(KindText, SectionThoughts) {
		if el.Role == RoleThought {
			rendered = append(rendered, el.Text)
		}
	}
	assert.Equal(t, []string{"thought 1", "thought 2", "thought 3", "thought 4", "thought 5"}, rendered)
	assert.Equal(t, 2, page.Dropped[SectionThoughts])
}

func TestOverflowDropsItemsNearBottom(t *testing.T) {
	var todos []journal.TodoItem
	for i := 0; i < 60; i++ {
		todos = append(todos, journal.TodoItem{ID: fmt.Sprint(i), Text: fmt.Sprintf("task %d", i)})
	}
	capacity := DefaultCapacity()
	page := layoutOf(t, Inputs{Date: testDate, Todos: todos})

	glyphs := page.Find(KindGlyph, SectionTodos)
	assert.Less(t, len(glyphs), 60)
	assert.Equal(t, 60-len(glyphs), page.Dropped[SectionTodos])
	for _, g := range glyphs {
		assert.LessOrEqual(t, g.Rect.Max.Y-1, capacity.Height-capacity.ItemCutoff)
	}
	// later sections still render their headers
	assert.Contains(t, page.Texts(SectionSchedule), "Daily Schedule")
	assert.Contains(t, page.Texts(SectionThoughts), "Thought Log")
}

func TestCustomCapacity(t *testing.T) {
	entries := []journal.ThoughtEntry{thought("a", 1), thought("b", 1), thought("c", 1)}
	c := DefaultCapacity()
	c.MaxThoughts = 1
	page := layoutOf(t, Inputs{Date: testDate, Thoughts: entries}, WithCapacity(c))
	assert.Len(t, page.Find(KindBand, SectionThoughts), 1)
	assert.Equal(t, 2, page.Dropped[SectionThoughts])
}

func TestZeroMaxThoughtsKeepsDefaultCap(t *testing.T) {
	var entries []journal.ThoughtEntry
	for i := 1; i <= 7; i++ {
		entries = append(entries, thought(fmt.Sprintf("thought %d", i), 2))
	}
	for _, n := range []int{0, -1} {
		c := DefaultCapacity()
		c.MaxThoughts = n
		page := layoutOf(t, Inputs{Date: testDate, Thoughts: entries}, WithCapacity(c))
		assert.Len(t, page.Find(KindBand, SectionThoughts), 5, "MaxThoughts %d", n)
		assert.Equal(t, 2, page.Dropped[SectionThoughts], "MaxThoughts %d", n)
	}
}

func TestLongTodoWraps(t *testing.T) {
	long := strings.Repeat("breathe slowly and notice ", 12)
	page := layoutOf(t, Inputs{Date: testDate, Todos: []journal.TodoItem{{ID: "1", Text: long}}})

	var lines []Element
	for _, el := range page.Find(KindText, SectionTodos) {
		if el.Role == RoleBody {
			lines = append(lines, el)
		}
	}
	require.Greater(t, len(lines), 1)
	for i := 1; i < len(lines); i++ {
		assert.Equal(t, lines[i-1].Y+bodyLine, lines[i].Y)
	}
}

func TestVietnameseLabels(t *testing.T) {
	page := layoutOf(t, Inputs{Date: testDate}, WithLanguage("vi"))
	assert.Contains(t, page.Texts(SectionTodos), "Không có việc cần làm hôm nay")
	assert.Contains(t, page.Texts(SectionHeader), "Thứ Năm, 14 tháng 3, 2024")
}

func TestPortraitIsCenteredAndPushesContent(t *testing.T) {
	page := layoutOf(t, Inputs{Date: testDate, Portrait: pngDataURI(t, 40, 20)})

	ps := page.Find(KindPortrait, SectionPortrait)
	require.Len(t, ps, 1)
	assert.Equal(t, image.Rect(537, 150, 737, 350), ps[0].Rect)
	require.NotNil(t, page.Portrait)
	assert.Equal(t, image.Rect(0, 0, 200, 200), page.Portrait.Bounds())

	for _, el := range page.Find(KindText, SectionTodos) {
		if el.Role == RoleHeader {
			assert.Equal(t, 400, el.Y)
		}
	}
}

func TestBadPortraitIsSkipped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	eng := NewEngine(WithLogger(zap.New(core)))

	for _, uri := range []string{
		"data:image/png;base64,!!!notbase64",
		"data:image/png;base64," + "aGVsbG8gd29ybGQ=",
		"https://example.com/me.png",
	} {
		img, err := eng.Compose(context.Background(), Inputs{Date: testDate, Portrait: uri})
		require.NoError(t, err, uri)
		assert.Equal(t, image.Rect(0, 0, 1275, 1650), img.Bounds())
	}
	assert.Equal(t, 3, logs.FilterMessage("portrait decode failed, composing without it").Len())
}

func TestComposeIsDeterministic(t *testing.T) {
	in := Inputs{
		Date:     testDate,
		Todos:    []journal.TodoItem{{ID: "1", Text: "Drink water", Completed: true}, {ID: "2", Text: "Walk"}},
		Schedule: []journal.ScheduleItem{{ID: "s", Text: "Standup", Time: "09:00"}},
		Thoughts: []journal.ThoughtEntry{thought("It will go wrong", 8)},
	}
	eng := NewEngine()
	ctx := context.Background()

	a, err := eng.Export(ctx, in)
	require.NoError(t, err)
	b, err := eng.Export(ctx, in)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "identical inputs must encode to identical bytes")

	img, err := png.Decode(bytes.NewReader(a))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1275, 1650), img.Bounds())
}

func TestBackgroundGradient(t *testing.T) {
	img, err := NewEngine().Compose(context.Background(), Inputs{Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{R: 0xfd, G: 0xf9, B: 0xf3, A: 0xff}, img.RGBAAt(0, 0))
	end := img.RGBAAt(1274, 1649)
	assert.InDelta(t, 0xf5, int(end.R), 1)
	assert.InDelta(t, 0xed, int(end.G), 1)
	assert.InDelta(t, 0xe0, int(end.B), 1)
}

func TestTierBandIsPainted(t *testing.T) {
	eng := NewEngine()
	in := Inputs{Date: testDate, Thoughts: []journal.ThoughtEntry{thought("loud", 9)}}
	page, err := eng.Layout(context.Background(), in)
	require.NoError(t, err)
	img, err := eng.Compose(context.Background(), in)
	require.NoError(t, err)

	band := page.Find(KindBand, SectionThoughts)[0].Rect
	mid := image.Pt((band.Min.X+band.Max.X)/2, (band.Min.Y+band.Max.Y)/2)
	assert.Equal(t, TierColor(journal.TierHigh), img.RGBAAt(mid.X, mid.Y))
}

type stallingFonts struct{}

func (stallingFonts) Faces(ctx context.Context) (*FaceSet, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type brokenFonts struct{}

func (brokenFonts) Faces(context.Context) (*FaceSet, error) {
	return nil, errors.New("font file missing")
}

func TestFontWaitIsBounded(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	eng := NewEngine(
		WithFonts(stallingFonts{}),
		WithFontTimeout(20*time.Millisecond),
		WithLogger(zap.New(core)),
	)

	start := time.Now()
	page, err := eng.Layout(context.Background(), Inputs{Date: testDate})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, page.FallbackFonts)
	assert.Contains(t, page.Texts(SectionTodos), "No tasks for today")
	assert.Equal(t, 1, logs.FilterMessage("font load timed out, using fallback").Len())
}

func TestFontErrorFallsBack(t *testing.T) {
	page := layoutOf(t, Inputs{Date: testDate}, WithFonts(brokenFonts{}))
	assert.True(t, page.FallbackFonts)

	img, err := NewEngine(WithFonts(brokenFonts{})).Compose(context.Background(), Inputs{Date: testDate})
	require.NoError(t, err)
	assert.NotNil(t, img)
}

func TestCancelledContextIsReturned(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEngine(WithFonts(stallingFonts{})).Layout(ctx, Inputs{Date: testDate})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCanvasFailure(t *testing.T) {
	_, err := NewEngine(WithCapacity(PageCapacity{Width: 0, Height: 1650})).Compose(context.Background(), Inputs{Date: testDate})
	assert.ErrorIs(t, err, ErrCanvas)

	_, err = NewEngine().Compose(context.Background(), Inputs{Date: "not-a-date"})
	assert.Error(t, err)
}

func TestWrap(t *testing.T) {
	measure := func(s string) int { return len(s) * 10 }

	assert.Equal(t, []string{"aaa bbb", "ccc"}, Wrap("aaa bbb ccc", 80, measure))
	assert.Equal(t, []string{"aaa bbb ccc"}, Wrap("aaa bbb ccc", 200, measure))
	assert.Equal(t, []string{"supercalifragilistic", "short"}, Wrap("supercalifragilistic short", 50, measure))
	assert.Equal(t, []string{""}, Wrap("   ", 50, measure))
	assert.Equal(t, []string{"a", "b", "c"}, Wrap("a b c", 15, measure))
}

func TestExportFileHelpers(t *testing.T) {
	assert.Equal(t, "wellness-journey-2024-03-14.png", ExportFilename(testDate))
	assert.Equal(t, "data:image/png;base64,AQID", DataURI([]byte{1, 2, 3}))

	dir := filepath.Join(t.TempDir(), "exports")
	path, err := Save(dir, testDate, []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "wellness-journey-2024-03-14.png"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	_, err = Save(dir, "14-03-2024", nil)
	assert.Error(t, err)
}

func TestPortraitDataURI(t *testing.T) {
	uri := pngDataURI(t, 4, 4)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	_, err := PortraitDataURI([]byte("just some text"))
	assert.ErrorIs(t, err, ErrPortrait)

	img, err := DecodePortrait(uri, 50)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 50, 50), img.Bounds())
}
