// Package compose renders one day of journal records into a fixed-size
// summary page and encodes it as PNG.
package compose

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tunsimp/imhere/internal/i18n"
	"github.com/tunsimp/imhere/internal/journal"
)

// ErrCanvas means no drawing surface could be created for the page.
var ErrCanvas = errors.New("canvas unavailable")

const DefaultFontTimeout = 3 * time.Second

// Inputs is everything one composition reads. The engine never mutates it.
type Inputs struct {
	Date     string
	Todos    []journal.TodoItem
	Schedule []journal.ScheduleItem
	Thoughts []journal.ThoughtEntry
	// Portrait is an optional image data URI.
	Portrait string
}

func InputsFromRecords(rec journal.DayRecords, portrait string) Inputs {
	return Inputs{
		Date:     rec.Date,
		Todos:    rec.Todos,
		Schedule: rec.Schedule,
		Thoughts: rec.Thoughts,
		Portrait: portrait,
	}
}

type Engine struct {
	fonts       FontSource
	capacity    PageCapacity
	fontTimeout time.Duration
	lang        string
	log         *zap.Logger
}

type Option func(*Engine)

func WithFonts(src FontSource) Option {
	return func(e *Engine) { e.fonts = src }
}

func WithCapacity(c PageCapacity) Option {
	return func(e *Engine) { e.capacity = c }
}

// WithFontTimeout bounds the wait for fonts. Non-positive values keep the default.
func WithFontTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.fontTimeout = d
		}
	}
}

func WithLanguage(lang string) Option {
	return func(e *Engine) { e.lang = i18n.Code(lang) }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		fonts:       GoFonts{},
		capacity:    DefaultCapacity(),
		fontTimeout: DefaultFontTimeout,
		lang:        i18n.BaseLocale,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(zap.String("component", "compose"))
	return e
}

// Layout computes the display list for in without rasterizing it.
func (e *Engine) Layout(ctx context.Context, in Inputs) (*Page, error) {
	page, faces, err := e.layout(ctx, in)
	if err != nil {
		return nil, err
	}
	_ = faces.Close()
	return page, nil
}

// Compose lays out and rasterizes in. A portrait that fails to decode is
// logged and left out; fonts that are not ready in time are replaced by the
// fallback face.
func (e *Engine) Compose(ctx context.Context, in Inputs) (*image.RGBA, error) {
	page, faces, err := e.layout(ctx, in)
	if err != nil {
		return nil, err
	}
	defer faces.Close()
	return render(page, faces), nil
}

// Export composes in and returns the encoded PNG.
func (e *Engine) Export(ctx context.Context, in Inputs) ([]byte, error) {
	img, err := e.Compose(ctx, in)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}

func (e *Engine) layout(ctx context.Context, in Inputs) (*Page, *FaceSet, error) {
	if e.capacity.Width <= 0 || e.capacity.Height <= 0 {
		return nil, nil, fmt.Errorf("%w: page size %dx%d", ErrCanvas, e.capacity.Width, e.capacity.Height)
	}
	date, err := journal.ParseDate(in.Date)
	if err != nil {
		return nil, nil, err
	}
	day, _ := time.Parse("2006-01-02", date)

	faces, err := loadFaces(ctx, e.fonts, e.fontTimeout, e.log)
	if err != nil {
		return nil, nil, err
	}

	var portrait image.Image
	if strings.TrimSpace(in.Portrait) != "" {
		portrait, err = DecodePortrait(in.Portrait, portraitSize)
		if err != nil {
			e.log.Warn("portrait decode failed, composing without it", zap.Error(err))
			portrait = nil
		}
	}

	page := layoutPage(faces, i18n.Printer(e.lang), e.capacity, in, i18n.FormatLongDate(e.lang, day), portrait)
	e.log.Debug("page laid out",
		zap.String("date", date),
		zap.Int("elements", len(page.Elements)),
		zap.Bool("fallback_fonts", page.FallbackFonts),
	)
	for sec, n := range page.Dropped {
		e.log.Info("records did not fit the page", zap.String("section", string(sec)), zap.Int("dropped", n))
	}
	return page, faces, nil
}
