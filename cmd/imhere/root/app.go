package root

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/tunsimp/imhere/internal/compose"
	"github.com/tunsimp/imhere/internal/config"
	"github.com/tunsimp/imhere/internal/i18n"
	"github.com/tunsimp/imhere/internal/journal"
	"github.com/tunsimp/imhere/internal/storage"
	"github.com/tunsimp/imhere/internal/ui"
)

// options holds the persistent flags plus what PersistentPreRunE builds from them.
type options struct {
	dbPath    string
	verbose   bool
	ephemeral bool
	date      string
	lang      string

	// environ replaces the process environment when non-nil.
	environ map[string]string

	cfg config.Config
	log *zap.Logger
}

type app struct {
	svc    *journal.Service
	engine *compose.Engine
	lang   string
	cfg    config.Config
}

func (o *options) loadConfig() (config.Config, error) {
	if o.environ != nil {
		return config.LoadFrom(o.environ)
	}
	return config.Load()
}

func (o *options) openStore(ctx context.Context) (*storage.Store, func(), error) {
	storeOpts := []storage.Option{
		storage.WithPolicy(o.cfg.Policy()),
		storage.WithLogger(o.log),
	}
	if o.ephemeral {
		return storage.NewStore(storage.NewMemoryBackend(), storeOpts...), func() {}, nil
	}

	override := o.dbPath
	if override == "" {
		override = o.cfg.DBPath
	}
	path, err := storage.ResolveDBPath(override)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	o.log.Debug("database opened", zap.String("path", path))
	cleanup := func() {
		_ = db.Close()
	}
	return storage.NewStore(storage.NewSQLiteBackend(db, o.cfg.Quota), storeOpts...), cleanup, nil
}

func openApp(ctx context.Context, o *options) (*app, func(), error) {
	store, cleanup, err := o.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc := journal.NewService(store, journal.WithLogger(o.log))

	settings := svc.Settings(ctx)
	ui.Use(settings.Theme)

	lang := string(settings.Language)
	switch {
	case o.lang != "":
		l, err := journal.ParseLanguage(o.lang)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		lang = string(l)
	case o.cfg.Lang != "":
		lang = o.cfg.Lang
	}
	lang = i18n.Code(lang)

	engine := compose.NewEngine(
		compose.WithFontTimeout(o.cfg.FontTimeout),
		compose.WithLanguage(lang),
		compose.WithLogger(o.log),
	)
	return &app{svc: svc, engine: engine, lang: lang, cfg: o.cfg}, cleanup, nil
}

// day is the --date flag resolved against today.
func (a *app) day(o *options) (string, error) {
	if strings.TrimSpace(o.date) == "" {
		return a.svc.Today(), nil
	}
	return journal.ParseDate(o.date)
}

// tip prints the tab's tutorial line the first time the tab is used.
func (a *app) tip(ctx context.Context, w io.Writer, tab journal.Tab) {
	changed, err := a.svc.MarkTutorialSeen(ctx, tab)
	if err != nil || !changed {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ui.IconTip, ui.Muted.Render(i18n.T(a.lang, "tip."+string(tab))))
}

func todoIDs(items []journal.TodoItem) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func scheduleIDs(items []journal.ScheduleItem) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func thoughtIDs(items []journal.ThoughtEntry) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func gratitudeIDs(items []journal.GratitudeEntry) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}
