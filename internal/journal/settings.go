package journal

import (
	"context"
	"fmt"

	"github.com/tunsimp/imhere/internal/storage"
)

func (s *Service) Settings(ctx context.Context) Settings {
	st := storage.Get(ctx, s.store, storage.SettingsKey, DefaultSettings())
	def := DefaultSettings()
	if !st.Theme.IsValid() {
		st.Theme = def.Theme
	}
	if !st.Language.IsValid() {
		st.Language = def.Language
	}
	if st.TutorialSeen == nil {
		st.TutorialSeen = map[Tab]bool{}
	}
	if st.Music.Volume < 0 || st.Music.Volume > 1 {
		st.Music.Volume = def.Music.Volume
	}
	return st
}

func (s *Service) updateSettings(ctx context.Context, fn func(*Settings)) (Settings, error) {
	st := s.Settings(ctx)
	fn(&st)
	if err := storage.Set(ctx, s.store, storage.SettingsKey, st); err != nil {
		return st, err
	}
	return st, nil
}

func (s *Service) SetTheme(ctx context.Context, t Theme) (Settings, error) {
	if !t.IsValid() {
		return Settings{}, ValidationError{Field: "theme", Reason: fmt.Sprintf("%q is not light or dark", t)}
	}
	return s.updateSettings(ctx, func(st *Settings) { st.Theme = t })
}

// ToggleTheme switches between light and dark.
func (s *Service) ToggleTheme(ctx context.Context) (Settings, error) {
	return s.updateSettings(ctx, func(st *Settings) {
		if st.Theme == ThemeDark {
			st.Theme = ThemeLight
		} else {
			st.Theme = ThemeDark
		}
	})
}

func (s *Service) SetLanguage(ctx context.Context, l Language) (Settings, error) {
	if !l.IsValid() {
		return Settings{}, ValidationError{Field: "language", Reason: fmt.Sprintf("%q is not supported", l)}
	}
	return s.updateSettings(ctx, func(st *Settings) { st.Language = l })
}

func (s *Service) SetMusic(ctx context.Context, enabled bool, volume float64) (Settings, error) {
	if volume < 0 || volume > 1 {
		return Settings{}, ValidationError{Field: "volume", Reason: fmt.Sprintf("%.2f is outside 0-1", volume)}
	}
	return s.updateSettings(ctx, func(st *Settings) {
		st.Music = MusicSettings{Enabled: enabled, Volume: volume}
	})
}

func (s *Service) TutorialSeen(ctx context.Context, tab Tab) bool {
	return s.Settings(ctx).TutorialSeen[tab]
}

// MarkTutorialSeen records that tab's tutorial was shown. It reports whether
// this call changed anything, so callers can show a tutorial exactly once.
func (s *Service) MarkTutorialSeen(ctx context.Context, tab Tab) (bool, error) {
	if !tab.IsValid() {
		return false, ValidationError{Field: "tab", Reason: fmt.Sprintf("unknown tab %q", tab)}
	}
	if s.TutorialSeen(ctx, tab) {
		return false, nil
	}
	_, err := s.updateSettings(ctx, func(st *Settings) { st.TutorialSeen[tab] = true })
	return true, err
}

// ResetTutorials clears every tutorial flag.
func (s *Service) ResetTutorials(ctx context.Context) error {
	_, err := s.updateSettings(ctx, func(st *Settings) { st.TutorialSeen = map[Tab]bool{} })
	return err
}
