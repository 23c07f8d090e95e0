package journal

import (
	"context"
	"sort"

	"github.com/tunsimp/imhere/internal/storage"
)

// Gratitude returns all entries, newest date first. Stored order is append order.
func (s *Service) Gratitude(ctx context.Context) []GratitudeEntry {
	entries := storage.Get(ctx, s.store, storage.GratitudeKey, []GratitudeEntry{})
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	return entries
}

func (s *Service) GratitudeForDate(ctx context.Context, date string) ([]GratitudeEntry, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	var out []GratitudeEntry
	for _, e := range storage.Get(ctx, s.store, storage.GratitudeKey, []GratitudeEntry{}) {
		if e.Date == d {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Service) AddGratitude(ctx context.Context, date, text string) (*GratitudeEntry, error) {
	t, err := normalizeText("text", text)
	if err != nil {
		return nil, err
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	entry := GratitudeEntry{ID: s.newID(), Text: t, Date: d}
	entries := append(storage.Get(ctx, s.store, storage.GratitudeKey, []GratitudeEntry{}), entry)
	if err := storage.Set(ctx, s.store, storage.GratitudeKey, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) DeleteGratitude(ctx context.Context, id string) (bool, error) {
	entries := storage.Get(ctx, s.store, storage.GratitudeKey, []GratitudeEntry{})
	kept, removed := removeByID(entries, func(e GratitudeEntry) string { return e.ID }, id)
	if !removed {
		return false, nil
	}
	return true, storage.Set(ctx, s.store, storage.GratitudeKey, kept)
}
