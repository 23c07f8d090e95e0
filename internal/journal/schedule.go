package journal

import (
	"context"
	"sort"

	"github.com/tunsimp/imhere/internal/storage"
)

func (s *Service) Schedule(ctx context.Context, date string) ([]ScheduleItem, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	return storage.Get(ctx, s.store, storage.ScheduleKey(d), []ScheduleItem{}), nil
}

// AddScheduleItem inserts an item and keeps the day's schedule ordered by time.
// Items sharing a time keep their insertion order.
func (s *Service) AddScheduleItem(ctx context.Context, date, text, clock string) (*ScheduleItem, error) {
	t, err := normalizeText("text", text)
	if err != nil {
		return nil, err
	}
	hhmm, err := ParseClock(clock)
	if err != nil {
		return nil, err
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	items := storage.Get(ctx, s.store, storage.ScheduleKey(d), []ScheduleItem{})

	item := ScheduleItem{ID: s.newID(), Text: t, Time: hhmm}
	items = append(items, item)
	sortSchedule(items)
	if err := storage.Set(ctx, s.store, storage.ScheduleKey(d), items); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) DeleteScheduleItem(ctx context.Context, date, id string) (bool, error) {
	d, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	items := storage.Get(ctx, s.store, storage.ScheduleKey(d), []ScheduleItem{})
	kept, removed := removeByID(items, func(it ScheduleItem) string { return it.ID }, id)
	if !removed {
		return false, nil
	}
	return true, storage.Set(ctx, s.store, storage.ScheduleKey(d), kept)
}

func sortSchedule(items []ScheduleItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Time < items[j].Time })
}
