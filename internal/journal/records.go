package journal

import (
	"context"
	"sort"
	"strings"

	"github.com/tunsimp/imhere/internal/storage"
)

// RecordsForDate returns the to-do list, schedule and thought entries for one
// date. Each collection is an independent snapshot; later mutations do not affect it.
func (s *Service) RecordsForDate(ctx context.Context, date string) (DayRecords, error) {
	d, err := ParseDate(date)
	if err != nil {
		return DayRecords{}, err
	}
	todos, err := s.Todos(ctx, d)
	if err != nil {
		return DayRecords{}, err
	}
	schedule, err := s.Schedule(ctx, d)
	if err != nil {
		return DayRecords{}, err
	}
	thoughts, err := s.ThoughtsForDate(ctx, d)
	if err != nil {
		return DayRecords{}, err
	}
	return DayRecords{Date: d, Todos: todos, Schedule: schedule, Thoughts: thoughts}, nil
}

// JournalDates lists every date that has a stored to-do list or schedule, ascending.
func (s *Service) JournalDates(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, prefix := range []string{storage.TodosKey(""), storage.ScheduleKey("")} {
		keys, err := s.store.Keys(ctx, prefix)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			d := strings.TrimPrefix(k, prefix)
			if _, err := ParseDate(d); err != nil || seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out, nil
}
