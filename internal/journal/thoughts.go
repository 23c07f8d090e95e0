package journal

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tunsimp/imhere/internal/storage"
)

type ThoughtInput struct {
	Date      string // defaults to today
	Thought   string
	Emotion   string
	Intensity int
	Evidence  string
}

// Thoughts returns the whole thought log, most recent first.
func (s *Service) Thoughts(ctx context.Context) []ThoughtEntry {
	return storage.Get(ctx, s.store, storage.ThoughtLogKey, []ThoughtEntry{})
}

// ThoughtsForDate filters the log by exact date string, keeping log order.
func (s *Service) ThoughtsForDate(ctx context.Context, date string) ([]ThoughtEntry, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	var out []ThoughtEntry
	for _, e := range s.Thoughts(ctx) {
		if e.Date == d {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Service) AddThought(ctx context.Context, in ThoughtInput) (*ThoughtEntry, error) {
	thought, err := normalizeText("thought", in.Thought)
	if err != nil {
		return nil, err
	}
	emotion, err := normalizeText("emotion", in.Emotion)
	if err != nil {
		return nil, err
	}
	if err := checkIntensity(in.Intensity); err != nil {
		return nil, err
	}
	now := s.now()
	date := Today(now)
	if strings.TrimSpace(in.Date) != "" {
		if date, err = ParseDate(in.Date); err != nil {
			return nil, err
		}
	}

	entry := ThoughtEntry{
		ID:        s.newID(),
		Thought:   thought,
		Emotion:   emotion,
		Intensity: in.Intensity,
		Evidence:  strings.TrimSpace(in.Evidence),
		Date:      date,
		Time:      ClockOf(now),
	}
	entries := append(s.Thoughts(ctx), entry)
	sortThoughts(entries)
	if err := storage.Set(ctx, s.store, storage.ThoughtLogKey, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateEvidence replaces the evidence text of an existing entry.
func (s *Service) UpdateEvidence(ctx context.Context, id, evidence string) (*ThoughtEntry, error) {
	entries := s.Thoughts(ctx)
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		entries[i].Evidence = strings.TrimSpace(evidence)
		if err := storage.Set(ctx, s.store, storage.ThoughtLogKey, entries); err != nil {
			return nil, err
		}
		out := entries[i]
		return &out, nil
	}
	return nil, fmt.Errorf("thought %s: %w", id, ErrNotFound)
}

func (s *Service) DeleteThought(ctx context.Context, id string) (bool, error) {
	kept, removed := removeByID(s.Thoughts(ctx), func(e ThoughtEntry) string { return e.ID }, id)
	if !removed {
		return false, nil
	}
	return true, storage.Set(ctx, s.store, storage.ThoughtLogKey, kept)
}

func sortThoughts(entries []ThoughtEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].Time > entries[j].Time
	})
}
