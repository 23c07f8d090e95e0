package journal

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tunsimp/imhere/internal/storage"
)

func (s *Service) Todos(ctx context.Context, date string) ([]TodoItem, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	return storage.Get(ctx, s.store, storage.TodosKey(d), []TodoItem{}), nil
}

func (s *Service) AddTodo(ctx context.Context, date, text string) (*TodoItem, error) {
	t, err := normalizeText("text", text)
	if err != nil {
		return nil, err
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	todos := storage.Get(ctx, s.store, storage.TodosKey(d), []TodoItem{})

	item := TodoItem{ID: s.newID(), Text: t}
	todos = append(todos, item)
	if err := storage.Set(ctx, s.store, storage.TodosKey(d), todos); err != nil {
		return nil, err
	}
	s.log.Debug("todo added", zap.String("date", d), zap.String("id", item.ID))
	return &item, nil
}

// ToggleTodo flips the completed flag and returns the updated item.
func (s *Service) ToggleTodo(ctx context.Context, date, id string) (*TodoItem, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	todos := storage.Get(ctx, s.store, storage.TodosKey(d), []TodoItem{})
	for i := range todos {
		if todos[i].ID != id {
			continue
		}
		todos[i].Completed = !todos[i].Completed
		if err := storage.Set(ctx, s.store, storage.TodosKey(d), todos); err != nil {
			return nil, err
		}
		out := todos[i]
		return &out, nil
	}
	return nil, fmt.Errorf("todo %s: %w", id, ErrNotFound)
}

// DeleteTodo removes a todo permanently. It reports false and writes nothing
// when the id is unknown.
func (s *Service) DeleteTodo(ctx context.Context, date, id string) (bool, error) {
	d, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	todos := storage.Get(ctx, s.store, storage.TodosKey(d), []TodoItem{})
	kept, removed := removeByID(todos, func(t TodoItem) string { return t.ID }, id)
	if !removed {
		return false, nil
	}
	return true, storage.Set(ctx, s.store, storage.TodosKey(d), kept)
}

func removeByID[T any](items []T, idOf func(T) string, id string) ([]T, bool) {
	out := make([]T, 0, len(items))
	removed := false
	for _, it := range items {
		if idOf(it) == id {
			removed = true
			continue
		}
		out = append(out, it)
	}
	return out, removed
}
