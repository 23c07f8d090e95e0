package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Policy decides what a failed storage operation means to the caller.
type Policy int

const (
	// FailOpen logs failures and lets the caller continue: reads return the
	// default value and writes report success.
	FailOpen Policy = iota
	// FailClosed still falls back to defaults on reads but returns write and
	// remove errors to the caller.
	FailClosed
)

func (p Policy) String() string {
	switch p {
	case FailClosed:
		return "fail-closed"
	default:
		return "fail-open"
	}
}

func ParsePolicy(input string) (Policy, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "", "fail-open", "failopen", "open":
		return FailOpen, nil
	case "fail-closed", "failclosed", "closed":
		return FailClosed, nil
	default:
		return FailOpen, fmt.Errorf("invalid resilience policy: %q", input)
	}
}

// Store is the persistence service every journal feature goes through.
// Values are JSON documents stored under string keys.
type Store struct {
	backend Backend
	policy  Policy
	log     *zap.Logger
}

type Option func(*Store)

func WithPolicy(p Policy) Option {
	return func(s *Store) { s.policy = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func NewStore(b Backend, opts ...Option) *Store {
	s := &Store{backend: b, policy: FailOpen, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("component", "storage"))
	return s
}

func (s *Store) Policy() Policy { return s.policy }

// Get returns the value stored under key, or def when the key is absent, the
// stored document does not decode, or the backend fails. It never returns an error.
func Get[T any](ctx context.Context, s *Store, key string, def T) T {
	raw, ok, err := s.backend.Load(ctx, key)
	if err != nil {
		s.readFailed(key, err)
		return def
	}
	if !ok || len(raw) == 0 {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.readFailed(key, fmt.Errorf("decode: %w", err))
		return def
	}
	return v
}

// Set encodes v as JSON and stores it under key. Under FailOpen the error is
// logged and nil is returned.
func Set[T any](ctx context.Context, s *Store, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return s.writeFailed("set", key, fmt.Errorf("encode: %w", err))
	}
	if err := s.backend.Save(ctx, key, data); err != nil {
		return s.writeFailed("set", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, key); err != nil {
		return s.writeFailed("remove", key, err)
	}
	return nil
}

// Keys lists stored keys that start with prefix, in ascending order.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.backend.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// Snapshot returns every stored document keyed by storage key. Unlike Get it
// reports backend errors, since a partial snapshot would be silently incomplete.
func (s *Store) Snapshot(ctx context.Context) (map[string]json.RawMessage, error) {
	keys, err := s.Keys(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		raw, ok, err := s.backend.Load(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("snapshot %q: %w", k, err)
		}
		if !ok {
			continue
		}
		if !json.Valid(raw) {
			s.log.Warn("skipping corrupt document", zap.String("key", k))
			continue
		}
		out[k] = json.RawMessage(raw)
	}
	return out, nil
}

// Restore writes every document in docs, overwriting existing keys. Either
// all documents are stored or none are.
func (s *Store) Restore(ctx context.Context, docs map[string]json.RawMessage) error {
	entries := make(map[string][]byte, len(docs))
	for k, raw := range docs {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("restore: empty key")
		}
		if !json.Valid(raw) {
			return fmt.Errorf("restore %q: invalid json", k)
		}
		entries[k] = raw
	}
	if err := s.backend.SaveAll(ctx, entries); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}

func (s *Store) readFailed(key string, err error) {
	fields := []zap.Field{zap.String("op", "get"), zap.String("key", key), zap.Error(err)}
	if s.policy == FailClosed {
		s.log.Error("storage read failed, using default", fields...)
		return
	}
	s.log.Warn("storage read failed, using default", fields...)
}

func (s *Store) writeFailed(op, key string, err error) error {
	fields := []zap.Field{zap.String("op", op), zap.String("key", key), zap.Error(err)}
	if s.policy == FailClosed {
		s.log.Error("storage write failed", fields...)
		return fmt.Errorf("storage %s %q: %w", op, key, err)
	}
	s.log.Warn("storage write failed, continuing", fields...)
	return nil
}
