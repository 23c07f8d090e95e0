package journal

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tunsimp/imhere/internal/storage"
)

// Service owns every journal record. All reads and writes go through the
// persistence Store, so each mutation is written through immediately.
type Service struct {
	store *storage.Store
	now   func() time.Time
	newID func() string
	log   *zap.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(store *storage.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("component", "journal"))
	return s
}

func (s *Service) Store() *storage.Store { return s.store }

// Today is the current local date according to the service clock.
func (s *Service) Today() string { return Today(s.now()) }

func normalizeText(field, text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", ValidationError{Field: field, Reason: "required"}
	}
	return t, nil
}
