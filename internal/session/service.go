package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/flexo-savings/internal/savings"
	"go.uber.org/zap"
)

// Outcome describes what applying one panel did to a session.
type Outcome struct {
	Category savings.Category
	// Result is nil when the panel was skipped.
	Result        savings.Result
	Skipped       bool
	MissingFields []string
	Total         float64
}

// Service runs calculators against stored sessions. Mutations of one session are
// serialized; different sessions proceed independently.
type Service struct {
	logger *zap.Logger
	store  Store
	locks  *keyedMutex
	now    func() time.Time
}

// NewService constructs a Service on top of store.
func NewService(logger *zap.Logger, store Store) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger: logger,
		store:  store,
		locks:  newKeyedMutex(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create starts a session with an empty ledger.
func (s *Service) Create(ctx context.Context, name string) (*Session, error) {
	now := s.now()
	created := &Session{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Ledger:    savings.NewLedger(),
		Results:   make(map[savings.Category]savings.Result),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if created.Name == "" {
		created.Name = "session " + created.ID[:8]
	}

	if err := s.store.Save(ctx, created); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("session created",
		zap.String("op", "session.Create"),
		zap.String("session", created.ID),
		zap.String("name", created.Name),
	)
	return created, nil
}

// Get returns the session with id or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(ctx, id)
}

// List returns all sessions.
func (s *Service) List(ctx context.Context) ([]*Session, error) {
	return s.store.List(ctx)
}

// Delete removes the session with id.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("session deleted",
		zap.String("op", "session.Delete"),
		zap.String("session", id),
	)
	return nil
}

// Apply runs the calculator for in against the session's ledger. Incomplete input
// leaves the stored session untouched and is reported in the Outcome rather than
// as an error.
func (s *Service) Apply(ctx context.Context, id string, in savings.Input) (Outcome, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{Category: in.Category()}
	result, err := current.Ledger.Apply(in)
	var incomplete *savings.IncompleteInputError
	switch {
	case errors.As(err, &incomplete):
		s.logger.Debug("panel skipped",
			zap.String("op", "session.Apply"),
			zap.String("session", id),
			zap.Stringer("category", incomplete.Category),
			zap.Strings("fields", incomplete.Fields),
		)
		outcome.Skipped = true
		outcome.MissingFields = incomplete.Fields
		outcome.Total = current.Total()
		return outcome, nil
	case err != nil:
		return Outcome{}, err
	}

	current.Results[in.Category()] = result
	current.UpdatedAt = s.now()
	if err := s.store.Save(ctx, current); err != nil {
		return Outcome{}, fmt.Errorf("save session: %w", err)
	}

	outcome.Result = result
	outcome.Total = current.Total()
	s.logger.Debug("panel applied",
		zap.String("op", "session.Apply"),
		zap.String("session", id),
		zap.Stringer("category", in.Category()),
		zap.Float64("savings", result.AnnualSavings()),
		zap.Float64("total", outcome.Total),
	)
	return outcome, nil
}
