// Package session keeps named savings ledgers that are filled in one panel at a time.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/iwvelando/flexo-savings/internal/savings"
)

// ErrNotFound is returned when no session has the requested id.
var ErrNotFound = errors.New("session not found")

// Session owns one ledger and the latest result of each calculator applied to it.
type Session struct {
	ID        string
	Name      string
	Ledger    *savings.Ledger
	Results   map[savings.Category]savings.Result
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Total returns the session's total annual savings.
func (s *Session) Total() float64 {
	return savings.Total(s.Ledger)
}

// Clone returns a copy that shares no mutable state with s.
func (s *Session) Clone() *Session {
	c := *s
	if s.Ledger != nil {
		c.Ledger = s.Ledger.Clone()
	} else {
		c.Ledger = savings.NewLedger()
	}
	c.Results = make(map[savings.Category]savings.Result, len(s.Results))
	for category, result := range s.Results {
		c.Results[category] = result
	}
	return &c
}

// Store persists sessions. Implementations return copies, never shared values.
type Store interface {
	// Save inserts or replaces the session with s.ID.
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// List returns every session ordered by creation time.
	List(ctx context.Context) ([]*Session, error)
}
