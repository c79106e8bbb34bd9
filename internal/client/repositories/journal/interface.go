package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Outcome classifies how a dispatched mutation ended.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
	OutcomeInvalid  Outcome = "invalid"
)

type Entry struct {
	ID        uuid.UUID
	Op        string
	Target    string
	Outcome   Outcome
	Message   string
	CreatedAt time.Time
}

// NewEntry stamps a new entry with a fresh id and the current UTC time.
func NewEntry(op, target string, outcome Outcome, message string) Entry {
	return Entry{
		ID:        uuid.New(),
		Op:        op,
		Target:    target,
		Outcome:   outcome,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

// Repository describes journal persistence.
type Repository interface {
	// Append stores one entry.
	Append(ctx context.Context, e Entry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int64, error)

	// DeleteOldest removes the n oldest entries.
	DeleteOldest(ctx context.Context, n int64) error
}
