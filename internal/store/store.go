// Package store persists loan records for the advance API.
//
// Two implementations share the LoanStore interface: an in-process memory
// store (the default) and a PostgreSQL store for deployments where loans must
// survive restarts.
package store

import (
	"context"
	"errors"

	"github.com/paystream-demos/advance-app/internal/advance"
)

// ErrLoanNotFound is returned when no loan exists for the given key.
var ErrLoanNotFound = errors.New("loan not found")

// LoanStore records approved advances and serves them back by ID.
type LoanStore interface {
	// Create stores a new loan record.
	Create(ctx context.Context, loan advance.Loan) error

	// Get returns the loan with the given ID, or ErrLoanNotFound.
	Get(ctx context.Context, loanID string) (advance.Loan, error)

	// GetByFingerprint returns the loan recorded for a request fingerprint,
	// or ErrLoanNotFound. Used to make repeated submissions idempotent.
	GetByFingerprint(ctx context.Context, fingerprint string) (advance.Loan, error)

	// Ping reports whether the store is ready to serve requests.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close()
}
