package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/paystream-demos/advance-app/internal/advance"
)

func testLoan(fingerprint string) advance.Loan {
	return advance.Loan{
		LoanID:        uuid.NewString(),
		AdvanceAmount: 500,
		Fee:           25,
		Timestamp:     "2025-06-01T12:00:00Z",
		GrossSalary:   6000,
		PayFrequency:  "Monthly",
		Fingerprint:   fingerprint,
	}
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	req := require.New(t)
	s := NewMemoryStore()
	ctx := context.Background()

	loan := testLoan("fp-1")
	req.NoError(s.Create(ctx, loan))

	got, err := s.Get(ctx, loan.LoanID)
	req.NoError(err)
	req.Equal(loan, got)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	req := require.New(t)
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), uuid.NewString())
	req.ErrorIs(err, ErrLoanNotFound)
}

func TestMemoryStoreGetByFingerprint(t *testing.T) {
	req := require.New(t)
	s := NewMemoryStore()
	ctx := context.Background()

	loan := testLoan("fp-2")
	req.NoError(s.Create(ctx, loan))

	got, err := s.GetByFingerprint(ctx, "fp-2")
	req.NoError(err)
	req.Equal(loan.LoanID, got.LoanID)

	_, err = s.GetByFingerprint(ctx, "fp-unknown")
	req.ErrorIs(err, ErrLoanNotFound)
}

func TestMemoryStoreEmptyFingerprintNotIndexed(t *testing.T) {
	req := require.New(t)
	s := NewMemoryStore()
	ctx := context.Background()

	loan := testLoan("")
	req.NoError(s.Create(ctx, loan))

	_, err := s.GetByFingerprint(ctx, "")
	req.ErrorIs(err, ErrLoanNotFound)
}

func TestMemoryStorePing(t *testing.T) {
	require.NoError(t, NewMemoryStore().Ping(context.Background()))
}
