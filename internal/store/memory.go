package store

import (
	"context"
	"sync"

	"github.com/paystream-demos/advance-app/internal/advance"
)

// MemoryStore keeps loans in process memory. Records are lost on restart;
// it exists for single-container deployments and tests.
type MemoryStore struct {
	mu            sync.RWMutex
	loans         map[string]advance.Loan
	byFingerprint map[string]string
}

// NewMemoryStore returns an empty in-memory loan store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		loans:         make(map[string]advance.Loan),
		byFingerprint: make(map[string]string),
	}
}

func (s *MemoryStore) Create(ctx context.Context, loan advance.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loans[loan.LoanID] = loan
	if loan.Fingerprint != "" {
		s.byFingerprint[loan.Fingerprint] = loan.LoanID
	}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, loanID string) (advance.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loan, ok := s.loans[loanID]
	if !ok {
		return advance.Loan{}, ErrLoanNotFound
	}
	return loan, nil
}

func (s *MemoryStore) GetByFingerprint(ctx context.Context, fingerprint string) (advance.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loanID, ok := s.byFingerprint[fingerprint]
	if !ok {
		return advance.Loan{}, ErrLoanNotFound
	}

	loan, ok := s.loans[loanID]
	if !ok {
		return advance.Loan{}, ErrLoanNotFound
	}
	return loan, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close() {}
