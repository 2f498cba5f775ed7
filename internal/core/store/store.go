// Package store holds the client-side transaction collection: the ordered
// in-memory snapshot, its reconciliation rules on create/update/delete, the
// month-based filtered view and the derived totals.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/prog-thiagomartins/finance-control/internal/apperrors"
	"github.com/prog-thiagomartins/finance-control/internal/core/domain"
	"github.com/prog-thiagomartins/finance-control/internal/dto"
)

// Failure sentinels, one per intent. Each wraps the underlying transport
// error. When one is returned the collection is exactly as it was before the
// attempt; the caller retries by reissuing the intent.
var (
	ErrLoadFailed   = errors.New("failed to load transactions")
	ErrCreateFailed = errors.New("failed to create transaction")
	ErrUpdateFailed = errors.New("failed to update transaction")
	ErrDeleteFailed = errors.New("failed to delete transaction")
)

// Gateway is the remote API surface the store depends on. The API service is
// authoritative: records returned from it are canonical and replace local state.
type Gateway interface {
	ListTransactions(ctx context.Context, filters domain.TransactionFilters) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// TransactionStore maintains the collection ordered by descending
// transaction_date, ties broken by descending id. The ordering holds after
// every mutation; month filtering and totals are derived views and never
// stored redundantly.
type TransactionStore struct {
	gateway Gateway

	// intentMu serializes mutating intents across their whole network round
	// trip, so an in-flight create/update/delete can never interleave with
	// another and resurrect deleted records or break the sort order.
	intentMu sync.Mutex

	// mu guards the published snapshot. Mutations compute a fresh slice and
	// publish it atomically; readers never observe a partial update.
	mu           sync.RWMutex
	transactions []domain.Transaction
	loading      bool
	period       domain.Period
}

// New creates a store bound to the given gateway, with the selected period
// defaulting to the current month.
func New(gateway Gateway) *TransactionStore {
	return &TransactionStore{
		gateway: gateway,
		period:  domain.CurrentPeriod(),
	}
}

// Load fetches the full transaction collection, replacing local state.
// On failure the previous collection is kept; only the loading flag resets.
func (s *TransactionStore) Load(ctx context.Context) error {
	s.intentMu.Lock()
	defer s.intentMu.Unlock()

	s.setLoading(true)
	defer s.setLoading(false)

	txns, err := s.gateway.ListTransactions(ctx, domain.TransactionFilters{})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	// The server already orders by (date, id) descending, but the ordering is
	// this store's invariant, so it is enforced locally as well.
	sorted := slices.Clone(txns)
	slices.SortStableFunc(sorted, domain.CompareTransactions)

	s.mu.Lock()
	s.transactions = sorted
	s.mu.Unlock()
	return nil
}

// Create sends the draft to the API and inserts the returned canonical record.
// There is no optimistic insert: nothing changes until the round trip succeeds.
func (s *TransactionStore) Create(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	s.intentMu.Lock()
	defer s.intentMu.Unlock()

	created, err := s.gateway.CreateTransaction(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}

	s.mu.Lock()
	// Append then re-sort the whole collection. At this scale a full re-sort
	// is correctness-equivalent to a positional insert and much simpler.
	next := append(slices.Clone(s.transactions), *created)
	slices.SortStableFunc(next, domain.CompareTransactions)
	s.transactions = next
	s.mu.Unlock()
	return created, nil
}

// Update replaces the record matching id with the canonical record returned
// by the API, then re-sorts since the edit may have moved its date. Updating
// an id absent from the collection fails with apperrors.ErrNotFound before
// any network round trip.
func (s *TransactionStore) Update(ctx context.Context, id int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	s.intentMu.Lock()
	defer s.intentMu.Unlock()

	if !s.contains(id) {
		return nil, fmt.Errorf("transaction %d: %w", id, apperrors.ErrNotFound)
	}

	updated, err := s.gateway.UpdateTransaction(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	s.mu.Lock()
	next := slices.Clone(s.transactions)
	for i := range next {
		if next[i].ID == id {
			next[i] = *updated
			break
		}
	}
	slices.SortStableFunc(next, domain.CompareTransactions)
	s.transactions = next
	s.mu.Unlock()
	return updated, nil
}

// Remove deletes the record by id. Removal preserves the relative order of
// the remainder, so no re-sort is needed. User confirmation happens at the
// presentation layer before this is called.
func (s *TransactionStore) Remove(ctx context.Context, id int64) error {
	s.intentMu.Lock()
	defer s.intentMu.Unlock()

	if err := s.gateway.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	s.mu.Lock()
	s.transactions = slices.DeleteFunc(slices.Clone(s.transactions), func(t domain.Transaction) bool {
		return t.ID == id
	})
	s.mu.Unlock()
	return nil
}

// SetPeriod selects the year-month used by FilteredView. Pure state update, no I/O.
func (s *TransactionStore) SetPeriod(p domain.Period) {
	s.mu.Lock()
	s.period = p
	s.mu.Unlock()
}

// Period returns the currently selected period.
func (s *TransactionStore) Period() domain.Period {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.period
}

// Loading reports whether a Load round trip is in flight.
func (s *TransactionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Snapshot returns a copy of the full ordered collection.
func (s *TransactionStore) Snapshot() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.transactions)
}

// FilteredView returns the subsequence of the collection whose date falls in
// the selected period. It is recomputed on every call so it can never desync
// from the source collection; the collection itself is never mutated.
func (s *TransactionStore) FilteredView() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := make([]domain.Transaction, 0)
	for _, t := range s.transactions {
		if s.period.Contains(t.TransactionDate) {
			view = append(view, t)
		}
	}
	return view
}

// Summary computes the aggregates over the current filtered view.
func (s *TransactionStore) Summary() domain.Summary {
	return domain.Summarize(s.FilteredView())
}

func (s *TransactionStore) contains(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.transactions, func(t domain.Transaction) bool {
		return t.ID == id
	})
}

func (s *TransactionStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
