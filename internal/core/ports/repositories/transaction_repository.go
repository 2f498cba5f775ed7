package repositories

import (
	"context"

	"github.com/prog-thiagomartins/finance-control/internal/core/domain"
)

// TransactionRepository defines persistence operations for transactions.
type TransactionRepository interface {
	// SaveTransaction inserts a new transaction and returns the canonical
	// record with the database-assigned id and timestamps.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// FindTransactionByID returns the transaction or apperrors.ErrNotFound.
	FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error)

	// ListTransactions returns transactions matching the filters, ordered by
	// transaction_date descending with id descending as tie-breaker.
	ListTransactions(ctx context.Context, filters domain.TransactionFilters) ([]domain.Transaction, error)

	// UpdateTransaction persists the full record and returns the canonical
	// version with the refreshed updated_at, or apperrors.ErrNotFound.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// DeleteTransaction removes the record or returns apperrors.ErrNotFound.
	DeleteTransaction(ctx context.Context, id int64) error
}
