package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prog-thiagomartins/finance-control/internal/apperrors"
	"github.com/prog-thiagomartins/finance-control/internal/core/domain"
	portsrepo "github.com/prog-thiagomartins/finance-control/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultListLimit matches the API default when no limit is requested.
const defaultListLimit = 100

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new repository for transaction data.
func NewTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepository
var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

// nullString maps an optional column to its storage representation.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// SaveTransaction inserts a new transaction; the database assigns id and timestamps.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (description, amount, transaction_type, transaction_date, category_name, category_color)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at;
	`
	err := r.pool.QueryRow(ctx, query,
		txn.Description,
		txn.Amount,
		string(txn.TransactionType),
		txn.TransactionDate.Time,
		nullString(txn.CategoryName),
		nullString(txn.CategoryColor),
	).Scan(&txn.ID, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	return &txn, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `
		SELECT id, description, amount, transaction_type, transaction_date, category_name, category_color, created_at, updated_at
		FROM transactions
		WHERE id = $1;
	`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", id, err)
	}
	return txn, nil
}

// ListTransactions returns transactions matching the filters, most recent
// date first with descending id as tie-breaker.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filters domain.TransactionFilters) ([]domain.Transaction, error) {
	var (
		conds []string
		args  []any
	)
	if filters.TransactionType != "" {
		args = append(args, string(filters.TransactionType))
		conds = append(conds, fmt.Sprintf("transaction_type = $%d", len(args)))
	}
	if filters.StartDate != nil {
		args = append(args, filters.StartDate.Time)
		conds = append(conds, fmt.Sprintf("transaction_date >= $%d", len(args)))
	}
	if filters.EndDate != nil {
		args = append(args, filters.EndDate.Time)
		conds = append(conds, fmt.Sprintf("transaction_date <= $%d", len(args)))
	}

	query := `
		SELECT id, description, amount, transaction_type, transaction_date, category_name, category_color, created_at, updated_at
		FROM transactions`
	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf("\n\t\tORDER BY transaction_date DESC, id DESC\n\t\tLIMIT $%d", len(args))
	args = append(args, filters.Skip)
	query += fmt.Sprintf(" OFFSET $%d;", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transaction rows: %w", err)
	}
	return txns, nil
}

// UpdateTransaction persists the full record and refreshes updated_at.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET description = $2, amount = $3, transaction_type = $4, transaction_date = $5, category_name = $6, category_color = $7, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at;
	`
	err := r.pool.QueryRow(ctx, query,
		txn.ID,
		txn.Description,
		txn.Amount,
		string(txn.TransactionType),
		txn.TransactionDate.Time,
		nullString(txn.CategoryName),
		nullString(txn.CategoryColor),
	).Scan(&txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %d: %w", txn.ID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update transaction %d: %w", txn.ID, err)
	}
	return &txn, nil
}

// DeleteTransaction removes a transaction by ID.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// scanTransaction reads one row in column order into the domain type.
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn           domain.Transaction
		txnType       string
		txnDate       time.Time
		categoryName  sql.NullString
		categoryColor sql.NullString
	)
	err := row.Scan(
		&txn.ID,
		&txn.Description,
		&txn.Amount,
		&txnType,
		&txnDate,
		&categoryName,
		&categoryColor,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	txn.TransactionType = domain.TransactionType(txnType)
	txn.TransactionDate = domain.DateOf(txnDate)
	txn.CategoryName = categoryName.String
	txn.CategoryColor = categoryColor.String
	return &txn, nil
}
