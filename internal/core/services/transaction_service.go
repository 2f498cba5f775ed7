package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prog-thiagomartins/finance-control/internal/apperrors"
	"github.com/prog-thiagomartins/finance-control/internal/core/domain"
	portsrepo "github.com/prog-thiagomartins/finance-control/internal/core/ports/repositories"
	portssvc "github.com/prog-thiagomartins/finance-control/internal/core/ports/services"
	"github.com/prog-thiagomartins/finance-control/internal/dto"
	"github.com/shopspring/decimal"
)

// minDescriptionLen is enforced after trimming surrounding whitespace.
const minDescriptionLen = 3

// transactionServiceImpl implements the TransactionSvcFacade interface
type transactionServiceImpl struct {
	BaseService
	transactionRepo portsrepo.TransactionRepository
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(repo portsrepo.TransactionRepository) portssvc.TransactionSvcFacade {
	return &transactionServiceImpl{transactionRepo: repo}
}

// Ensure transactionServiceImpl implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionServiceImpl)(nil)

func (s *transactionServiceImpl) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	description := strings.TrimSpace(req.Description)
	if err := validateFields(description, req.Amount, req.TransactionType, req.TransactionDate); err != nil {
		s.LogError(ctx, err, "Invalid transaction draft")
		return nil, err
	}

	txn := domain.Transaction{
		Description:     description,
		Amount:          req.Amount,
		TransactionType: req.TransactionType,
		TransactionDate: req.TransactionDate,
		CategoryName:    req.CategoryName,
		CategoryColor:   req.CategoryColor,
	}

	saved, err := s.transactionRepo.SaveTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction")
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created", slog.Int64("transaction_id", saved.ID))
	return saved, nil
}

func (s *transactionServiceImpl) GetTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to find transaction", slog.Int64("transaction_id", id))
		return nil, err
	}
	return txn, nil
}

func (s *transactionServiceImpl) ListTransactions(ctx context.Context, filters domain.TransactionFilters) ([]domain.Transaction, error) {
	txns, err := s.transactionRepo.ListTransactions(ctx, filters)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (s *transactionServiceImpl) UpdateTransaction(ctx context.Context, id int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	existing, err := s.transactionRepo.FindTransactionByID(ctx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to find transaction for update", slog.Int64("transaction_id", id))
		return nil, err
	}

	// Partial update: only the fields present in the request are replaced.
	if req.Description != nil {
		existing.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		existing.Amount = *req.Amount
	}
	if req.TransactionType != nil {
		existing.TransactionType = *req.TransactionType
	}
	if req.TransactionDate != nil {
		existing.TransactionDate = *req.TransactionDate
	}
	if req.CategoryName != nil {
		existing.CategoryName = *req.CategoryName
	}
	if req.CategoryColor != nil {
		existing.CategoryColor = *req.CategoryColor
	}

	if err := validateFields(existing.Description, existing.Amount, existing.TransactionType, existing.TransactionDate); err != nil {
		s.LogError(ctx, err, "Invalid transaction after update merge", slog.Int64("transaction_id", id))
		return nil, err
	}

	updated, err := s.transactionRepo.UpdateTransaction(ctx, *existing)
	if err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.Int64("transaction_id", id))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction updated", slog.Int64("transaction_id", id))
	return updated, nil
}

func (s *transactionServiceImpl) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.transactionRepo.DeleteTransaction(ctx, id); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.Int64("transaction_id", id))
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.Int64("transaction_id", id))
	return nil
}

// validateFields checks the invariants the schema promises: non-trivial
// description, strictly positive amount, known type, and a set date.
func validateFields(description string, amount decimal.Decimal, txnType domain.TransactionType, date domain.Date) error {
	if len(description) < minDescriptionLen {
		return fmt.Errorf("description must have at least %d characters: %w", minDescriptionLen, apperrors.ErrValidation)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}
	if !txnType.IsValid() {
		return fmt.Errorf("transaction type must be %q or %q: %w", domain.Income, domain.Expense, apperrors.ErrValidation)
	}
	if date.IsZero() {
		return fmt.Errorf("transaction date is required: %w", apperrors.ErrValidation)
	}
	return nil
}
