package services

import (
	"context"

	"github.com/prog-thiagomartins/finance-control/internal/core/domain"
	"github.com/prog-thiagomartins/finance-control/internal/dto"
)

// TransactionSvcFacade exposes the transaction operations consumed by the handlers.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filters domain.TransactionFilters) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}
