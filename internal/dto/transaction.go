package dto

import (
	"time"

	"github.com/prog-thiagomartins/finance-control/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a new transaction.
// The server assigns id and timestamps; amount positivity is checked in the
// service since validator tags cannot inspect decimal.Decimal.
type CreateTransactionRequest struct {
	Description     string                 `json:"description" binding:"required,min=3"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	TransactionType domain.TransactionType `json:"transaction_type" binding:"required,oneof=receita despesa"`
	TransactionDate domain.Date            `json:"transaction_date" binding:"required"`
	CategoryName    string                 `json:"category_name,omitempty"`
	CategoryColor   string                 `json:"category_color,omitempty"`
}

// UpdateTransactionRequest defines the data allowed when updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	Description     *string                 `json:"description,omitempty" binding:"omitempty,min=3"`
	Amount          *decimal.Decimal        `json:"amount,omitempty"`
	TransactionType *domain.TransactionType `json:"transaction_type,omitempty" binding:"omitempty,oneof=receita despesa"`
	TransactionDate *domain.Date            `json:"transaction_date,omitempty"`
	CategoryName    *string                 `json:"category_name,omitempty"`
	CategoryColor   *string                 `json:"category_color,omitempty"`
}

// ListTransactionsRequest carries the raw query parameters of the list endpoint.
type ListTransactionsRequest struct {
	TransactionType string `form:"transaction_type" binding:"omitempty,oneof=receita despesa"`
	StartDate       string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate         string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Skip            int    `form:"skip,default=0" binding:"gte=0"`
	Limit           int    `form:"limit,default=100" binding:"gte=1,lte=1000"`
}

// ToFilters converts the bound query parameters into domain filters.
// Date fields are already format-checked by the binding tags.
func (r ListTransactionsRequest) ToFilters() domain.TransactionFilters {
	f := domain.TransactionFilters{
		TransactionType: domain.TransactionType(r.TransactionType),
		Skip:            r.Skip,
		Limit:           r.Limit,
	}
	if r.StartDate != "" {
		if d, err := domain.ParseDate(r.StartDate); err == nil {
			f.StartDate = &d
		}
	}
	if r.EndDate != "" {
		if d, err := domain.ParseDate(r.EndDate); err == nil {
			f.EndDate = &d
		}
	}
	return f
}

// TransactionResponse defines the wire shape of a transaction record.
type TransactionResponse struct {
	ID              int64                  `json:"id"`
	Description     string                 `json:"description"`
	Amount          decimal.Decimal        `json:"amount"`
	TransactionType domain.TransactionType `json:"transaction_type"`
	TransactionDate domain.Date            `json:"transaction_date"`
	CategoryName    string                 `json:"category_name,omitempty"`
	CategoryColor   string                 `json:"category_color,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// ToTransactionResponse converts a domain.Transaction to its wire shape.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		Description:     t.Description,
		Amount:          t.Amount,
		TransactionType: t.TransactionType,
		TransactionDate: t.TransactionDate,
		CategoryName:    t.CategoryName,
		CategoryColor:   t.CategoryColor,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		responses = append(responses, ToTransactionResponse(&txns[i]))
	}
	return responses
}

// ToDomainTransaction converts a wire record back into the domain type.
// Used on the client side where the API response is the canonical record.
func (r TransactionResponse) ToDomainTransaction() domain.Transaction {
	return domain.Transaction{
		ID:              r.ID,
		Description:     r.Description,
		Amount:          r.Amount,
		TransactionType: r.TransactionType,
		TransactionDate: r.TransactionDate,
		CategoryName:    r.CategoryName,
		CategoryColor:   r.CategoryColor,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
