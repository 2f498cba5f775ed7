package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction as income or expense.
// The wire labels follow the original API ("receita"/"despesa").
type TransactionType string

const (
	Income  TransactionType = "receita"
	Expense TransactionType = "despesa"
)

// IsValid reports whether the type is one of the known labels.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Transaction is a single dated income or expense record. Amounts are exact
// decimals and never pass through float64.
type Transaction struct {
	ID              int64           `json:"id"`               // Primary Key, assigned by the API service
	Description     string          `json:"description"`      // Not Null; min length 3 enforced at the input boundary
	Amount          decimal.Decimal `json:"amount"`           // Positive value; precise decimal type
	TransactionType TransactionType `json:"transaction_type"` // receita or despesa (Not Null)
	TransactionDate Date            `json:"transaction_date"` // Calendar date, no time component
	CategoryName    string          `json:"category_name,omitempty"`  // Presentation-only annotation
	CategoryColor   string          `json:"category_color,omitempty"` // Presentation-only annotation
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CompareTransactions orders transactions most recent date first, ties broken
// by descending ID. IDs are unique, so this is a total order.
func CompareTransactions(a, b Transaction) int {
	if c := b.TransactionDate.Time.Compare(a.TransactionDate.Time); c != 0 {
		return c
	}
	switch {
	case a.ID > b.ID:
		return -1
	case a.ID < b.ID:
		return 1
	}
	return 0
}
