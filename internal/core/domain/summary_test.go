package domain_test

import (
	"testing"
	"time"

	"github.com/prog-thiagomartins/finance-control/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	date := domain.NewDate(2024, time.January, 10)
	txns := []domain.Transaction{
		tx(1, date, domain.Income, "100.00"),
		tx(2, date, domain.Expense, "30.50"),
		tx(3, date, domain.Income, "20.00"),
	}

	got := domain.Summarize(txns)

	assert.True(t, got.TotalIncome.Equal(decimal.RequireFromString("120.00")), "income: %s", got.TotalIncome)
	assert.True(t, got.TotalExpense.Equal(decimal.RequireFromString("30.50")), "expense: %s", got.TotalExpense)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("89.50")), "balance: %s", got.Balance)
}

func TestSummarize_Empty(t *testing.T) {
	got := domain.Summarize(nil)
	assert.True(t, got.TotalIncome.IsZero())
	assert.True(t, got.TotalExpense.IsZero())
	assert.True(t, got.Balance.IsZero())
}

func TestSummarize_ExactCentSums(t *testing.T) {
	// Many cent-sized entries must sum without floating drift.
	date := domain.NewDate(2024, time.June, 1)
	var txns []domain.Transaction
	for i := int64(1); i <= 1000; i++ {
		txns = append(txns, tx(i, date, domain.Income, "0.01"))
	}
	got := domain.Summarize(txns)
	assert.True(t, got.TotalIncome.Equal(decimal.RequireFromString("10.00")), "income: %s", got.TotalIncome)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("10.00")))
}
