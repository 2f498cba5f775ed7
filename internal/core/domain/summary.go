package domain

import "github.com/shopspring/decimal"

// Summary holds the derived totals for a set of transactions.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// Summarize computes income and expense totals and their balance over the
// given transactions. Summation is exact decimal arithmetic; there is no
// floating point anywhere on this path.
func Summarize(txns []Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range txns {
		switch t.TransactionType {
		case Income:
			income = income.Add(t.Amount)
		case Expense:
			expense = expense.Add(t.Amount)
		}
	}
	return Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}
}
