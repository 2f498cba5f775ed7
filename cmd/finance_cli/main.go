package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/prog-thiagomartins/finance-control/internal/client/httpapi"
	"github.com/prog-thiagomartins/finance-control/internal/core/domain"
	"github.com/prog-thiagomartins/finance-control/internal/core/store"
	"github.com/prog-thiagomartins/finance-control/internal/dto"
	"github.com/prog-thiagomartins/finance-control/pkg/config"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	actionAdd     = "add"
	actionEdit    = "edit"
	actionDelete  = "delete"
	actionPeriod  = "period"
	actionRefresh = "refresh"
	actionQuit    = "quit"
)

var validate = validator.New()

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	client := httpapi.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	txnStore := store.New(client)

	ctx := context.Background()
	if err := txnStore.Load(ctx); err != nil {
		logger.Fatal("failed to load transactions", "error", err)
	}

	for {
		render(txnStore)

		var action string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("What next?").
				Options(
					huh.NewOption("Add transaction", actionAdd),
					huh.NewOption("Edit transaction", actionEdit),
					huh.NewOption("Delete transaction", actionDelete),
					huh.NewOption("Change month", actionPeriod),
					huh.NewOption("Refresh", actionRefresh),
					huh.NewOption("Quit", actionQuit),
				).
				Value(&action),
		))
		if err := form.Run(); err != nil {
			logger.Fatal("prompt failed", "error", err)
		}

		switch action {
		case actionAdd:
			err = addTransaction(ctx, txnStore)
		case actionEdit:
			err = editTransaction(ctx, txnStore)
		case actionDelete:
			err = deleteTransaction(ctx, txnStore)
		case actionPeriod:
			err = changePeriod(txnStore)
		case actionRefresh:
			err = txnStore.Load(ctx)
		case actionQuit:
			return
		}
		if err != nil {
			logger.Error("operation failed", "error", err)
		}
	}
}

// render prints the transactions of the selected month followed by its totals.
func render(txnStore *store.TransactionStore) {
	period := txnStore.Period()
	view := txnStore.FilteredView()
	summary := txnStore.Summary()

	fmt.Printf("\n== Transactions for %s ==\n", period)
	if len(view) == 0 {
		fmt.Println("(no transactions this month)")
	}
	for _, txn := range view {
		sign := "+"
		if txn.TransactionType == domain.Expense {
			sign = "-"
		}
		fmt.Printf("  #%-5d %s  %s%10s  %s\n",
			txn.ID, txn.TransactionDate, sign, txn.Amount.StringFixed(2), txn.Description)
	}
	fmt.Printf("\nIncome: %s  Expense: %s  Balance: %s\n\n",
		summary.TotalIncome.StringFixed(2),
		summary.TotalExpense.StringFixed(2),
		summary.Balance.StringFixed(2))
}

func addTransaction(ctx context.Context, txnStore *store.TransactionStore) error {
	draft, ok, err := transactionForm("New transaction", dto.CreateTransactionRequest{
		TransactionType: domain.Expense,
		TransactionDate: txnStore.Period().FirstDay(),
	})
	if err != nil || !ok {
		return err
	}
	_, err = txnStore.Create(ctx, draft)
	return err
}

func editTransaction(ctx context.Context, txnStore *store.TransactionStore) error {
	txn, ok, err := pickTransaction(txnStore, "Which transaction to edit?")
	if err != nil || !ok {
		return err
	}

	draft, ok, err := transactionForm("Edit transaction", dto.CreateTransactionRequest{
		Description:     txn.Description,
		Amount:          txn.Amount,
		TransactionType: txn.TransactionType,
		TransactionDate: txn.TransactionDate,
		CategoryName:    txn.CategoryName,
	})
	if err != nil || !ok {
		return err
	}

	req := dto.UpdateTransactionRequest{
		Description:     &draft.Description,
		Amount:          &draft.Amount,
		TransactionType: &draft.TransactionType,
		TransactionDate: &draft.TransactionDate,
		CategoryName:    &draft.CategoryName,
	}
	_, err = txnStore.Update(ctx, txn.ID, req)
	return err
}

func deleteTransaction(ctx context.Context, txnStore *store.TransactionStore) error {
	txn, ok, err := pickTransaction(txnStore, "Which transaction to delete?")
	if err != nil || !ok {
		return err
	}

	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete #%d %q (%s)?", txn.ID, txn.Description, txn.Amount.StringFixed(2))).
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return err
	}
	if !confirmed {
		return nil
	}
	return txnStore.Remove(ctx, txn.ID)
}

func changePeriod(txnStore *store.TransactionStore) error {
	current := txnStore.Period().String()
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Month (YYYY-MM)").
			Value(&current).
			Validate(func(s string) error {
				_, err := domain.ParsePeriod(strings.TrimSpace(s))
				return err
			}),
	))
	if err := form.Run(); err != nil {
		return err
	}
	period, err := domain.ParsePeriod(strings.TrimSpace(current))
	if err != nil {
		return err
	}
	txnStore.SetPeriod(period)
	return nil
}

// pickTransaction lets the user choose one of the currently visible
// transactions. The ok result is false when there is nothing to pick.
func pickTransaction(txnStore *store.TransactionStore, title string) (domain.Transaction, bool, error) {
	view := txnStore.FilteredView()
	if len(view) == 0 {
		fmt.Println("No transactions this month.")
		return domain.Transaction{}, false, nil
	}

	options := make([]huh.Option[int64], 0, len(view))
	byID := make(map[int64]domain.Transaction, len(view))
	for _, txn := range view {
		label := fmt.Sprintf("#%d %s %s %s", txn.ID, txn.TransactionDate, txn.Amount.StringFixed(2), txn.Description)
		options = append(options, huh.NewOption(label, txn.ID))
		byID[txn.ID] = txn
	}

	var id int64
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int64]().Title(title).Options(options...).Value(&id),
	))
	if err := form.Run(); err != nil {
		return domain.Transaction{}, false, err
	}
	return byID[id], true, nil
}

// transactionForm collects the fields of a transaction, seeded from initial.
// The ok result is false when the user leaves the form without confirming.
func transactionForm(title string, initial dto.CreateTransactionRequest) (dto.CreateTransactionRequest, bool, error) {
	description := initial.Description
	amount := ""
	if !initial.Amount.IsZero() {
		amount = initial.Amount.StringFixed(2)
	}
	txnType := initial.TransactionType
	date := ""
	if !initial.TransactionDate.IsZero() {
		date = initial.TransactionDate.String()
	}
	category := initial.CategoryName
	confirmed := true

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Description").
			Value(&description).
			Validate(func(s string) error {
				return validate.Var(strings.TrimSpace(s), "required,min=3,max=255")
			}),
		huh.NewInput().
			Title("Amount").
			Value(&amount).
			Validate(func(s string) error {
				value, err := decimal.NewFromString(strings.TrimSpace(s))
				if err != nil {
					return fmt.Errorf("not a valid amount")
				}
				if !value.IsPositive() {
					return fmt.Errorf("amount must be greater than zero")
				}
				return nil
			}),
		huh.NewSelect[domain.TransactionType]().
			Title("Type").
			Options(
				huh.NewOption("Income", domain.Income),
				huh.NewOption("Expense", domain.Expense),
			).
			Value(&txnType),
		huh.NewInput().
			Title("Date (YYYY-MM-DD)").
			Value(&date).
			Validate(func(s string) error {
				_, err := domain.ParseDate(strings.TrimSpace(s))
				return err
			}),
		huh.NewInput().
			Title("Category (optional)").
			Value(&category),
		huh.NewConfirm().
			Title(title).
			Affirmative("Save").
			Negative("Cancel").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return dto.CreateTransactionRequest{}, false, err
	}
	if !confirmed {
		return dto.CreateTransactionRequest{}, false, nil
	}

	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return dto.CreateTransactionRequest{}, false, err
	}
	parsedDate, err := domain.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return dto.CreateTransactionRequest{}, false, err
	}

	return dto.CreateTransactionRequest{
		Description:     strings.TrimSpace(description),
		Amount:          value,
		TransactionType: txnType,
		TransactionDate: parsedDate,
		CategoryName:    strings.TrimSpace(category),
	}, true, nil
}
