package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prog-thiagomartins/finance-control/internal/apperrors"
	"github.com/prog-thiagomartins/finance-control/internal/core/domain"
	"github.com/prog-thiagomartins/finance-control/internal/core/store"
	"github.com/prog-thiagomartins/finance-control/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockGateway is a mock type for the store.Gateway interface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ListTransactions(ctx context.Context, filters domain.TransactionFilters) ([]domain.Transaction, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockGateway) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockGateway) UpdateTransaction(ctx context.Context, id int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockGateway) DeleteTransaction(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ store.Gateway = (*MockGateway)(nil)

// --- Test Suite Setup ---

type TransactionStoreTestSuite struct {
	suite.Suite
	mockGateway *MockGateway
	store       *store.TransactionStore
}

func (suite *TransactionStoreTestSuite) SetupTest() {
	suite.mockGateway = new(MockGateway)
	suite.store = store.New(suite.mockGateway)
}

func txn(id int64, date domain.Date, typ domain.TransactionType, amount string) domain.Transaction {
	return domain.Transaction{
		ID:              id,
		Description:     "seed transaction",
		Amount:          decimal.RequireFromString(amount),
		TransactionType: typ,
		TransactionDate: date,
	}
}

// seed primes the store through a successful Load.
func (suite *TransactionStoreTestSuite) seed(txns ...domain.Transaction) {
	ctx := context.Background()
	suite.mockGateway.On("ListTransactions", ctx, domain.TransactionFilters{}).Return(txns, nil).Once()
	suite.Require().NoError(suite.store.Load(ctx))
}

func (suite *TransactionStoreTestSuite) ids(txns []domain.Transaction) []int64 {
	ids := make([]int64, 0, len(txns))
	for _, t := range txns {
		ids = append(ids, t.ID)
	}
	return ids
}

// --- Load ---

func (suite *TransactionStoreTestSuite) TestLoad_SortsServerResponse() {
	jan5 := domain.NewDate(2024, time.January, 5)
	feb1 := domain.NewDate(2024, time.February, 1)

	// Out-of-order response; the store enforces the ordering itself.
	suite.seed(
		txn(7, jan5, domain.Income, "10"),
		txn(3, feb1, domain.Expense, "5"),
		txn(10, jan5, domain.Income, "2"),
	)

	suite.Equal([]int64{3, 10, 7}, suite.ids(suite.store.Snapshot()))
	suite.False(suite.store.Loading())
}

func (suite *TransactionStoreTestSuite) TestLoad_FailureKeepsPreviousState() {
	jan5 := domain.NewDate(2024, time.January, 5)
	suite.seed(txn(1, jan5, domain.Income, "10"))
	before := suite.store.Snapshot()

	ctx := context.Background()
	suite.mockGateway.On("ListTransactions", ctx, domain.TransactionFilters{}).Return(nil, errors.New("connection refused")).Once()

	err := suite.store.Load(ctx)
	suite.Require().Error(err)
	suite.ErrorIs(err, store.ErrLoadFailed)
	suite.Equal(before, suite.store.Snapshot())
	suite.False(suite.store.Loading(), "loading flag must reset after a failed load")
	suite.mockGateway.AssertExpectations(suite.T())
}

// --- Create ---

func (suite *TransactionStoreTestSuite) TestCreate_InsertsPreservingOrder() {
	jan5 := domain.NewDate(2024, time.January, 5)
	suite.seed(txn(7, jan5, domain.Income, "10"))

	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Description:     "salary",
		Amount:          decimal.RequireFromString("100"),
		TransactionType: domain.Income,
		TransactionDate: jan5,
	}
	created := txn(10, jan5, domain.Income, "100")
	suite.mockGateway.On("CreateTransaction", ctx, req).Return(&created, nil).Once()

	got, err := suite.store.Create(ctx, req)
	suite.Require().NoError(err)
	suite.Equal(int64(10), got.ID)

	// Same date: the later id wins the tie.
	suite.Equal([]int64{10, 7}, suite.ids(suite.store.Snapshot()))
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *TransactionStoreTestSuite) TestCreate_FailureLeavesStateUnchanged() {
	jan5 := domain.NewDate(2024, time.January, 5)
	suite.seed(txn(7, jan5, domain.Income, "10"), txn(3, jan5, domain.Expense, "5"))
	before := suite.store.Snapshot()

	ctx := context.Background()
	suite.mockGateway.On("CreateTransaction", ctx, mock.AnythingOfType("dto.CreateTransactionRequest")).
		Return(nil, errors.New("500 internal server error")).Once()

	_, err := suite.store.Create(ctx, dto.CreateTransactionRequest{
		Description:     "rent",
		Amount:          decimal.RequireFromString("900"),
		TransactionType: domain.Expense,
		TransactionDate: jan5,
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, store.ErrCreateFailed)
	suite.Equal(before, suite.store.Snapshot())
}

// --- Update ---

func (suite *TransactionStoreTestSuite) TestUpdate_RepositionsWhenDateChanges() {
	jan5 := domain.NewDate(2024, time.January, 5)
	mar1 := domain.NewDate(2024, time.March, 1)
	suite.seed(txn(2, mar1, domain.Income, "50"), txn(1, jan5, domain.Expense, "20"))
	suite.Equal([]int64{2, 1}, suite.ids(suite.store.Snapshot()))

	ctx := context.Background()
	newDate := domain.NewDate(2024, time.April, 10)
	req := dto.UpdateTransactionRequest{TransactionDate: &newDate}
	updated := txn(1, newDate, domain.Expense, "20")
	suite.mockGateway.On("UpdateTransaction", ctx, int64(1), req).Return(&updated, nil).Once()

	_, err := suite.store.Update(ctx, 1, req)
	suite.Require().NoError(err)

	// The edited record moved to the front.
	suite.Equal([]int64{1, 2}, suite.ids(suite.store.Snapshot()))
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *TransactionStoreTestSuite) TestUpdate_UnknownIDFailsWithoutRoundTrip() {
	suite.seed(txn(1, domain.NewDate(2024, time.January, 5), domain.Income, "10"))

	_, err := suite.store.Update(context.Background(), 99, dto.UpdateTransactionRequest{})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockGateway.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionStoreTestSuite) TestUpdate_FailureLeavesStateUnchanged() {
	jan5 := domain.NewDate(2024, time.January, 5)
	suite.seed(txn(1, jan5, domain.Income, "10"))
	before := suite.store.Snapshot()

	ctx := context.Background()
	suite.mockGateway.On("UpdateTransaction", ctx, int64(1), mock.AnythingOfType("dto.UpdateTransactionRequest")).
		Return(nil, errors.New("timeout")).Once()

	_, err := suite.store.Update(ctx, 1, dto.UpdateTransactionRequest{})
	suite.Require().Error(err)
	suite.ErrorIs(err, store.ErrUpdateFailed)
	suite.Equal(before, suite.store.Snapshot())
}

// --- Remove ---

func (suite *TransactionStoreTestSuite) TestRemove_RemovesExactlyOne() {
	jan5 := domain.NewDate(2024, time.January, 5)
	feb1 := domain.NewDate(2024, time.February, 1)
	suite.seed(
		txn(3, feb1, domain.Income, "10"),
		txn(5, jan5, domain.Expense, "20"),
		txn(4, jan5, domain.Income, "30"),
	)

	ctx := context.Background()
	suite.mockGateway.On("DeleteTransaction", ctx, int64(5)).Return(nil).Once()

	suite.Require().NoError(suite.store.Remove(ctx, 5))

	// id 5 is gone; the others keep their relative order.
	suite.Equal([]int64{3, 4}, suite.ids(suite.store.Snapshot()))
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *TransactionStoreTestSuite) TestRemove_FailureLeavesStateUnchanged() {
	jan5 := domain.NewDate(2024, time.January, 5)
	suite.seed(txn(1, jan5, domain.Income, "10"))
	before := suite.store.Snapshot()

	ctx := context.Background()
	suite.mockGateway.On("DeleteTransaction", ctx, int64(1)).Return(errors.New("503 unavailable")).Once()

	err := suite.store.Remove(ctx, 1)
	suite.Require().Error(err)
	suite.ErrorIs(err, store.ErrDeleteFailed)
	suite.Equal(before, suite.store.Snapshot())
}

// --- Views and aggregates ---

func (suite *TransactionStoreTestSuite) TestFilteredView_MonthBoundary() {
	suite.seed(
		txn(1, domain.NewDate(2024, time.January, 31), domain.Income, "10"),
		txn(2, domain.NewDate(2024, time.February, 1), domain.Expense, "20"),
	)

	suite.store.SetPeriod(domain.Period{Year: 2024, Month: time.January})
	suite.Equal([]int64{1}, suite.ids(suite.store.FilteredView()))

	suite.store.SetPeriod(domain.Period{Year: 2024, Month: time.February})
	suite.Equal([]int64{2}, suite.ids(suite.store.FilteredView()))
}

func (suite *TransactionStoreTestSuite) TestFilteredView_Idempotent() {
	jan := domain.NewDate(2024, time.January, 10)
	suite.seed(txn(2, jan, domain.Income, "10"), txn(1, jan, domain.Expense, "5"))
	suite.store.SetPeriod(domain.Period{Year: 2024, Month: time.January})

	first := suite.store.FilteredView()
	second := suite.store.FilteredView()
	suite.Equal(first, second, "two calls without intervening mutation must return identical sequences")
}

func (suite *TransactionStoreTestSuite) TestSummary_ExactDecimalTotals() {
	jan := domain.NewDate(2024, time.January, 10)
	suite.seed(
		txn(1, jan, domain.Income, "100.00"),
		txn(2, jan, domain.Expense, "30.50"),
		txn(3, jan, domain.Income, "20.00"),
	)
	suite.store.SetPeriod(domain.Period{Year: 2024, Month: time.January})

	got := suite.store.Summary()
	suite.True(got.TotalIncome.Equal(decimal.RequireFromString("120.00")), "income: %s", got.TotalIncome)
	suite.True(got.TotalExpense.Equal(decimal.RequireFromString("30.50")), "expense: %s", got.TotalExpense)
	suite.True(got.Balance.Equal(decimal.RequireFromString("89.50")), "balance: %s", got.Balance)
}

func (suite *TransactionStoreTestSuite) TestSetPeriod_NoIO() {
	suite.store.SetPeriod(domain.Period{Year: 2030, Month: time.December})
	suite.Equal(domain.Period{Year: 2030, Month: time.December}, suite.store.Period())
	suite.mockGateway.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func TestTransactionStoreTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionStoreTestSuite))
}
