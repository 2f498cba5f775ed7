package domain

// TransactionFilters narrows a transaction listing. Zero values mean
// "no constraint", matching the API contract where omitted query
// parameters apply no filter.
type TransactionFilters struct {
	TransactionType TransactionType
	StartDate       *Date
	EndDate         *Date
	Skip            int
	Limit           int // 0 means the server default
}
