package dto

// DateRangeParams are the query parameters shared by every ledger and report endpoint.
// An explicit startDate/endDate pair wins over a named preset; with neither, the current
// month is used.
type DateRangeParams struct {
	DateRange string `form:"dateRange"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// BankLedgerParams adds the optional bank account selector.
type BankLedgerParams struct {
	DateRangeParams
	AccountID string `form:"accountId"`
}
