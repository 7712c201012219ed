package dto

// ReportPeriodParams selects the reporting window. Dates are YYYY-MM-DD and
// both ends are inclusive; missing values default to the current month.
type ReportPeriodParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// CreditAgingParams selects the as-of date for the aging report (default today).
type CreditAgingParams struct {
	AsOf string `form:"asOf"`
}
