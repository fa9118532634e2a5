package models

// ChartPoint is one bucket of the income/expense chart.
type ChartPoint struct {
	Label    string  `json:"label"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// Summary is the monthly (or all-time) income/expense aggregate.
type Summary struct {
	Income   float64      `json:"income"`
	Expenses float64      `json:"expenses"`
	Profit   float64      `json:"profit"`
	Chart    []ChartPoint `json:"chart"`
}
