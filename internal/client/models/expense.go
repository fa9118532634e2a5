package models

type Expense struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Note        *string `json:"note"`
	ReceiptURL  *string `json:"receiptUrl"`
	ExpenseDate string  `json:"expenseDate"`
	CreatedAt   string  `json:"createdAt"`
}

// ReceiptAnalysis holds the fields the backend OCR recognized on an uploaded
// receipt. Everything is optional; the user confirms or corrects the values.
type ReceiptAnalysis struct {
	Amount      *float64 `json:"amount,omitempty"`
	Note        *string  `json:"note,omitempty"`
	ExpenseDate *string  `json:"expenseDate,omitempty"`
	Merchant    *string  `json:"merchant,omitempty"`
}
