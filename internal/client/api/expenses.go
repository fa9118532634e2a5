package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/easyflowhq/easyflow/internal/client/models"
)

// ExpenseInput is the multipart payload for creating an expense with its
// receipt attached.
type ExpenseInput struct {
	Amount      float64
	Note        string
	ExpenseDate string

	ReceiptFilename string
	Receipt         io.Reader
}

type createExpenseRequest struct {
	Amount      float64 `json:"amount"`
	Note        string  `json:"note,omitempty"`
	ExpenseDate string  `json:"expenseDate"`
}

// CreateExpense records an expense. With a receipt attached the request goes
// out as multipart/form-data, otherwise as plain JSON.
func (c *Client) CreateExpense(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	cl := call{
		method: http.MethodPost,
		path:   "/api/expenses",
	}

	if in.Receipt != nil {
		fields := map[string]string{
			"amount":      strconv.FormatFloat(in.Amount, 'f', -1, 64),
			"expenseDate": in.ExpenseDate,
		}
		if in.Note != "" {
			fields["note"] = in.Note
		}
		cl.upload = &upload{field: "receipt", filename: in.ReceiptFilename, reader: in.Receipt, fields: fields}
	} else {
		cl.body = createExpenseRequest{Amount: in.Amount, Note: in.Note, ExpenseDate: in.ExpenseDate}
	}

	var resp models.Expense
	if err := c.do(ctx, cl, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Expenses(ctx context.Context, page, pageSize int) ([]models.Expense, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))

	var resp []models.Expense
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/expenses",
		query:  query,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/api/expenses/" + id,
	}, nil)
}

// ExpenseReceipt fetches the stored receipt image bytes.
func (c *Client) ExpenseReceipt(ctx context.Context, id string) ([]byte, error) {
	return c.doRaw(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/expenses/%s/receipt", id),
	})
}

// AnalyzeReceipt uploads a receipt image for backend OCR.
func (c *Client) AnalyzeReceipt(ctx context.Context, filename string, r io.Reader) (*models.ReceiptAnalysis, error) {
	var resp models.ReceiptAnalysis
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/receipts/upload",
		upload: &upload{field: "file", filename: filename, reader: r},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
