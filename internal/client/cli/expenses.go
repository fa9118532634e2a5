package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/easyflowhq/easyflow/internal/client/api"
)

const expensePageSize = 50

func (a *App) Expenses(ctx context.Context) error {
	expenses, err := a.client.Expenses(ctx, 1, expensePageSize)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	if len(expenses) == 0 {
		printlnFn("No expenses yet.")
		return nil
	}

	for _, e := range expenses {
		note := ""
		if e.Note != nil {
			note = *e.Note
		}
		printlnFn(fmt.Sprintf("%s  %s  %.2f  %s", e.ID, e.ExpenseDate, e.Amount, note))
	}
	return nil
}

// NewExpense records an expense. When a receipt file is given it is uploaded
// as part of the same request.
func (a *App) NewExpense(ctx context.Context) error {
	amountText, err := getSimpleText(a.reader, "Enter amount", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil {
		printlnFn("Invalid amount:", amountText)
		return err
	}

	expenseDate, err := getSimpleText(a.reader, "Enter expense date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}

	note, err := getSimpleText(a.reader, "Enter note (optional)", os.Stdout)
	if err != nil {
		return err
	}

	receiptPath, err := getSimpleText(a.reader, "Enter receipt file path (optional)", os.Stdout)
	if err != nil {
		return err
	}

	in := api.ExpenseInput{
		Amount:      amount,
		Note:        note,
		ExpenseDate: expenseDate,
	}

	if receiptPath != "" {
		f, err := os.Open(receiptPath)
		if err != nil {
			printlnFn("Error:", err)
			return err
		}
		defer f.Close()
		in.Receipt = f
		in.ReceiptFilename = filepath.Base(receiptPath)
	}

	expense, err := a.client.CreateExpense(ctx, in)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Recorded expense", expense.ID)
	return nil
}

func (a *App) DeleteExpense(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter expense id to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.DeleteExpense(ctx, id); err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Deleted.")
	return nil
}
