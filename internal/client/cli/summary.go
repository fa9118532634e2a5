package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/easyflowhq/easyflow/internal/client/api"
)

// Summary prints the income/expense aggregate for a month, or for the whole
// account history when the year is left empty.
func (a *App) Summary(ctx context.Context) error {
	yearText, err := getSimpleText(a.reader, "Enter year (empty for all time)", os.Stdout)
	if err != nil {
		return err
	}

	params := api.SummaryParams{AllTime: true}
	if yearText != "" {
		year, err := strconv.Atoi(yearText)
		if err != nil {
			printlnFn("Invalid year:", yearText)
			return err
		}

		monthText, err := getSimpleText(a.reader, "Enter month (1-12)", os.Stdout)
		if err != nil {
			return err
		}
		month, err := strconv.Atoi(monthText)
		if err != nil {
			printlnFn("Invalid month:", monthText)
			return err
		}

		params = api.SummaryParams{Year: year, Month: month}
	}

	s, err := a.client.MonthlySummary(ctx, params)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn(fmt.Sprintf("Income:   %.2f", s.Income))
	printlnFn(fmt.Sprintf("Expenses: %.2f", s.Expenses))
	printlnFn(fmt.Sprintf("Profit:   %.2f", s.Profit))
	for _, p := range s.Chart {
		printlnFn(fmt.Sprintf("  %s  +%.2f  -%.2f", p.Label, p.Income, p.Expenses))
	}
	return nil
}
