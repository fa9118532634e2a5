package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/easyflowhq/easyflow/internal/client/models"
)

const invoicePageSize = 50

func (a *App) Invoices(ctx context.Context) error {
	invoices, err := a.client.Invoices(ctx, 1, invoicePageSize)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	if len(invoices) == 0 {
		printlnFn("No invoices yet.")
		return nil
	}

	for _, inv := range invoices {
		printlnFn(fmt.Sprintf("%s  %s  %.2f %s  %s", inv.ID, inv.InvoiceDate, inv.Amount, inv.Currency, inv.CustomerName))
	}
	return nil
}

func (a *App) NewInvoice(ctx context.Context) error {
	customerName, err := getSimpleText(a.reader, "Enter customer name", os.Stdout)
	if err != nil {
		return err
	}

	serviceDescription, err := getSimpleText(a.reader, "Enter service description", os.Stdout)
	if err != nil {
		return err
	}

	amountText, err := getSimpleText(a.reader, "Enter amount", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil {
		printlnFn("Invalid amount:", amountText)
		return err
	}

	invoiceDate, err := getSimpleText(a.reader, "Enter invoice date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}

	inv, err := a.client.CreateInvoice(ctx, models.NewInvoice{
		CustomerName:       customerName,
		ServiceDescription: serviceDescription,
		Amount:             amount,
		InvoiceDate:        invoiceDate,
	})
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Created invoice", inv.ID)
	return nil
}

// InvoicePDF generates a PDF for an invoice and saves the download next to
// the binary as invoice-<id>.pdf.
func (a *App) InvoicePDF(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter invoice id", os.Stdout)
	if err != nil {
		return err
	}

	templateText, err := getSimpleText(a.reader, "Enter template (basic/advanced/elite, empty for basic)", os.Stdout)
	if err != nil {
		return err
	}
	template := models.PDFTemplate(templateText)
	if template == "" {
		template = models.TemplateBasic
	}

	if _, err := a.client.GenerateInvoicePDF(ctx, id, template); err != nil {
		printlnFn("Error:", err)
		return err
	}

	data, err := a.client.DownloadInvoicePDF(ctx, id)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	name := fmt.Sprintf("invoice-%s.pdf", id)
	if err := os.WriteFile(name, data, 0o600); err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Saved", name)
	return nil
}

func (a *App) DeleteInvoice(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter invoice id to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.DeleteInvoice(ctx, id); err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Deleted.")
	return nil
}
