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

func (c *Client) CreateInvoice(ctx context.Context, in models.NewInvoice) (*models.Invoice, error) {
	var resp models.Invoice
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/invoices",
		body:   in,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Invoices(ctx context.Context, page, pageSize int) ([]models.Invoice, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))

	var resp []models.Invoice
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/invoices",
		query:  query,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

type generatePDFRequest struct {
	Template models.PDFTemplate `json:"template,omitempty"`
}

func (c *Client) GenerateInvoicePDF(ctx context.Context, id string, template models.PDFTemplate) (*models.GeneratedPDF, error) {
	var resp models.GeneratedPDF
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   fmt.Sprintf("/api/invoices/%s/generate-pdf", id),
		body:   generatePDFRequest{Template: template},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteInvoice(ctx context.Context, id string) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/api/invoices/" + id,
	}, nil)
}

// DownloadInvoicePDF fetches the rendered PDF bytes.
func (c *Client) DownloadInvoicePDF(ctx context.Context, id string) ([]byte, error) {
	return c.doRaw(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/invoices/%s/pdf", id),
	})
}

// AnalyzeInvoice uploads an invoice document for backend OCR and returns the
// recognized fields.
func (c *Client) AnalyzeInvoice(ctx context.Context, filename string, r io.Reader) (*models.Invoice, error) {
	var resp models.Invoice
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/invoices/analyze",
		upload: &upload{field: "invoice", filename: filename, reader: r},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
