package models

// InvoiceLineItem is a single position on an invoice. Quantity and prices are
// optional: the analyze endpoint may return partially recognized items.
type InvoiceLineItem struct {
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unitPrice,omitempty"`
	TotalPrice  *float64 `json:"totalPrice,omitempty"`
}

type Invoice struct {
	ID                 string            `json:"id"`
	CustomerName       string            `json:"customerName"`
	ServiceDescription string            `json:"serviceDescription"`
	Amount             float64           `json:"amount"`
	Currency           string            `json:"currency"`
	InvoiceDate        string            `json:"invoiceDate"`
	DownloadURL        *string           `json:"downloadUrl"`
	Items              []InvoiceLineItem `json:"items,omitempty"`
	CreatedAt          string            `json:"createdAt"`
	Meta               map[string]string `json:"meta,omitempty"`
}

// NewInvoice is the payload for creating an invoice.
type NewInvoice struct {
	CustomerName       string            `json:"customerName"`
	ServiceDescription string            `json:"serviceDescription"`
	Amount             float64           `json:"amount"`
	InvoiceDate        string            `json:"invoiceDate"`
	Items              []InvoiceLineItem `json:"items,omitempty"`
}

// PDFTemplate selects the layout used by the PDF generation endpoint.
type PDFTemplate string

const (
	TemplateBasic    PDFTemplate = "basic"
	TemplateAdvanced PDFTemplate = "advanced"
	TemplateElite    PDFTemplate = "elite"
)

// GeneratedPDF is the response of the generate-pdf endpoint.
type GeneratedPDF struct {
	DownloadURL string `json:"downloadUrl"`
	Template    string `json:"template"`
}
