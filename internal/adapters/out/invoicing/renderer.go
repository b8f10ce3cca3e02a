// Package invoicing implements the InvoiceRenderer port against the invoice
// service's HTTP API. The remote service turns an order snapshot into a
// printable document.
package invoicing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const defaultRequestTimeout = 15 * time.Second

// Renderer is an HTTP client for the invoice rendering service.
type Renderer struct {
	baseURL    string
	httpClient *http.Client
}

// NewRenderer creates an invoice renderer for the given base URL.
func NewRenderer(baseURL string) (*Renderer, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	return &Renderer{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}, nil
}

// invoiceRequest is the invoice service's request format: the order snapshot
// at creation time, which is all an invoice ever reflects.
type invoiceRequest struct {
	OrderID       string             `json:"orderId"`
	OrderNumber   string             `json:"orderNumber"`
	CustomerEmail string             `json:"customerEmail"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	CreatedAt     time.Time          `json:"createdAt"`
	Lines         []invoiceLine      `json:"lines"`
}

type invoiceLine struct {
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Intent    string          `json:"intent"`
}

// RenderInvoice submits the order snapshot and returns the rendered document.
func (r *Renderer) RenderInvoice(ctx context.Context, aggregate *order.Order) ([]byte, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	items := aggregate.Items()
	lines := make([]invoiceLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, invoiceLine{
			Title:     item.Snapshot().Title,
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			LineTotal: item.LineTotal(),
			Intent:    string(item.Intent()),
		})
	}

	payload, err := json.Marshal(invoiceRequest{
		OrderID:       aggregate.ID().String(),
		OrderNumber:   aggregate.OrderNumber(),
		CustomerEmail: aggregate.CustomerEmail(),
		TotalAmount:   aggregate.TotalAmount(),
		CreatedAt:     aggregate.CreatedAt(),
		Lines:         lines,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/v1/invoices", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("invoice service returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
