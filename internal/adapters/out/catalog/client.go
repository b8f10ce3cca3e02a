// Package catalog implements the CatalogLookup port against the catalog
// service's HTTP API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const defaultRequestTimeout = 5 * time.Second

// Client is an HTTP client for the catalog service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}, nil
}

// bookResponse is the catalog service's book representation.
type bookResponse struct {
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	ImageURL  string          `json:"imageUrl"`
	Price     decimal.Decimal `json:"price"`
	RentPrice decimal.Decimal `json:"rentPrice"`
	Format    string          `json:"format"`
}

// GetBook fetches a book summary from the catalog.
// An unknown book id surfaces as errs.ErrObjectNotFound. A missing or
// unrecognized format field defaults to physical, the safe choice for shipping.
func (c *Client) GetBook(ctx context.Context, bookID string) (ports.BookSummary, error) {
	if bookID == "" {
		return ports.BookSummary{}, errs.NewValueIsRequiredError("bookId")
	}

	url := fmt.Sprintf("%s/api/v1/books/%s", c.baseURL, bookID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.BookSummary{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.BookSummary{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.BookSummary{}, errs.NewObjectNotFoundError("bookId", bookID)
	}
	if resp.StatusCode != http.StatusOK {
		return ports.BookSummary{}, fmt.Errorf("catalog returned status %d for book %s", resp.StatusCode, bookID)
	}

	var book bookResponse
	if err = json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return ports.BookSummary{}, err
	}

	format, err := order.FormatFromString(book.Format)
	if err != nil {
		format = order.FormatPhysical
	}

	return ports.BookSummary{
		Title:     book.Title,
		Author:    book.Author,
		ImageURL:  book.ImageURL,
		Price:     book.Price,
		RentPrice: book.RentPrice,
		Format:    format,
	}, nil
}
