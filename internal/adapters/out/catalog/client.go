// Package catalog implements the product catalog port over HTTP.
// The catalog owns product prices and stock quantities; purchases snapshot
// prices from it at creation and adjust stock through it.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/core/ports"
	"purchases/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// maxResponseSize bounds catalog responses (1MB).
const maxResponseSize = 1 << 20

const defaultTimeout = 30 * time.Second

// Client calls the product catalog service. Calls are synchronous
// request/response over JSON with no retry at this layer.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL,
// e.g. "http://msstock:8082/api".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// productPayload mirrors the catalog's JSON representation of a product.
type productPayload struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// stockAdjustment is the body of an adjust-stock request. Delta is signed:
// negative reserves stock, positive releases it.
type stockAdjustment struct {
	ProductID string `json:"productId"`
	Delta     int    `json:"delta"`
}

// FindProduct returns the catalog record for a product id. An unknown id
// maps to an object-not-found error naming the product.
func (c *Client) FindProduct(ctx context.Context, id kernel.UUID) (ports.ProductRecord, error) {
	url := fmt.Sprintf("%s/consumer-findProduct/%s", c.baseURL, id.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.ProductRecord{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.ProductRecord{}, fmt.Errorf("product catalog request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ports.ProductRecord{}, errs.NewObjectNotFoundError(
			fmt.Sprintf("Item %s não encontrado", id.String()), id.String())
	default:
		return ports.ProductRecord{}, fmt.Errorf("product catalog returned status %d", resp.StatusCode)
	}

	var payload productPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&payload); err != nil {
		return ports.ProductRecord{}, fmt.Errorf("product catalog response: %w", err)
	}

	productID, err := kernel.UUIDFromString(payload.ID)
	if err != nil {
		return ports.ProductRecord{}, fmt.Errorf("product catalog response: %w", err)
	}

	return ports.ProductRecord{
		ID:          productID,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Quantity:    payload.Quantity,
	}, nil
}

// AdjustStock applies a signed delta to a product's stock quantity.
func (c *Client) AdjustStock(ctx context.Context, id kernel.UUID, delta int) error {
	body, err := json.Marshal(stockAdjustment{
		ProductID: id.String(),
		Delta:     delta,
	})
	if err != nil {
		return err
	}

	return c.post(ctx, c.baseURL+"/consumer-adjustStock", body, id.String())
}

// SaveProduct upserts a product record, keyed by name on the catalog side.
func (c *Client) SaveProduct(ctx context.Context, record ports.ProductRecord) error {
	payload := productPayload{
		Name:        record.Name,
		Description: record.Description,
		Price:       record.Price,
		Quantity:    record.Quantity,
	}
	if err := record.ID.Validate(); err == nil {
		payload.ID = record.ID.String()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return c.post(ctx, c.baseURL+"/consumer-saveProduct", body, record.Name)
}

func (c *Client) post(ctx context.Context, url string, body []byte, subject string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("product catalog request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.NewObjectNotFoundError(fmt.Sprintf("Item %s não encontrado", subject), subject)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return fmt.Errorf("product catalog returned status %d", resp.StatusCode)
	}

	return nil
}
