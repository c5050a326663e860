// Package directory implements the customer directory port over HTTP.
// The directory is the authoritative source of customer contact data; the
// purchase denormalizes the returned fields at creation time.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/core/ports"
	"purchases/internal/pkg/errs"
)

// maxResponseSize bounds directory responses (1MB).
const maxResponseSize = 1 << 20

const defaultTimeout = 30 * time.Second

// Client calls the customer directory service. Lookups are synchronous
// request/response over JSON with no retry at this layer.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a directory client for the given base URL,
// e.g. "http://mscustomers:8081/api".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// customerResponse mirrors the directory's JSON payload.
type customerResponse struct {
	TaxID    string `json:"cpf"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	ZipCode  string `json:"zipCode"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
}

// FindCustomer looks up a customer by tax id. An unknown tax id maps to an
// object-not-found error carrying the caller-facing message.
func (c *Client) FindCustomer(ctx context.Context, taxID kernel.TaxID) (ports.CustomerRecord, error) {
	url := fmt.Sprintf("%s/consumer-findCustomer/%s", c.baseURL, taxID.Digits())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.CustomerRecord{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.CustomerRecord{}, fmt.Errorf("customer directory request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ports.CustomerRecord{}, errs.NewObjectNotFoundError("Cliente não encontrado", taxID.String())
	default:
		return ports.CustomerRecord{}, fmt.Errorf("customer directory returned status %d", resp.StatusCode)
	}

	var payload customerResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&payload); err != nil {
		return ports.CustomerRecord{}, fmt.Errorf("customer directory response: %w", err)
	}

	return ports.CustomerRecord{
		FullName: payload.FullName,
		ZipCode:  payload.ZipCode,
		Address:  payload.Address,
		City:     payload.City,
		State:    payload.State,
		Country:  payload.Country,
	}, nil
}
