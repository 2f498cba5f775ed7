// Package httpapi is the JSON-over-HTTP client for the transactions API,
// implementing the gateway contract the store consumes.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prog-thiagomartins/finance-control/internal/apperrors"
	"github.com/prog-thiagomartins/finance-control/internal/core/domain"
	"github.com/prog-thiagomartins/finance-control/internal/core/store"
	"github.com/prog-thiagomartins/finance-control/internal/dto"
)

// Client talks to the transactions API. The base URL includes the API prefix,
// e.g. "http://localhost:8000/api/v1".
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client with the given base URL and request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ensure Client satisfies the gateway contract of the store
var _ store.Gateway = (*Client)(nil)

// ListTransactions fetches transactions matching the filters. Omitted filters
// mean no constraint.
func (c *Client) ListTransactions(ctx context.Context, filters domain.TransactionFilters) ([]domain.Transaction, error) {
	params := url.Values{}
	if filters.TransactionType != "" {
		params.Set("transaction_type", string(filters.TransactionType))
	}
	if filters.StartDate != nil {
		params.Set("start_date", filters.StartDate.String())
	}
	if filters.EndDate != nil {
		params.Set("end_date", filters.EndDate.String())
	}
	if filters.Skip > 0 {
		params.Set("skip", fmt.Sprintf("%d", filters.Skip))
	}
	if filters.Limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", filters.Limit))
	}

	endpoint := c.baseURL + "/transactions"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var records []dto.TransactionResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, http.StatusOK, &records); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	txns := make([]domain.Transaction, 0, len(records))
	for _, r := range records {
		txns = append(txns, r.ToDomainTransaction())
	}
	return txns, nil
}

// GetTransaction fetches a single transaction by id.
func (c *Client) GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	var record dto.TransactionResponse
	endpoint := fmt.Sprintf("%s/transactions/%d", c.baseURL, id)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, http.StatusOK, &record); err != nil {
		return nil, fmt.Errorf("get transaction %d: %w", id, err)
	}
	txn := record.ToDomainTransaction()
	return &txn, nil
}

// CreateTransaction sends a draft and returns the canonical record with the
// server-assigned id and timestamps.
func (c *Client) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	var record dto.TransactionResponse
	endpoint := c.baseURL + "/transactions"
	if err := c.do(ctx, http.MethodPost, endpoint, req, http.StatusCreated, &record); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	txn := record.ToDomainTransaction()
	return &txn, nil
}

// UpdateTransaction sends a full or partial update and returns the canonical record.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	var record dto.TransactionResponse
	endpoint := fmt.Sprintf("%s/transactions/%d", c.baseURL, id)
	if err := c.do(ctx, http.MethodPut, endpoint, req, http.StatusOK, &record); err != nil {
		return nil, fmt.Errorf("update transaction %d: %w", id, err)
	}
	txn := record.ToDomainTransaction()
	return &txn, nil
}

// DeleteTransaction deletes a transaction by id.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("%s/transactions/%d", c.baseURL, id)
	if err := c.do(ctx, http.MethodDelete, endpoint, nil, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}

// do performs one round trip: encodes the optional JSON body, checks the
// status against wantStatus and decodes into out when non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return apiError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}

// apiError turns a non-expected status into an error, mapping 404 onto the
// shared not-found sentinel so callers can dispatch with errors.Is.
func apiError(resp *http.Response) error {
	msg := readErrorMessage(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		if msg != "" {
			return fmt.Errorf("%s: %w", msg, apperrors.ErrNotFound)
		}
		return apperrors.ErrNotFound
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("api responded %d: %s", resp.StatusCode, msg)
}

// readErrorMessage extracts the error field from a JSON error payload, if any.
func readErrorMessage(r io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	return payload.Error
}
