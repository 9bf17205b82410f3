// Package reportclient posts chat transcripts to the report backend.
package reportclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Rorical/RoriBug/internal/models"
)

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeStatus
	ErrTypeDecode
)

// ClientError represents a failed report call.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Client calls POST /generateReport. It never retries.
type Client struct {
	url        string
	httpClient *http.Client
}

// New creates a client for the given endpoint. A zero timeout waits for the
// backend indefinitely.
func New(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) URL() string {
	return c.url
}

func (c *Client) GenerateReport(ctx context.Context, req models.ReportRequest) (*models.ReportResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "report backend unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &ClientError{
			Type:    ErrTypeStatus,
			Message: fmt.Sprintf("report backend returned %s: %s", resp.Status, bytes.TrimSpace(body)),
		}
	}

	var report models.ReportResponse
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, &ClientError{Type: ErrTypeDecode, Message: "invalid report response", Cause: err}
	}

	return &report, nil
}
