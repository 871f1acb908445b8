// Package client talks to the analyze API on behalf of the web page and bookctl.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/user/book-classifier/internal/entity"
)

// FallbackMessage is shown when the API gave no usable detail.
const FallbackMessage = "Gagal menganalisis buku. Pastikan Backend menyala."

// APIError is every failure of Analyze: transport, non-2xx status or an unreadable body.
type APIError struct {
	Status int    // 0 when no response was received
	Detail string // the server's "detail" field, if any
	Err    error
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("analyze: status %d: %s", e.Status, e.Detail)
	case e.Status != 0:
		return fmt.Sprintf("analyze: status %d: %v", e.Status, e.Err)
	default:
		return fmt.Sprintf("analyze: %v", e.Err)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// Message returns the text to show the user for err.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return FallbackMessage
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// Analyze posts title to /api/analyze. The title is sent as typed.
func (c *Client) Analyze(ctx context.Context, title string) (*entity.BookResult, error) {
	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return nil, &APIError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, &APIError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Detail json.RawMessage `json:"detail"`
		}
		_ = json.Unmarshal(raw, &payload)
		return nil, &APIError{
			Status: resp.StatusCode,
			Detail: detailText(payload.Detail),
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var result entity.BookResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Err: fmt.Errorf("decode result: %w", err)}
	}
	// null, {} and unrelated JSON decode cleanly but carry no result.
	if result.Title == "" && result.Analysis == (entity.AIAnalysis{}) {
		return nil, &APIError{Status: resp.StatusCode, Err: errors.New("response body is not an analysis result")}
	}
	return &result, nil
}

// detailText accepts only a string detail; structured details fall back to the generic message.
func detailText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
