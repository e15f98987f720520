// Package validate calls the external XML-schema validation service. The
// emitters never validate their own output; a caller submits the finished
// document here and reports the verdict.
package validate

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ValidationError is one schema violation reported by the service.
type ValidationError struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// Result is the service's verdict on one document.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// Client talks to one validation service instance.
type Client struct {
	http *resty.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(200 * time.Millisecond),
	}
}

// Validate submits one XML document and returns the service's verdict. A
// transport or non-2xx failure is an error; an invalid document is not, it
// is a Result with Valid=false.
func (c *Client) Validate(ctx context.Context, documentText string) (*Result, error) {
	var result Result
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/xml").
		SetBody(documentText).
		SetResult(&result).
		Post("/validate")
	if err != nil {
		return nil, fmt.Errorf("calling validation service: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("validation service returned %s", resp.Status())
	}
	return &result, nil
}
