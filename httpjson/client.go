package httpjson

import (
	"artdrive/core"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Endpoint describes one remote call: method, full URL and extra headers.
type Endpoint struct {
	Method string
	URL    string
	Header http.Header
}

// Client performs single request/response exchanges against remote JSON APIs.
type Client struct {
	http *http.Client
}

// NewClient creates a client whose outbound calls are bounded by timeout so a
// hung remote peer cannot stall the request queue forever.
func NewClient(timeout time.Duration) *Client {
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Do performs exactly one outbound call and decodes the JSON response body
// into out. A failed exchange is a *core.TransportError, a body that is not
// valid JSON a *core.ResponseFormatError; neither is retried.
func (c *Client) Do(ctx context.Context, ep Endpoint, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, ep.URL, reader)
	if err != nil {
		return &core.TransportError{Err: err}
	}
	for key, values := range ep.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	logrus.WithFields(logrus.Fields{
		"method": ep.Method,
		"url":    ep.URL,
	}).Debug("Starting API call")

	resp, err := c.http.Do(req)
	if err != nil {
		return &core.TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &core.TransportError{Err: err}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &core.ResponseFormatError{Err: err}
	}
	return nil
}

// Fetch downloads a resource as raw bytes, fully into memory.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &core.TransportError{Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &core.TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.TransportError{Err: err}
	}
	return data, nil
}
