package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// metadata documents are small json files; anything bigger than this is
// almost certainly not one.
const DefaultMaxBody int64 = 4 * 1024 * 1024

// Client is a thin GET wrapper shared by the explorer and metadata layers.
// It exists so every outbound request gets the same timeout, header and
// body-size treatment.
type Client struct {
	hc      *http.Client
	maxBody int64
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		hc:      &http.Client{Timeout: timeout},
		maxBody: DefaultMaxBody,
	}
}

// Get issues a GET for url and returns the response body and status code.
// A non-2xx status is not an error at this layer: callers classify statuses
// themselves (404 means different things to the explorer and the fetcher).
func (c *Client) Get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("couldn't build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("couldn't read response from %s: %w", url, err)
	}
	return body, resp.StatusCode, nil
}
