package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Per-request timeout. Covers the whole exchange including the body read.
const requestTimeout = 60 * time.Second

// Fetcher downloads screenshot images over a shared HTTP client. The
// client carries no per-call state and is safe for concurrent use by
// every worker in a run.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New creates a fetcher with the fixed timeout and identifying user agent.
func New(version string) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: fmt.Sprintf("snapinline/%s", version),
	}
}

// Fetch issues a GET for url and returns the full response body. The
// returned bytes are never empty: a 2xx response with a zero-length
// body is an error, as is any non-2xx status or transport failure.
func (f *Fetcher) Fetch(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed for %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error downloading %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to get image bytes from %s: %w", url, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("downloaded image from %s is empty", url)
	}
	return data, nil
}
