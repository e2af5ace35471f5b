package scrapers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FetchClient retrieves raw sportsbook pages. Each scraper owns its own
// instance; the per-request timeout comes from config so one hung fetch
// never stalls the rest of a scrape.
type FetchClient struct {
	httpClient *http.Client
	userAgent  string
}

func NewFetchClient(timeout time.Duration, userAgent string) *FetchClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &FetchClient{
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		userAgent:  userAgent,
	}
}

// FetchDocument GETs the URL and returns the response body. Any non-2xx
// status is an error.
func (c *FetchClient) FetchDocument(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("status %d fetching %s", resp.StatusCode, rawURL)
	}
	return string(body), nil
}

func (c *FetchClient) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "max-age=0")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}
