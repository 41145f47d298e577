package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"kosehub/domain"
)

const userAgent = "kosehub/1.0 (+feed aggregator)"

// Fetcher retrieves page markup over HTTP. Bodies are decoded to UTF-8 from
// whatever charset the site declares; the Turkish sources are not always
// consistent about it.
type Fetcher struct{ client *http.Client }

func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: 10 * time.Second}}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	body := io.Reader(resp.Body)
	if decoded, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type")); err == nil {
		body = decoded
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}
	return data, nil
}
