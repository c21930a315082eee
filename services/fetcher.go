// Package services holds the image ingestion helpers: remote fetching
// and best-effort metadata extraction.
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxImageSize caps how much of a remote image is read.
const MaxImageSize = 50 << 20 // 50MB

const defaultFetchTimeout = 15 * time.Second

// FetchError reports a failed remote image fetch. Status is zero when
// the request never produced a response.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves remote image bytes with a bounded timeout.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: defaultFetchTimeout}}
}

// Fetch downloads the image at url. Any transport failure or non-2xx
// status comes back as a *FetchError; callers treat that as a hard
// failure of the ingestion pipeline.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageSize))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return data, nil
}
