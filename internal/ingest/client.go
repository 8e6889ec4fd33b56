package ingest

import (
	"net/http"
	"time"
)

// HTTPClient is the slice of *http.Client the fetchers need; tests swap in
// fakes.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}
