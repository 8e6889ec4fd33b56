package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

const fetchRetries = 3

// GetJSONWithRetry fetches a JSON document with exponential backoff plus
// jitter. Non-2xx responses and transport errors both retry; the last error
// is returned once attempts are exhausted.
func GetJSONWithRetry(ctx context.Context, c HTTPClient, url string, dst any) error {
	if url == "" {
		return errors.New("empty url")
	}
	var lastErr error
	for i := 0; i < fetchRetries; i++ {
		if i > 0 {
			sleep := time.Duration((1<<i)*100) * time.Millisecond
			sleep += time.Duration(rand.Intn(150)) * time.Millisecond
			select {
			case <-time.After(sleep):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := c.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			resp.Body.Close()
			lastErr = fmt.Errorf("non-2xx: %d body=%s", resp.StatusCode, string(b))
			continue
		}
		err = json.NewDecoder(resp.Body).Decode(dst)
		resp.Body.Close()
		return err
	}
	return lastErr
}
