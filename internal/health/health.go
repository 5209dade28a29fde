package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jeanpaul/factcollector/internal/fetcher"
)

type Status struct {
	Endpoint   string
	Reachable  bool
	StatusCode int
	Error      string
	Latency    time.Duration
}

// Check verifies that the fact endpoint answers a GET with a 2xx status.
// It does not parse the body; use a fetcher for that.
func Check(ctx context.Context, client *http.Client, endpoint string, timeout time.Duration) Status {
	s := Status{Endpoint: endpoint}
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		s.Error = err.Error()
		s.Latency = time.Since(start)
		return s
	}

	resp, err := client.Do(req)
	if err != nil {
		s.Error = fmt.Sprintf("cannot reach %s: %s", endpoint, fetcher.FriendlyError(err))
		s.Latency = time.Since(start)
		return s
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	s.StatusCode = resp.StatusCode
	s.Latency = time.Since(start)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.Error = fmt.Sprintf("endpoint returned HTTP %d", resp.StatusCode)
		return s
	}
	s.Reachable = true
	return s
}
