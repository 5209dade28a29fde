// Package fetcher retrieves one candidate fact from a remote endpoint.
//
// Every failure is a *FetchError whose Kind tells the caller whether the
// endpoint was unreachable, answered with a bad status, or answered with a
// body that did not carry a fact.
package fetcher

import (
	"context"
	"errors"
	"fmt"
)

// Fetcher returns a single fact per call.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
	// Endpoint is recorded as the source of every fact this fetcher returns.
	Endpoint() string
}

// Kind classifies a fetch failure.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindHTTPStatus
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindMalformedResponse:
		return "malformed_response"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// FetchError is returned for every failed fetch.
type FetchError struct {
	Kind       Kind
	URL        string
	StatusCode int // set for KindHTTPStatus
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("%s returned HTTP %d: %s", e.URL, e.StatusCode, statusText(e.StatusCode))
	case KindNetwork:
		return fmt.Sprintf("cannot reach %s: %s", e.URL, FriendlyError(e.Err))
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("malformed response from %s", e.URL)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsKind reports whether err is a *FetchError of kind k.
func IsKind(err error, k Kind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == k
}

func malformed(url string, format string, args ...any) *FetchError {
	return &FetchError{Kind: KindMalformedResponse, URL: url, Err: fmt.Errorf(format, args...)}
}
