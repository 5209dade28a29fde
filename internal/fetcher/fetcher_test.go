package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/factcollector/internal/config"
	"github.com/jeanpaul/factcollector/internal/schema"
)

func serve(t *testing.T, status int, contentType, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func requireKind(t *testing.T, err error, kind Kind) *FetchError {
	t.Helper()
	require.Error(t, err)
	var fe *FetchError
	require.True(t, errors.As(err, &fe), "expected *FetchError, got %T", err)
	assert.Equal(t, kind, fe.Kind, "error: %v", err)
	return fe
}

func TestJSON_Success(t *testing.T) {
	srv := serve(t, 200, "application/json",
		`{"id":"a1","text":"  Cats sleep 70% of their lives.\n","source":"djtech.net","language":"en"}`)

	f := NewJSON(srv.URL+"/api/v2/facts/random?language=en", "")
	text, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "  Cats sleep 70% of their lives.\n", text)
	assert.Equal(t, srv.URL+"/api/v2/facts/random?language=en", f.Endpoint())
}

func TestJSON_DecodesUnicode(t *testing.T) {
	srv := serve(t, 200, "application/json", `{"text":"café ☕"}`)

	text, err := NewJSON(srv.URL, "text").Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "café ☕", text)
}

func TestJSON_CustomField(t *testing.T) {
	srv := serve(t, 200, "application/json", `{"fact":"Owls cannot move their eyes."}`)

	text, err := NewJSON(srv.URL, "fact").Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Owls cannot move their eyes.", text)
}

func TestJSON_MalformedResponses(t *testing.T) {
	for name, body := range map[string]string{
		"missing text": `{"id":"1","language":"en"}`,
		"not json":     `<html>maintenance</html>`,
		"array":        `["text"]`,
		"number text":  `{"text": 12}`,
		"null text":    `{"text": null}`,
		"null body":    `null`,
		"empty body":   ``,
	} {
		t.Run(name, func(t *testing.T) {
			srv := serve(t, 200, "application/json", body)
			_, err := NewJSON(srv.URL, "text").Fetch(context.Background())
			requireKind(t, err, KindMalformedResponse)
		})
	}
}

func TestJSON_HTTPStatus(t *testing.T) {
	srv := serve(t, 500, "text/plain", "oops")

	_, err := NewJSON(srv.URL, "text").Fetch(context.Background())
	fe := requireKind(t, err, KindHTTPStatus)
	assert.Equal(t, 500, fe.StatusCode)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.True(t, IsKind(err, KindHTTPStatus))
	assert.False(t, IsKind(err, KindNetwork))
}

func TestJSON_NotFoundStatus(t *testing.T) {
	srv := serve(t, 404, "", "")

	_, err := NewJSON(srv.URL, "text").Fetch(context.Background())
	fe := requireKind(t, err, KindHTTPStatus)
	assert.Equal(t, 404, fe.StatusCode)
}

func TestJSON_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewJSON(url, "text").Fetch(context.Background())
	requireKind(t, err, KindNetwork)
	assert.Contains(t, err.Error(), "cannot reach")
}

func TestJSON_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := NewJSON(srv.URL, "text", WithTimeout(50*time.Millisecond)).Fetch(context.Background())
	requireKind(t, err, KindNetwork)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Contains(t, err.Error(), "timed out")
}

func TestJSON_CancelledContext(t *testing.T) {
	srv := serve(t, 200, "application/json", `{"text":"x"}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewJSON(srv.URL, "text").Fetch(ctx)
	requireKind(t, err, KindNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJSON_UserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"text":"x"}`))
	}))
	defer srv.Close()

	_, err := NewJSON(srv.URL, "text", WithUserAgent("factcollector/test")).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "factcollector/test", got)
}

type countingTransport struct {
	base  http.RoundTripper
	calls int
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return c.base.RoundTrip(r)
}

func TestJSON_UsesProvidedClient(t *testing.T) {
	srv := serve(t, 200, "application/json", `{"text":"x"}`)
	rt := &countingTransport{base: http.DefaultTransport}

	f, err := New(config.FetchConfig{Kind: config.KindJSON, Endpoint: srv.URL, Field: "text"},
		WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)

	_, err = f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rt.calls)
}

func TestJSON_BodyTooLarge(t *testing.T) {
	srv := serve(t, 200, "application/json", `{"text":"`+strings.Repeat("a", maxBodySize)+`"}`)

	_, err := NewJSON(srv.URL, "text").Fetch(context.Background())
	requireKind(t, err, KindMalformedResponse)
}

func TestJSON_SchemaValidation(t *testing.T) {
	srv := serve(t, 200, "application/json", `{"text": ["not", "a", "string"]}`)

	_, err := NewJSON(srv.URL, "text", WithSchemaValidation(schema.NewValidator())).Fetch(context.Background())
	requireKind(t, err, KindMalformedResponse)
	assert.Contains(t, err.Error(), "schema validation failed")

	ok := serve(t, 200, "application/json", `{"text": "valid"}`)
	text, err := NewJSON(ok.URL, "text", WithSchemaValidation(schema.NewValidator())).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "valid", text)
}

const rssDoc = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Daily facts</title>
<item><title>Sloths can hold their breath longer than dolphins.</title></item>
<item><title>Older fact</title></item>
</channel></rss>`

func TestFeed(t *testing.T) {
	srv := serve(t, 200, "application/rss+xml", rssDoc)

	text, err := NewFeed(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sloths can hold their breath longer than dolphins.", text)
}

func TestFeed_Malformed(t *testing.T) {
	for name, body := range map[string]string{
		"not a feed": `just text`,
		"no items":   `<?xml version="1.0"?><rss version="2.0"><channel><title>x</title></channel></rss>`,
		"no title":   `<?xml version="1.0"?><rss version="2.0"><channel><item><description>d</description></item></channel></rss>`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := serve(t, 200, "application/rss+xml", body)
			_, err := NewFeed(srv.URL).Fetch(context.Background())
			requireKind(t, err, KindMalformedResponse)
		})
	}
}

func TestHTML(t *testing.T) {
	srv := serve(t, 200, "text/html", `<html><body>
<div class="nav">menu</div>
<p class="fact">
  A day on Venus is longer than its year.
</p>
<p class="fact">second</p>
</body></html>`)

	text, err := NewHTML(srv.URL, "p.fact").Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A day on Venus is longer than its year.", text)
}

func TestHTML_NoMatch(t *testing.T) {
	srv := serve(t, 200, "text/html", `<html><body><p>nothing</p></body></html>`)

	_, err := NewHTML(srv.URL, "blockquote.fact").Fetch(context.Background())
	requireKind(t, err, KindMalformedResponse)
}

func TestNew(t *testing.T) {
	cfg := config.DefaultConfig().Fetch

	f, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &JSONFetcher{}, f)
	assert.Equal(t, config.DefaultEndpoint, f.Endpoint())

	cfg.ValidateSchema = true
	f, err = New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, f.(*JSONFetcher).validator)

	cfg.Kind = config.KindFeed
	f, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &FeedFetcher{}, f)

	cfg.Kind = config.KindHTML
	_, err = New(cfg)
	assert.Error(t, err)

	cfg.Selector = "p"
	f, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &HTMLFetcher{}, f)

	cfg.Kind = "ftp"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestFriendlyError(t *testing.T) {
	assert.Equal(t, "connection refused (is the service running?)",
		FriendlyError(errors.New("dial tcp 127.0.0.1:1: connect: connection refused")))
	assert.Equal(t, "host not found (check the URL)",
		FriendlyError(errors.New("dial tcp: lookup nowhere.invalid: no such host")))
	assert.Equal(t, "connection timed out", FriendlyError(context.DeadlineExceeded))
	assert.Equal(t, "request cancelled", FriendlyError(context.Canceled))
	assert.Equal(t, "something else", FriendlyError(errors.New("something else")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "network", KindNetwork.String())
	assert.Equal(t, "http_status", KindHTTPStatus.String())
	assert.Equal(t, "malformed_response", KindMalformedResponse.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
