package fetcher

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLFetcher takes the text of the first element matching a CSS selector.
type HTMLFetcher struct {
	client
	selector string
}

func NewHTML(endpoint, selector string, opts ...Option) *HTMLFetcher {
	return &HTMLFetcher{
		client:   client{settings: newSettings(opts), endpoint: endpoint},
		selector: selector,
	}
}

// Fetch returns the element text with surrounding markup whitespace trimmed.
func (f *HTMLFetcher) Fetch(ctx context.Context) (string, error) {
	body, err := f.get(ctx)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", malformed(f.endpoint, "invalid HTML: %v", err)
	}
	sel := doc.Find(f.selector).First()
	if sel.Length() == 0 {
		return "", malformed(f.endpoint, "no element matches %q", f.selector)
	}
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return "", malformed(f.endpoint, "element %q is empty", f.selector)
	}
	return text, nil
}
