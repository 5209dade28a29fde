package fetcher

import (
	"bytes"
	"context"

	"github.com/mmcdole/gofeed"
)

// FeedFetcher takes the newest item title of an RSS, Atom or JSON feed as
// its fact.
type FeedFetcher struct {
	client
}

func NewFeed(endpoint string, opts ...Option) *FeedFetcher {
	return &FeedFetcher{client: client{settings: newSettings(opts), endpoint: endpoint}}
}

func (f *FeedFetcher) Fetch(ctx context.Context) (string, error) {
	body, err := f.get(ctx)
	if err != nil {
		return "", err
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return "", malformed(f.endpoint, "invalid feed: %v", err)
	}
	if len(feed.Items) == 0 {
		return "", malformed(f.endpoint, "feed has no items")
	}
	title := feed.Items[0].Title
	if title == "" {
		return "", malformed(f.endpoint, "first feed item has no title")
	}
	return title, nil
}
