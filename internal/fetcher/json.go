package fetcher

import (
	"context"
	"encoding/json"

	"github.com/jeanpaul/factcollector/internal/schema"
)

// JSONFetcher reads a fact from a string field of a JSON object.
type JSONFetcher struct {
	client
	field string
}

// NewJSON returns a fetcher for endpoint that extracts field ("text" if empty).
func NewJSON(endpoint, field string, opts ...Option) *JSONFetcher {
	if field == "" {
		field = "text"
	}
	return &JSONFetcher{
		client: client{settings: newSettings(opts), endpoint: endpoint},
		field:  field,
	}
}

// Fetch returns the field value verbatim.
func (f *JSONFetcher) Fetch(ctx context.Context) (string, error) {
	body, err := f.get(ctx)
	if err != nil {
		return "", err
	}
	return f.extract(body)
}

func (f *JSONFetcher) extract(body []byte) (string, error) {
	if f.validator != nil {
		if err := f.validator.Validate(schema.Response(f.field), body); err != nil {
			return "", malformed(f.endpoint, "%v", err)
		}
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", malformed(f.endpoint, "invalid JSON: %v", err)
	}

	raw, ok := doc[f.field]
	if !ok {
		return "", malformed(f.endpoint, "missing %q field", f.field)
	}
	text, ok := raw.(string)
	if !ok {
		return "", malformed(f.endpoint, "%q field is %T, not a string", f.field, raw)
	}
	return text, nil
}
