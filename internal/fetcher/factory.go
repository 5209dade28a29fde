package fetcher

import (
	"fmt"

	"github.com/jeanpaul/factcollector/internal/config"
	"github.com/jeanpaul/factcollector/internal/schema"
)

// New builds the fetcher described by cfg. Extra options are applied after
// the ones derived from cfg.
func New(cfg config.FetchConfig, extra ...Option) (Fetcher, error) {
	opts := []Option{
		WithTimeout(cfg.Timeout),
		WithUserAgent(cfg.UserAgent),
	}
	if cfg.ValidateSchema {
		opts = append(opts, WithSchemaValidation(schema.NewValidator()))
	}
	opts = append(opts, extra...)

	switch cfg.Kind {
	case config.KindJSON, "":
		return NewJSON(cfg.Endpoint, cfg.Field, opts...), nil
	case config.KindFeed:
		return NewFeed(cfg.Endpoint, opts...), nil
	case config.KindHTML:
		if cfg.Selector == "" {
			return nil, fmt.Errorf("fetcher: html source needs a selector")
		}
		return NewHTML(cfg.Endpoint, cfg.Selector, opts...), nil
	}
	return nil, fmt.Errorf("fetcher: unknown kind %q", cfg.Kind)
}
