// Package collector drives the fetch-then-archive cycle, once or on a fixed
// interval until its context is cancelled.
package collector

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeanpaul/factcollector/internal/archive"
	"github.com/jeanpaul/factcollector/internal/console"
	"github.com/jeanpaul/factcollector/internal/fetcher"
)

// DefaultInterval is the wait between cycles when Options leaves it unset.
const DefaultInterval = 30 * time.Second

// Outcome is what a single cycle achieved.
type Outcome int

const (
	OutcomeAdded Outcome = iota
	OutcomeDuplicate
	OutcomeFetchFailed
	OutcomeSaveFailed
	// OutcomeEmpty means the endpoint answered with an empty fact.
	OutcomeEmpty
	// OutcomeCorrupted means the archive could not be read back and was left
	// untouched.
	OutcomeCorrupted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeFetchFailed:
		return "fetch_failed"
	case OutcomeSaveFailed:
		return "save_failed"
	case OutcomeEmpty:
		return "empty"
	case OutcomeCorrupted:
		return "archive_corrupted"
	}
	return "unknown"
}

// Result reports one cycle. Err is set for the failed outcomes.
type Result struct {
	Outcome Outcome
	Text    string
	Err     error
}

// Options tune a Collector. Zero values pick the defaults.
type Options struct {
	Interval      time.Duration
	MaxIterations int
	Printer       *console.Printer
	Logger        *zap.Logger
}

// Collector feeds facts from a Fetcher into a Store.
type Collector struct {
	fetcher       fetcher.Fetcher
	store         archive.Store
	interval      time.Duration
	maxIterations int
	printer       *console.Printer
	logger        *zap.Logger
}

// New returns a Collector reading from f and writing to s.
func New(f fetcher.Fetcher, s archive.Store, opts Options) *Collector {
	c := &Collector{
		fetcher:       f,
		store:         s,
		interval:      opts.Interval,
		maxIterations: opts.MaxIterations,
		printer:       opts.Printer,
		logger:        opts.Logger,
	}
	if c.interval <= 0 {
		c.interval = DefaultInterval
	}
	if c.printer == nil {
		c.printer = console.Discard()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Collect runs one fetch and, if it yields a fact, one archive insert.
// Failures are reported and returned in the Result, never raised.
func (c *Collector) Collect(ctx context.Context) Result {
	c.printer.Info("📡 Fetching a new fact from %s...", c.fetcher.Endpoint())

	text, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.printer.Warn("⚠️  Error fetching fact: %s", err)
		c.logger.Warn("fetch failed", zap.String("endpoint", c.fetcher.Endpoint()), zap.Error(err))
		return Result{Outcome: OutcomeFetchFailed, Err: err}
	}
	if text == "" {
		c.printer.Warn("⚠️  Endpoint returned an empty fact. Skipping.")
		c.logger.Info("empty fact skipped", zap.String("endpoint", c.fetcher.Endpoint()))
		return Result{Outcome: OutcomeEmpty}
	}
	c.printer.Success("✅ Success! Fact received.")

	return c.add(text, c.fetcher.Endpoint())
}

// AddManual inserts text without fetching, recording source as given.
func (c *Collector) AddManual(text, source string) Result {
	if text == "" {
		c.printer.Warn("⚠️  Refusing to store an empty fact.")
		return Result{Outcome: OutcomeEmpty}
	}
	return c.add(text, source)
}

func (c *Collector) add(text, source string) Result {
	c.printer.Info("🎯 Processing fact: '%s'", text)

	added, err := c.store.Add(text, source)
	if errors.Is(err, archive.ErrCorrupted) {
		c.printer.Error("❌ Archive is corrupted, refusing to overwrite it: %s", err)
		c.logger.Error("archive corrupted", zap.Error(err))
		return Result{Outcome: OutcomeCorrupted, Text: text, Err: err}
	}
	if err != nil {
		c.printer.Error("❌ Could not save fact: %s", err)
		c.logger.Error("archive write failed", zap.Error(err))
		return Result{Outcome: OutcomeSaveFailed, Text: text, Err: err}
	}
	if !added {
		c.printer.Warn("⚖️  Duplicate fact found. Not adding.")
		c.logger.Debug("duplicate fact", zap.String("text", text))
		return Result{Outcome: OutcomeDuplicate, Text: text}
	}

	c.printer.Success("🚀 New unique fact! Adding to archive.")
	if p, ok := c.store.(interface{ Path() string }); ok {
		c.printer.Success("✅ Facts successfully saved to %s", p.Path())
	}
	c.logger.Info("fact added", zap.String("text", text), zap.String("source", source))
	return Result{Outcome: OutcomeAdded, Text: text}
}

// Run repeats Collect every interval until ctx is cancelled or the
// iteration cap is reached. Cancellation is checked before each cycle and
// interrupts the wait between cycles. It returns nil on cancellation.
func (c *Collector) Run(ctx context.Context) error {
	runID := uuid.New().String()
	logger := c.logger.With(zap.String("run_id", runID))
	logger.Info("collector started",
		zap.Duration("interval", c.interval),
		zap.Int("max_iterations", c.maxIterations))

	stats := map[Outcome]int{}
	iterations := 0
	defer func() {
		logger.Info("collector stopped",
			zap.Int("iterations", iterations),
			zap.Int("added", stats[OutcomeAdded]),
			zap.Int("duplicates", stats[OutcomeDuplicate]),
			zap.Int("failures", stats[OutcomeFetchFailed]+stats[OutcomeSaveFailed]+stats[OutcomeCorrupted]))
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		res := c.Collect(ctx)
		stats[res.Outcome]++
		iterations++

		if c.maxIterations > 0 && iterations >= c.maxIterations {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}

		c.printer.Separator()
		c.printer.Help("--- Sleeping for %s... ---", c.interval)
		if err := wait(ctx, c.interval); err != nil {
			return nil
		}
	}
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
