package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/spivocab/internal/attempt"
	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

// AttemptSource reads the whole attempt log.
type AttemptSource interface {
	All(ctx context.Context) ([]attempt.Attempt, error)
}

// Aggregator computes progress from a live attempt log.
type Aggregator struct {
	source  AttemptSource
	catalog *vocabulary.Catalog
	now     func() time.Time
}

type AggregatorOption func(*Aggregator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		a.now = now
	}
}

func NewAggregator(source AttemptSource, catalog *vocabulary.Catalog, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		source:  source,
		catalog: catalog,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregator) Progress(ctx context.Context) (Progress, error) {
	attempts, err := a.source.All(ctx)
	if err != nil {
		return Progress{}, fmt.Errorf("source.All > %w", err)
	}
	return CalculateProgress(attempts, a.catalog, a.now()), nil
}
