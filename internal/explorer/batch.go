package explorer

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/webexplore/webexplore/internal/model"
)

// DefaultBatchConcurrency is how many roots are explored at once.
// Each root carries its own browser session, so this stays small.
const DefaultBatchConcurrency = 2

// Factory builds a fresh Explorer for one root together with a cleanup
// that releases its fetcher resources. Explorers hold per-run state,
// so every root gets its own; the URL lets the factory apply per-site
// overrides.
type Factory func(rawURL string) (*Explorer, func())

// Request is one root to explore.
type Request struct {
	// URL is the root URL.
	URL string
	// Depth is the exploration depth for this root.
	Depth int
}

// Batch explores several roots concurrently with a bounded worker
// group. A root that fails outright is recorded as a failed result; it
// never aborts the other roots.
type Batch struct {
	factory     Factory
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithBatchConcurrency sets how many roots run at once.
func WithBatchConcurrency(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets the logger for per-root progress.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) {
		b.logger = logger
	}
}

// NewBatch returns a Batch using factory to build one Explorer per
// root.
func NewBatch(factory Factory, opts ...BatchOption) *Batch {
	b := &Batch{
		factory:     factory,
		concurrency: DefaultBatchConcurrency,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ExploreAll explores every request and returns one result per
// request, in input order.
func (b *Batch) ExploreAll(ctx context.Context, requests []Request) []*model.ExplorationResult {
	results := make([]*model.ExplorationResult, len(requests))

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i, req := range requests {
		g.Go(func() error {
			b.logger.Info("exploring root", "url", req.URL, "depth", req.Depth)

			ex, cleanup := b.factory(req.URL)
			defer cleanup()

			result, err := ex.Explore(ctx, req.URL, req.Depth)
			if err != nil {
				b.logger.Warn("root exploration failed", "url", req.URL, "error", err)
				failed := model.NewExplorationResult(req.URL, req.Depth)
				failed.Status = model.StatusFailed
				failed.Error = err.Error()
				failed.Content = []model.PageResult{}
				failed.Duration = time.Since(failed.StartedAt)
				results[i] = failed
				return nil
			}
			results[i] = result
			return nil
		})
	}
	// Per-root failures are recorded in place, so Wait only joins.
	_ = g.Wait()

	return results
}
