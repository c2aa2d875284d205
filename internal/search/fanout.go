package search

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/altinukshini/assetflow-tui/internal/metrics"
	"github.com/altinukshini/assetflow-tui/internal/model"
)

// Source lists the four searchable collections in full.
type Source interface {
	ListAssets(ctx context.Context) ([]model.Asset, error)
	ListMovements(ctx context.Context) ([]model.Movement, error)
	ListVendors(ctx context.Context) ([]model.Vendor, error)
	ListCostings(ctx context.Context) ([]model.Costing, error)
}

// Searcher fetches every collection concurrently and runs the engine over
// whatever arrived. A failed fetch contributes no results.
type Searcher struct {
	source  Source
	engine  *Engine
	timeout time.Duration
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

type Option func(*Searcher)

func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) { s.timeout = d }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Searcher) { s.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Searcher) { s.metrics = m }
}

func NewSearcher(source Source, engine *Engine, opts ...Option) *Searcher {
	s := &Searcher{
		source:  source,
		engine:  engine,
		timeout: 15 * time.Second,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Searcher) Engine() *Engine {
	return s.engine
}

// Search runs a full fan-out search. A blank query returns nil without any
// fetch.
func (s *Searcher) Search(ctx context.Context, query string) []model.SearchResult {
	if isBlank(query) {
		return nil
	}
	start := time.Now()
	cols := s.Fetch(ctx)
	results := s.engine.Search(cols, query)
	s.metrics.RecordSearch(time.Since(start))
	s.log.WithFields(logrus.Fields{
		"query":    query,
		"results":  len(results),
		"duration": time.Since(start).String(),
	}).Debug("search complete")
	return results
}

// Fetch loads all four collections concurrently. Total latency is bounded by
// the slowest fetch.
func (s *Searcher) Fetch(ctx context.Context) Collections {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var cols Collections
	var g errgroup.Group

	g.Go(func() error {
		assets, err := s.source.ListAssets(ctx)
		if s.failed(model.EntityAsset, err) {
			return nil
		}
		cols.Assets = assets
		return nil
	})
	g.Go(func() error {
		movements, err := s.source.ListMovements(ctx)
		if s.failed(model.EntityMovement, err) {
			return nil
		}
		cols.Movements = movements
		return nil
	})
	g.Go(func() error {
		vendors, err := s.source.ListVendors(ctx)
		if s.failed(model.EntityVendor, err) {
			return nil
		}
		cols.Vendors = vendors
		return nil
	})
	g.Go(func() error {
		costings, err := s.source.ListCostings(ctx)
		if s.failed(model.EntityCosting, err) {
			return nil
		}
		cols.Costings = costings
		return nil
	})

	// Every goroutine swallows its own error.
	_ = g.Wait()
	return cols
}

func (s *Searcher) failed(entity model.EntityType, err error) bool {
	if err == nil {
		return false
	}
	s.metrics.RecordSourceFailure(string(entity))
	s.log.WithError(err).WithField("entity", entity).Warn("search source failed, skipping")
	return true
}
