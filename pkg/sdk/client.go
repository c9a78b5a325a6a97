package stranalyzer

import (
	"context"
	"fmt"
	"time"

	domanalysis "github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis/filter"
	analysisrepo "github.com/kailas-cloud/stranalyzer/internal/repository/analysis"
	analysisuc "github.com/kailas-cloud/stranalyzer/internal/usecase/analysis"
	healthuc "github.com/kailas-cloud/stranalyzer/internal/usecase/health"
)

// Internal interface for substitution in tests.
type analysisUseCase interface {
	Analyze(ctx context.Context, input string) (domanalysis.Entry, error)
	Get(ctx context.Context, input string) (domanalysis.Entry, error)
	List(ctx context.Context, spec filter.Spec) ([]domanalysis.Entry, error)
	Delete(ctx context.Context, input string) error
	InterpretAndFilter(ctx context.Context, phrase string) (analysisuc.Interpretation, error)
	Count(ctx context.Context) (int, error)
}

// Client is the stranalyzer SDK entry point.
// It is safe for concurrent use.
type Client struct {
	svc       analysisUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client backed by a fresh in-memory store.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	repo := analysisrepo.New()
	if g := obs.sizeGauge(); g != nil {
		repo = repo.WithSizeGauge(g)
	}
	svc := analysisuc.New(repo).WithClock(cfg.clock)

	return &Client{
		svc:       svc,
		healthSvc: healthuc.New(repo, repo),
		obs:       obs,
	}, nil
}

// Analyze computes and stores the properties of s.
// Returns ErrInvalidInput for an empty string and ErrDuplicateInput if s was already analyzed.
func (c *Client) Analyze(ctx context.Context, s string) (_ Analysis, err error) {
	start := time.Now()
	defer func() { c.obs.observe("analyze", start, err) }()

	e, err := c.svc.Analyze(ctx, s)
	if err != nil {
		return Analysis{}, fmt.Errorf("analyze: %w", err)
	}
	return analysisFromEntry(e), nil
}

// Get returns the analysis of exactly s.
func (c *Client) Get(ctx context.Context, s string) (_ Analysis, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get", start, err) }()

	e, err := c.svc.Get(ctx, s)
	if err != nil {
		return Analysis{}, fmt.Errorf("get: %w", err)
	}
	return analysisFromEntry(e), nil
}

// List returns the stored analyses matching f in insertion order.
// A zero Filter returns everything.
func (c *Client) List(ctx context.Context, f Filter) (_ []Analysis, err error) {
	start := time.Now()
	defer func() { c.obs.observe("list", start, err) }()

	entries, err := c.svc.List(ctx, f.toSpec())
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return analysesFromEntries(entries), nil
}

// Delete removes the analysis of exactly s.
func (c *Client) Delete(ctx context.Context, s string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("delete", start, err) }()

	if err = c.svc.Delete(ctx, s); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Query interprets a natural language phrase as a Filter and applies it.
// Returns ErrUnparsableQuery if nothing in the phrase was recognized and ErrNoMatch
// if the interpreted filter matched nothing.
func (c *Client) Query(ctx context.Context, phrase string) (_ QueryResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("query", start, err) }()

	res, err := c.svc.InterpretAndFilter(ctx, phrase)
	if err != nil {
		return QueryResult{}, fmt.Errorf("query: %w", err)
	}
	return QueryResult{
		Query:   res.Phrase,
		Filter:  filterFromSpec(res.Spec),
		Results: analysesFromEntries(res.Entries),
	}, nil
}

// Count returns the number of stored analyses.
func (c *Client) Count(ctx context.Context) (int, error) {
	n, err := c.svc.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
