package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
	domanalysis "github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis/filter"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis/query"
)

// Operation names reported to the Observer.
const (
	OpAnalyze   = "analyze"
	OpGet       = "get"
	OpList      = "list"
	OpDelete    = "delete"
	OpInterpret = "interpret"
)

// Interpretation is the result of a natural language query.
type Interpretation struct {
	Phrase  string
	Spec    filter.Spec
	Entries []domanalysis.Entry
}

// Service handles analysis, lookup, filtering and natural language queries.
type Service struct {
	repo     Repository
	now      func() time.Time
	observer Observer
}

// New creates an analysis service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the creation timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// WithObserver reports operation outcomes to o.
func (s *Service) WithObserver(o Observer) *Service {
	s.observer = o
	return s
}

// Analyze computes the properties of input and stores them.
// Fails with domain.ErrInvalidInput for empty input and domain.ErrDuplicateInput
// if input was already analyzed.
func (s *Service) Analyze(ctx context.Context, input string) (entry domanalysis.Entry, err error) {
	defer func() { s.observe(OpAnalyze, err) }()

	if input != "" {
		exists, existsErr := s.repo.Exists(ctx, input)
		if existsErr != nil {
			return domanalysis.Entry{}, fmt.Errorf("check exists: %w", existsErr)
		}
		if exists {
			return domanalysis.Entry{}, fmt.Errorf("analyze %q: %w", input, domain.ErrDuplicateInput)
		}
	}

	record, err := domanalysis.Analyze(input)
	if err != nil {
		return domanalysis.Entry{}, fmt.Errorf("analyze: %w", err)
	}

	entry = domanalysis.NewEntry(record, s.now())
	if err = s.repo.Insert(ctx, entry); err != nil {
		return domanalysis.Entry{}, fmt.Errorf("insert: %w", err)
	}
	return entry, nil
}

// Get returns the entry for the exact original input.
func (s *Service) Get(ctx context.Context, input string) (entry domanalysis.Entry, err error) {
	defer func() { s.observe(OpGet, err) }()

	entry, err = s.repo.Get(ctx, input)
	if err != nil {
		return domanalysis.Entry{}, fmt.Errorf("get %q: %w", input, err)
	}
	return entry, nil
}

// List returns the entries matching spec in insertion order. An empty spec matches all.
// Fails with domain.ErrInvalidFilter if spec is malformed.
func (s *Service) List(ctx context.Context, spec filter.Spec) (entries []domanalysis.Entry, err error) {
	defer func() { s.observe(OpList, err) }()

	if err = spec.Validate(); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return s.list(ctx, spec)
}

func (s *Service) list(ctx context.Context, spec filter.Spec) ([]domanalysis.Entry, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return filter.Apply(spec, all), nil
}

// Delete removes the entry for the exact original input.
func (s *Service) Delete(ctx context.Context, input string) (err error) {
	defer func() { s.observe(OpDelete, err) }()

	if err = s.repo.Delete(ctx, input); err != nil {
		return fmt.Errorf("delete %q: %w", input, err)
	}
	return nil
}

// InterpretAndFilter parses phrase into filters and applies them to all entries.
// An empty result fails with a *NoMatchError carrying the parsed filters.
func (s *Service) InterpretAndFilter(ctx context.Context, phrase string) (res Interpretation, err error) {
	defer func() { s.observe(OpInterpret, err) }()

	spec, err := query.Interpret(phrase)
	if err != nil {
		return Interpretation{}, fmt.Errorf("interpret: %w", err)
	}

	entries, err := s.list(ctx, spec)
	if err != nil {
		return Interpretation{}, err
	}
	if len(entries) == 0 {
		return Interpretation{}, &NoMatchError{Phrase: phrase, Spec: spec}
	}

	return Interpretation{Phrase: phrase, Spec: spec, Entries: entries}, nil
}

// Count returns the number of stored entries.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func (s *Service) observe(op string, err error) {
	if s.observer != nil {
		s.observer.ObserveOperation(op, err)
	}
}
