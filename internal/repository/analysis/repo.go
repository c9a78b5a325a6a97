// Package analysis stores analysis entries in process memory.
package analysis

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
	domanalysis "github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
)

// Repo implements usecase/analysis.Repository.
// An index keyed by input backs uniqueness and lookups; the slice keeps insertion order.
type Repo struct {
	mu      sync.RWMutex
	entries []domanalysis.Entry
	index   map[string]int
	size    prometheus.Gauge
}

// New creates an empty repository.
func New() *Repo {
	return &Repo{index: make(map[string]int)}
}

// WithSizeGauge reports the number of stored entries to g.
func (r *Repo) WithSizeGauge(g prometheus.Gauge) *Repo {
	r.size = g
	return r
}

// Insert appends e. Returns domain.ErrDuplicateInput if its input is already stored.
func (r *Repo) Insert(_ context.Context, e domanalysis.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[e.Input()]; ok {
		return fmt.Errorf("%q: %w", e.Input(), domain.ErrDuplicateInput)
	}
	r.index[e.Input()] = len(r.entries)
	r.entries = append(r.entries, e)
	r.reportSize()
	return nil
}

// Get returns the entry keyed by input.
func (r *Repo) Get(_ context.Context, input string) (domanalysis.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[input]
	if !ok {
		return domanalysis.Entry{}, domain.ErrNotFound
	}
	return r.entries[i], nil
}

// Exists reports whether input is stored.
func (r *Repo) Exists(_ context.Context, input string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[input]
	return ok, nil
}

// List returns a snapshot of all entries in insertion order.
func (r *Repo) List(_ context.Context) ([]domanalysis.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domanalysis.Entry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// Delete removes the entry keyed by input.
func (r *Repo) Delete(_ context.Context, input string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[input]
	if !ok {
		return domain.ErrNotFound
	}

	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	delete(r.index, input)
	for j := i; j < len(r.entries); j++ {
		r.index[r.entries[j].Input()] = j
	}
	r.reportSize()
	return nil
}

// Count returns the number of stored entries.
func (r *Repo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries), nil
}

// Ping reports whether the repository can serve requests.
func (r *Repo) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// reportSize must be called with mu held.
func (r *Repo) reportSize() {
	if r.size != nil {
		r.size.Set(float64(len(r.entries)))
	}
}
