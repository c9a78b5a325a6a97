package analysis

import (
	"fmt"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis/filter"
)

// NoMatchError wraps domain.ErrNoMatch with the phrase and the filters parsed from it.
type NoMatchError struct {
	Phrase string
	Spec   filter.Spec
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("%s for query %q", domain.ErrNoMatch.Error(), e.Phrase)
}

func (e *NoMatchError) Unwrap() error { return domain.ErrNoMatch }
