package stranalyzer

import "github.com/kailas-cloud/stranalyzer/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput    = domain.ErrInvalidInput
	ErrDuplicateInput  = domain.ErrDuplicateInput
	ErrInvalidFilter   = domain.ErrInvalidFilter
	ErrUnparsableQuery = domain.ErrUnparsableQuery
	ErrNotFound        = domain.ErrNotFound
	ErrNoMatch         = domain.ErrNoMatch
)

// InvalidFilterError names the filter field that was rejected.
// Use errors.As() to extract it.
type InvalidFilterError = domain.InvalidFilterError
