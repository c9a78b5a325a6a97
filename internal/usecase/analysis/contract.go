package analysis

import (
	"context"

	domanalysis "github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
)

// Repository defines the storage contract for analysis entries.
type Repository interface {
	Insert(ctx context.Context, e domanalysis.Entry) error
	Get(ctx context.Context, input string) (domanalysis.Entry, error)
	Exists(ctx context.Context, input string) (bool, error)
	List(ctx context.Context) ([]domanalysis.Entry, error)
	Delete(ctx context.Context, input string) error
	Count(ctx context.Context) (int, error)
}

// Observer receives the outcome of every service operation.
type Observer interface {
	ObserveOperation(op string, err error)
}
