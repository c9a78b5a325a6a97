package health

import "context"

// StorePinger checks record store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// RecordCounter reports how many records are held.
type RecordCounter interface {
	Count(ctx context.Context) (int, error)
}
