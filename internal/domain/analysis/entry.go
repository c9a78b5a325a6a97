package analysis

import "time"

// Entry is a stored record together with the time it was created.
type Entry struct {
	record    Record
	createdAt time.Time
}

// NewEntry creates an Entry. createdAt is normalized to UTC.
func NewEntry(record Record, createdAt time.Time) Entry {
	return Entry{record: record, createdAt: createdAt.UTC()}
}

// Record returns the analysis record.
func (e Entry) Record() Record { return e.record }

// Input returns the record key.
func (e Entry) Input() string { return e.record.input }

// CreatedAt returns the creation timestamp.
func (e Entry) CreatedAt() time.Time { return e.createdAt }
