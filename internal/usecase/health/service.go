package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Unhealthy indicates the record store cannot serve requests.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status  Status
	Checks  map[string]CheckResult
	Records int
}

// Service coordinates health checks.
type Service struct {
	store   StorePinger
	records RecordCounter
}

// New creates a Service. records can be nil.
func New(store StorePinger, records RecordCounter) *Service {
	return &Service{store: store, records: records}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{Status: Healthy, Checks: map[string]CheckResult{"store": CheckOK}}

	if err := s.store.Ping(ctx); err != nil {
		report.Checks["store"] = CheckError
		report.Status = Unhealthy
		return report
	}

	if s.records != nil {
		if n, err := s.records.Count(ctx); err == nil {
			report.Records = n
		}
	}
	return report
}
