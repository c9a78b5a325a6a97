package chi

import (
	"encoding/json"
	"time"

	domanalysis "github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis/filter"
)

// ErrorCode is a machine-readable error kind returned to clients.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeInvalidInput     ErrorCode = "invalid_input"
	CodeInvalidType      ErrorCode = "invalid_type"
	CodeInvalidFilter    ErrorCode = "invalid_filter"
	CodeUnparsableQuery  ErrorCode = "unparsable_query"
	CodeAlreadyExists    ErrorCode = "already_exists"
	CodeNotFound         ErrorCode = "not_found"
	CodeNoMatch          ErrorCode = "no_match"
	CodeMethodNotAllowed ErrorCode = "method_not_allowed"
	CodeTooLarge         ErrorCode = "payload_too_large"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Properties are the computed properties of an analyzed string.
type Properties struct {
	Length                int                     `json:"length"`
	IsPalindrome          bool                    `json:"is_palindrome"`
	UniqueCharacters      int                     `json:"unique_characters"`
	WordCount             int                     `json:"word_count"`
	SHA256Hash            string                  `json:"sha256_hash"`
	CharacterFrequencyMap domanalysis.Frequencies `json:"character_frequency_map"`
}

// StringResponse is the single record envelope.
type StringResponse struct {
	ID         string     `json:"id"`
	Value      string     `json:"value"`
	Properties Properties `json:"properties"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ListResponse is returned by GET /strings.
type ListResponse struct {
	Data           []StringResponse `json:"data"`
	Count          int              `json:"count"`
	FiltersApplied filter.Spec      `json:"filters_applied"`
}

// InterpretedQuery echoes a natural language query and the filters derived from it.
type InterpretedQuery struct {
	Original      string      `json:"original"`
	ParsedFilters filter.Spec `json:"parsed_filters"`
}

// NaturalLanguageResponse is returned by GET /strings/filter-by-natural-language.
type NaturalLanguageResponse struct {
	Data             []StringResponse `json:"data"`
	Count            int              `json:"count"`
	InterpretedQuery InterpretedQuery `json:"interpreted_query"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Records int               `json:"records"`
}

// createStringRequest accepts "value" and its alias "input".
// Raw messages let the handler tell a missing field from a wrongly typed one.
type createStringRequest struct {
	Value json.RawMessage `json:"value"`
	Input json.RawMessage `json:"input"`
}

// raw returns the submitted value, preferring "value" over "input".
func (r createStringRequest) raw() json.RawMessage {
	if present(r.Value) {
		return r.Value
	}
	if present(r.Input) {
		return r.Input
	}
	return nil
}

func present(m json.RawMessage) bool {
	return len(m) > 0 && string(m) != "null"
}

// NewStringResponse converts a stored entry into its client representation.
func NewStringResponse(e domanalysis.Entry) StringResponse {
	rec := e.Record()
	return StringResponse{
		ID:    rec.SHA256Hash(),
		Value: rec.Input(),
		Properties: Properties{
			Length:                rec.Length(),
			IsPalindrome:          rec.IsPalindrome(),
			UniqueCharacters:      rec.UniqueCharacters(),
			WordCount:             rec.WordCount(),
			SHA256Hash:            rec.SHA256Hash(),
			CharacterFrequencyMap: rec.Frequencies(),
		},
		CreatedAt: e.CreatedAt(),
	}
}

func stringsToResponse(entries []domanalysis.Entry) []StringResponse {
	out := make([]StringResponse, len(entries))
	for i, e := range entries {
		out[i] = NewStringResponse(e)
	}
	return out
}
