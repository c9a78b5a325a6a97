package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis/filter"
	logpkg "github.com/kailas-cloud/stranalyzer/internal/logger"
	analysisuc "github.com/kailas-cloud/stranalyzer/internal/usecase/analysis"
	healthuc "github.com/kailas-cloud/stranalyzer/internal/usecase/health"
)

const defaultMaxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the strings API on a chi router.
type Server struct {
	analysis      *analysisuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(analysis *analysisuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		analysis:     analysis,
		health:       health,
		logger:       logger,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		invalidFilterHandler,
		noMatchHandler,
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeInvalidInput),
		sentinelHandler(domain.ErrUnparsableQuery, http.StatusBadRequest, CodeUnparsableQuery),
		sentinelHandler(domain.ErrDuplicateInput, http.StatusConflict, CodeAlreadyExists),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
	}
	return s
}

// WithMaxBodyBytes limits the size of request bodies.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// CreateString handles POST /strings.
func (s *Server) CreateString(w http.ResponseWriter, r *http.Request) {
	var req createStringRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body")
		return
	}

	raw := req.raw()
	if raw == nil {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, `Missing "value" field`)
		return
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		writeError(w, http.StatusUnprocessableEntity, CodeInvalidType, `"value" must be a string`)
		return
	}

	entry, err := s.analysis.Analyze(r.Context(), value)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, NewStringResponse(entry))
}

// ListStrings handles GET /strings.
func (s *Server) ListStrings(w http.ResponseWriter, r *http.Request) {
	raw, err := bindFilterParams(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	spec, err := filter.Parse(raw)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	entries, err := s.analysis.List(r.Context(), spec)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Data:           stringsToResponse(entries),
		Count:          len(entries),
		FiltersApplied: spec,
	})
}

// FilterByNaturalLanguage handles GET /strings/filter-by-natural-language.
func (s *Server) FilterByNaturalLanguage(w http.ResponseWriter, r *http.Request) {
	var phrase *string
	if err := runtime.BindQueryParameter("form", true, false, "query", r.URL.Query(), &phrase); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid format for parameter query")
		return
	}

	var q string
	if phrase != nil {
		q = *phrase
	}

	res, err := s.analysis.InterpretAndFilter(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NaturalLanguageResponse{
		Data:  stringsToResponse(res.Entries),
		Count: len(res.Entries),
		InterpretedQuery: InterpretedQuery{
			Original:      res.Phrase,
			ParsedFilters: res.Spec,
		},
	})
}

// GetString handles GET /strings/{value}.
func (s *Server) GetString(w http.ResponseWriter, r *http.Request) {
	value, ok := bindValue(w, r)
	if !ok {
		return
	}

	entry, err := s.analysis.Get(r.Context(), value)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NewStringResponse(entry))
}

// DeleteString handles DELETE /strings/{value}.
func (s *Server) DeleteString(w http.ResponseWriter, r *http.Request) {
	value, ok := bindValue(w, r)
	if !ok {
		return
	}

	if err := s.analysis.Delete(r.Context(), value); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Records: report.Records,
	})
}

func bindValue(w http.ResponseWriter, r *http.Request) (string, bool) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", "value", chirouter.URLParam(r, "value"), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid format for parameter value")
		return "", false
	}
	return value, true
}

func bindFilterParams(q url.Values) (filter.Raw, error) {
	var raw filter.Raw
	params := []struct {
		name string
		dest **string
	}{
		{filter.FieldIsPalindrome, &raw.IsPalindrome},
		{filter.FieldMinLength, &raw.MinLength},
		{filter.FieldMaxLength, &raw.MaxLength},
		{filter.FieldWordCount, &raw.WordCount},
		{filter.FieldContainsCharacter, &raw.ContainsCharacter},
	}
	for _, p := range params {
		if err := runtime.BindQueryParameter("form", true, false, p.name, q, p.dest); err != nil {
			return filter.Raw{}, domain.NewInvalidFilter(p.name, "expected a single value")
		}
	}
	return raw, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client message for err without exposing internals.
func safeDomainMessage(err error) string {
	var ife *domain.InvalidFilterError
	if errors.As(err, &ife) {
		return ife.Error()
	}
	sentinels := []error{
		domain.ErrInvalidInput,
		domain.ErrDuplicateInput,
		domain.ErrInvalidFilter,
		domain.ErrUnparsableQuery,
		domain.ErrNotFound,
		domain.ErrNoMatch,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// invalidFilterHandler reports the offending filter field.
func invalidFilterHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidFilter) {
		return false
	}
	var ife *domain.InvalidFilterError
	if errors.As(err, &ife) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":    CodeInvalidFilter,
			"message": msg,
			"field":   ife.Field,
		})
		return true
	}
	writeError(w, http.StatusBadRequest, CodeInvalidFilter, msg)
	return true
}

// noMatchHandler echoes the interpreted query so clients can see why nothing matched.
func noMatchHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrNoMatch) {
		return false
	}
	var nme *analysisuc.NoMatchError
	if errors.As(err, &nme) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"code":    CodeNoMatch,
			"message": msg,
			"interpreted_query": InterpretedQuery{
				Original:      nme.Phrase,
				ParsedFilters: nme.Spec,
			},
		})
		return true
	}
	writeError(w, http.StatusNotFound, CodeNoMatch, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
