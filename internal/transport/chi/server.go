package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/smuseum/internal/domain"
	logpkg "github.com/kailas-cloud/smuseum/internal/logger"
	gen "github.com/kailas-cloud/smuseum/internal/transport/generated"
	healthuc "github.com/kailas-cloud/smuseum/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/smuseum/internal/usecase/lookup"
	"github.com/kailas-cloud/smuseum/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements generated.ServerInterface for the chi router.
type Server struct {
	lookup        *lookupuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	docsURL       string
	errorHandlers []errorHandler
}

// DefaultDocsURL is where GET /doc redirects unless WithDocsURL overrides it.
const DefaultDocsURL = "https://github.com/Moriblo/smuseum"

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(lookup *lookupuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		lookup:  lookup,
		health:  health,
		logger:  logger,
		docsURL: DefaultDocsURL,
	}
	s.errorHandlers = []errorHandler{
		remoteErrorHandler,
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest),
	}
	return s
}

// WithDocsURL sets the GET /doc redirect target. Empty keeps the default.
func (s *Server) WithDocsURL(u string) *Server {
	if u != "" {
		s.docsURL = u
	}
	return s
}

// Lookup handles GET /api/v1/lookup.
func (s *Server) Lookup(w http.ResponseWriter, r *http.Request, params gen.LookupParams) {
	q := domain.Query{
		Title:  deref(params.Title),
		Artist: deref(params.Artist),
	}

	res, err := s.lookup.Lookup(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if res.Status == lookupuc.StatusNotFound {
		status = http.StatusNotFound
		logpkg.FromContext(r.Context()).Debug("lookup not found",
			zap.Error(res.Reason),
			zap.Int("total", res.Total),
		)
	}

	writeJSON(w, status, lookupToGen(res))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]gen.HealthResponseChecks)
	for k, v := range report.Checks {
		checks[k] = gen.HealthResponseChecks(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, gen.HealthResponse{
		Status: gen.HealthResponseStatus(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// GetVersion handles GET /version.
func (s *Server) GetVersion(w http.ResponseWriter, _ *http.Request) {
	info := version.Get()
	writeJSON(w, http.StatusOK, gen.VersionResponse{
		Version: info.Version,
		Commit:  info.Commit,
		Date:    info.Date,
	})
}

// GetDoc handles GET /doc.
func (s *Server) GetDoc(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.docsURL, http.StatusFound)
}

// HandleParamError reports a query parameter binding failure as 400.
// It is meant for generated.ChiServerOptions.ErrorHandlerFunc.
func (s *Server) HandleParamError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleDomainError(w, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err))
}

func lookupToGen(res lookupuc.Result) gen.LookupResponse {
	return gen.LookupResponse{
		Link:       res.Link,
		Title:      res.Title,
		Artist:     res.Artist,
		Total:      res.Total,
		MatchCount: res.MatchCount,
		Museum:     res.Museum,
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code gen.ErrorResponseCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrRemote,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// remoteErrorHandler forwards museum failures. An upstream 4xx/5xx status is
// passed through; anything else becomes 502.
func remoteErrorHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrRemote) {
		return false
	}
	status := http.StatusBadGateway
	var re *domain.RemoteError
	if errors.As(err, &re) {
		if re.StatusCode >= 400 && re.StatusCode <= 599 {
			status = re.StatusCode
		}
		msg = re.Error()
	}
	writeJSON(w, status, gen.UpstreamErrorResponse{Message: msg})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error")
}
