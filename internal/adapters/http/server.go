package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"impactcompare/internal/api"
	"impactcompare/internal/domain"
	"impactcompare/internal/ports"
	"impactcompare/internal/workers/comparisonrunner"
)

// Inline images arrive base64-encoded in the body.
const maxBodyBytes = 32 << 20

const defaultWaitTimeout = 30

var _ api.StrictServerInterface = (*Server)(nil)

// Server implements the generated StrictServerInterface.
type Server struct {
	analyzer    ports.Analyzer
	comparisons ports.Comparisons
	jobs        ports.JobRepository
	processor   comparisonrunner.Processor
	logger      *slog.Logger

	// pollInterval paces wait=true requests whose job a worker claimed first.
	pollInterval time.Duration
}

// New builds the adapter. comparisons, jobs and processor may be nil when no
// store is configured; the comparisons operations then answer 404.
func New(analyzer ports.Analyzer, comparisons ports.Comparisons, jobs ports.JobRepository, processor comparisonrunner.Processor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		analyzer:     analyzer,
		comparisons:  comparisons,
		jobs:         jobs,
		processor:    processor,
		logger:       logger,
		pollInterval: 500 * time.Millisecond,
	}
}

// Routes returns a chi.Router mounting the generated handlers.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(limitBody)

	handler := api.NewStrictHandlerWithOptions(s, nil, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			s.fail(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err), "Invalid request body")
		},
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			details := "Request failed"
			var oe *opError
			if errors.As(err, &oe) {
				details = oe.details
			}
			s.fail(w, r, err, details)
		},
	})
	api.HandlerWithOptions(handler, api.ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err.Error(), "Invalid query parameter")
		},
	})
	return r
}

// CORS allows any origin and answers preflight requests.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// opError carries the client-facing details line alongside the cause.
type opError struct {
	err     error
	details string
}

func (e *opError) Error() string { return e.err.Error() }
func (e *opError) Unwrap() error { return e.err }

func failed(err error, details string) error {
	return &opError{err: err, details: details}
}

var errComparisonsDisabled = fmt.Errorf("%w: comparisons API is disabled", domain.ErrNotFound)

func (s *Server) GetHealthz(context.Context, api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
	return api.GetHealthz200JSONResponse{Status: "ok"}, nil
}

func (s *Server) PostAnalyzeVariants(ctx context.Context, req api.PostAnalyzeVariantsRequestObject) (api.PostAnalyzeVariantsResponseObject, error) {
	if err := validate(req.Body); err != nil {
		return nil, failed(err, "Failed to analyze variants")
	}
	res, err := s.analyzer.Analyze(ctx, *req.Body)
	if err != nil {
		return nil, failed(err, "Failed to analyze variants")
	}
	return api.PostAnalyzeVariants200JSONResponse(res), nil
}

func (s *Server) CreateComparison(ctx context.Context, req api.CreateComparisonRequestObject) (api.CreateComparisonResponseObject, error) {
	if s.comparisons == nil {
		return nil, failed(errComparisonsDisabled, "Failed to queue comparison")
	}
	if err := validate(req.Body); err != nil {
		return nil, failed(err, "Failed to queue comparison")
	}
	id, err := s.comparisons.Enqueue(ctx, *req.Body)
	if err != nil {
		return nil, failed(err, "Failed to queue comparison")
	}
	wait := req.Params.Wait != nil && *req.Params.Wait
	if !wait || s.jobs == nil || s.processor == nil {
		return api.CreateComparison202JSONResponse{ComparisonId: id}, nil
	}

	timeout := defaultWaitTimeout
	if req.Params.Timeout != nil && *req.Params.Timeout > 0 {
		timeout = *req.Params.Timeout
	}
	ctx2, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()
	// Same processor as the background workers.
	err = comparisonrunner.ProcessInline(ctx2, s.jobs, s.processor, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// A worker claimed the job between Enqueue and here.
		c, err := s.awaitComparison(ctx2, id)
		if err != nil {
			return nil, failed(err, "Failed to analyze variants")
		}
		return api.CreateComparison200JSONResponse(viewOf(c, true)), nil
	case err != nil:
		return nil, failed(err, "Failed to analyze variants")
	}
	c, err := s.comparisons.Get(ctx, id)
	if err != nil {
		return nil, failed(err, "Failed to load comparison")
	}
	return api.CreateComparison200JSONResponse(viewOf(c, true)), nil
}

// awaitComparison polls until the comparison reaches a terminal status or
// ctx ends.
func (s *Server) awaitComparison(ctx context.Context, id string) (domain.Comparison, error) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()
	for {
		c, err := s.comparisons.Get(ctx, id)
		if err != nil {
			return domain.Comparison{}, err
		}
		if c.Status.Terminal() {
			return c, nil
		}
		select {
		case <-ctx.Done():
			return domain.Comparison{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Server) ListComparisons(ctx context.Context, req api.ListComparisonsRequestObject) (api.ListComparisonsResponseObject, error) {
	if s.comparisons == nil {
		return nil, failed(errComparisonsDisabled, "Failed to list comparisons")
	}
	all, err := s.comparisons.List(ctx)
	if err != nil {
		return nil, failed(err, "Failed to list comparisons")
	}
	if l := req.Params.Limit; l != nil && *l > 0 && len(all) > *l {
		all = all[:*l]
	}
	out := make([]api.Comparison, 0, len(all))
	for _, c := range all {
		out = append(out, viewOf(c, false))
	}
	return api.ListComparisons200JSONResponse{Comparisons: out}, nil
}

func (s *Server) GetComparison(ctx context.Context, req api.GetComparisonRequestObject) (api.GetComparisonResponseObject, error) {
	if s.comparisons == nil {
		return nil, failed(errComparisonsDisabled, "Failed to load comparison")
	}
	c, err := s.comparisons.Get(ctx, req.Id)
	if err != nil {
		return nil, failed(err, "Failed to load comparison")
	}
	return api.GetComparison200JSONResponse(viewOf(c, true)), nil
}

func (s *Server) DeleteComparison(ctx context.Context, req api.DeleteComparisonRequestObject) (api.DeleteComparisonResponseObject, error) {
	if s.comparisons == nil {
		return nil, failed(errComparisonsDisabled, "Failed to delete comparison")
	}
	if err := s.comparisons.Delete(ctx, req.Id); err != nil {
		return nil, failed(err, "Failed to delete comparison")
	}
	return api.DeleteComparison204Response{}, nil
}

// viewOf is a stored comparison without its image payloads.
func viewOf(c domain.Comparison, withResult bool) api.Comparison {
	v := api.Comparison{
		Id:            c.ID,
		Status:        api.ComparisonStatus(c.Status),
		SourceDomainA: optional(c.SourceDomainA),
		SourceDomainB: optional(c.SourceDomainB),
		Context:       c.Context,
		Failure:       optional(c.Failure),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if c.Result != nil {
		summary := c.Result.Analysis.Summary()
		v.Summary = &summary
		if withResult {
			v.Result = c.Result
		}
	}
	return v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func validate(req *domain.AnalysisRequest) error {
	if req == nil || req.ImageA == "" || req.ImageB == "" {
		return fmt.Errorf("%w: both images are required", domain.ErrInvalidRequest)
	}
	return nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, details string) {
	status := statusFor(err)
	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err)
	msg := err.Error()
	switch status {
	case http.StatusTooManyRequests:
		msg = domain.ErrRateLimited.Error()
	case http.StatusPaymentRequired:
		msg = domain.ErrQuotaExhausted.Error()
	}
	writeError(w, status, msg, details)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrQuotaExhausted):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.Error{Error: msg, Details: &details}) //nolint:errcheck
}
