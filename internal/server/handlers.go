package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/rpgo/projection-engine/internal/calculation"
	"github.com/rpgo/projection-engine/internal/config"
	"github.com/rpgo/projection-engine/internal/domain"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports that the service is up.
//
// Endpoint: GET /api/system/health
func Health(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

// ProjectionHandler serves the calculator endpoints
type ProjectionHandler struct {
	engine *calculation.CalculationEngine
	parser *config.InputParser
	logger *slog.Logger
}

// NewProjectionHandler creates a new ProjectionHandler
func NewProjectionHandler(engine *calculation.CalculationEngine, logger *slog.Logger) *ProjectionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectionHandler{
		engine: engine,
		parser: config.NewInputParser(),
		logger: logger,
	}
}

// decodeBody reads a JSON request body into T, rejecting unknown fields.
// It writes the 400 response itself and reports false on failure.
func decodeBody[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, false
	}
	var v T
	if err := config.DecodeJSON(data, &v); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body", config.Issues(err))
		return nil, false
	}
	return &v, true
}

// respondInvalid writes a 400 with the flattened validation issues
func respondInvalid(w http.ResponseWriter, err error) {
	if issues := config.Issues(err); len(issues) > 0 {
		RespondError(w, http.StatusBadRequest, "validation failed", issues)
		return
	}
	RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}

func (h *ProjectionHandler) respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	if ctxErr := r.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		h.logger.Warn("projection cancelled", "path", r.URL.Path, "error", err)
		RespondError(w, http.StatusServiceUnavailable, "request cancelled", nil)
		return
	}
	h.logger.Error("projection failed", "path", r.URL.Path, "error", err)
	RespondError(w, http.StatusInternalServerError, "projection failed", err.Error())
}

// Buckets projects bucket balances and payouts.
//
// Endpoint: POST /api/projection/buckets
// Request: domain.BucketPlan
// Response: 200 OK with domain.BucketProjection
func (h *ProjectionHandler) Buckets(w http.ResponseWriter, r *http.Request) {
	plan, ok := decodeBody[domain.BucketPlan](w, r)
	if !ok {
		return
	}
	if err := config.ValidateBucketPlan(plan); err != nil {
		respondInvalid(w, err)
		return
	}
	projection, err := h.engine.ProjectBuckets(r.Context(), *plan)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, projection.Rounded())
}

// Accumulation forecasts service-tiered contributions.
//
// Endpoint: POST /api/projection/accumulation
func (h *ProjectionHandler) Accumulation(w http.ResponseWriter, r *http.Request) {
	plan, ok := decodeBody[domain.AccumulationPlan](w, r)
	if !ok {
		return
	}
	if err := config.ValidateAccumulationPlan(plan); err != nil {
		respondInvalid(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, h.engine.ForecastAccumulation(*plan).Rounded())
}

// LumpSum compares a lump sum against annual payments.
//
// Endpoint: POST /api/projection/lump-sum
func (h *ProjectionHandler) LumpSum(w http.ResponseWriter, r *http.Request) {
	plan, ok := decodeBody[domain.LumpSumPlan](w, r)
	if !ok {
		return
	}
	if err := config.ValidateLumpSumPlan(plan); err != nil {
		respondInvalid(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, h.engine.CompareLumpSum(*plan).Rounded())
}

// SharePlan accumulates yearly share grants.
//
// Endpoint: POST /api/projection/share-plan
func (h *ProjectionHandler) SharePlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := decodeBody[domain.SharePlan](w, r)
	if !ok {
		return
	}
	if err := config.ValidateSharePlan(plan); err != nil {
		respondInvalid(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, h.engine.AccumulateSharePlan(*plan).Rounded())
}

// SocialSecurity compares claiming ages and their breakeven months.
//
// Endpoint: POST /api/projection/social-security
func (h *ProjectionHandler) SocialSecurity(w http.ResponseWriter, r *http.Request) {
	plan, ok := decodeBody[domain.SocialSecurityPlan](w, r)
	if !ok {
		return
	}
	if err := config.ValidateSocialSecurityPlan(plan); err != nil {
		respondInvalid(w, err)
		return
	}
	analysis, err := h.engine.AnalyzeSocialSecurity(r.Context(), *plan)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, analysis.Rounded())
}

// Run executes every calculator present in a configuration document.
//
// Endpoint: POST /api/projection/run
// Request: domain.Configuration
// Response: 200 OK with domain.Report
func (h *ProjectionHandler) Run(w http.ResponseWriter, r *http.Request) {
	cfg, ok := decodeBody[domain.Configuration](w, r)
	if !ok {
		return
	}
	if err := h.parser.ValidateConfiguration(cfg); err != nil {
		respondInvalid(w, err)
		return
	}
	report, err := h.engine.Run(r.Context(), cfg)
	if err != nil {
		h.respondFailure(w, r, fmt.Errorf("run failed: %w", err))
		return
	}
	RespondJSON(w, http.StatusOK, report.Rounded())
}
