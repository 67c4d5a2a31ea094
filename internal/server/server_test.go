package server

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/projection-engine/internal/calculation"
	"github.com/rpgo/projection-engine/internal/config"
	"github.com/rpgo/projection-engine/internal/domain"
)

func newTestRouter(t *testing.T) (http.Handler, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return NewRouter(calculation.NewCalculationEngine(), config.DefaultSettings(), logger), &logs
}

func post(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(http.MethodPost, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func example() *domain.Configuration {
	return config.NewInputParser().CreateExampleConfiguration()
}

func TestHealth(t *testing.T) {
	h, logs := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)

	assert.Contains(t, logs.String(), "path=/api/system/health")
	assert.Contains(t, logs.String(), "status=200")
}

func TestProjectionEndpoints(t *testing.T) {
	h, _ := newTestRouter(t)
	cfg := example()

	t.Run("buckets", func(t *testing.T) {
		w := post(t, h, "/api/projection/buckets", cfg.Buckets)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got domain.BucketProjection
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got.Payouts, len(cfg.Buckets.Buckets))
		assert.Equal(t, 2025, got.StartYear)
		for _, po := range got.Payouts {
			assert.True(t, po.Amount.Equal(po.Amount.Round(2)), "payout %s not rounded", po.Bucket)
		}
	})

	t.Run("accumulation", func(t *testing.T) {
		w := post(t, h, "/api/projection/accumulation", cfg.Accumulation)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got domain.AccumulationForecast
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 55, got.ReferenceAge)
		assert.Len(t, got.Rows, 10)
		assert.True(t, got.ServiceCreditEligible)
	})

	t.Run("lump sum", func(t *testing.T) {
		w := post(t, h, "/api/projection/lump-sum", cfg.LumpSum)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got domain.LumpSumComparison
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got.Rows, 10)
	})

	t.Run("share plan", func(t *testing.T) {
		w := post(t, h, "/api/projection/share-plan", cfg.SharePlan)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got domain.SharePlanAccumulation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got.Rows, 13)
		assert.True(t, got.FinalValue.GreaterThan(decimal.Zero))
	})

	t.Run("social security", func(t *testing.T) {
		w := post(t, h, "/api/projection/social-security", cfg.SocialSecurity)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got domain.BreakevenAnalysis
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, []int{62, 67, 70}, got.ClaimAges)
		assert.Len(t, got.Breakevens, 3)
		assert.Equal(t, "62 vs 67", got.Breakevens[0].Pair)
	})

	t.Run("run", func(t *testing.T) {
		w := post(t, h, "/api/projection/run", cfg)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got domain.Report
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.NotEmpty(t, got.RunID)
		assert.NotNil(t, got.Buckets)
		assert.NotNil(t, got.Accumulation)
		assert.NotNil(t, got.LumpSum)
		assert.NotNil(t, got.SharePlan)
		assert.NotNil(t, got.SocialSecurity)
	})
}

func TestValidationFailures(t *testing.T) {
	h, _ := newTestRouter(t)

	t.Run("negative bucket balance reports field and row", func(t *testing.T) {
		plan := *example().Buckets
		plan.Buckets = append([]domain.Bucket(nil), plan.Buckets...)
		plan.Buckets[1].StartingBalance = decimal.NewFromInt(-5)

		w := post(t, h, "/api/projection/buckets", plan)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Error   string         `json:"error"`
			Details []config.Issue `json:"details"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "validation failed", resp.Error)
		require.Len(t, resp.Details, 1)
		assert.Equal(t, "range", resp.Details[0].Kind)
		assert.Equal(t, "starting_balance", resp.Details[0].Field)
		assert.Equal(t, 2, resp.Details[0].Row)
	})

	t.Run("hire date and years of service conflict", func(t *testing.T) {
		plan := *example().Accumulation
		hire := domain.NewDate(1995, 6, 1)
		plan.Person.HireDate = &hire

		w := post(t, h, "/api/projection/accumulation", plan)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"kind":"conflict"`)
	})

	t.Run("empty configuration", func(t *testing.T) {
		w := post(t, h, "/api/projection/run", "{}")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "no calculator sections provided")
	})

	t.Run("malformed json", func(t *testing.T) {
		w := post(t, h, "/api/projection/lump-sum", `{"years": `)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
	})

	t.Run("unknown field", func(t *testing.T) {
		w := post(t, h, "/api/projection/share-plan", `{"start_year": 2030, "bogus": 1}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
		assert.Contains(t, w.Body.String(), `"field":"bogus"`)
	})

	t.Run("malformed values", func(t *testing.T) {
		w := post(t, h, "/api/projection/run", `{"lump_sum": {"lump_sum_amount": "abc"}, "social_security": {"birth_date": "13/45/1990"}}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Error   string         `json:"error"`
			Details []config.Issue `json:"details"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "invalid request body", resp.Error)
		require.Len(t, resp.Details, 2)
		assert.Equal(t, "format", resp.Details[0].Kind)
		assert.Equal(t, "lump_sum.lump_sum_amount", resp.Details[0].Field)
		assert.Equal(t, "format", resp.Details[1].Kind)
		assert.Equal(t, "social_security.birth_date", resp.Details[1].Field)
	})
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/projection/run", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/projection/run", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewHTTPServer(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Addr = "127.0.0.1:9999"
	srv := NewHTTPServer(calculation.NewCalculationEngine(), settings, nil)
	assert.Equal(t, "127.0.0.1:9999", srv.Addr)
	assert.Equal(t, settings.ReadTimeout, srv.ReadTimeout)
	assert.Equal(t, settings.WriteTimeout, srv.WriteTimeout)
	assert.NotNil(t, srv.Handler)
}
