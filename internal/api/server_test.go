package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edgegate/app"
	"edgegate/domain/verdict"
	"edgegate/internal"
	"edgegate/internal/errors"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	validator, err := app.NewValidationService(verdict.DefaultThresholds())
	require.NoError(t, err)
	sweeper := app.NewSweepService(validator, 2)
	return NewServer(validator, sweeper, internal.NewLogger(internal.LogLevelError))
}

func doJSON(t *testing.T, s *Server, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func validPoints() []map[string]any {
	points := []map[string]any{}
	signals := []float64{0.9, 0.8, 0.7, 0.4, 0.2}
	wins := []bool{true, true, true, false, false}
	for i := range signals {
		points = append(points, map[string]any{
			"signal_value": signals[i],
			"is_win":       wins[i],
		})
	}
	return points
}

// TestHealthEndpoint tests the liveness probe
func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// TestValidateEndpoint tests a successful validation round trip
func TestValidateEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, "/v1/validate", map[string]any{
		"signal_name":        "momentum",
		"wins":               120,
		"total":              200,
		"points":             validPoints(),
		"strength_threshold": 0.5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		SignalName string                   `json:"signal_name"`
		Record     verdict.ValidationRecord `json:"record"`
		Decision   verdict.Recommendation   `json:"decision"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "momentum", resp.SignalName)
	assert.Equal(t, 200, resp.Record.SampleSize)
	assert.Equal(t, verdict.RecommendationApproved, resp.Decision)
}

// TestValidateEndpointRejectsDegenerateSample tests the 422 mapping for
// domain failures.
func TestValidateEndpointRejectsDegenerateSample(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, "/v1/validate", map[string]any{
		"signal_name": "momentum",
		"wins":        250,
		"total":       200,
		"points":      validPoints(),
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errors.CodeInvalidSample, resp["code"])
}

// TestValidateEndpointRejectsMalformedBody tests binding failures
func TestValidateEndpointRejectsMalformedBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestReportEndpoint tests rendered-report responses in both formats
func TestReportEndpoint(t *testing.T) {
	s := newTestServer(t)
	payload := map[string]any{
		"signal_name": "momentum",
		"wins":        120,
		"total":       200,
		"points":      validPoints(),
	}

	w := doJSON(t, s, "/v1/report", payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Signal Validation Report: momentum")
	assert.Contains(t, w.Body.String(), "RECOMMENDATION")

	w = doJSON(t, s, "/v1/report?format=html", payload)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1")

	w = doJSON(t, s, "/v1/report?format=pdf", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestSweepEndpoint tests the sweep round trip
func TestSweepEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, "/v1/sweep", map[string]any{
		"signal_name": "momentum",
		"wins":        120,
		"total":       200,
		"points":      validPoints(),
		"thresholds":  []float64{0.3, 0.5, 0.7},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp app.SweepResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Cells, 3)
	assert.Equal(t, "momentum", resp.SignalName)
}
