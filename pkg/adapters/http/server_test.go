package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/tetrator"
	"github.com/aretw0/tetrator/pkg/adapters/memory"
	"github.com/aretw0/tetrator/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc := tetrator.New(
		tetrator.WithCache(memory.NewCache(0)),
		tetrator.WithMetrics(observability.NewMetrics(reg)),
	)
	handler, err := NewHandler(svc, WithGatherer(reg))
	require.NoError(t, err)
	return handler
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/tetrate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestGetOpenAPI(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "TetrationRequest")
}

func TestTetrate_Success(t *testing.T) {
	handler := newTestHandler(t)

	rr := post(t, handler, `{"base":"3","height":"3"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp TetrationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "3", resp.Base)
	assert.Equal(t, "3", resp.Height)
	assert.Equal(t, "7625597484987", resp.Value)
	assert.Equal(t, 13, resp.Digits)
	assert.False(t, resp.Cached)

	rr = post(t, handler, `{"base":"3","height":"3"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
}

func TestTetrate_DigitsOnly(t *testing.T) {
	handler := newTestHandler(t)

	rr := post(t, handler, `{"base":"2","height":"5","digits_only":true}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp TetrationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Value)
	assert.Equal(t, 19729, resp.Digits)
}

func TestTetrate_ZeroIsAccepted(t *testing.T) {
	handler := newTestHandler(t)

	rr := post(t, handler, `{"base":"0","height":"2"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp TetrationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "1", resp.Value)
}

func TestTetrate_Overflow(t *testing.T) {
	handler := newTestHandler(t)

	rr := post(t, handler, `{"base":"3","height":"4"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Overflow)
	assert.NotEmpty(t, resp.Error)
}

func TestTetrate_BadRequests(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"Not JSON", `{base:3`},
		{"Missing Height", `{"base":"3"}`},
		{"Numeric Instead Of String", `{"base":3,"height":3}`},
		{"Negative", `{"base":"-3","height":"3"}`},
		{"Unknown Field", `{"base":"3","height":"3","mode":"fast"}`},
		{"Beyond 256 Bits", `{"base":"999999999999999999999999999999999999999999999999999999999999999999999999999999","height":"1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, handler, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	post(t, handler, `{"base":"2","height":"3"}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `tetrator_evaluations_total{outcome="ok"} 1`)
}
