package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriBug/internal/graph"
	"github.com/Rorical/RoriBug/internal/models"
)

type fakeGenerator struct {
	application string
	description string
	body        string
	err         error
}

func (f *fakeGenerator) Generate(_ context.Context, application, description string) (string, error) {
	f.application = application
	f.description = description
	return f.body, f.err
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const scenarioBody = `{"messages":[{"sender":"user","text":"Wikimedia Commons"},{"sender":"user","text":"button is broken"},{"sender":"ai","text":"Thanks for your description. Please wait a moment while I generate your complete bug report."}]}`

func TestGenerateReport_OK(t *testing.T) {
	gen := &fakeGenerator{body: "REPORT TEXT"}
	router := NewRouter(NewHandler(gen), Options{AllowedOrigins: []string{"http://localhost:5173"}})

	rec := do(t, router, http.MethodPost, "/generateReport", scenarioBody, map[string]string{"Content-Type": "application/json"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Wikimedia Commons", gen.application)
	assert.Equal(t, "button is broken", gen.description)

	var resp models.ReportResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "REPORT TEXT", resp.Body)
}

func TestGenerateReport_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{name: "invalid json", body: "{", want: http.StatusBadRequest},
		{name: "too few messages", body: `{"messages":[{"sender":"user","text":"app"}]}`, want: http.StatusBadRequest},
		{name: "unknown graph", body: scenarioBody, err: &graph.NotFoundError{Application: "x", Err: errors.New("missing")}, want: http.StatusNotFound},
		{name: "unreadable graph", body: scenarioBody, err: &graph.ReadError{Path: "g.txt", Err: errors.New("bad")}, want: http.StatusInternalServerError},
		{name: "model failure", body: scenarioBody, err: errors.New("rate limited"), want: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(NewHandler(&fakeGenerator{err: tt.err}), Options{})
			rec := do(t, router, http.MethodPost, "/generateReport", tt.body, nil)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestPing(t *testing.T) {
	router := NewRouter(NewHandler(&fakeGenerator{}), Options{})

	rec := do(t, router, http.MethodGet, "/ping", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestCORS(t *testing.T) {
	router := NewRouter(NewHandler(&fakeGenerator{}), Options{AllowedOrigins: []string{"http://localhost:5173"}})

	rec := do(t, router, http.MethodOptions, "/generateReport", "", map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": "POST",
	})
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, router, http.MethodGet, "/ping", "", map[string]string{"Origin": "http://evil.example"})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	router := NewRouter(NewHandler(&fakeGenerator{body: "r"}), Options{RequestsPerMinute: 2})

	for i := 0; i < 2; i++ {
		rec := do(t, router, http.MethodPost, "/generateReport", scenarioBody, nil)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
	rec := do(t, router, http.MethodPost, "/generateReport", scenarioBody, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// ping is not limited
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/ping", "", nil).Code)
}
