package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/theirongolddev/lifeclock/internal/model"
)

func performRequest(h http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestProject_PostComputes(t *testing.T) {
	s := New(Config{})
	rec := performRequest(s.Handler(), http.MethodPost, "/v1/project",
		`{"age":25,"allocation":{"sleep":7,"work":8,"phone":3,"exercise":1,"others":5}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var dash model.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.InDelta(t, 24.0, dash.TotalHours, 1e-9)
	assert.InDelta(t, 2661.458333, dash.Projection.For(model.Sleep).DaysLived, 1e-6)
	assert.Equal(t, 20.0, dash.GaugeBands[0].High)
	assert.Equal(t, 55, dash.Summary.YearsLeft)
}

func TestProject_PostRejects(t *testing.T) {
	s := New(Config{})
	rec := performRequest(s.Handler(), http.MethodPost, "/v1/project",
		`{"age":30,"allocation":{"sleep":10,"work":10,"phone":5}}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"totalHours": 25.0, "error": "EXCEEDS_24H"}, body)
}

func TestProject_NullFieldsCountAsZero(t *testing.T) {
	s := New(Config{})
	rec := performRequest(s.Handler(), http.MethodPost, "/v1/project",
		`{"age":40,"allocation":{"sleep":8,"work":null}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var dash model.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.InDelta(t, 8.0, dash.TotalHours, 1e-9)
	assert.Zero(t, dash.Projection.For(model.Work).DaysLived)
}

func TestProject_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"malformed json", `{"age":`, ""},
		{"unknown field", `{"age":25,"mood":"good"}`, ""},
		{"missing age", `{"allocation":{"sleep":8}}`, "age"},
		{"age out of range", `{"age":101,"allocation":{}}`, "age"},
		{"negative hours", `{"age":25,"allocation":{"work":-1}}`, "work"},
		{"hours above 24", `{"age":25,"allocation":{"phone":25}}`, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Config{})
			rec := performRequest(s.Handler(), http.MethodPost, "/v1/project", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.field, resp.Field)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestProject_Query(t *testing.T) {
	s := New(Config{})
	h := s.Handler()

	rec := performRequest(h, http.MethodGet, "/v1/project?age=25&sleep=7&work=8&phone=3&exercise=1&others=5", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(h, http.MethodGet, "/v1/project?age=25&sleep=24&work=0.5", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = performRequest(h, http.MethodGet, "/v1/project?age=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unparseable hours read as absent
	rec = performRequest(h, http.MethodGet, "/v1/project?age=25&sleep=lots&work=8", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dash model.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.InDelta(t, 8.0, dash.TotalHours, 1e-9)
}

func TestStatus_CountsOutcomes(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0"})
	h := s.Handler()

	performRequest(h, http.MethodGet, "/v1/project?age=25&sleep=8", "")
	performRequest(h, http.MethodGet, "/v1/project?age=25&sleep=20&work=5", "")
	performRequest(h, http.MethodGet, "/v1/project?age=0", "")

	rec := performRequest(h, http.MethodGet, "/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var st Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.EqualValues(t, 1, st.Computed)
	assert.EqualValues(t, 1, st.Rejected)
	assert.EqualValues(t, 1, st.Invalid)
	assert.EqualValues(t, 3, st.Requests)
	assert.Equal(t, "127.0.0.1:0", st.Addr)
}

func TestMetrics_Exposed(t *testing.T) {
	s := New(Config{})
	h := s.Handler()

	performRequest(h, http.MethodGet, "/v1/project?age=25&sleep=8", "")
	rec := performRequest(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `lifeclock_projections_total{outcome="computed"} 1`)
	assert.Contains(t, body, `lifeclock_projections_total{outcome="rejected"} 0`)
	assert.Contains(t, body, "lifeclock_allocation_total_hours_count 1")
}

func TestHealthz(t *testing.T) {
	rec := performRequest(New(Config{}).Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	rec := performRequest(New(Config{}).Handler(), http.MethodDelete, "/v1/project", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := New(Config{Logger: zap.New(core)})
	h := s.Handler()

	rec := performRequest(h, http.MethodGet, "/healthz", "")
	id := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err, "generated id %q", id)

	// a valid incoming ID is echoed back
	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/v1/project", bytes.NewBufferString(`{"age":25}`))
	req.Header.Set(RequestIDHeader, incoming)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	last := entries[1].ContextMap()
	assert.Equal(t, incoming, last["request_id"])
	assert.EqualValues(t, http.StatusOK, last["status"])
	assert.Equal(t, "/v1/project", last["path"])
}
