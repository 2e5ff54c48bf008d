package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/theirongolddev/lifeclock/internal/model"
	"github.com/theirongolddev/lifeclock/internal/pipeline"
)

// maxBodyBytes bounds a projection request body; the real payload is tiny.
const maxBodyBytes = 4 << 10

// ProjectRequest is the input shape: an age and the five daily hours.
type ProjectRequest struct {
	Age        *int             `json:"age"`
	Allocation model.Allocation `json:"allocation"`
}

// ErrorResponse is returned for malformed requests and boundary violations.
type ErrorResponse struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Error codes for non-projection failures.
const (
	codeBadRequest   = "BAD_REQUEST"
	codeInvalidInput = "INVALID_INPUT"
)

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleProjectBody(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.record(outcomeInvalid, 0, false)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  codeBadRequest,
			Detail: fmt.Sprintf("decoding request body: %v", err),
		})
		return
	}
	s.project(w, r, req)
}

func (s *Service) handleProjectQuery(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r.URL.Query())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.project(w, r, req)
}

// requestFromQuery reads ?age=&sleep=&work=&phone=&exercise=&others=.
// Unparseable hours count as absent, like a blank form field.
func requestFromQuery(q url.Values) (ProjectRequest, error) {
	var req ProjectRequest
	if q.Has("age") {
		age, err := pipeline.ParseAge(q.Get("age"))
		if err != nil {
			return req, err
		}
		req.Age = &age
	}
	for _, a := range model.Activities {
		req.Allocation.Set(a, pipeline.ParseHours(q.Get(a.Key())))
	}
	return req, nil
}

func (s *Service) project(w http.ResponseWriter, r *http.Request, req ProjectRequest) {
	if req.Age == nil {
		s.respondError(w, r, &pipeline.InputError{Field: "age", Reason: "value is required"})
		return
	}

	dash, err := pipeline.Compute(req.Allocation, *req.Age)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.record(outcomeComputed, dash.TotalHours, true)
	writeJSON(w, http.StatusOK, dash)
}

// respondError maps pipeline errors onto status codes: 422 with the failure
// shape for an infeasible total, 400 for everything else.
func (s *Service) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if rej, ok := pipeline.AsRejection(err); ok {
		s.record(outcomeRejected, rej.TotalHours, true)
		writeJSON(w, http.StatusUnprocessableEntity, rej)
		return
	}

	s.record(outcomeInvalid, 0, false)

	var inErr *pipeline.InputError
	if errors.As(err, &inErr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  codeInvalidInput,
			Field:  inErr.Field,
			Detail: inErr.Reason,
		})
		return
	}

	s.log.Error("unexpected projection error", zap.Error(err), zap.String("request_id", requestID(r)))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL", Detail: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
