package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sozercan/markdown-analyzer/apimodels"
	"github.com/sozercan/markdown-analyzer/internal/apierror"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	// Decode in two steps so a parsable body that is not a JSON object
	// (e.g. a bare null) lands in the generic invalid-body bucket rather
	// than producing field-level detail.
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.writeError(w, apierror.NewInvalidBody())
		return
	}
	if len(raw) == 0 || raw[0] != '{' {
		s.writeError(w, apierror.NewInvalidBody())
		return
	}

	var req apimodels.AnalysisRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		s.writeError(w, apierror.NewInvalidBody())
		return
	}

	if err := req.Validate(); err != nil {
		slog.Debug("Request failed validation", "error", err)
		s.writeError(w, apierror.NewInvalidRequest(err))
		return
	}

	result, aerr := s.analyzer.Analyze(r.Context(), req)
	if aerr != nil {
		s.writeError(w, aerr)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, apimodels.HealthResponse{OK: true})
}

func (s *Server) writeError(w http.ResponseWriter, aerr *apierror.Error) {
	s.writeJSON(w, aerr.Status, apimodels.ErrorResponse{
		Error:   aerr.Message,
		Details: aerr.Details,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response body", "error", err)
	}
}
