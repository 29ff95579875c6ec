package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

// recentLimit caps how many records the list endpoints return.
const recentLimit = 50

// ListTestResults returns the most recent test results, newest first.
func (h *Handler) ListTestResults(w http.ResponseWriter, r *http.Request) {
	records, err := h.results.ListRecent(r.Context(), recentLimit)
	if err != nil {
		h.logger.Error("failed to list test results", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch test results")
		return
	}

	resp := make([]TestResultResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toTestResultResponse(rec))
	}

	writeJSON(w, http.StatusOK, resp)
}

// SaveTestResult appends a test result on behalf of a client. The dispatcher
// persists its own results; this endpoint exists for callers that run tests
// elsewhere and only want the record kept.
func (h *Handler) SaveTestResult(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Service string `json:"service"`
		Success bool   `json:"success"`
		Message string `json:"message"`
		Details string `json:"details"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := h.results.Append(r.Context(), model.TestResult{
		Service: req.Service,
		Success: req.Success,
		Message: req.Message,
		Details: req.Details,
	})
	if err != nil {
		h.logger.Error("failed to save test result", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save test result")
		return
	}

	writeJSON(w, http.StatusOK, toTestResultResponse(stored))
}

// ListErrorLogs returns the most recent error log entries, newest first.
func (h *Handler) ListErrorLogs(w http.ResponseWriter, r *http.Request) {
	records, err := h.errlog.ListRecent(r.Context(), recentLimit)
	if err != nil {
		h.logger.Error("failed to list error logs", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch error logs")
		return
	}

	resp := make([]ErrorLogResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toErrorLogResponse(rec))
	}

	writeJSON(w, http.StatusOK, resp)
}

// LogError appends a client-reported error to the error log.
func (h *Handler) LogError(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Service string `json:"service"`
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := h.errlog.Append(r.Context(), model.ErrorLog{
		Service: req.Service,
		Error:   req.Error,
		Details: req.Details,
	})
	if err != nil {
		h.logger.Error("failed to log error", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to log error")
		return
	}

	writeJSON(w, http.StatusOK, toErrorLogResponse(stored))
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
