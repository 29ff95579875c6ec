package httphandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ericfisherdev/keypanel/internal/application"
	"github.com/ericfisherdev/keypanel/internal/domain/model"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps known application errors onto HTTP responses.
// Unknown errors become an opaque 500 with the given fallback message.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var verr *application.ValidationError
	switch {
	case errors.Is(err, application.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, model.ErrUnsupportedService):
		writeError(w, http.StatusBadRequest, "Unsupported service")
	case errors.Is(err, driven.ErrAPIKeyNotFound):
		writeError(w, http.StatusNotFound, "API key not found or unauthorized")
	case errors.Is(err, driven.ErrEncryptionKeyNotSet):
		writeError(w, http.StatusInternalServerError, "Database connection failed")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// APIKeyResponse is the JSON representation of a stored API key. The key
// value is masked; the plaintext never leaves the server after creation.
type APIKeyResponse struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Key       string `json:"key"`
	ProjectID string `json:"projectId"`
	CreatedAt string `json:"createdAt"`
}

// CreateAPIKeyRequest is the JSON body for the add key endpoint.
type CreateAPIKeyRequest struct {
	Name      string `json:"name"`
	Key       string `json:"key"`
	ProjectID string `json:"projectId"`
}

// TestResultResponse is the JSON representation of one persisted test result.
type TestResultResponse struct {
	ID        string `json:"_id"`
	Service   string `json:"service"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// ErrorLogResponse is the JSON representation of one persisted error log entry.
type ErrorLogResponse struct {
	ID        string `json:"_id"`
	Service   string `json:"service"`
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// TestReportResponse is the JSON body returned by the dispatcher endpoint.
type TestReportResponse struct {
	Results     []model.Outcome `json:"results"`
	Permissions []string        `json:"permissions"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toAPIKeyResponse converts a domain APIKey to its masked JSON representation.
func toAPIKeyResponse(key model.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:        key.ID,
		Name:      key.Name,
		Key:       model.MaskSecret(key.Secret),
		ProjectID: key.ProjectID,
		CreatedAt: key.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// toTestResultResponse converts a domain TestResult to its JSON representation.
func toTestResultResponse(rec model.TestResult) TestResultResponse {
	return TestResultResponse{
		ID:        rec.ID,
		Service:   rec.Service,
		Success:   rec.Success,
		Message:   rec.Message,
		Details:   rec.Details,
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// toErrorLogResponse converts a domain ErrorLog to its JSON representation.
func toErrorLogResponse(rec model.ErrorLog) ErrorLogResponse {
	return ErrorLogResponse{
		ID:        rec.ID,
		Service:   rec.Service,
		Error:     rec.Error,
		Details:   rec.Details,
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}
