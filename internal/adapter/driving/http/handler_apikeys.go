package httphandler

import (
	"encoding/json"
	"net/http"
)

// ListAPIKeys returns all keys owned by the authenticated user, masked.
func (h *Handler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	keys, err := h.keys.List(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Error("failed to list api keys", "user_id", identity.UserID, "error", err)
		writeServiceError(w, err, "Failed to fetch API keys")
		return
	}

	resp := make([]APIKeyResponse, 0, len(keys))
	for _, key := range keys {
		resp = append(resp, toAPIKeyResponse(key))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateAPIKey stores a new key for the authenticated user.
func (h *Handler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.keys.Create(r.Context(), identity.UserID, req.Name, req.Key, req.ProjectID)
	if err != nil {
		h.logger.Error("failed to add api key", "user_id", identity.UserID, "error", err)
		writeServiceError(w, err, "Failed to add API key")
		return
	}

	writeJSON(w, http.StatusCreated, toAPIKeyResponse(created))
}

// DeleteAPIKey removes a key the authenticated user owns.
func (h *Handler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.PathValue("id")
	if err := h.keys.Delete(r.Context(), identity.UserID, id); err != nil {
		writeServiceError(w, err, "Failed to delete API key")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "API key deleted successfully"})
}
