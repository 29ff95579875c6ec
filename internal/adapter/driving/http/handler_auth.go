package httphandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

// DevLogin issues a session token for any email without verifying it. The
// route is only registered when dev login is enabled in config; production
// deployments front the app with a real identity provider instead.
func (h *Handler) DevLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		writeError(w, http.StatusBadRequest, "missing required field: email")
		return
	}

	token, err := h.sessions.Issue(model.Identity{UserID: email, Email: email})
	if err != nil {
		h.logger.Error("failed to issue session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
