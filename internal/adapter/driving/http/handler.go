package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/keypanel/internal/application"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	keys     *application.KeyService
	tests    *application.TestService
	tokens   *application.TokenService
	sessions *application.SessionService
	results  driven.ResultStore
	errlog   driven.ErrorLogStore
	devLogin bool
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. devLogin
// enables the local credentialless login endpoint; never set it in production.
func NewHandler(
	keys *application.KeyService,
	tests *application.TestService,
	tokens *application.TokenService,
	sessions *application.SessionService,
	results driven.ResultStore,
	errlog driven.ErrorLogStore,
	devLogin bool,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		keys:     keys,
		tests:    tests,
		tokens:   tokens,
		sessions: sessions,
		results:  results,
		errlog:   errlog,
		devLogin: devLogin,
		logger:   logger,
	}
}

// NewServeMux creates an http.Handler with all API routes registered and
// wrapped with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// RegisterAPIRoutes registers all API routes on the provided mux. Key
// management requires a valid session; the test endpoints take credentials in
// the request body and do not.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.Handle("GET /api/api-keys", h.requireSession(http.HandlerFunc(h.ListAPIKeys)))
	mux.Handle("POST /api/api-keys", h.requireSession(http.HandlerFunc(h.CreateAPIKey)))
	mux.Handle("DELETE /api/api-keys/{id}", h.requireSession(http.HandlerFunc(h.DeleteAPIKey)))

	mux.HandleFunc("POST /api/test-google-api", h.TestGoogleAPI)
	mux.HandleFunc("POST /api/check-google-permissions", h.CheckGooglePermissions)
	mux.HandleFunc("POST /api/test-token", h.TestToken)
	mux.HandleFunc("POST /api/detect-service", h.DetectService)
	mux.HandleFunc("POST /api/test-api", h.TestAPI)
	mux.HandleFunc("POST /api/test-youtube-api", h.TestYouTubeAPI)
	mux.HandleFunc("POST /api/test-drive-api", h.TestDriveAPI)
	mux.HandleFunc("POST /api/test-sheets-api", h.TestSheetsAPI)
	mux.HandleFunc("POST /api/test-azure-api", h.TestAzureAPI)

	mux.HandleFunc("GET /api/test-results", h.ListTestResults)
	mux.HandleFunc("POST /api/test-results", h.SaveTestResult)
	mux.HandleFunc("GET /api/log-error", h.ListErrorLogs)
	mux.HandleFunc("POST /api/log-error", h.LogError)

	mux.HandleFunc("GET /api/health", h.Health)

	if h.devLogin {
		mux.HandleFunc("POST /api/auth/login", h.DevLogin)
	}
}

// ApplyMiddleware wraps a handler with the shared middleware stack.
func ApplyMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, next)
	wrapped = loggingMiddleware(logger, wrapped)
	return wrapped
}
