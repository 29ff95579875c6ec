package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSessionCookie = "keypanel_session"

func csrfProtected() http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return CSRFMiddleware(testSessionCookie, next)
}

func TestCSRFMiddlewareAllowsGet(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/test-results", nil)
	req.AddCookie(&http.Cookie{Name: testSessionCookie, Value: "tok"})

	csrfProtected().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCSRFMiddlewareAllowsBearerOnlyClients(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/api-keys", nil)
	req.Header.Set("Authorization", "Bearer tok")

	csrfProtected().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCSRFMiddlewareRejectsCookieSessionWithoutToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/api-keys", nil)
	req.AddCookie(&http.Cookie{Name: testSessionCookie, Value: "tok"})

	csrfProtected().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCSRFMiddlewareAcceptsMatchingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/api-keys", nil)
	req.AddCookie(&http.Cookie{Name: testSessionCookie, Value: "tok"})
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "csrf-value"})
	req.Header.Set(csrfHeaderName, "csrf-value")

	csrfProtected().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCSRFMiddlewareRejectsMismatchedToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/api-keys", nil)
	req.AddCookie(&http.Cookie{Name: testSessionCookie, Value: "tok"})
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "csrf-value"})
	req.Header.Set(csrfHeaderName, "wrong")

	csrfProtected().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
