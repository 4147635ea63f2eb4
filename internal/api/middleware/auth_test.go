package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelocator/storelocator/internal/api/middleware"
	"github.com/storelocator/storelocator/internal/auth"
)

func TestAdminAuth_MissingAuthorizationHeader(t *testing.T) {
	authService := createTestAuthService()
	authMiddleware := middleware.AdminAuth(authService)

	handler := authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing authorization header")
}

func TestAdminAuth_InvalidAuthorizationFormat(t *testing.T) {
	authService := createTestAuthService()
	authMiddleware := middleware.AdminAuth(authService)

	handler := authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"no bearer prefix", "token123"},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"empty bearer", "Bearer "},
		{"just bearer", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdminAuth_InvalidToken(t *testing.T) {
	authService := createTestAuthService()
	authMiddleware := middleware.AdminAuth(authService)

	handler := authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer invalid.jwt.token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestAdminAuth_ValidToken(t *testing.T) {
	authService := createTestAuthService()
	authMiddleware := middleware.AdminAuth(authService)

	token, _, err := authService.GenerateToken("adm_testadmin123")
	require.NoError(t, err)

	var capturedAdminID string
	handler := authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAdminID = middleware.GetAdminID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "adm_testadmin123", capturedAdminID)
}

func TestAdminAuth_CaseInsensitiveBearer(t *testing.T) {
	authService := createTestAuthService()
	authMiddleware := middleware.AdminAuth(authService)

	token, _, err := authService.GenerateToken("adm_testadmin123")
	require.NoError(t, err)

	handler := authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []string{"Bearer ", "bearer ", "BEARER "}
	for _, prefix := range cases {
		t.Run(prefix, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
			req.Header.Set("Authorization", prefix+token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestGetAdminID_NoAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	adminID := middleware.GetAdminID(req.Context())
	assert.Empty(t, adminID)
}

// createTestAuthService creates an auth service for testing.
func createTestAuthService() *auth.Service {
	return auth.NewService(auth.ServiceConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.storelocator.dev",
		Audience:   "storelocator-api",
	})
}
