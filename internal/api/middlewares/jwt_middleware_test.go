package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func subjectEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, _ := r.Context().Value(SubjectKey).(string)
		_, _ = w.Write([]byte(sub))
	})
}

func TestJWTMiddleware_DisabledWithoutSecret(t *testing.T) {
	h := JWTMiddleware("")(subjectEcho())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/preview/a.pdf", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddleware(t *testing.T) {
	const secret = "s3cret"
	valid := signToken(t, secret, jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	expired := signToken(t, secret, jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	wrongKey := signToken(t, "other", jwt.RegisteredClaims{Subject: "user-42"})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "user-42"},
		{"missing header", "", http.StatusUnauthorized, `{"error":"missing or invalid token"}`},
		{"not bearer", "Basic abc", http.StatusUnauthorized, `{"error":"missing or invalid token"}`},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, `{"error":"invalid token"}`},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized, `{"error":"invalid token"}`},
	}

	h := JWTMiddleware(secret)(subjectEcho())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/preview/a.pdf", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}
