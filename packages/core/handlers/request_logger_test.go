package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authMiddleware "roster-api/packages/auth/middleware"
	"roster-api/packages/auth/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })
	return &buf
}

func TestRequestLogger(t *testing.T) {
	secret := []byte("test-secret")
	token, err := utils.GenerateToken(secret, "user-1", "ana@example.com", time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/players", authMiddleware.OptionalJWTMiddleware(secret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name      string
		header    string
		wantActor string
		wantEmail string
	}{
		{"authenticated", "Bearer " + token, "user-1", "ana@example.com"},
		{"anonymous", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)

			req := httptest.NewRequest(http.MethodGet, "/players", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			requestID := w.Header().Get(RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				t.Fatalf("request id header = %q, want a uuid", requestID)
			}

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log line %q: %v", buf.String(), err)
			}
			if entry["request_id"] != requestID || entry["status"] != float64(http.StatusOK) {
				t.Fatalf("log entry = %v", entry)
			}
			actor, _ := entry["actor"].(string)
			email, _ := entry["email"].(string)
			if actor != tt.wantActor || email != tt.wantEmail {
				t.Fatalf("actor, email = %q, %q; want %q, %q", actor, email, tt.wantActor, tt.wantEmail)
			}
		})
	}
}
