package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roster-api/packages/auth/utils"

	"github.com/gin-gonic/gin"
)

var secret = []byte("test-secret")

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", mw, func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, actor)
	})
	return r
}

func do(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware(t *testing.T) {
	r := newRouter(JWTMiddleware(secret))

	valid, err := utils.GenerateToken(secret, "user-1", "ana@example.com", time.Now(), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	expired, _ := utils.GenerateToken(secret, "user-1", "", time.Now().Add(-time.Hour), time.Minute)
	forged, _ := utils.GenerateToken([]byte("other-secret"), "user-1", "", time.Now(), time.Minute)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer " + valid, http.StatusOK, "user-1"},
		{"missing", "", http.StatusUnauthorized, ""},
		{"no bearer prefix", valid, http.StatusUnauthorized, ""},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.header)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Fatalf("body = %q, want %q", w.Body.String(), tt.body)
			}
		})
	}
}

func TestOptionalJWTMiddleware(t *testing.T) {
	r := newRouter(OptionalJWTMiddleware(secret))

	if w := do(r, ""); w.Code != http.StatusOK || w.Body.String() != "anonymous" {
		t.Fatalf("anonymous request = %d %q", w.Code, w.Body.String())
	}

	token, _ := utils.GenerateToken(secret, "user-2", "", time.Now(), time.Minute)
	if w := do(r, "Bearer "+token); w.Body.String() != "user-2" {
		t.Fatalf("body = %q, want user-2", w.Body.String())
	}
}

func TestGenerateTokenRequiresSubject(t *testing.T) {
	if _, err := utils.GenerateToken(secret, " ", "", time.Now(), time.Minute); err != utils.ErrMissingSubject {
		t.Fatalf("GenerateToken() error = %v, want ErrMissingSubject", err)
	}
}
