package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/database"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/services"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/utils"
)

func setupMockRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	assert.NoError(t, err)

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		mr.Close()
		database.RedisClient = nil
	})
	return mr
}

func generateTestToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"account_id": 1,
		"role":       role,
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	assert.NoError(t, err)
	return signed
}

func TestAdminAuthMiddleware(t *testing.T) {
	os.Setenv("JWT_SECRET", "test_secret")
	setupMockRedis(t)
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing Authorization Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "authorization header is required",
		},
		{
			name:           "Not A Bearer Token",
			authHeader:     "Basic abc",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "must start with Bearer",
		},
		{
			name:           "Invalid Token Signature",
			authHeader:     "Bearer invalid.token.signature",
			expectedStatus: http.StatusForbidden,
			expectedBody:   "Invalid or expired token",
		},
		{
			name:           "Non-Admin Role",
			authHeader:     "Bearer " + generateTestToken(t, "staff"),
			expectedStatus: http.StatusForbidden,
			expectedBody:   "Forbidden: Admins only",
		},
		{
			name:           "Admin Role",
			authHeader:     "Bearer " + generateTestToken(t, "admin"),
			expectedStatus: http.StatusOK,
			expectedBody:   "Success",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(AdminAuthMiddleware())
			r.GET("/admin/test", func(c *gin.Context) {
				c.String(http.StatusOK, "Success")
			})

			req, _ := http.NewRequest(http.MethodGet, "/admin/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus != http.StatusOK {
				var resp utils.Response
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Contains(t, resp.Message, tt.expectedBody)
			} else {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestAdminAuthMiddlewareRevokedToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test_secret")
	setupMockRedis(t)
	gin.SetMode(gin.TestMode)

	token := generateTestToken(t, "admin")
	assert.NoError(t, services.AddToDenylist(token, time.Hour))

	r := gin.New()
	r.Use(AdminAuthMiddleware())
	r.GET("/admin/test", func(c *gin.Context) {
		c.String(http.StatusOK, "Success")
	})

	req, _ := http.NewRequest(http.MethodGet, "/admin/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}
