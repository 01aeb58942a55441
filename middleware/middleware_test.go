package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stayledger/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("adminID"))
	})
	return r
}

func get(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAdminMiddleware(t *testing.T) {
	r := newRouter(JWTAuthAdminMiddleware(secret))

	admin, err := utils.GenerateToken("ops-1", utils.RoleAdmin, secret, time.Hour)
	require.NoError(t, err)
	w := get(r, map[string]string{"Authorization": "Bearer " + admin})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ops-1", w.Body.String())

	tenant, err := utils.GenerateToken("T1", "tenant", secret, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, map[string]string{"Authorization": "Bearer " + tenant}).Code)

	assert.Equal(t, http.StatusUnauthorized, get(r, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{"Authorization": "Bearer nope"}).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))
	ip := map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}

	assert.Equal(t, http.StatusOK, get(r, ip).Code)
	assert.Equal(t, http.StatusOK, get(r, ip).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, ip).Code)

	// Another client has its own budget.
	assert.Equal(t, http.StatusOK, get(r, map[string]string{"X-Real-IP": "198.51.100.2"}).Code)
}
