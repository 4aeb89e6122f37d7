package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAdminRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/admin/ping", AdminAuthMiddleware(secret), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func callAdmin(router *gin.Engine, path, headerToken string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if headerToken != "" {
		req.Header.Set("X-Admin-Token", headerToken)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminAuthToken(t *testing.T) {
	router := newAdminRouter("titok")

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"header token accepted", "/api/admin/ping", "titok", http.StatusNoContent},
		{"query token accepted", "/api/admin/ping?token=titok", "", http.StatusNoContent},
		{"wrong token rejected", "/api/admin/ping", "rossz", http.StatusForbidden},
		{"missing token rejected", "/api/admin/ping", "", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := callAdmin(router, tt.path, tt.token)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

// Without a configured secret the admin surface stays switched off; no
// token, not even an empty one, may pass.
func TestAdminAuthDisabledWithoutSecret(t *testing.T) {
	router := newAdminRouter("")

	for _, token := range []string{"", "titok", "barmi"} {
		w := callAdmin(router, "/api/admin/ping", token)
		assert.Equal(t, http.StatusForbidden, w.Code, "token %q", token)
	}
}
