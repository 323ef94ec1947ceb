package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ublog-dev/ublog/internal/auth"
	"github.com/ublog-dev/ublog/internal/models"
)

func sessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session())
	r.GET("/private", LoginRequired(), func(ctx *gin.Context) {
		user, _ := CurrentUser(ctx)
		ctx.String(http.StatusOK, "hello %s", user.Author)
	})
	r.GET("/admin", AdminRequired(), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "admin area")
	})
	return r
}

func sessionCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	value, err := auth.NewSession(user)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: value}
}

func TestLoginRequiredWithoutSession(t *testing.T) {
	auth.SetSessionSecret([]byte("test-secret"))
	r := sessionRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLoginRequiredWithSession(t *testing.T) {
	auth.SetSessionSecret([]byte("test-secret"))
	r := sessionRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(sessionCookie(t, &models.User{ID: 1, Author: "Alice"}))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello Alice", rec.Body.String())
}

func TestAdminRequired(t *testing.T) {
	auth.SetSessionSecret([]byte("test-secret"))
	r := sessionRouter()

	tests := []struct {
		name         string
		user         *models.User
		wantStatus   int
		wantLocation string
	}{
		{"no session", nil, http.StatusSeeOther, "/login"},
		{"plain user", &models.User{ID: 2, Author: "Bob"}, http.StatusSeeOther, "/"},
		{"admin", &models.User{ID: 1, Author: "Alice", Admin: true}, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.user != nil {
				req.AddCookie(sessionCookie(t, tt.user))
			}
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
		})
	}
}

func TestSessionIgnoresBadCookie(t *testing.T) {
	auth.SetSessionSecret([]byte("test-secret"))
	r := sessionRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "garbage"})
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
