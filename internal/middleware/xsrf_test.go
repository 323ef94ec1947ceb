package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xsrfRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(XSRFGuard())
	r.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "invalid=%v token=%s", XSRFInvalid(ctx), XSRFToken(ctx))
	})
	r.POST("/submit", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "invalid=%v data=%s", XSRFInvalid(ctx), ctx.PostForm("data"))
	})
	return r
}

func xsrfCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == XSRFCookie {
			return c
		}
	}
	t.Fatal("no xsrf cookie set")
	return nil
}

func TestFirstContactIssuesCookieAndFlagsInvalid(t *testing.T) {
	r := xsrfRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(rec, req)

	cookie := xsrfCookie(t, rec)
	assert.Len(t, cookie.Value, 32) // 16 random bytes, hex
	assert.Equal(t, XSRFMaxAge, cookie.MaxAge)
	assert.Contains(t, rec.Body.String(), "invalid=true")
}

func TestFirstContactSubmissionIsDiscarded(t *testing.T) {
	r := xsrfRouter()

	form := url.Values{"data": {"payload"}, XSRFCookie: {"whatever"}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(rec, req)

	xsrfCookie(t, rec)
	assert.Contains(t, rec.Body.String(), "invalid=true")
	assert.Contains(t, rec.Body.String(), "data=")
	assert.NotContains(t, rec.Body.String(), "payload")
}

func TestMatchingTokenPasses(t *testing.T) {
	r := xsrfRouter()

	// First request to obtain a token.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := xsrfCookie(t, rec)

	form := url.Values{"data": {"payload"}, XSRFCookie: {cookie.Value}}
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid=false")
	assert.Contains(t, rec.Body.String(), "data=payload")
}

func TestMismatchedTokenDiscardsForm(t *testing.T) {
	r := xsrfRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := xsrfCookie(t, rec)

	tests := []struct {
		name  string
		field string
	}{
		{"wrong value", "deadbeef"},
		{"missing field", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"data": {"payload"}}
			if tt.field != "" {
				form.Set(XSRFCookie, tt.field)
			}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.AddCookie(cookie)
			r.ServeHTTP(rec, req)

			assert.Contains(t, rec.Body.String(), "invalid=true")
			assert.NotContains(t, rec.Body.String(), "payload")
		})
	}
}

func TestCookieIsStableAcrossRequests(t *testing.T) {
	r := xsrfRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := xsrfCookie(t, rec)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "invalid=false")
	assert.Contains(t, rec.Body.String(), fmt.Sprintf("token=%s", cookie.Value))
}
