package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/url"

	"github.com/gin-gonic/gin"
)

const (
	// XSRFCookie names both the cookie and the form field carrying the token.
	XSRFCookie = "xsrf"
	// XSRFMaxAge is the cookie lifetime in seconds (30 hours).
	XSRFMaxAge = 108000

	xsrfTokenKey   = "xsrf_token"
	xsrfInvalidKey = "xsrf_invalid"
)

// XSRFGuard issues and verifies the anti-forgery token. It runs before every
// handler: a request without the cookie gets a fresh token set and is flagged
// invalid for this pass, so the very first request can never perform a state
// change. On any mutating request the submitted form field must match the
// cookie; a mismatch, or any failure to read either side, flags the request
// invalid and discards the submitted form entirely before a handler can see
// it.
func XSRFGuard() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		invalid := false

		token, err := ctx.Cookie(XSRFCookie)
		if err != nil || token == "" {
			token = newToken()
			ctx.SetCookie(XSRFCookie, token, XSRFMaxAge, "/", "", false, true)
			invalid = true
		}

		if isMutating(ctx.Request.Method) {
			if ctx.Request.PostFormValue(XSRFCookie) != token {
				invalid = true
			}
		}

		if invalid && ctx.Request != nil {
			ctx.Request.PostForm = url.Values{}
			ctx.Request.Form = url.Values{}
		}

		ctx.Set(xsrfTokenKey, token)
		ctx.Set(xsrfInvalidKey, invalid)
		ctx.Next()
	}
}

func isMutating(method string) bool {
	switch method {
	case "POST", "PUT", "PATCH", "DELETE":
		return true
	}
	return false
}

func newToken() string {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(raw)
}

// XSRFToken returns the canonical token for the current request, for
// embedding into rendered forms.
func XSRFToken(ctx *gin.Context) string {
	token, _ := ctx.Get(xsrfTokenKey)
	s, _ := token.(string)
	return s
}

// XSRFInvalid reports whether the current request failed token verification.
// Mutating handlers must check this before doing anything else.
func XSRFInvalid(ctx *gin.Context) bool {
	invalid, _ := ctx.Get(xsrfInvalidKey)
	b, _ := invalid.(bool)
	return b
}
