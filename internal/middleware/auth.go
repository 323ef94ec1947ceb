package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ublog-dev/ublog/internal/auth"
)

// ContextUserKey is where the resolved session user lives in the gin context.
const ContextUserKey = "user"

// Session resolves the logged-in user from the session cookie, if any, and
// stores the decoded record in the request context. It never rejects a
// request; the gates below do that.
func Session() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if value, err := ctx.Cookie(auth.SessionCookie); err == nil && value != "" {
			if claims, err := auth.ParseSession(value); err == nil {
				ctx.Set(ContextUserKey, claims)
			}
		}
		ctx.Next()
	}
}

// CurrentUser returns the session user for the request, or auth.ErrNoSession
// when nobody is logged in.
func CurrentUser(ctx *gin.Context) (*auth.SessionClaims, error) {
	value, exists := ctx.Get(ContextUserKey)
	if !exists {
		return nil, auth.ErrNoSession
	}
	claims, ok := value.(*auth.SessionClaims)
	if !ok {
		return nil, auth.ErrNoSession
	}
	return claims, nil
}

// LoginRequired redirects requests without a session to the login page.
func LoginRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, err := CurrentUser(ctx); err != nil {
			ctx.Redirect(http.StatusSeeOther, "/login")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// AdminRequired redirects requests without a session to the login page and
// sends logged-in non-admins back to the homepage with a 303.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := CurrentUser(ctx)
		if err != nil {
			ctx.Redirect(http.StatusSeeOther, "/login")
			ctx.Abort()
			return
		}
		if !user.Admin {
			ctx.Redirect(http.StatusSeeOther, "/")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
