package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ublog-dev/ublog/internal/models"
)

const (
	// SessionCookie is the name of the login cookie.
	SessionCookie = "login"
	// SessionMaxAge is how long a login session stays valid.
	SessionMaxAge = 48 * time.Hour
)

// ErrNoSession is returned when a request carries no readable, unexpired
// session cookie.
var ErrNoSession = errors.New("no valid session")

var sessionSecret []byte

// InitSessionSecret loads the signing secret for session cookies from the
// environment.
func InitSessionSecret() error {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return fmt.Errorf("SESSION_SECRET environment variable is not set")
	}
	sessionSecret = []byte(secret)
	return nil
}

// SetSessionSecret overrides the signing secret. Tests use this instead of
// the environment.
func SetSessionSecret(secret []byte) {
	sessionSecret = secret
}

// SessionClaims is the signed cookie payload: a copy of the user record
// minus password and salt.
type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Author string `json:"author"`
	Admin  bool   `json:"admin"`
	Active bool   `json:"active"`
	jwt.RegisteredClaims
}

// NewSession encodes a session cookie value for the given user.
func NewSession(user *models.User) (string, error) {
	claims := SessionClaims{
		UserID: user.ID,
		Name:   user.Name,
		Author: user.Author,
		Admin:  user.Admin,
		Active: user.Active,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionMaxAge)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sessionSecret)
}

// ParseSession decodes and verifies a session cookie value. Any failure to
// read the cookie, a bad signature or an expired session all come back as
// ErrNoSession.
func ParseSession(value string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(value, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrNoSession
		}
		return sessionSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNoSession
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, ErrNoSession
	}
	return claims, nil
}
