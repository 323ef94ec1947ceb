package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ublog-dev/ublog/internal/auth"
	"github.com/ublog-dev/ublog/internal/middleware"
	"github.com/ublog-dev/ublog/internal/models"
	"github.com/ublog-dev/ublog/internal/repository"
)

const (
	maxEmailLength    = 200
	maxAuthorLength   = 30
	minPasswordLength = 6
)

// Login shows the login form; logged-in visitors go home instead.
func (h *Handler) Login(ctx *gin.Context) {
	if _, err := middleware.CurrentUser(ctx); err == nil {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	ctx.HTML(http.StatusOK, "login.html", h.CommonBlocks(ctx, "Login"))
}

// Signup shows the signup form; logged-in visitors go home instead.
func (h *Handler) Signup(ctx *gin.Context) {
	if _, err := middleware.CurrentUser(ctx); err == nil {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	ctx.HTML(http.StatusOK, "signup.html", h.CommonBlocks(ctx, "Signup"))
}

// ValidateLogin checks the submitted credentials and starts a session.
func (h *Handler) ValidateLogin(ctx *gin.Context) {
	if middleware.XSRFInvalid(ctx) {
		h.XSRFInvalidToken(ctx)
		return
	}
	user, err := h.Repository.UserByName(ctx.PostForm("username"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.loginFailure(ctx)
			return
		}
		h.errorHandler(ctx, err)
		return
	}
	if !auth.VerifyPlaintext(user, ctx.PostForm("password")) {
		h.loginFailure(ctx)
		return
	}
	h.loginSuccess(ctx, user)
}

func (h *Handler) loginFailure(ctx *gin.Context) {
	h.RequestMessage(ctx, "Incorrect username or password combination.", "Error", "/login")
}

// loginSuccess sets the session cookie, a signed copy of the user record
// minus password and salt.
func (h *Handler) loginSuccess(ctx *gin.Context, user *models.User) {
	session, err := auth.NewSession(user)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.SetCookie(auth.SessionCookie, session, int(auth.SessionMaxAge.Seconds()), "/", "", false, true)
	h.RequestMessage(ctx, "You have been logged in.", "Success", "/home")
}

// AddUser handles the signup form.
func (h *Handler) AddUser(ctx *gin.Context) {
	if middleware.XSRFInvalid(ctx) {
		h.XSRFInvalidToken(ctx)
		return
	}
	email := ctx.PostForm("email")
	if email == "" {
		ctx.Redirect(http.StatusSeeOther, "/signup")
		return
	}
	if len(email) > maxEmailLength {
		h.RequestMessage(ctx, "The email is too long.", "Error", "/home")
		return
	}
	name := ctx.PostForm("name")
	if len(name) > maxAuthorLength {
		h.RequestMessage(ctx, "The username is too long.", "Error", "/home")
		return
	}
	if _, err := h.Repository.UserByAuthor(name); err == nil {
		h.RequestMessage(ctx, "The username is already in use.", "Error", "/signup")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		h.errorHandler(ctx, err)
		return
	}
	password := ctx.PostForm("password")
	if len(password) < minPasswordLength {
		h.RequestMessage(ctx, "The Password is too short.", "Error", "/signup")
		return
	}

	user, err := h.Repository.UserByName(email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		creds, err := auth.HashPassword(password, "")
		if err != nil {
			h.errorHandler(ctx, err)
			return
		}
		user = &models.User{
			Name:     email,
			Author:   name,
			Password: creds.Password,
			Salt:     creds.Salt,
			Active:   true,
			Admin:    false,
		}
		if err := h.Repository.CreateUser(user); err != nil {
			h.errorHandler(ctx, err)
			return
		}
	case err != nil:
		h.errorHandler(ctx, err)
		return
	case !user.Active:
		// The address was seeded by a comment from a then-unknown visitor;
		// signing up claims the account.
		creds, err := auth.HashPassword(password, "")
		if err != nil {
			h.errorHandler(ctx, err)
			return
		}
		user.Author = name
		user.Password = creds.Password
		user.Salt = creds.Salt
		user.Active = true
		user.Admin = false
		if err := h.Repository.SaveUser(user); err != nil {
			h.errorHandler(ctx, err)
			return
		}
	default:
		h.RequestMessage(ctx, "The provided email has already been used.", "Error", "/signup")
		return
	}

	logrus.WithField("user", user.ID).Info("account created")
	h.RequestMessage(ctx, "Your account has successfully been created.", "Success", "/home")
}

// Logout ends the session and returns the visitor to the homepage.
func (h *Handler) Logout(ctx *gin.Context) {
	if _, err := middleware.CurrentUser(ctx); err != nil {
		ctx.Redirect(http.StatusSeeOther, "/login")
		return
	}
	ctx.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusSeeOther, "/")
}
