package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ublog-dev/ublog/internal/middleware"
	"github.com/ublog-dev/ublog/internal/models"
	"github.com/ublog-dev/ublog/internal/repository"
)

const maxCommentLength = 65535

// AddComment stores a new comment. Visitors without a session are matched to
// an account by email, or get a fresh inactive account; a visitor whose email
// belongs to an activated account has to log in first. Articles closed for
// comments only accept them from admins.
func (h *Handler) AddComment(ctx *gin.Context) {
	if middleware.XSRFInvalid(ctx) {
		h.XSRFInvalidToken(ctx)
		return
	}
	content := ctx.PostForm("comment")
	if content == "" {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	articleID, err := strconv.ParseUint(ctx.PostForm("article"), 10, 32)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	article, err := h.Repository.ArticleByID(uint(articleID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.Redirect(http.StatusSeeOther, "/")
			return
		}
		h.errorHandler(ctx, err)
		return
	}

	userID, isAdmin, ok := h.resolveCommenter(ctx)
	if !ok {
		return
	}

	if !article.Commentable && !isAdmin {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	if len(content) > maxCommentLength {
		h.RequestMessage(ctx, "The comment is too long.", "Error", "/home")
		return
	}

	comment := &models.Comment{
		UserID:    userID,
		ArticleID: article.ID,
		Content:   content,
		Date:      time.Now(),
	}
	if err := h.Repository.CreateComment(comment); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	h.RequestMessage(ctx, "Your message has successfully been added.", "Success", "/home")
}

// resolveCommenter finds or creates the account a comment should be filed
// under. It writes its own response when it cannot; callers stop when ok is
// false.
func (h *Handler) resolveCommenter(ctx *gin.Context) (userID uint, isAdmin, ok bool) {
	if claims, err := middleware.CurrentUser(ctx); err == nil {
		return claims.UserID, claims.Admin, true
	}

	user, err := h.Repository.UserByName(ctx.PostForm("email"))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		name := ctx.PostForm("user")
		if len(name) > maxAuthorLength {
			h.RequestMessage(ctx, "The username is too long.", "Error", "/signup")
			return 0, false, false
		}
		if _, err := h.Repository.UserByAuthor(name); err == nil {
			h.RequestMessage(ctx, "The username is already in use.", "Error", "/signup")
			return 0, false, false
		} else if !errors.Is(err, repository.ErrNotFound) {
			h.errorHandler(ctx, err)
			return 0, false, false
		}
		user = &models.User{
			Name:   ctx.PostForm("email"),
			Author: name,
			Active: false,
			Admin:  false,
		}
		if err := h.Repository.CreateUser(user); err != nil {
			h.errorHandler(ctx, err)
			return 0, false, false
		}
	case err != nil:
		h.errorHandler(ctx, err)
		return 0, false, false
	case user.Active:
		// An activated account must comment while logged in.
		ctx.Redirect(http.StatusSeeOther, "/login")
		return 0, false, false
	}
	return user.ID, user.Admin, true
}
