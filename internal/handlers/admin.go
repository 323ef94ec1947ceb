package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ublog-dev/ublog/internal/auth"
	"github.com/ublog-dev/ublog/internal/middleware"
	"github.com/ublog-dev/ublog/internal/models"
	"github.com/ublog-dev/ublog/internal/pagination"
	"github.com/ublog-dev/ublog/internal/repository"
)

const maxTitleLength = 250

func queryPage(ctx *gin.Context, name string) int {
	page, err := strconv.Atoi(ctx.Query(name))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Users lists every account for the user management page.
func (h *Handler) Users(ctx *gin.Context) {
	users, err := h.Repository.Users()
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	data := h.CommonBlocks(ctx, "Users")
	data["userlist"] = users
	ctx.HTML(http.StatusOK, "users.html", data)
}

// EditUser shows one account with its comments and articles, each paginated
// through the "comments" and "articles" query parameters.
func (h *Handler) EditUser(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/admin/users")
		return
	}
	user, err := h.Repository.UserByID(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.Redirect(http.StatusSeeOther, "/admin/users")
			return
		}
		h.errorHandler(ctx, err)
		return
	}

	comments, err := h.Repository.CommentsByUser(user.ID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	commentWindow := pagination.New(queryPage(ctx, "comments"), len(comments))
	low, high := commentWindow.Slice(len(comments), pagination.DefaultPageSize)
	comments = comments[low:high]

	articles, err := h.Repository.ArticlesByUser(user.ID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	articleWindow := pagination.New(queryPage(ctx, "articles"), len(articles))
	low, high = articleWindow.Slice(len(articles), pagination.DefaultPageSize)
	articles = articles[low:high]

	data := h.CommonBlocks(ctx, "Edit author: "+user.Author)
	data["edituser"] = user
	data["commentslist"] = comments
	data["commentpagination"] = commentWindow
	data["articles"] = articles
	data["articlepagination"] = articleWindow
	ctx.HTML(http.StatusOK, "edituser.html", data)
}

// UpdateUser saves changes to an account's name, email and flags.
func (h *Handler) UpdateUser(ctx *gin.Context) {
	if middleware.XSRFInvalid(ctx) {
		h.XSRFInvalidToken(ctx)
		return
	}
	user, ok := h.userFromForm(ctx)
	if !ok {
		return
	}
	if name := ctx.PostForm("name"); name != "" {
		if len(name) > maxAuthorLength {
			h.RequestMessage(ctx, "The username is too long.", "Error", "/signup")
			return
		}
		other, err := h.Repository.UserByAuthor(name)
		if err == nil && other.ID != user.ID {
			h.RequestMessage(ctx, "The username is already in use.", "Error", "/signup")
			return
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			h.errorHandler(ctx, err)
			return
		}
		user.Author = name
	}
	email := ctx.PostForm("email")
	if len(email) > maxEmailLength {
		h.RequestMessage(ctx, "The email is too long.", "Error", "/login")
		return
	}
	if email != "" {
		user.Name = email
	}
	user.Admin = ctx.PostForm("admin") == "on"
	user.Active = ctx.PostForm("active") == "on"

	if err := h.Repository.SaveUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			h.RequestMessage(ctx, "The email has already been created.", "Error", "/login")
			return
		}
		h.errorHandler(ctx, err)
		return
	}
	h.RequestMessage(ctx, "The changes have been saved.", "Success", "/admin/users")
}

// UpdateUserPassword stores a new password for an account.
func (h *Handler) UpdateUserPassword(ctx *gin.Context) {
	if middleware.XSRFInvalid(ctx) {
		h.XSRFInvalidToken(ctx)
		return
	}
	user, ok := h.userFromForm(ctx)
	if !ok {
		return
	}
	password := ctx.PostForm("password")
	if len(password) < minPasswordLength {
		h.RequestMessage(ctx, "The Password is too short.", "Error", "/admin/users")
		return
	}
	if password != ctx.PostForm("repassword") {
		h.RequestMessage(ctx, "The Passwords are not the same.", "Error", "/admin/users")
		return
	}
	creds, err := auth.HashPassword(password, "")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	if err := h.Repository.UpdatePassword(user.ID, creds.Password, creds.Salt); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	h.RequestMessage(ctx, "The new password has been saved.", "Success", "/admin/users")
}

// userFromForm loads the account named by the "user" form field, redirecting
// to the user list when it is missing.
func (h *Handler) userFromForm(ctx *gin.Context) (*models.User, bool) {
	id, err := strconv.ParseUint(ctx.PostForm("user"), 10, 32)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/admin/users")
		return nil, false
	}
	user, err := h.Repository.UserByID(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.Redirect(http.StatusSeeOther, "/admin/users")
			return nil, false
		}
		h.errorHandler(ctx, err)
		return nil, false
	}
	return user, true
}

// DeleteUser removes an account together with its comments and articles.
func (h *Handler) DeleteUser(ctx *gin.Context) {
	if middleware.XSRFInvalid(ctx) {
		h.XSRFInvalidToken(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.PostForm("id"), 10, 32)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	user, err := h.Repository.UserByID(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.Redirect(http.StatusSeeOther, "/admin/users")
			return
		}
		h.errorHandler(ctx, err)
		return
	}
	if err := h.Repository.DeleteUser(user.ID); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	logrus.WithField("user", user.ID).Info("user deleted")
	h.RequestMessage(ctx, "The user has been deleted.", "Success", "/admin/users")
}

// DeleteComment removes a single comment.
func (h *Handler) DeleteComment(ctx *gin.Context) {
	if middleware.XSRFInvalid(ctx) {
		h.XSRFInvalidToken(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.PostForm("id"), 10, 32)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	if _, err := h.Repository.CommentByID(uint(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.Redirect(http.StatusSeeOther, "/admin/users")
			return
		}
		h.errorHandler(ctx, err)
		return
	}
	if err := h.Repository.DeleteComment(uint(id)); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	h.RequestMessage(ctx, "The comment has been deleted.", "Success", "/home")
}

// DeleteArticle removes an article; its comments go first.
func (h *Handler) DeleteArticle(ctx *gin.Context) {
	if middleware.XSRFInvalid(ctx) {
		h.XSRFInvalidToken(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.PostForm("id"), 10, 32)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	if _, err := h.Repository.ArticleByID(uint(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.Redirect(http.StatusSeeOther, "/")
			return
		}
		h.errorHandler(ctx, err)
		return
	}
	if err := h.Repository.DeleteArticle(uint(id)); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	h.RequestMessage(ctx, "The Article has been deleted.", "Success", "/home")
}

// AdminArticle shows the edit form for an article.
func (h *Handler) AdminArticle(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	article, err := h.Repository.ArticleByID(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.Redirect(http.StatusSeeOther, "/")
			return
		}
		h.errorHandler(ctx, err)
		return
	}
	tags, err := h.Repository.TagsByArticle(article.ID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	comments, err := h.Repository.CommentsByArticle(article.ID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	data := h.CommonBlocks(ctx, `Edit article: "`+article.Title+`"`)
	data["article"] = article
	data["articletags"] = strings.Join(tags, ", ")
	data["commentslist"] = comments
	ctx.HTML(http.StatusOK, "editarticle.html", data)
}

// NewArticle shows the article composer, prefilled with whatever an earlier
// failed submission carried.
func (h *Handler) NewArticle(ctx *gin.Context) {
	if middleware.XSRFInvalid(ctx) {
		h.XSRFInvalidToken(ctx)
		return
	}
	data := h.CommonBlocks(ctx, "New article")
	data["article"] = gin.H{
		"Title":   ctx.PostForm("title"),
		"Tags":    ctx.PostForm("tags"),
		"Content": ctx.PostForm("content"),
	}
	ctx.HTML(http.StatusOK, "newarticle.html", data)
}

// AddArticle creates a new article from the composer form.
func (h *Handler) AddArticle(ctx *gin.Context) {
	if middleware.XSRFInvalid(ctx) {
		h.XSRFInvalidToken(ctx)
		return
	}
	user, err := middleware.CurrentUser(ctx)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/login")
		return
	}
	title := ctx.PostForm("title")
	content := ctx.PostForm("content")
	if title == "" || content == "" {
		h.RequestMessage(ctx, "Please fill in a title and text", "Error", "/admin/newarticle")
		return
	}
	if len(title) > maxTitleLength {
		h.RequestMessage(ctx, "The provided title is too long.", "Error", "/home")
		return
	}

	now := time.Now()
	article := &models.Article{
		Title:       title,
		Content:     content,
		UserID:      user.UserID,
		Date:        now,
		LastChange:  now,
		Public:      ctx.PostForm("public") == "on",
		Commentable: ctx.PostForm("commentable") == "on",
	}
	if err := h.Repository.CreateArticle(article); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	notification := h.saveTagField(ctx, article.ID)
	h.RequestMessage(ctx, "The article has been created. "+notification, "Success", "/home")
}

// UpdateArticle saves changes to an article and replaces its tag links.
func (h *Handler) UpdateArticle(ctx *gin.Context) {
	if middleware.XSRFInvalid(ctx) {
		h.XSRFInvalidToken(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.PostForm("article"), 10, 32)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	article, err := h.Repository.ArticleByID(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.Redirect(http.StatusSeeOther, "/")
			return
		}
		h.errorHandler(ctx, err)
		return
	}
	if title := ctx.PostForm("title"); title != "" {
		article.Title = title
	}
	if content := ctx.PostForm("content"); content != "" {
		article.Content = content
	}
	article.Public = ctx.PostForm("public") == "on"
	article.Commentable = ctx.PostForm("commentable") == "on"
	article.LastChange = time.Now()

	if err := h.Repository.SaveArticle(article); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	if err := h.Repository.ClearArticleTags(article.ID); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	notification := h.saveTagField(ctx, article.ID)
	h.RequestMessage(ctx, "The changes have been saved. "+notification, "Success", "/home")
}

// saveTagField links the comma-separated "tags" form field to an article and
// returns the notification for any skipped tags.
func (h *Handler) saveTagField(ctx *gin.Context, articleID uint) string {
	field := ctx.PostForm("tags")
	if field == "" {
		return ""
	}
	notification, err := h.Repository.SaveTags(articleID, strings.Split(field, ","))
	if err != nil {
		logrus.WithError(err).Warn("saving tags")
	}
	return notification
}
