package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ublog-dev/ublog/internal/middleware"
	"github.com/ublog-dev/ublog/internal/models"
	"github.com/ublog-dev/ublog/internal/pagination"
	"github.com/ublog-dev/ublog/internal/repository"
)

// indexFetchLimit caps how many articles the index pulls before paginating
// them in memory.
const indexFetchLimit = 1000

func pageParam(ctx *gin.Context, name string) int {
	page, err := strconv.Atoi(ctx.Param(name))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Index shows the newest public articles, ten per page. Admins additionally
// get the unpublished queue with its own pagination.
func (h *Handler) Index(ctx *gin.Context) {
	articles, err := h.Repository.LastN(indexFetchLimit, true)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	window := pagination.New(pageParam(ctx, "page"), len(articles))
	low, high := window.Slice(len(articles), pagination.DefaultPageSize)
	articles = articles[low:high]

	if user, err := middleware.CurrentUser(ctx); err == nil && user.Admin {
		unpub, err := h.Repository.LastN(indexFetchLimit, false)
		if err != nil {
			h.errorHandler(ctx, err)
			return
		}
		unpubWindow := pagination.New(pageParam(ctx, "unpubpage"), len(unpub))
		low, high := unpubWindow.Slice(len(unpub), pagination.DefaultPageSize)
		unpub = unpub[low:high]

		data := h.CommonBlocks(ctx, "Index")
		data["articles"] = articles
		data["unpubarticles"] = unpub
		data["pagination"] = window
		data["unpubpagination"] = unpubWindow
		ctx.HTML(http.StatusOK, "adminindex.html", data)
		return
	}

	data := h.CommonBlocks(ctx, "Index")
	data["articles"] = articles
	data["pagination"] = window
	ctx.HTML(http.StatusOK, "index.html", data)
}

// Article shows a single article with its tags and comments.
func (h *Handler) Article(ctx *gin.Context) {
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

	data := h.CommonBlocks(ctx, article.Title)
	data["article"] = article
	data["image"] = ArticleImage(article.Content)
	data["tags"] = tags
	data["commentslist"] = comments
	ctx.HTML(http.StatusOK, "singlepost.html", data)
}

// ArticlesByDate shows the public articles of a year, or of one month when
// given.
func (h *Handler) ArticlesByDate(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}

	var articles []models.ArticleListing
	title := "Year: " + ctx.Param("year")
	if monthParam := ctx.Param("month"); monthParam != "" {
		month, err := strconv.Atoi(monthParam)
		if err != nil {
			ctx.Redirect(http.StatusSeeOther, "/")
			return
		}
		articles, err = h.Repository.ArticlesByMonth(month, year)
		if err != nil {
			h.errorHandler(ctx, err)
			return
		}
		title = "Month: " + monthParam + " " + ctx.Param("year")
	} else {
		articles, err = h.Repository.ArticlesByYear(year)
		if err != nil {
			h.errorHandler(ctx, err)
			return
		}
	}

	data := h.CommonBlocks(ctx, title)
	data["articles"] = articles
	data["title"] = title
	ctx.HTML(http.StatusOK, "articles.html", data)
}

// ArticlesByTag shows the public articles carrying one tag.
func (h *Handler) ArticlesByTag(ctx *gin.Context) {
	tag := UnslashFilter(ctx.Param("tag"))
	articles, err := h.Repository.ArticlesByTag(tag)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	title := "Tag: " + tag
	data := h.CommonBlocks(ctx, title)
	data["articles"] = articles
	data["title"] = title
	ctx.HTML(http.StatusOK, "articles.html", data)
}

// ArticlesByUser shows the public articles of one author. An unknown author
// still renders the listing, with a 404 status.
func (h *Handler) ArticlesByUser(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	articles, err := h.Repository.ArticlesByUser(uint(id))
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	status := http.StatusOK
	title := "no user found"
	author, err := h.Repository.UserByID(uint(id))
	switch {
	case err == nil:
		title = "Author: " + author.Author
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	default:
		h.errorHandler(ctx, err)
		return
	}

	data := h.CommonBlocks(ctx, title)
	data["articles"] = articles
	data["title"] = title
	ctx.HTML(status, "articles.html", data)
}

// Comment shows a single comment.
func (h *Handler) Comment(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	comment, err := h.Repository.CommentByID(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.Redirect(http.StatusSeeOther, "/")
			return
		}
		h.errorHandler(ctx, err)
		return
	}
	data := h.CommonBlocks(ctx, "Comment # "+strconv.FormatUint(uint64(comment.ID), 10))
	data["comment"] = comment
	ctx.HTML(http.StatusOK, "singlecomment.html", data)
}

// AllTags shows the full tag cloud.
func (h *Handler) AllTags(ctx *gin.Context) {
	tags, err := h.Repository.TagCloud()
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	data := h.CommonBlocks(ctx, "alltags")
	data["alltags"] = tags
	ctx.HTML(http.StatusOK, "alltags.html", data)
}

// AllAuthors lists every author with their article counts.
func (h *Handler) AllAuthors(ctx *gin.Context) {
	users, err := h.Repository.Authors()
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	data := h.CommonBlocks(ctx, "allauthors")
	data["allusers"] = users
	ctx.HTML(http.StatusOK, "allauthors.html", data)
}

// AllMonths lists every month that has public articles.
func (h *Handler) AllMonths(ctx *gin.Context) {
	months, err := h.Repository.ActiveMonths()
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	data := h.CommonBlocks(ctx, "allmonths")
	data["allmonths"] = months
	ctx.HTML(http.StatusOK, "allmonths.html", data)
}

// FourOhFour renders the 404 page for anything the route table misses.
func (h *Handler) FourOhFour(ctx *gin.Context) {
	data := h.CommonBlocks(ctx, "404")
	data["path"] = ctx.Request.URL.Path
	ctx.HTML(http.StatusNotFound, "404.html", data)
}
