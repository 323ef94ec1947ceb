package handlers

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"

	"github.com/ublog-dev/ublog/internal/auth"
	"github.com/ublog-dev/ublog/internal/middleware"
)

// Blurb cuts content down to at most 50 words for listing previews.
func Blurb(content string) string {
	words := strings.Fields(content)
	if len(words) >= 50 {
		return strings.Join(words[:50], " ") + " ..."
	}
	return strings.Join(words, " ")
}

// SlashFilter makes a tag name URL-safe by replacing slashes; UnslashFilter
// reverses it when the tag comes back in a path segment.
func SlashFilter(text string) string {
	return strings.ReplaceAll(text, "/", "&-#")
}

func UnslashFilter(text string) string {
	return strings.ReplaceAll(text, "&-#", "/")
}

// Markdown renders article markup to HTML for templates.
func Markdown(content string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		logrus.WithError(err).Warn("markdown rendering failed")
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(buf.String())
}

// ArticleImage extracts the first embedded image reference, the text between
// "{{" and the following "|", for OpenGraph metadata. Content starting with
// the marker yields nothing, matching the listing behavior.
func ArticleImage(content string) string {
	first := strings.Index(content, "{{")
	if first <= 0 {
		return ""
	}
	last := strings.Index(content[first:], "|")
	if last < 0 {
		return ""
	}
	return content[first+2 : first+last]
}

// FuncMap holds the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"blurb":       Blurb,
		"slashfilter": SlashFilter,
		"markdown":    Markdown,
		"datetime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
		"even": func(i int) bool { return i%2 == 0 },
	}
}

// CommonBlocks assembles the template data every page shares: blog metadata,
// the sidebar's tag cloud, authors and archive months (ten each), the
// logged-in user if any, and the XSRF token for forms.
func (h *Handler) CommonBlocks(ctx *gin.Context, page string) gin.H {
	tags, err := h.Repository.TagCloud()
	if err != nil {
		logrus.WithError(err).Warn("loading tag cloud")
	}
	users, err := h.Repository.Authors()
	if err != nil {
		logrus.WithError(err).Warn("loading authors")
	}
	months, err := h.Repository.ActiveMonths()
	if err != nil {
		logrus.WithError(err).Warn("loading archive months")
	}

	var user *auth.SessionClaims
	if claims, err := middleware.CurrentUser(ctx); err == nil {
		user = claims
	}

	return gin.H{
		"page":          page,
		"blogname":      h.Config.Blog.Name,
		"blogtitle":     h.Config.Blog.Title,
		"blogsubtitle":  h.Config.Blog.Subtitle,
		"blogurl":       h.Config.Blog.URL,
		"blogcopyright": time.Now().Format("2006"),
		"tags":          capList(tags, 10),
		"users":         capList(users, 10),
		"menuitems":     capList(months, 10),
		"user":          user,
		"xsrftoken":     middleware.XSRFToken(ctx),
	}
}

func capList[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
