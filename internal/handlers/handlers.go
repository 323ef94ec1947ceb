package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ublog-dev/ublog/internal/config"
	"github.com/ublog-dev/ublog/internal/middleware"
	"github.com/ublog-dev/ublog/internal/repository"
)

type Handler struct {
	Repository *repository.Repository
	Config     *config.Config
}

func NewHandler(r *repository.Repository, cfg *config.Config) *Handler {
	return &Handler{
		Repository: r,
		Config:     cfg,
	}
}

// RegisterHandler wires up the route table.
func (h *Handler) RegisterHandler(router *gin.Engine) {
	router.GET("/", h.Index)
	router.GET("/home", h.Index)
	router.GET("/page/:page", h.Index)
	router.GET("/page/:page/:unpubpage", h.Index)

	router.GET("/login", h.Login)
	router.GET("/signup", h.Signup)
	router.POST("/ULF-Login", h.ValidateLogin)
	router.POST("/adduser", h.AddUser)
	router.GET("/logout", h.Logout)

	router.GET("/article/:id/*title", h.Article)
	router.GET("/articles/:year", h.ArticlesByDate)
	router.GET("/articles/:year/:month", h.ArticlesByDate)
	router.GET("/tags/:tag", h.ArticlesByTag)
	router.GET("/author/:id/*name", h.ArticlesByUser)
	router.GET("/alltags", h.AllTags)
	router.GET("/allauthors", h.AllAuthors)
	router.GET("/allmonths", h.AllMonths)

	router.GET("/comment/:id", h.Comment)
	router.POST("/addcomment", h.AddComment)

	admin := router.Group("/admin", middleware.AdminRequired())
	{
		admin.GET("/users", h.Users)
		admin.GET("/user/:id/*name", h.EditUser)
		admin.POST("/updateuser", h.UpdateUser)
		admin.POST("/updateuserpassword", h.UpdateUserPassword)
		admin.POST("/deleteuser", h.DeleteUser)
		admin.POST("/deletecomment", h.DeleteComment)
		admin.POST("/deletearticle", h.DeleteArticle)
		admin.GET("/article/:id/*title", h.AdminArticle)
		admin.GET("/newarticle", h.NewArticle)
		admin.POST("/newarticle", h.NewArticle)
		admin.POST("/addarticle", h.AddArticle)
		admin.POST("/updatearticle", h.UpdateArticle)
	}

	router.NoRoute(h.FourOhFour)
}

// RegisterStatic loads the templates and the asset directory.
func (h *Handler) RegisterStatic(router *gin.Engine) {
	router.LoadHTMLGlob("templates/*.html")
	router.Static("/static", "./static")
}

// RequestMessage renders the generic message page with a refresh target.
func (h *Handler) RequestMessage(ctx *gin.Context, message, status, refresh string) {
	data := h.CommonBlocks(ctx, status)
	data["message"] = message
	data["refresh"] = refresh
	ctx.HTML(http.StatusOK, "message.html", data)
}

// XSRFInvalidToken renders the 403 page for requests that failed token
// verification.
func (h *Handler) XSRFInvalidToken(ctx *gin.Context) {
	data := h.CommonBlocks(ctx, "Invalid XSRF token")
	data["error"] = "Your XSRF token was incorrect, please try again."
	ctx.HTML(http.StatusForbidden, "403.html", data)
	ctx.Abort()
}

// errorHandler logs an unexpected failure and shows the message page.
func (h *Handler) errorHandler(ctx *gin.Context, err error) {
	logrus.Error(err.Error())
	data := h.CommonBlocks(ctx, "Error")
	data["message"] = "Something went wrong, please try again later."
	data["refresh"] = "/home"
	ctx.HTML(http.StatusInternalServerError, "message.html", data)
}
