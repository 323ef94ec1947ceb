package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ublog-dev/ublog/internal/config"
	"github.com/ublog-dev/ublog/internal/handlers"
	"github.com/ublog-dev/ublog/internal/middleware"
	"github.com/ublog-dev/ublog/internal/repository"
)

// NewRouter assembles the gin engine: template helpers, the XSRF guard and
// session resolution ahead of every route, then the route table. The
// middleware order matters; token evaluation runs once, before any handler
// logic.
func NewRouter(repo *repository.Repository, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.SetFuncMap(handlers.FuncMap())

	r.Use(middleware.XSRFGuard())
	r.Use(middleware.Session())

	h := handlers.NewHandler(repo, cfg)
	h.RegisterStatic(r)
	h.RegisterHandler(r)

	return r
}
