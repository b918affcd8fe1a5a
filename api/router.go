package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/dinnermenu/api/handler"
	"github.com/use-agent/dinnermenu/approval"
	"github.com/use-agent/dinnermenu/api/middleware"
	"github.com/use-agent/dinnermenu/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	Recipe:  RateLimit
//	Menus:   RateLimit
//
// Health sits outside the limiter so monitoring checks always work.
func NewRouter(ex handler.RecipeExtractor, batches *handler.Batches, approvals *approval.Store, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(batches, startTime))

	limited := v1.Group("")
	limited.Use(middleware.RateLimit(cfg.RateLimit))

	limited.POST("/scrape-recipe", handler.ScrapeRecipe(ex))
	limited.POST("/scrape-recipe/batch", handler.PostBatch(batches))
	limited.GET("/scrape-recipe/batch/:id", handler.GetBatch(batches))

	limited.POST("/menus", handler.CreateMenu(approvals))
	limited.GET("/menus/:id", handler.GetMenu(approvals))
	limited.POST("/menus/:id/approval-request", handler.RequestApproval(approvals))
	limited.GET("/approvals/:token", handler.VerifyApproval(approvals))
	limited.POST("/approvals/:token", handler.ResolveApproval(approvals))

	return r
}
