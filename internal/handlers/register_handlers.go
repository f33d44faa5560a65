package handlers

import (
	"github.com/bookshare/bookshare_backend/cmd/docs"
	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/bookshare/bookshare_backend/internal/middleware"
	"github.com/bookshare/bookshare_backend/internal/platform/config"
	"github.com/bookshare/bookshare_backend/internal/platform/storage"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	store *storage.LocalStorage,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public local auth routes plus the provider redirect flow
	registerAuthRoutes(r, cfg, services)
	registerOAuthRoutes(r, cfg, services)

	// /api routes; auth is applied per-route since browsing is public
	setupAPIRoutes(r, cfg, services, store)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the /api group and delegates to entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	store *storage.LocalStorage,
) {
	api := r.Group("/api")
	authRequired := middleware.AuthMiddleware(cfg.JWTSecret)

	registerUserRoutes(api, authRequired, services.Identity)
	registerBookRoutes(api, authRequired, services.Book, store)
	registerFavoriteRoutes(api, authRequired, services.Favorite)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
