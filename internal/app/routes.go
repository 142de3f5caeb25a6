package app

import (
	"Pastel/internal/auth"
	"Pastel/internal/cache"
	"Pastel/internal/config"
	"Pastel/internal/handlers"
	"Pastel/internal/repo"
	"Pastel/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	sessionStore := auth.NewStore(rdb, cfg.Auth.SessionTTL.Duration())
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc, cfg.Auth.CallbackSecret, cfg.Auth.SessionTTL.Duration())
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireSession(sessionStore))
	checklistRepo := repo.NewPGChecklistRepo(db)
	checklistCache := cache.NewChecklistCache(rdb, cfg.Redis.DefaultTTL.Duration())
	checklistSvc := service.NewChecklistService(checklistRepo, checklistCache)
	checklistHandler := handlers.NewChecklistHandler(checklistSvc)
	registerChecklistRoutes(protected, checklistHandler)
	registerMeRoutes(protected, authHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Pastel Checklists API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerChecklistRoutes(api *gin.RouterGroup, h *handlers.ChecklistHandler) {
	api.GET("/checklists", h.List)
	api.POST("/checklists", h.Create)
	api.GET("/checklists/:id", h.Get)
	api.PATCH("/checklists/:id", h.Update)
	api.DELETE("/checklists/:id", h.Delete)
	api.POST("/checklists/:id/items", h.AddItem)
	api.POST("/items/:id/toggle", h.ToggleItem)
	api.DELETE("/items/:id", h.DeleteItem)
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/session", h.CreateSession)
	api.POST("/auth/logout", h.Logout)
}

func registerMeRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.GET("/me", h.Me)
	api.DELETE("/me", h.DeleteMe)
}
