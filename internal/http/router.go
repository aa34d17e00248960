package api

import (
	"log"
	stdhttp "net/http"

	intconfig "emanifest/internal/config"
	h "emanifest/internal/http/handlers"
	"emanifest/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	adminOnly := middleware.RequireAuth(h.JWTSecret(), "admin")
	staff := middleware.RequireAuth(h.JWTSecret(), "admin", "agent")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/admin/login", h.AdminLogin)
		auth.POST("/agent/login", h.AgentLogin)
		auth.POST("/admin", adminOnly, h.CreateAdmin)

		// Manifests
		manifests := api.Group("/manifests")
		manifests.POST("/validate-plate", h.ValidatePlate)
		manifests.POST("", staff, h.CreateManifest)
		manifests.GET("", adminOnly, h.ListManifests)
		manifests.GET("/export", adminOnly, h.ExportManifestsCSV)
		manifests.GET("/:id", staff, h.GetManifest)
		manifests.PUT("/:id/lock", staff, h.LockManifest)
		manifests.GET("/:id/sheet", staff, h.GetManifestSheetPDF)

		// Passengers - self-registration stays public
		passengers := api.Group("/passengers")
		passengers.POST("", h.RegisterPassenger)
		passengers.GET("", h.GetPassengers)
		passengers.POST("/bulk", staff, h.BulkRegisterPassengers)

		// Parks & agents (admin CRUD)
		parks := api.Group("/parks", adminOnly)
		parks.GET("", h.GetParks)
		parks.POST("", h.CreatePark)
		parks.PUT("/:id", h.UpdatePark)
		parks.DELETE("/:id", h.DeletePark)

		agents := api.Group("/agents", adminOnly)
		agents.GET("", h.GetAgents)
		agents.POST("", h.CreateAgent)
		agents.PUT("/:id", h.UpdateAgent)
		agents.DELETE("/:id", h.DeleteAgent)

		// Reports
		api.GET("/dashboard/stats", adminOnly, h.GetDashboardStats)
		compliance := api.Group("/compliance", adminOnly)
		compliance.GET("", h.GetComplianceReport)
		compliance.PUT("/:id/status", h.SetComplianceStatus)
	}

	return r
}
