package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beast-watch/api-go/controllers"
)

// Handlers bundles the controllers and middleware the router needs.
type Handlers struct {
	Sightings    *controllers.SightingController
	Auth         *controllers.AuthController
	RequireAuth  gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	public := r.Group("/api")
	{
		SetupAuthRoutes(public, h.Auth, h.RequireAuth)
		SetupSightingRoutes(public, h.Sightings, h.OptionalAuth)
	}

	// Reviewer routes
	admin := r.Group("/api/admin")
	admin.Use(h.RequireAuth)
	{
		SetupAdminSightingRoutes(admin, h.Sightings)
	}
}
