package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/beast-watch/api-go/controllers"
)

func SetupSightingRoutes(public *gin.RouterGroup, sightingController *controllers.SightingController, optionalAuth gin.HandlerFunc) {
	sightings := public.Group("/sightings")
	{
		sightings.POST("", optionalAuth, sightingController.CreateSighting)
		sightings.GET("", sightingController.ListPublishedSightings)
	}
}

func SetupAdminSightingRoutes(admin *gin.RouterGroup, sightingController *controllers.SightingController) {
	sightings := admin.Group("/sightings")
	{
		sightings.GET("", sightingController.ListAllSightings)
		sightings.PATCH("/:id", sightingController.UpdateSighting)
		sightings.POST("/:id/review", sightingController.ReviewSighting)
	}
}
