package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/beast-watch/api-go/controllers"
)

func SetupAuthRoutes(public *gin.RouterGroup, authController *controllers.AuthController, requireAuth gin.HandlerFunc) {
	auth := public.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.GET("/me", requireAuth, authController.Me)
	}
}
