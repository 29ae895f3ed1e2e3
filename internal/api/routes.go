package api

import (
	"net/http"

	"fitforge/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	planService service.PlanService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	planHandler := NewPlanHandler(planService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/profile", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.SaveProfile)

		planGroup := protected.Group("/plans")
		{
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.GET("/current", planHandler.GetCurrentPlan)
			planGroup.POST("/days/:day/generate", planHandler.GenerateDay)
		}
	}
}
