package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/formworks/formbuilder-server/controllers"
	"github.com/formworks/formbuilder-server/middleware"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.POST("/google", controllers.GoogleLogin)
		}

		api.GET("/me", middleware.AuthJWT(), controllers.Me)
		api.POST("/uploads", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.UploadFile)

		forms := api.Group("/forms")
		{
			// Respondents need the definition to render the filler.
			forms.GET("/:id", controllers.GetForm)

			// Submission path: authenticated respondents.
			forms.POST("/:id/responses", middleware.AuthJWT(), middleware.RateLimitSubmit(), controllers.SubmitResponse)
			forms.PUT("/:id/responses", middleware.AuthJWT(), controllers.UpdateResponse)

			// Dashboard: admin whitelist only.
			admin := forms.Group("")
			admin.Use(middleware.AuthJWT(), middleware.RequireAdmin())
			{
				admin.GET("", controllers.ListForms)
				admin.POST("", middleware.RateLimitFormsCreate(), controllers.CreateForm)
				admin.PUT("/:id", controllers.UpdateForm)
				admin.DELETE("/:id", controllers.DeleteForm)

				admin.GET("/:id/responses", controllers.ListResponses)
				admin.GET("/:id/responses/by-email/:email", controllers.GetResponseByEmail)
				admin.GET("/:id/responses/:responseId", controllers.GetResponseByID)
				admin.DELETE("/:id/responses/:responseId", controllers.DeleteResponse)
			}
		}
	}
}
