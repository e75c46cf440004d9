package routes

import (
	"portfolio-review-api/controllers"
	"portfolio-review-api/middleware"
	"portfolio-review-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Portfolio Review API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile & session
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)
			protected.GET("/session/context", controllers.GetSessionContext)

			// Reference data (all authenticated users)
			protected.GET("/categories", controllers.GetCategories)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/counter", controllers.GetNotificationCounter)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Portfolios
			portfolios := protected.Group("/portfolios")
			{
				// Owners and admins can view
				portfolios.GET("", controllers.GetPortfolios)
				portfolios.GET("/:id", controllers.GetPortfolio)
				portfolios.GET("/:id/documents", controllers.GetDocuments)

				// Only applicants can create/update/submit
				applicant := middleware.RequirePermission(models.PermSubmitPortfolios)
				portfolios.POST("", applicant, controllers.CreatePortfolio)
				portfolios.PUT("/:id", applicant, controllers.UpdatePortfolio)
				portfolios.DELETE("/:id", applicant, controllers.DeletePortfolio)
				portfolios.POST("/:id/submit", applicant, controllers.SubmitPortfolio)
				portfolios.POST("/:id/documents", applicant, controllers.UploadDocument)
			}

			// Documents (shared access rule enforced in the handler)
			documents := protected.Group("/documents")
			{
				documents.GET("/:document_id/download", controllers.DownloadDocument)
				documents.DELETE("/:document_id",
					middleware.RequirePermission(models.PermSubmitPortfolios),
					controllers.DeleteDocument)
			}

			// Evaluator workflow
			evaluator := middleware.RequirePermission(models.PermEvaluatePortfolios)
			assignments := protected.Group("/assignments", evaluator)
			{
				assignments.GET("", controllers.GetAssignments)
				assignments.GET("/:id", controllers.GetAssignment)
				assignments.POST("/:id/evaluation", controllers.CreateEvaluation)
			}
			evaluations := protected.Group("/evaluations", evaluator)
			{
				evaluations.PUT("/:id", controllers.UpdateEvaluation)
				evaluations.POST("/:id/submit", controllers.SubmitEvaluation)
			}

			// Admin routes
			admin := protected.Group("/admin")
			{
				users := admin.Group("/users", middleware.RequirePermission(models.PermManageUsers))
				{
					users.GET("", controllers.GetUsers)
					users.POST("", controllers.CreateUser)
					users.PUT("/:id", controllers.UpdateUser)
					users.DELETE("/:id", controllers.DeleteUser)
				}
				admin.GET("/roles",
					middleware.RequirePermission(models.PermManageUsers),
					controllers.GetRoles)

				managePortfolios := middleware.RequirePermission(models.PermManagePortfolios)
				admin.GET("/portfolios", managePortfolios, controllers.GetAdminPortfolios)
				admin.POST("/portfolios/:id/status", managePortfolios, controllers.TransitionPortfolioStatus)
				admin.GET("/dashboard", managePortfolios, controllers.GetDashboardStats)

				adminAssignments := admin.Group("/assignments", managePortfolios)
				{
					adminAssignments.GET("", controllers.GetAdminAssignments)
					adminAssignments.POST("", controllers.CreateAssignment)
					adminAssignments.DELETE("/:id", controllers.DeleteAssignment)
				}

				categories := admin.Group("/categories", middleware.RequirePermission(models.PermManageRubrics))
				{
					categories.POST("", controllers.CreateCategory)
					categories.PUT("/:id", controllers.UpdateCategory)
					categories.DELETE("/:id", controllers.DeleteCategory)
				}
			}
		}
	}
}
