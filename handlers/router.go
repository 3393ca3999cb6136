package handlers

import (
	"net/http"
	"time"

	"github.com/expensehub/backend/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the middleware chain and all routes under /api.
func NewRouter(cfg config.Config, auth *AuthHandler, expenses *ExpenseHandler, reports *ReportHandler) *gin.Engine {
	router := gin.Default()

	// Cookie auth needs a credentialed single origin, not a wildcard.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", auth.Login)
			authRoutes.POST("/logout", auth.Logout)
			authRoutes.GET("/me", auth.RequireAuth(), auth.Me)
		}

		expenseRoutes := api.Group("/expenses", auth.RequireAuth())
		{
			expenseRoutes.GET("", expenses.List)
			expenseRoutes.GET("/search", expenses.Search)
			expenseRoutes.GET("/category", expenses.FilterByCategory)
			expenseRoutes.GET("/export", expenses.Export)
			expenseRoutes.GET("/admin/all", auth.RequireAdmin(), expenses.AdminAll)
			expenseRoutes.GET("/:id", expenses.GetOne)
			expenseRoutes.POST("", expenses.Create)
			expenseRoutes.PUT("/:id", expenses.Update)
			expenseRoutes.DELETE("/:id", expenses.Delete)
		}

		reportRoutes := api.Group("/reports/expenses", auth.RequireAuth())
		{
			reportRoutes.GET("/by-category", reports.ByCategory)
			reportRoutes.GET("/by-period", reports.ByPeriod)
		}
	}

	return router
}
