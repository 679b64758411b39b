package routes

import (
	"net/http"
	"time"

	"github.com/vivek-java-dev/Calorie-Tracker/controllers"
	"github.com/vivek-java-dev/Calorie-Tracker/middlewares"
	"github.com/vivek-java-dev/Calorie-Tracker/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(hub *services.RealtimeHub) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Server is running!",
			"timestamp": time.Now().Format(time.RFC3339),
			"endpoints": gin.H{
				"POST /auth/google":            "Exchange a Google ID token for an API token",
				"GET /api/entries":             "Get one day's entries with summary",
				"POST /api/analyze-user-text":  "Analyze meal or exercise from text description",
				"POST /api/analyze-meal-image": "Analyze meal from uploaded image",
				"DELETE /api/entries":          "Delete an entry by id or a day by date",
			},
		})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Route not found: " + c.Request.Method + " " + c.Request.URL.Path,
		})
	})

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/google", controllers.GoogleLogin)
	}

	// Protected API routes
	entryCtrl := controllers.NewEntryController(hub)
	analysisCtrl := controllers.NewAnalysisController(services.NewGeminiService(), hub)
	realtimeCtrl := controllers.NewRealtimeController(hub)

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/entries", entryCtrl.GetEntries)
		api.DELETE("/entries", entryCtrl.DeleteEntries)
		api.POST("/analyze-user-text", analysisCtrl.AnalyzeUserText)
		api.POST("/analyze-meal-image", analysisCtrl.AnalyzeMealImage)
		api.GET("/events", realtimeCtrl.EventsWS)
	}

	return r
}
