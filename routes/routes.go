package routes

import (
	"net/http"
	"time"

	"tripflow/handlers"
	"tripflow/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterTripRoutes registers the planning endpoints.
func RegisterTripRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/trips")
	{
		api.POST("", hb.SubmitTripHandler)
		api.POST("/transcribe", hb.TranscribeHandler)
		api.GET("/:sessionID", hb.GetSessionHandler)
		api.GET("/:sessionID/events", hb.SessionEventsHandler)
		api.POST("/:sessionID/reply", hb.ReplyHandler)
		api.POST("/:sessionID/select", hb.SelectFlightHandler)
		api.POST("/:sessionID/feedback", hb.FeedbackHandler)
		api.POST("/:sessionID/push-token", hb.RegisterPushTokenHandler)
	}
}

// RegisterJobRoutes registers the job status endpoint.
func RegisterJobRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/jobs")
	{
		api.GET("/:jobID", hb.GetJobHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Tripflow"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterTripRoutes(r, hb)
	RegisterJobRoutes(r, hb)
}
