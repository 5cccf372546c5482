package routes

import (
	"time"

	"studiobook/handlers"
	"studiobook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers session and account lifecycle endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/session")
	{
		api.POST("/verify", hb.VerifySessionHandler)
		api.POST("/reset-password", hb.ResetPasswordHandler)

		api.Use(middleware.SessionAuthMiddleware(hb.Sessions))
		api.POST("/signout", hb.SignOutHandler)
	}
}

// RegisterOnboardingRoutes registers the profile creation endpoint.
func RegisterOnboardingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/onboarding")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.Sessions))
		api.POST("", hb.CompleteOnboardingHandler)
	}
}

// RegisterBookingRoutes registers the class listing and booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.Sessions), middleware.RequireOnboarded())
		api.GET("/classes", hb.GetClassesHandler)
		api.GET("/classes/stream", hb.StreamClassesHandler)
		api.GET("/points", hb.GetPointsHandler)
		api.GET("/bookings", hb.GetBookingsHandler)
		api.POST("/booking/confirm", hb.ConfirmBookingHandler)
	}
}

// RegisterPlanRoutes registers the plan catalog and payment endpoints.
func RegisterPlanRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.Sessions), middleware.RequireOnboarded())
		api.GET("/plans", hb.GetPlansHandler)
		api.POST("/payment/attempts", hb.CreatePaymentAttemptHandler)
		api.GET("/payment/attempts/:id", hb.GetPaymentAttemptHandler)
		api.POST("/payment/attempts/:id/abandoned", hb.ReportAbandonedHandler)
	}
}

// RegisterAnalyticsRoutes registers the telemetry sink.
func RegisterAnalyticsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/analytics")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.Sessions))
		api.POST("/events", hb.PostAnalyticsEventHandler)
	}
}

// RegisterSystemRoutes registers public system endpoints.
func RegisterSystemRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	r.GET("/api/system/maintenance", hb.GetMaintenanceHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSystemRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterOnboardingRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPlanRoutes(r, hb)
	RegisterAnalyticsRoutes(r, hb)
}
