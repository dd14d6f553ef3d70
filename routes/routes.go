package routes

import (
	"strings"
	"time"

	"apnakam/handlers"
	"apnakam/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.HealthHandler)
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth *middleware.FirebaseAuth) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(auth.Required())
		bookingGroup.POST("", hb.Booking.CreateBookingHandler)
		bookingGroup.GET("", hb.Booking.ListBookingsHandler)
		bookingGroup.GET("/:id", hb.Booking.GetBookingHandler)
		bookingGroup.PATCH("/:id/status", hb.Booking.UpdateBookingStatusHandler)
	}
	r.POST("/api/reviews", auth.Required(), hb.Review.SubmitReviewHandler)
}

// RegisterWorkerRoutes registers the public worker directory.
func RegisterWorkerRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth *middleware.FirebaseAuth) {
	api := r.Group("/api/workers")
	{
		api.GET("/search", hb.Worker.SearchWorkersHandler)
		api.GET("/:id/reviews", hb.Worker.ListReviewsHandler)
		api.GET("/:id/reviews/summary", hb.Worker.SummarizeReviewsHandler)
		// Signed-in viewers also get favorite and unlocked-contact state.
		api.GET("/:id", auth.Optional(), hb.Worker.GetWorkerHandler)
	}
}

// RegisterUserRoutes registers profile, favorites, uploads and payments.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth *middleware.FirebaseAuth) {
	me := r.Group("/api/users/me")
	{
		me.Use(auth.Required())
		me.GET("", hb.User.GetProfileHandler)
		me.PATCH("", hb.User.UpdateProfileHandler)
		me.GET("/favorites", hb.User.ListFavoritesHandler)
		me.POST("/favorites/:workerId", hb.User.ToggleFavoriteHandler)
		me.POST("/skills/suggest", hb.User.SuggestSkillsHandler)
	}

	r.POST("/api/uploads/:kind", auth.Required(), hb.Upload.UploadImageHandler)

	payments := r.Group("/api/payments")
	{
		payments.Use(auth.Required())
		payments.POST("/orders", hb.Payment.CreateOrderHandler)
		payments.POST("/verify", hb.Payment.VerifyPaymentHandler)
	}
}

// RegisterContentRoutes registers the public blog, legal and contact endpoints.
func RegisterContentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/contact", hb.Contact.SubmitContactHandler)
	r.GET("/api/blog", hb.Blog.ListPostsHandler)
	r.GET("/api/blog/:slug", hb.Blog.GetPostHandler)
	r.GET("/api/legal", hb.Admin.LegalHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/admin/login", hb.Admin.LoginHandler)

	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/users", hb.Admin.GetAllUsersHandler)
		adminGroup.GET("/stats", hb.Admin.StatsHandler)
		adminGroup.GET("/contacts", hb.Admin.ListContactMessagesHandler)
		adminGroup.PATCH("/workers/:id/approval", hb.Admin.ApproveWorkerHandler)
		adminGroup.POST("/blog", hb.Admin.CreatePostHandler)
		adminGroup.POST("/blog/generate", hb.Admin.GenerateDraftHandler)
		adminGroup.DELETE("/blog/:slug", hb.Admin.DeletePostHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth *middleware.FirebaseAuth, allowedOrigins string) {
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !(len(origins) == 1 && origins[0] == "*"),
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterBookingRoutes(r, hb, auth)
	RegisterWorkerRoutes(r, hb, auth)
	RegisterUserRoutes(r, hb, auth)
	RegisterContentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
