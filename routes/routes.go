package routes

import (
	"net/http"
	"time"

	"voyago/handlers"
	"voyago/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the booking-payment flow.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", bh.CreateBookingHandler)
		api.GET("/mine", bh.ListMyBookingsHandler)
		api.GET("/:id", bh.GetBookingHandler)
		api.POST("/:id/cancel", bh.CancelBookingHandler)
		api.DELETE("/:id", bh.DeleteBookingHandler)
		api.POST("/:id/proof", bh.UploadProofHandler)

		// Payment flow: initiate, then resolve on return from the provider.
		api.POST("/:id/payment", bh.InitiatePaymentHandler)
		api.GET("/:id/payment/status", bh.ResolvePaymentHandler)
		api.POST("/:id/payment/await", bh.AwaitPaymentHandler)
		api.GET("/:id/payment/history", bh.PaymentHistoryHandler)
	}
}

// RegisterCatalogRoutes registers public catalog reads.
func RegisterCatalogRoutes(r *gin.Engine, ch *handlers.CatalogHandler) {
	api := r.Group("/api/catalog")
	{
		api.GET("/destinations", ch.ListDestinationsHandler)
		api.GET("/destinations/:id", ch.GetDestinationHandler)
		api.GET("/events", ch.ListEventsHandler)
		api.GET("/events/:id", ch.GetEventHandler)
		api.GET("/accommodations", ch.ListAccommodationsHandler)
		api.GET("/accommodations/:id", ch.GetAccommodationHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, bh *handlers.BookingHandler, ch *handlers.CatalogHandler) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/bookings", bh.ListAllBookingsHandler)
		adminGroup.GET("/bookings/:id/proof", bh.GetProofHandler)
		adminGroup.POST("/bookings/:id/approve-proof", bh.ApproveProofHandler)
		adminGroup.POST("/bookings/:id/cancel", bh.AdminCancelBookingHandler)
		adminGroup.GET("/subjects/:type/:id/bookings", bh.ListSubjectBookingsHandler)

		adminGroup.POST("/destinations", ch.CreateDestinationHandler)
		adminGroup.PATCH("/destinations/:id", ch.UpdateDestinationHandler)
		adminGroup.DELETE("/destinations/:id", ch.DeleteDestinationHandler)
		adminGroup.POST("/events", ch.CreateEventHandler)
		adminGroup.PATCH("/events/:id", ch.UpdateEventHandler)
		adminGroup.DELETE("/events/:id", ch.DeleteEventHandler)
		adminGroup.POST("/accommodations", ch.CreateAccommodationHandler)
		adminGroup.PATCH("/accommodations/:id", ch.UpdateAccommodationHandler)
		adminGroup.DELETE("/accommodations/:id", ch.DeleteAccommodationHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Voyago"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, ch *handlers.CatalogHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCatalogRoutes(r, ch)
	RegisterBookingRoutes(r, bh)
	RegisterAdminRoutes(r, bh, ch)
}
