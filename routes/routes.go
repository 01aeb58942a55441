package routes

import (
	"time"

	"stayledger/handlers"
	"stayledger/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterAdminRoutes sets up billing and property management endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware(hb.AdminSecret))
		adminGroup.GET("/bills", hb.ListBillsHandler)
		adminGroup.GET("/bills/:id", hb.GetBillHandler)
		adminGroup.POST("/bills/:id/resend", hb.ResendBillHandler)
		adminGroup.GET("/tenants/:tenantID/bills", hb.ListTenantBillsHandler)
		adminGroup.POST("/tenants", hb.CreateTenantHandler)
		adminGroup.POST("/rooms", hb.CreateRoomHandler)
		adminGroup.POST("/utility-bills", hb.CreateUtilityBillHandler)
		adminGroup.POST("/triggers/:name", hb.RunTriggerHandler)
	}
}

// RegisterBookingRoutes sets up room booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthAdminMiddleware(hb.AdminSecret))
		bookingGroup.POST("", hb.CreateBookingHandler)
		bookingGroup.GET("/:id", hb.GetBookingHandler)
		bookingGroup.POST("/:id/cancel", hb.CancelBookingHandler)
		bookingGroup.PATCH("/:id/checkout", hb.UpdateCheckOutHandler)
	}
}

// RegisterPaymentRoutes sets up payment endpoints. The webhook authenticates by signature.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/payments/webhook", hb.StripeWebhookHandler)

	paymentGroup := r.Group("/api/payments")
	{
		paymentGroup.Use(middleware.JWTAuthAdminMiddleware(hb.AdminSecret))
		paymentGroup.POST("/orders/:billID", hb.CreateOrderHandler)
	}
}

// RegisterRoomRoutes sets up the public room listing and room image endpoints.
func RegisterRoomRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/rooms", hb.ListRoomsHandler)

	roomGroup := r.Group("/api/rooms/:number/images")
	{
		roomGroup.Use(middleware.JWTAuthAdminMiddleware(hb.AdminSecret))
		roomGroup.POST("", hb.UploadRoomImageHandler)
		roomGroup.GET("", hb.ListRoomImagesHandler)
		roomGroup.DELETE("/*imageID", hb.DeleteRoomImageHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterRoomRoutes(r, hb)
}
