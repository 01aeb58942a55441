package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	AdminSecret []byte

	Health gin.HandlerFunc

	// Admin endpoints
	ListBillsHandler         gin.HandlerFunc
	GetBillHandler           gin.HandlerFunc
	ListTenantBillsHandler   gin.HandlerFunc
	ResendBillHandler        gin.HandlerFunc
	RunTriggerHandler        gin.HandlerFunc
	CreateRoomHandler        gin.HandlerFunc
	CreateUtilityBillHandler gin.HandlerFunc
	CreateTenantHandler      gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler  gin.HandlerFunc
	GetBookingHandler     gin.HandlerFunc
	CancelBookingHandler  gin.HandlerFunc
	UpdateCheckOutHandler gin.HandlerFunc

	// Payment endpoints
	CreateOrderHandler   gin.HandlerFunc
	StripeWebhookHandler gin.HandlerFunc

	// Room endpoints
	ListRoomsHandler gin.HandlerFunc

	// Room image endpoints
	UploadRoomImageHandler gin.HandlerFunc
	ListRoomImagesHandler  gin.HandlerFunc
	DeleteRoomImageHandler gin.HandlerFunc
}
