package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomStatus string

const (
	RoomAvailable RoomStatus = "AVAILABLE"
	RoomOccupied  RoomStatus = "OCCUPIED"
)

// Room is the rentable unit. Rent is per calendar month.
type Room struct {
	RoomNumber  string          `bson:"roomNumber" json:"roomNumber" binding:"required"`
	RoomType    string          `bson:"roomType" json:"roomType"`
	Description string          `bson:"description" json:"description"`
	Rent        decimal.Decimal `bson:"rent" json:"rent"`
	Status      RoomStatus      `bson:"status" json:"status"`
	Sharing     bool            `bson:"sharing" json:"sharing"`
	Capacity    int             `bson:"capacity" json:"capacity"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// RoomImages keeps the storage IDs of a room's pictures.
type RoomImages struct {
	RoomNumber string   `bson:"roomNumber" json:"roomNumber"`
	ImageIDs   []string `bson:"imageIds" json:"imageIds"`
}
