package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UtilityBill carries the flat electricity figures for a room and period.
type UtilityBill struct {
	ID               string          `bson:"id" json:"id"`
	RoomNumber       string          `bson:"roomNumber" json:"roomNumber" binding:"required"`
	Month            string          `bson:"month" json:"month"` // YYYY-MM
	ElectricityUnits decimal.Decimal `bson:"electricityUnits" json:"electricityUnits"`
	UnitPrice        decimal.Decimal `bson:"unitPrice" json:"unitPrice"`
	RentPerDay       decimal.Decimal `bson:"rentPerDay" json:"rentPerDay"`
	CreatedAt        time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time       `bson:"updatedAt" json:"updatedAt"`
}
