package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DeliveryStatus string

const (
	DeliveryNotSent DeliveryStatus = "NOT_SENT"
	DeliverySent    DeliveryStatus = "SENT"
)

type ComputationStatus string

const (
	NotCalculated ComputationStatus = "NOT_CALCULATED"
	Calculated    ComputationStatus = "CALCULATED"
)

// BillKind tells which trigger produced a generated bill.
type BillKind string

const (
	BillRecurring BillKind = "RECURRING"
	BillCheckout  BillKind = "CHECKOUT"
)

// GeneratedBill is a point-in-time billing record for one booking and month.
// The summaries are copies taken at creation so later edits to the live
// booking, room or tenant never rewrite history.
type GeneratedBill struct {
	ID                string            `bson:"id" json:"id"`
	Kind              BillKind          `bson:"kind" json:"kind"`
	Bill              BillSnapshot      `bson:"bill" json:"bill"`
	Room              RoomSummary       `bson:"room" json:"room"`
	Tenant            TenantSummary     `bson:"tenant" json:"tenant"`
	Booking           BookingSummary    `bson:"booking" json:"booking"`
	Month             string            `bson:"month" json:"month"` // YYYY-MM
	Total             decimal.Decimal   `bson:"total" json:"total"`
	DeliveryStatus    DeliveryStatus    `bson:"deliveryStatus" json:"deliveryStatus"`
	ComputationStatus ComputationStatus `bson:"computationStatus" json:"computationStatus"`
	CreatedAt         time.Time         `bson:"createdAt" json:"createdAt"`
	SentAt            *time.Time        `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
}

type BillSnapshot struct {
	ID               string          `bson:"id" json:"id"`
	ElectricityUnits decimal.Decimal `bson:"electricityUnits" json:"electricityUnits"`
	UnitPrice        decimal.Decimal `bson:"unitPrice" json:"unitPrice"`
	RentPerDay       decimal.Decimal `bson:"rentPerDay" json:"rentPerDay"`
}

type RoomSummary struct {
	RoomNumber string          `bson:"roomNumber" json:"roomNumber"`
	Rent       decimal.Decimal `bson:"rent" json:"rent"`
	Sharing    bool            `bson:"sharing" json:"sharing"`
	Capacity   int             `bson:"capacity" json:"capacity"`
}

type TenantSummary struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

type BookingSummary struct {
	ID       string    `bson:"id" json:"id"`
	CheckIn  time.Time `bson:"checkIn" json:"checkIn"`
	CheckOut time.Time `bson:"checkOut" json:"checkOut"`
}
