package models

import "time"

type BookingState string

const (
	BookingActive   BookingState = "ACTIVE"
	BookingInactive BookingState = "INACTIVE"
)

// Booking is a tenant's reservation of a room for a date interval.
// CheckIn and CheckOut are calendar dates stored as midnight UTC.
type Booking struct {
	ID         string       `bson:"id" json:"id"`
	TenantID   string       `bson:"tenantId" json:"tenantId"`
	RoomNumber string       `bson:"roomNumber" json:"roomNumber"`
	BillID     string       `bson:"billId,omitempty" json:"billId,omitempty"` // utility bill used for electricity figures
	CheckIn    *time.Time   `bson:"checkIn,omitempty" json:"checkIn,omitempty"`
	CheckOut   *time.Time   `bson:"checkOut,omitempty" json:"checkOut,omitempty"`
	State      BookingState `bson:"state" json:"state"`
	Cancelled  bool         `bson:"cancelled" json:"cancelled"`
	CreatedAt  time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// HasStay reports whether both stay dates are set.
func (b Booking) HasStay() bool {
	return b.CheckIn != nil && b.CheckOut != nil
}

// BookingRequest is the input for booking a room.
type BookingRequest struct {
	TenantID   string     `json:"tenantId" binding:"required"`
	RoomNumber string     `json:"roomNumber" binding:"required"`
	BillID     string     `json:"billId"`
	CheckIn    time.Time  `json:"checkIn" binding:"required"`
	CheckOut   *time.Time `json:"checkOut"`
}
