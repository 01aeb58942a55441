package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentCreated PaymentStatus = "CREATED"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// PaymentOrder tracks one gateway payment attempt against a generated bill.
type PaymentOrder struct {
	ID               string          `bson:"id" json:"id"`
	GeneratedBillID  string          `bson:"generatedBillId" json:"generatedBillId"`
	Amount           decimal.Decimal `bson:"amount" json:"amount"`
	Currency         string          `bson:"currency" json:"currency"`
	Status           PaymentStatus   `bson:"status" json:"status"`
	FailureReason    string          `bson:"failureReason,omitempty" json:"failureReason,omitempty"`
	GatewayOrderID   string          `bson:"gatewayOrderId" json:"gatewayOrderId"`
	GatewayPaymentID string          `bson:"gatewayPaymentId,omitempty" json:"gatewayPaymentId,omitempty"`
	ClientSecret     string          `bson:"-" json:"clientSecret,omitempty"`
	CreatedAt        time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time       `bson:"updatedAt" json:"updatedAt"`
}
