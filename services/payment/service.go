package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	generatedBillRepo "stayledger/database/repository/generatedbill"
	orderRepo "stayledger/database/repository/order"
	"stayledger/models"
	"stayledger/utils"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrNothingToPay     = errors.New("bill total is zero")
)

// PaymentService takes payments against generated bills.
type PaymentService interface {
	CreateOrder(ctx context.Context, generatedBillID string) (*models.PaymentOrder, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// DefaultPaymentService implements PaymentService on top of a Gateway.
type DefaultPaymentService struct {
	Orders        orderRepo.OrderRepository
	Bills         generatedBillRepo.GeneratedBillRepository
	Gateway       Gateway
	WebhookSecret string
	Currency      string
	Logger        *zap.Logger
}

var hundred = decimal.NewFromInt(100)

// MinorUnits converts an amount to the currency's smallest unit, rounding half-up.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// CreateOrder opens a payment intent for the bill's total and records the order.
func (s *DefaultPaymentService) CreateOrder(ctx context.Context, generatedBillID string) (*models.PaymentOrder, error) {
	bill, err := s.Bills.GetByID(ctx, generatedBillID)
	if err != nil {
		return nil, err
	}
	if !bill.Total.IsPositive() {
		return nil, fmt.Errorf("bill %s: %w", bill.ID, ErrNothingToPay)
	}

	intent, err := s.Gateway.CreateIntent(ctx, MinorUnits(bill.Total), s.Currency, map[string]string{
		"generatedBillId": bill.ID,
		"tenantId":        bill.Tenant.ID,
		"month":           bill.Month,
	})
	if err != nil {
		return nil, err
	}

	order := &models.PaymentOrder{
		GeneratedBillID: bill.ID,
		Amount:          bill.Total,
		Currency:        s.Currency,
		Status:          models.PaymentCreated,
		GatewayOrderID:  intent.ID,
		ClientSecret:    intent.ClientSecret,
	}
	if err := s.Orders.Create(ctx, order); err != nil {
		return nil, err
	}

	utils.OrNop(s.Logger).Info("payment order created",
		zap.String("orderId", order.ID),
		zap.String("billId", bill.ID),
		zap.String("gatewayOrderId", intent.ID))
	return order, nil
}

// HandleWebhook verifies a Stripe event and applies payment intent outcomes
// to the matching order. Other event types are ignored.
func (s *DefaultPaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.WebhookSecret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	logger := utils.OrNop(s.Logger).With(zap.String("eventId", event.ID), zap.String("type", string(event.Type)))

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
	default:
		logger.Debug("ignoring webhook event")
		return nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return fmt.Errorf("decode payment intent: %w", err)
	}

	order, err := s.Orders.GetByGatewayOrderID(ctx, pi.ID)
	if err != nil {
		return err
	}
	if order.Status == models.PaymentPaid {
		logger.Info("order already paid", zap.String("orderId", order.ID))
		return nil
	}

	if event.Type == "payment_intent.succeeded" {
		order.Status = models.PaymentPaid
		order.GatewayPaymentID = pi.ID
		order.FailureReason = ""
	} else {
		if order.Status == models.PaymentFailed {
			return nil
		}
		order.Status = models.PaymentFailed
		if pi.LastPaymentError != nil {
			order.FailureReason = pi.LastPaymentError.Msg
		}
	}

	if err := s.Orders.Update(ctx, order); err != nil {
		return err
	}
	logger.Info("payment order updated", zap.String("orderId", order.ID), zap.String("status", string(order.Status)))
	return nil
}
