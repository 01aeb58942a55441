package payment

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"stayledger/database"
	"stayledger/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testSecret = "whsec_test"

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*Intent, error) {
	args := m.Called(amountMinor, currency)
	intent, _ := args.Get(0).(*Intent)
	return intent, args.Error(1)
}

type memOrders struct {
	orders map[string]*models.PaymentOrder
}

func (m *memOrders) Create(_ context.Context, o *models.PaymentOrder) error {
	o.ID = "ord-" + o.GatewayOrderID
	cp := *o
	m.orders[o.GatewayOrderID] = &cp
	return nil
}

func (m *memOrders) GetByGatewayOrderID(_ context.Context, id string) (*models.PaymentOrder, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) ListByBill(context.Context, string) ([]models.PaymentOrder, error) {
	return nil, nil
}

func (m *memOrders) Update(_ context.Context, o *models.PaymentOrder) error {
	cp := *o
	m.orders[o.GatewayOrderID] = &cp
	return nil
}

type memBills struct {
	bills map[string]models.GeneratedBill
}

func (m memBills) Save(context.Context, *models.GeneratedBill) error { return nil }
func (m memBills) GetByID(_ context.Context, id string) (*models.GeneratedBill, error) {
	b, ok := m.bills[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &b, nil
}
func (m memBills) List(context.Context, string) ([]models.GeneratedBill, error) { return nil, nil }
func (m memBills) ListByTenant(context.Context, string) ([]models.GeneratedBill, error) {
	return nil, nil
}
func (m memBills) FindByMonthAndDeliveryStatus(context.Context, string, models.DeliveryStatus) ([]models.GeneratedBill, error) {
	return nil, nil
}
func (m memBills) FindByCheckOutDateAndDeliveryStatus(context.Context, time.Time, models.DeliveryStatus) ([]models.GeneratedBill, error) {
	return nil, nil
}
func (m memBills) ExistsForPeriod(context.Context, string, string, models.BillKind) (bool, error) {
	return false, nil
}
func (m memBills) MarkSent(context.Context, string, time.Time) error { return nil }

func newService(gw Gateway) (*DefaultPaymentService, *memOrders) {
	orders := &memOrders{orders: map[string]*models.PaymentOrder{}}
	return &DefaultPaymentService{
		Orders: orders,
		Bills: memBills{bills: map[string]models.GeneratedBill{
			"gb1":  {ID: "gb1", Total: decimal.RequireFromString("7408.06"), Month: "2025-07"},
			"zero": {ID: "zero", Total: decimal.Zero},
		}},
		Gateway:       gw,
		WebhookSecret: testSecret,
		Currency:      "inr",
	}, orders
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(740806), MinorUnits(decimal.RequireFromString("7408.06")))
	assert.Equal(t, int64(1), MinorUnits(decimal.RequireFromString("0.005")))
}

func TestCreateOrder(t *testing.T) {
	gw := &mockGateway{}
	gw.On("CreateIntent", int64(740806), "inr").Return(&Intent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil)
	svc, orders := newService(gw)

	order, err := svc.CreateOrder(context.Background(), "gb1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCreated, order.Status)
	assert.Equal(t, "pi_1_secret", order.ClientSecret)
	assert.Contains(t, orders.orders, "pi_1")
	gw.AssertExpectations(t)
}

func TestCreateOrder_ZeroTotal(t *testing.T) {
	svc, _ := newService(&mockGateway{})
	_, err := svc.CreateOrder(context.Background(), "zero")
	assert.ErrorIs(t, err, ErrNothingToPay)
}

func signedEvent(t *testing.T, eventType string, pi map[string]interface{}) ([]byte, string) {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"id":          "evt_1",
		"object":      "event",
		"type":        eventType,
		"api_version": stripe.APIVersion,
		"data":        map[string]interface{}{"object": pi},
	})
	require.NoError(t, err)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: raw, Secret: testSecret})
	return signed.Payload, signed.Header
}

func TestHandleWebhook_Succeeded(t *testing.T) {
	svc, orders := newService(&mockGateway{})
	orders.orders["pi_1"] = &models.PaymentOrder{ID: "o1", GatewayOrderID: "pi_1", Status: models.PaymentCreated}

	payload, sig := signedEvent(t, "payment_intent.succeeded", map[string]interface{}{"id": "pi_1", "object": "payment_intent"})
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))
	assert.Equal(t, models.PaymentPaid, orders.orders["pi_1"].Status)

	// A late failure never downgrades a paid order.
	payload, sig = signedEvent(t, "payment_intent.payment_failed", map[string]interface{}{"id": "pi_1", "object": "payment_intent"})
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))
	assert.Equal(t, models.PaymentPaid, orders.orders["pi_1"].Status)
}

func TestHandleWebhook_Failed(t *testing.T) {
	svc, orders := newService(&mockGateway{})
	orders.orders["pi_2"] = &models.PaymentOrder{ID: "o2", GatewayOrderID: "pi_2", Status: models.PaymentCreated}

	payload, sig := signedEvent(t, "payment_intent.payment_failed", map[string]interface{}{
		"id":                 "pi_2",
		"object":             "payment_intent",
		"last_payment_error": map[string]interface{}{"message": "card declined"},
	})
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))
	assert.Equal(t, models.PaymentFailed, orders.orders["pi_2"].Status)
	assert.Equal(t, "card declined", orders.orders["pi_2"].FailureReason)
}

func TestHandleWebhook_RejectsBadSignature(t *testing.T) {
	svc, _ := newService(&mockGateway{})
	payload, _ := signedEvent(t, "payment_intent.succeeded", map[string]interface{}{"id": "pi_1"})

	err := svc.HandleWebhook(context.Background(), payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleWebhook_IgnoresOtherEvents(t *testing.T) {
	svc, _ := newService(&mockGateway{})
	payload, sig := signedEvent(t, "customer.created", map[string]interface{}{"id": "cus_1", "object": "customer"})
	assert.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))
}
