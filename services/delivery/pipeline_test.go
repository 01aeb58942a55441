package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"stayledger/database"
	"stayledger/models"
	"stayledger/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memBills struct {
	bills   []models.GeneratedBill
	markErr map[string]error
}

func (m *memBills) Save(_ context.Context, b *models.GeneratedBill) error {
	m.bills = append(m.bills, *b)
	return nil
}

func (m *memBills) GetByID(_ context.Context, id string) (*models.GeneratedBill, error) {
	for i := range m.bills {
		if m.bills[i].ID == id {
			b := m.bills[i]
			return &b, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memBills) List(context.Context, string) ([]models.GeneratedBill, error) {
	return m.bills, nil
}

func (m *memBills) ListByTenant(context.Context, string) ([]models.GeneratedBill, error) {
	return nil, nil
}

func (m *memBills) FindByMonthAndDeliveryStatus(_ context.Context, month string, status models.DeliveryStatus) ([]models.GeneratedBill, error) {
	var out []models.GeneratedBill
	for _, b := range m.bills {
		if b.Month == month && b.DeliveryStatus == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBills) FindByCheckOutDateAndDeliveryStatus(_ context.Context, date time.Time, status models.DeliveryStatus) ([]models.GeneratedBill, error) {
	var out []models.GeneratedBill
	for _, b := range m.bills {
		if b.Booking.CheckOut.Equal(date) && b.DeliveryStatus == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBills) ExistsForPeriod(context.Context, string, string, models.BillKind) (bool, error) {
	return false, nil
}

func (m *memBills) MarkSent(_ context.Context, id string, at time.Time) error {
	if err := m.markErr[id]; err != nil {
		return err
	}
	for i := range m.bills {
		if m.bills[i].ID == id {
			m.bills[i].DeliveryStatus = models.DeliverySent
			m.bills[i].SentAt = &at
			return nil
		}
	}
	return database.ErrNotFound
}

func (m *memBills) status(id string) models.DeliveryStatus {
	b, _ := m.GetByID(context.Background(), id)
	return b.DeliveryStatus
}

type stubRenderer struct {
	failFor map[string]bool
}

func (r stubRenderer) Render(b models.GeneratedBill) ([]byte, error) {
	if r.failFor[b.ID] {
		return nil, errors.New("corrupt template")
	}
	return []byte("%PDF-" + b.ID), nil
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string, attachment []byte) error {
	return m.Called(to, subject).Error(0)
}

func bill(id, month string, checkOut time.Time) models.GeneratedBill {
	return models.GeneratedBill{
		ID:             id,
		Month:          month,
		Total:          decimal.NewFromInt(100),
		Tenant:         models.TenantSummary{ID: "T-" + id, Name: "Tenant " + id, Email: id + "@example.com"},
		Booking:        models.BookingSummary{ID: "B-" + id, CheckIn: utils.Date(2025, 5, 1), CheckOut: checkOut},
		DeliveryStatus: models.DeliveryNotSent,
	}
}

func TestDeliverMonthEnd_IsolatesRenderFailure(t *testing.T) {
	out := utils.Date(2025, 8, 15)
	store := &memBills{}
	for _, id := range []string{"b1", "b2", "b3", "b4"} {
		store.bills = append(store.bills, bill(id, "2025-06", out))
	}
	store.bills = append(store.bills, bill("july", "2025-07", out))

	mailer := &mockMailer{}
	mailer.On("Send", mock.Anything, monthlySubject).Return(nil)

	p := &Pipeline{
		Bills:    store,
		Renderer: stubRenderer{failFor: map[string]bool{"b2": true}},
		Mailer:   mailer,
		Clock:    utils.FixedClock{At: utils.Date(2025, 7, 1)},
	}

	report, err := p.DeliverMonthEnd(context.Background(), utils.Date(2025, 7, 1))
	require.NoError(t, err)

	assert.Equal(t, 4, report.Candidates)
	assert.Equal(t, 3, report.Sent)
	assert.Equal(t, []string{"b2"}, report.FailedIDs)
	assert.Equal(t, models.DeliverySent, store.status("b1"))
	assert.Equal(t, models.DeliveryNotSent, store.status("b2"))
	assert.Equal(t, models.DeliverySent, store.status("b3"))
	assert.Equal(t, models.DeliverySent, store.status("b4"))
	assert.Equal(t, models.DeliveryNotSent, store.status("july"))
	mailer.AssertNumberOfCalls(t, "Send", 3)
}

func TestDeliverMonthEnd_JanuarySendsDecember(t *testing.T) {
	store := &memBills{bills: []models.GeneratedBill{bill("dec", "2024-12", utils.Date(2025, 2, 1))}}
	mailer := &mockMailer{}
	mailer.On("Send", "dec@example.com", monthlySubject).Return(nil)

	p := &Pipeline{Bills: store, Renderer: stubRenderer{}, Mailer: mailer}
	report, err := p.DeliverMonthEnd(context.Background(), utils.Date(2025, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
}

func TestDeliverCheckouts_MailFailureLeavesBillUnsent(t *testing.T) {
	today := utils.Date(2025, 7, 25)
	store := &memBills{bills: []models.GeneratedBill{
		bill("ok", "2025-07", today),
		bill("bounce", "2025-07", today),
		bill("later", "2025-07", utils.Date(2025, 7, 26)),
	}}
	mailer := &mockMailer{}
	mailer.On("Send", "ok@example.com", checkoutSubject).Return(nil)
	mailer.On("Send", "bounce@example.com", checkoutSubject).Return(errors.New("550 mailbox unavailable"))

	p := &Pipeline{Bills: store, Renderer: stubRenderer{}, Mailer: mailer}
	report, err := p.DeliverCheckouts(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Candidates)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, models.DeliverySent, store.status("ok"))
	assert.Equal(t, models.DeliveryNotSent, store.status("bounce"))
	assert.Equal(t, models.DeliveryNotSent, store.status("later"))
}

func TestDeliverCheckouts_MarkSentFailureCountsAsFailed(t *testing.T) {
	today := utils.Date(2025, 7, 25)
	store := &memBills{
		bills:   []models.GeneratedBill{bill("b1", "2025-07", today)},
		markErr: map[string]error{"b1": errors.New("write timeout")},
	}
	mailer := &mockMailer{}
	mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

	p := &Pipeline{Bills: store, Renderer: stubRenderer{}, Mailer: mailer}
	report, err := p.DeliverCheckouts(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, models.DeliveryNotSent, store.status("b1"))
}

func TestResend(t *testing.T) {
	store := &memBills{bills: []models.GeneratedBill{bill("b1", "2025-07", utils.Date(2025, 7, 25))}}
	store.bills[0].DeliveryStatus = models.DeliverySent
	mailer := &mockMailer{}
	mailer.On("Send", "b1@example.com", checkoutSubject).Return(nil)

	p := &Pipeline{Bills: store, Renderer: stubRenderer{}, Mailer: mailer}
	require.NoError(t, p.Resend(context.Background(), "b1"))
	mailer.AssertExpectations(t)

	assert.ErrorIs(t, p.Resend(context.Background(), "missing"), database.ErrNotFound)
}

func TestResend_MonthlyBillKeepsMonthlySubject(t *testing.T) {
	monthly := bill("m1", "2025-06", utils.Date(2025, 8, 31))
	monthly.Kind = models.BillRecurring
	monthly.DeliveryStatus = models.DeliverySent
	closing := bill("c1", "2025-07", utils.Date(2025, 7, 25))
	closing.Kind = models.BillCheckout
	store := &memBills{bills: []models.GeneratedBill{monthly, closing}}

	mailer := &mockMailer{}
	mailer.On("Send", "m1@example.com", monthlySubject).Return(nil).Once()
	mailer.On("Send", "c1@example.com", checkoutSubject).Return(nil).Once()

	p := &Pipeline{Bills: store, Renderer: stubRenderer{}, Mailer: mailer}
	require.NoError(t, p.Resend(context.Background(), "m1"))
	require.NoError(t, p.Resend(context.Background(), "c1"))
	mailer.AssertExpectations(t)
}
