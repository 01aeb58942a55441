package billing

import (
	"context"
	"fmt"
	"time"

	"stayledger/database"
	"stayledger/models"
	"stayledger/utils"

	"github.com/shopspring/decimal"
)

type fakeBookings struct {
	items   []models.Booking
	findErr error
	updated []models.Booking
}

func (f *fakeBookings) Create(_ context.Context, b *models.Booking) error {
	f.items = append(f.items, *b)
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			b := f.items[i]
			return &b, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeBookings) Update(_ context.Context, b *models.Booking) error {
	f.updated = append(f.updated, *b)
	for i := range f.items {
		if f.items[i].ID == b.ID {
			f.items[i] = *b
		}
	}
	return nil
}

func (f *fakeBookings) FindActive(context.Context) ([]models.Booking, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Booking
	for _, b := range f.items {
		if b.State == models.BookingActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) FindByCheckOutDate(_ context.Context, date time.Time) ([]models.Booking, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Booking
	for _, b := range f.items {
		if b.CheckOut != nil && utils.DateOf(*b.CheckOut).Equal(utils.DateOf(date)) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeRooms struct {
	rooms     map[string]*models.Room
	gets      int
	statusErr map[string]error
}

func (f *fakeRooms) Create(_ context.Context, r *models.Room) error {
	f.rooms[r.RoomNumber] = r
	return nil
}

func (f *fakeRooms) GetByNumber(_ context.Context, number string) (*models.Room, error) {
	f.gets++
	r, ok := f.rooms[number]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRooms) Update(_ context.Context, r *models.Room) error {
	f.rooms[r.RoomNumber] = r
	return nil
}

func (f *fakeRooms) SetStatus(_ context.Context, number string, status models.RoomStatus) error {
	if err := f.statusErr[number]; err != nil {
		return err
	}
	r, ok := f.rooms[number]
	if !ok {
		return database.ErrNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeRooms) FindByStatus(_ context.Context, status models.RoomStatus) ([]models.Room, error) {
	var out []models.Room
	for _, r := range f.rooms {
		if r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeUtilityBills struct {
	bills map[string]*models.UtilityBill
}

func (f *fakeUtilityBills) Create(_ context.Context, b *models.UtilityBill) error {
	f.bills[b.ID] = b
	return nil
}

func (f *fakeUtilityBills) GetByID(_ context.Context, id string) (*models.UtilityBill, error) {
	if b, ok := f.bills[id]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("utility bill %s: %w", id, database.ErrNotFound)
}

func (f *fakeUtilityBills) GetLatestByRoom(_ context.Context, room string) (*models.UtilityBill, error) {
	for _, b := range f.bills {
		if b.RoomNumber == room {
			return b, nil
		}
	}
	return nil, fmt.Errorf("utility bill for room %s: %w", room, database.ErrNotFound)
}

func (f *fakeUtilityBills) Update(_ context.Context, b *models.UtilityBill) error {
	f.bills[b.ID] = b
	return nil
}

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeUsers) GetAll(context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.users[u.ID] = u
	return nil
}

type fakeGeneratedBills struct {
	bills   []models.GeneratedBill
	saveErr map[string]error // by booking ID
	onSave  func()
}

func (f *fakeGeneratedBills) Save(_ context.Context, b *models.GeneratedBill) error {
	if err := f.saveErr[b.Booking.ID]; err != nil {
		return err
	}
	f.bills = append(f.bills, *b)
	if f.onSave != nil {
		f.onSave()
	}
	return nil
}

func (f *fakeGeneratedBills) GetByID(_ context.Context, id string) (*models.GeneratedBill, error) {
	for i := range f.bills {
		if f.bills[i].ID == id {
			return &f.bills[i], nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeGeneratedBills) List(_ context.Context, month string) ([]models.GeneratedBill, error) {
	var out []models.GeneratedBill
	for _, b := range f.bills {
		if month == "" || b.Month == month {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeGeneratedBills) ListByTenant(_ context.Context, tenantID string) ([]models.GeneratedBill, error) {
	var out []models.GeneratedBill
	for _, b := range f.bills {
		if b.Tenant.ID == tenantID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeGeneratedBills) FindByMonthAndDeliveryStatus(_ context.Context, month string, status models.DeliveryStatus) ([]models.GeneratedBill, error) {
	var out []models.GeneratedBill
	for _, b := range f.bills {
		if b.Month == month && b.DeliveryStatus == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeGeneratedBills) FindByCheckOutDateAndDeliveryStatus(_ context.Context, date time.Time, status models.DeliveryStatus) ([]models.GeneratedBill, error) {
	var out []models.GeneratedBill
	for _, b := range f.bills {
		if b.Booking.CheckOut.Equal(utils.DateOf(date)) && b.DeliveryStatus == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeGeneratedBills) ExistsForPeriod(_ context.Context, bookingID, month string, kind models.BillKind) (bool, error) {
	for _, b := range f.bills {
		if b.Booking.ID == bookingID && b.Month == month && b.Kind == kind {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGeneratedBills) MarkSent(_ context.Context, id string, sentAt time.Time) error {
	for i := range f.bills {
		if f.bills[i].ID == id {
			f.bills[i].DeliveryStatus = models.DeliverySent
			f.bills[i].SentAt = &sentAt
			return nil
		}
	}
	return database.ErrNotFound
}

type fixture struct {
	svc       *DefaultBillingService
	bookings  *fakeBookings
	rooms     *fakeRooms
	utilities *fakeUtilityBills
	generated *fakeGeneratedBills
}

// newFixture seeds room 101 (rent 9000, electricity 50 units at 3) and tenant T1.
func newFixture(now time.Time) *fixture {
	f := &fixture{
		bookings: &fakeBookings{},
		rooms: &fakeRooms{rooms: map[string]*models.Room{
			"101": {RoomNumber: "101", Rent: decimal.NewFromInt(9000), Status: models.RoomOccupied},
		}},
		utilities: &fakeUtilityBills{bills: map[string]*models.UtilityBill{
			"UB1": {ID: "UB1", RoomNumber: "101", ElectricityUnits: decimal.NewFromInt(50), UnitPrice: decimal.NewFromInt(3)},
		}},
		generated: &fakeGeneratedBills{saveErr: map[string]error{}},
	}
	users := &fakeUsers{users: map[string]*models.User{
		"T1": {ID: "T1", Name: "Asha", Email: "asha@example.com"},
	}}
	f.svc = &DefaultBillingService{
		Bookings:       f.bookings,
		Rooms:          f.rooms,
		UtilityBills:   f.utilities,
		Users:          users,
		GeneratedBills: f.generated,
		Clock:          utils.FixedClock{At: now},
	}
	return f
}

func date(y int, m time.Month, d int) time.Time {
	return utils.Date(y, m, d)
}

func stay(id string, in, out time.Time) models.Booking {
	return models.Booking{
		ID:         id,
		TenantID:   "T1",
		RoomNumber: "101",
		BillID:     "UB1",
		CheckIn:    &in,
		CheckOut:   &out,
		State:      models.BookingActive,
	}
}
