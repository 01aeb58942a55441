package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	rent        = decimal.NewFromInt(9000)
	electricity = decimal.NewFromInt(150)
)

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestElectricityAmount(t *testing.T) {
	assertAmount(t, "150", ElectricityAmount(decimal.NewFromInt(50), decimal.NewFromInt(3)))
	assertAmount(t, "12.3456", ElectricityAmount(decimal.RequireFromString("1.5432"), decimal.NewFromInt(8)))
}

func TestStayDays(t *testing.T) {
	assert.Equal(t, 30, StayDays(date(2025, 6, 1), date(2025, 6, 30)))
	assert.Equal(t, 55, StayDays(date(2025, 6, 1), date(2025, 7, 25)))
	assert.Equal(t, 1, StayDays(date(2025, 6, 1), date(2025, 6, 1)))
	assert.Equal(t, 366, StayDays(date(2024, 1, 1), date(2024, 12, 31)))
}

func TestMidCycleAmount_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		checkIn, out time.Time
		eval         time.Time
		want         string
	}{
		{"A check-in on the 1st", date(2025, 6, 1), date(2025, 6, 30), date(2025, 6, 15), "9150"},
		{"B partial first month", date(2025, 6, 20), date(2025, 7, 30), date(2025, 6, 25), "3450"},
		{"C strictly between", date(2025, 5, 1), date(2025, 7, 1), date(2025, 6, 3), "9150"},
		{"checkout month belongs to checkout billing", date(2025, 5, 1), date(2025, 7, 1), date(2025, 7, 1), "0"},
		{"after checkout", date(2025, 5, 1), date(2025, 7, 1), date(2025, 9, 1), "0"},
		{"before check-in", date(2025, 5, 1), date(2025, 7, 1), date(2025, 4, 1), "0"},
		{"short stay", date(2025, 6, 5), date(2025, 6, 20), date(2025, 6, 10), "0"},
		{"31 day month", date(2025, 7, 10), date(2025, 9, 1), date(2025, 7, 10), "6537.10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAmount(t, tt.want, MidCycleAmount(tt.checkIn, tt.out, rent, electricity, tt.eval))
		})
	}
}

func TestMidCycleAmount_PartialFirstMonthFormula(t *testing.T) {
	// February 2024 has 29 days; check-in on the 10th leaves 20.
	got := MidCycleAmount(date(2024, 2, 10), date(2024, 4, 30), decimal.NewFromInt(2900), decimal.Zero, date(2024, 2, 10))
	assertAmount(t, "2000", got)
}

func TestCheckOutAmount_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		checkIn, out time.Time
		want         string
	}{
		{"D short stay", date(2025, 6, 1), date(2025, 6, 27), "8250"},
		{"E month end", date(2025, 6, 1), date(2025, 6, 30), "9150"},
		{"F mid-month checkout", date(2025, 6, 1), date(2025, 7, 25), "7408.06"},
		{"short stay ignores check-in alignment", date(2025, 6, 20), date(2025, 7, 5), "1601.61"},
		{"short stay ending on month end still prorates", date(2025, 6, 10), date(2025, 6, 30), "9150"},
		{"long stay ending february end", date(2024, 1, 1), date(2024, 2, 29), "9150"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAmount(t, tt.want, CheckOutAmount(tt.checkIn, tt.out, rent, electricity))
		})
	}
}

func TestCheckOutAmount_RoundsHalfUp(t *testing.T) {
	// 0.15 * 1 / 30 = 0.005
	got := CheckOutAmount(date(2025, 6, 1), date(2025, 6, 1), decimal.RequireFromString("0.15"), decimal.Zero)
	assertAmount(t, "0.01", got)
}

func TestProration_IsDeterministic(t *testing.T) {
	in, out := date(2025, 6, 20), date(2025, 7, 30)
	assert.True(t, MidCycleAmount(in, out, rent, electricity, in).Equal(MidCycleAmount(in, out, rent, electricity, in)))
	assert.True(t, CheckOutAmount(in, out, rent, electricity).Equal(CheckOutAmount(in, out, rent, electricity)))
}

func TestOverlaps(t *testing.T) {
	june := date(2025, 6, 14)
	assert.True(t, Overlaps(date(2025, 6, 20), date(2025, 7, 30), june))
	assert.True(t, Overlaps(date(2025, 5, 1), date(2025, 6, 1), june))
	assert.True(t, Overlaps(date(2025, 5, 1), date(2025, 8, 1), june))
	assert.False(t, Overlaps(date(2025, 7, 1), date(2025, 8, 1), june))
	assert.False(t, Overlaps(date(2025, 4, 1), date(2025, 5, 31), june))
}

func TestRecurringBillable(t *testing.T) {
	assert.True(t, RecurringBillable(date(2025, 6, 1), date(2025, 6, 30), date(2025, 6, 10)))
	assert.True(t, RecurringBillable(date(2025, 5, 1), date(2025, 7, 1), date(2025, 6, 10)))
	assert.False(t, RecurringBillable(date(2025, 5, 1), date(2025, 7, 1), date(2025, 7, 1)))
	assert.False(t, RecurringBillable(date(2025, 6, 5), date(2025, 6, 20), date(2025, 6, 10)))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-06", MonthKey(date(2025, 6, 30)))
	m, err := ParseMonthKey("2025-02")
	assert.NoError(t, err)
	assert.Equal(t, 28, DaysInMonth(m))
}
