package billing

import (
	"time"

	"stayledger/utils"

	"github.com/shopspring/decimal"
)

// MinRecurringStayDays is the shortest stay billed by the recurring path.
// Shorter stays are billed once, at checkout.
const MinRecurringStayDays = 30

const monthLayout = "2006-01"

// MonthKey formats the calendar month of t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

// ParseMonthKey parses a YYYY-MM month into the first day of that month.
func ParseMonthKey(month string) (time.Time, error) {
	return time.ParseInLocation(monthLayout, month, time.UTC)
}

// DaysInMonth returns the length of t's calendar month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// StayDays counts the days of a stay, both ends inclusive.
func StayDays(checkIn, checkOut time.Time) int {
	d := utils.DateOf(checkOut).Sub(utils.DateOf(checkIn))
	return int(d/(24*time.Hour)) + 1
}

// ElectricityAmount is consumed units times unit price. It is exact; rounding
// only happens where rent is divided.
func ElectricityAmount(units, unitPrice decimal.Decimal) decimal.Decimal {
	return units.Mul(unitPrice)
}

// prorate returns rent*days/monthLength rounded half-up to two decimals.
func prorate(rent decimal.Decimal, days, monthLength int) decimal.Decimal {
	return rent.Mul(decimal.NewFromInt(int64(days))).DivRound(decimal.NewFromInt(int64(monthLength)), 2)
}

// MidCycleAmount computes the recurring bill for evalMonth of an ongoing stay.
//
// In the check-in month the rent is prorated over the days remaining from
// check-in (full rent when check-in is the 1st). Months strictly between
// check-in and check-out carry the full rent. The check-out month and later
// are owned by checkout billing and yield zero, as do stays shorter than
// MinRecurringStayDays.
func MidCycleAmount(checkIn, checkOut time.Time, monthlyRent, electricity decimal.Decimal, evalMonth time.Time) decimal.Decimal {
	if StayDays(checkIn, checkOut) < MinRecurringStayDays {
		return decimal.Zero
	}

	eval := monthIndex(evalMonth)
	in := monthIndex(checkIn)
	out := monthIndex(checkOut)

	switch {
	case eval == in:
		if checkIn.Day() == 1 {
			return monthlyRent.Add(electricity)
		}
		length := DaysInMonth(checkIn)
		remaining := length - checkIn.Day() + 1
		return prorate(monthlyRent, remaining, length).Add(electricity)
	case eval > in && eval < out:
		return monthlyRent.Add(electricity)
	default:
		return decimal.Zero
	}
}

// CheckOutAmount computes the closing bill of a stay, evaluated on its
// checkout date. Rent is prorated by the day of month reached at checkout,
// except that a stay of MinRecurringStayDays or more ending on the last day
// of a month pays the full rent.
func CheckOutAmount(checkIn, checkOut time.Time, monthlyRent, electricity decimal.Decimal) decimal.Decimal {
	days := StayDays(checkIn, checkOut)
	daysTillCheckOut := checkOut.Day()
	lastDay := DaysInMonth(checkOut)

	if days >= MinRecurringStayDays && daysTillCheckOut == lastDay {
		return monthlyRent.Add(electricity)
	}
	return prorate(monthlyRent, daysTillCheckOut, lastDay).Add(electricity)
}

// Overlaps reports whether the stay touches the calendar month containing day.
func Overlaps(checkIn, checkOut, day time.Time) bool {
	firstOfMonth := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	firstOfNext := firstOfMonth.AddDate(0, 1, 0)
	lastOfPrevious := firstOfMonth.AddDate(0, 0, -1)
	return utils.DateOf(checkIn).Before(firstOfNext) && utils.DateOf(checkOut).After(lastOfPrevious)
}

// RecurringBillable reports whether the recurring path yields a bill for
// evalMonth: the stay is long enough and evalMonth is either the check-in
// month or strictly inside the stay.
func RecurringBillable(checkIn, checkOut, evalMonth time.Time) bool {
	if StayDays(checkIn, checkOut) < MinRecurringStayDays {
		return false
	}
	eval := monthIndex(evalMonth)
	in := monthIndex(checkIn)
	return eval == in || (eval > in && eval < monthIndex(checkOut))
}
