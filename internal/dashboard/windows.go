// internal/dashboard/windows.go
package dashboard

import (
	"time"

	"spending-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MonthWindow is the first day of asOf's month through asOf.
func MonthWindow(asOf time.Time) (from, to time.Time) {
	asOf = domain.DateOf(asOf)
	return domain.Date(asOf.Year(), asOf.Month(), 1), asOf
}

// PreviousMonthWindow is the whole calendar month before asOf's month.
// January rolls back to December of the previous year.
func PreviousMonthWindow(asOf time.Time) (from, to time.Time) {
	first, _ := MonthWindow(asOf)
	return first.AddDate(0, -1, 0), first.AddDate(0, 0, -1)
}

// WeekStart is the Monday on or before asOf.
func WeekStart(asOf time.Time) time.Time {
	asOf = domain.DateOf(asOf)
	offset := (int(asOf.Weekday()) + 6) % 7
	return asOf.AddDate(0, 0, -offset)
}

// Trend is the month-over-month change in percent. A non-positive previous
// month yields 0 when current is zero and 100 otherwise.
func Trend(current, previous decimal.Decimal) decimal.Decimal {
	if previous.Sign() <= 0 {
		if current.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}

// MonthsElapsed counts calendar months from first through asOf, both inclusive.
func MonthsElapsed(first, asOf time.Time) int {
	return (asOf.Year()-first.Year())*12 + int(asOf.Month()) - int(first.Month()) + 1
}

// MonthlyAverage spreads the all-time total across the elapsed months.
func MonthlyAverage(totals domain.OwnerTotals, asOf time.Time) decimal.Decimal {
	if !totals.HasExpenses {
		return decimal.Zero
	}
	months := MonthsElapsed(totals.FirstExpense, asOf)
	if months <= 0 {
		return decimal.Zero
	}
	return totals.Total.Div(decimal.NewFromInt(int64(months)))
}

// TopCategory picks the largest category of the window and its share of
// windowTotal. Ties go to the alphabetically first category.
func TopCategory(totals []domain.CategoryTotal, windowTotal decimal.Decimal) (*domain.Category, decimal.Decimal) {
	if len(totals) == 0 || windowTotal.Sign() <= 0 {
		return nil, decimal.Zero
	}
	best := totals[0]
	for _, t := range totals[1:] {
		if t.Total.GreaterThan(best.Total) || (t.Total.Equal(best.Total) && t.Category < best.Category) {
			best = t
		}
	}
	top := best.Category
	return &top, best.Total.Div(windowTotal).Mul(hundred)
}

func sumTotals(totals []domain.CategoryTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}
	return sum
}
