package utils

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculateTotalAmount calculates the amount due on a loan
// Formula: Principal + Principal * Percentage / 100
func CalculateTotalAmount(principal, percentage decimal.Decimal) decimal.Decimal {
	interest := principal.Mul(percentage).Div(hundred)
	total := principal.Add(interest)

	// Round to 2 decimal places
	return total.Round(2)
}

// FitsScale reports whether d carries at most places fractional digits, i.e.
// whether a NUMERIC column of that scale stores it without rounding.
func FitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Round(places))
}

// GrowthPercentage returns the month-over-month change between two counts,
// rounded to 2 decimals. A zero baseline reports 100 when anything appeared and
// 0 otherwise.
func GrowthPercentage(previous, current int64) decimal.Decimal {
	if previous == 0 {
		if current > 0 {
			return hundred
		}
		return decimal.Zero
	}

	prev := decimal.NewFromInt(previous)
	diff := decimal.NewFromInt(current).Sub(prev)
	return diff.Div(prev).Mul(hundred).Round(2)
}

// MonthStart returns midnight of the first day of t's month in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthWindows returns [prevStart, curStart, nextStart) for the month containing t.
func MonthWindows(t time.Time) (prevStart, curStart, nextStart time.Time) {
	curStart = MonthStart(t)
	return curStart.AddDate(0, -1, 0), curStart, curStart.AddDate(0, 1, 0)
}

// YearWindow returns the [start, end) bounds of t's calendar year.
func YearWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(1, 0, 0)
}

// MonthKey formats t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// QuarterKey formats t as YYYY-Q#.
func QuarterKey(t time.Time) string {
	return fmt.Sprintf("%04d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
}

// YearKey formats t as YYYY.
func YearKey(t time.Time) string {
	return fmt.Sprintf("%04d", t.Year())
}
