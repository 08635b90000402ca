package invoices

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// dayMonthYear is the DD-MM-YYYY layout used for printed dates.
const dayMonthYear = "02-01-2006"

// isoLayouts are the ISO-8601 forms accepted for the request date, most specific last.
var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	time.RFC3339Nano,
}

// ParseDate parses an ISO-8601 calendar date or date-time. The calendar date of a
// date-time is the one in its own offset.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 date %q", s)
}

// SubtractMonth moves t one calendar month back, clamping the day to the last valid day
// of the target month (March 31 becomes the last day of February).
func SubtractMonth(t time.Time) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m-1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := LastDayOfMonth(firstOfTarget).Day(); d > last {
		d = last
	}
	return firstOfTarget.AddDate(0, 0, d-1)
}

// LastDayOfMonth returns the last calendar day of t's month, keeping t's clock.
func LastDayOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).AddDate(0, 0, -1)
}

// FormatHours renders hours exactly as given, without rounding (5 -> "5", 7.5 -> "7.5").
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

// FormatPrice fixes price to two decimals, rounding half away from zero.
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).StringFixed(2)
}

// localeFor maps a config country to a locale. Full tags ("pl-PL") and language codes
// ("PL") are used as given; a bare region ("US", "GB") becomes und-<REGION>. Anything
// else falls back to the root locale.
func localeFor(country string) language.Tag {
	if country == "" {
		return language.Und
	}
	if tag, err := language.Parse(country); err == nil {
		return tag
	}
	if region, err := language.ParseRegion(country); err == nil {
		if tag, err := language.Compose(region); err == nil {
			return tag
		}
	}
	return language.Und
}

// FormatCurrency formats amount in the given ISO 4217 currency for the country's locale.
// Only an unknown currency code is an error.
func FormatCurrency(amount float64, country, code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("currency %q: %w", code, err)
	}

	p := message.NewPrinter(localeFor(country))
	return p.Sprint(currency.Symbol(unit.Amount(amount))), nil
}

// FieldsComputer derives the per-request invoice fields.
type FieldsComputer struct {
	nowFunc func() time.Time
}

// NewFieldsComputer returns a computer using the wall clock.
func NewFieldsComputer() *FieldsComputer {
	return &FieldsComputer{nowFunc: time.Now}
}

// NewFieldsComputerWithClock returns a computer reading the current time from now.
func NewFieldsComputerWithClock(now func() time.Time) *FieldsComputer {
	return &FieldsComputer{nowFunc: now}
}

// Compute derives dates, product line and payment amount for req.
func (c *FieldsComputer) Compute(req *Request, cfg DefaultConfig) (ComputedFields, error) {
	now := c.nowFunc()
	parsedDate, err := ParseDate(req.Date)
	if err != nil {
		return ComputedFields{}, err
	}
	prevMonth := SubtractMonth(parsedDate)

	price := FormatPrice(req.Price)
	fixed, err := decimal.NewFromString(price)
	if err != nil {
		return ComputedFields{}, fmt.Errorf("price %q: %w", price, err)
	}
	toPay, err := FormatCurrency(fixed.InexactFloat64(), cfg.Country(), cfg.Currency())
	if err != nil {
		return ComputedFields{}, err
	}

	return ComputedFields{
		DateOfExposure: now.Format(dayMonthYear),
		DocumentDate:   fmt.Sprintf("01/%02d/%04d", int(parsedDate.Month()), parsedDate.Year()),
		DateOfSell:     LastDayOfMonth(prevMonth).Format(dayMonthYear),
		Product: Product{
			Information: FormatHours(req.Hours) + "h",
			Price:       price,
		},
		Payment: Payment{
			ToPayInNumbers: toPay,
		},
	}, nil
}
