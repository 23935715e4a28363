package receipt

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Date and time layouts by region.
const (
	dateDayFirst   = "02/01/2006"
	dateMonthFirst = "01/02/2006"
	dateISO        = "2006-01-02"
	time24h        = "15:04"
	time12h        = "03:04 PM"
)

var isoDateRegions = map[string]bool{
	"CN": true, "JP": true, "KR": true, "TW": true,
	"HU": true, "LT": true, "SE": true, "CA": true,
}

// Formatter renders money, quantities and timestamps for one locale.
type Formatter struct {
	Symbol     string
	DateLayout string
	TimeLayout string
}

// NewFormatter builds a formatter for a BCP 47 language tag. Unparseable tags
// get day-first dates and a 24-hour clock.
func NewFormatter(lang, symbol string) Formatter {
	f := Formatter{Symbol: symbol, DateLayout: dateDayFirst, TimeLayout: time24h}

	tag, err := language.Parse(lang)
	if err != nil {
		return f
	}
	region, conf := tag.Region()
	if conf == language.No {
		return f
	}
	switch code := region.String(); {
	case code == "US":
		f.DateLayout, f.TimeLayout = dateMonthFirst, time12h
	case isoDateRegions[code]:
		f.DateLayout = dateISO
	}
	return f
}

// Currency formats d with the symbol and two decimals, rounding half away
// from zero. Negative values read -₹25.50.
func (f Formatter) Currency(d decimal.Decimal) string {
	if d.Round(2).IsNegative() {
		return "-" + f.Symbol + d.Abs().StringFixed(2)
	}
	return f.Symbol + d.Abs().StringFixed(2)
}

// Negative formats d as a deduction regardless of its sign.
func (f Formatter) Negative(d decimal.Decimal) string {
	if d.Round(2).IsZero() {
		return f.Currency(d)
	}
	return "-" + f.Symbol + d.Abs().StringFixed(2)
}

// Date formats the calendar date of t.
func (f Formatter) Date(t time.Time) string {
	return t.Format(f.DateLayout)
}

// Time formats the wall-clock time of t.
func (f Formatter) Time(t time.Time) string {
	return t.Format(f.TimeLayout)
}

// Amount is Currency without the symbol, for table columns.
func Amount(d decimal.Decimal) string {
	if d.Round(2).IsNegative() {
		return "-" + d.Abs().StringFixed(2)
	}
	return d.Abs().StringFixed(2)
}

// Percent formats a rate with up to two decimals: 18%, 2.5%, 9.13%.
func Percent(d decimal.Decimal) string {
	return d.Round(2).String() + "%"
}

// Quantity formats a quantity with up to three decimals.
func Quantity(d decimal.Decimal) string {
	return d.Round(3).String()
}
