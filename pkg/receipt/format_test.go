package receipt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestFormatter_Currency(t *testing.T) {
	f := NewFormatter("en-IN", "₹")
	tests := []struct {
		in   string
		want string
	}{
		{"300", "₹300.00"},
		{"25.5", "₹25.50"},
		{"2.345", "₹2.35"},
		{"2.344", "₹2.34"},
		{"-25.5", "-₹25.50"},
		{"-2.345", "-₹2.35"},
		{"-0.001", "₹0.00"},
		{"1234567.891", "₹1234567.89"},
	}
	for _, tt := range tests {
		if got := f.Currency(dec(tt.in)); got != tt.want {
			t.Errorf("Currency(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatter_Negative(t *testing.T) {
	f := NewFormatter("en-IN", "₹")
	if got := f.Negative(dec("25.5")); got != "-₹25.50" {
		t.Fatalf("Negative(25.5) = %q", got)
	}
	if got := f.Negative(dec("0")); got != "₹0.00" {
		t.Fatalf("Negative(0) = %q", got)
	}
}

func TestAmountPercentQuantity(t *testing.T) {
	if got := Amount(dec("125")); got != "125.00" {
		t.Errorf("Amount = %q", got)
	}
	if got := Amount(dec("-3.005")); got != "-3.01" {
		t.Errorf("Amount negative = %q", got)
	}

	percents := map[string]string{"18": "18%", "2.50": "2.5%", "9.125": "9.13%", "0": "0%"}
	for in, want := range percents {
		if got := Percent(dec(in)); got != want {
			t.Errorf("Percent(%s) = %q, want %q", in, got, want)
		}
	}

	quantities := map[string]string{"2": "2", "2.000": "2", "1.5": "1.5", "1.2345": "1.235"}
	for in, want := range quantities {
		if got := Quantity(dec(in)); got != want {
			t.Errorf("Quantity(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatter_DateTime(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)
	tests := []struct {
		lang     string
		wantDate string
		wantTime string
	}{
		{"en-IN", "05/03/2024", "14:07"},
		{"en-GB", "05/03/2024", "14:07"},
		{"en-US", "03/05/2024", "02:07 PM"},
		{"ja-JP", "2024-03-05", "14:07"},
		{"sv-SE", "2024-03-05", "14:07"},
		{"not a tag!", "05/03/2024", "14:07"},
	}
	for _, tt := range tests {
		f := NewFormatter(tt.lang, "$")
		if got := f.Date(ts); got != tt.wantDate {
			t.Errorf("%s: Date = %q, want %q", tt.lang, got, tt.wantDate)
		}
		if got := f.Time(ts); got != tt.wantTime {
			t.Errorf("%s: Time = %q, want %q", tt.lang, got, tt.wantTime)
		}
	}
}
