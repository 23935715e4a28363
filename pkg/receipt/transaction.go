package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes sales from returns.
type Kind string

const (
	KindSale   Kind = "sale"
	KindReturn Kind = "return"
)

// DiscountKind says how a discount was specified.
type DiscountKind string

const (
	DiscountFixed      DiscountKind = "fixed"
	DiscountPercentage DiscountKind = "percentage"
)

// totalsTolerance is one currency-rounding unit.
var totalsTolerance = decimal.New(1, -2)

// Transaction is the input to a render. Amounts are precomputed by the caller;
// the engine formats them and never recalculates.
type Transaction struct {
	Kind          Kind             `json:"kind"`
	Number        string           `json:"number"`
	Date          time.Time        `json:"date"`
	Cashier       string           `json:"cashier"`
	Customer      *Customer        `json:"customer,omitempty"`
	Items         []LineItem       `json:"items"`
	Subtotal      *decimal.Decimal `json:"subtotal"`
	Discount      *Discount        `json:"discount,omitempty"`
	TaxRate       *decimal.Decimal `json:"taxRate,omitempty"`
	TaxAmount     *decimal.Decimal `json:"taxAmount"`
	TaxBreakdown  []TaxLine        `json:"taxBreakdown,omitempty"`
	GrandTotal    *decimal.Decimal `json:"grandTotal"`
	AmountPaid    *decimal.Decimal `json:"amountPaid"`
	ChangeDue     *decimal.Decimal `json:"changeDue,omitempty"`
	PaymentMethod string           `json:"paymentMethod"`
	Notes         string           `json:"notes,omitempty"`
}

// Customer is optional on a transaction.
type Customer struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
}

// LineItem is one row of the item table.
type LineItem struct {
	Name      string           `json:"name"`
	SKU       string           `json:"sku,omitempty"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unitPrice"`
	Total     decimal.Decimal  `json:"total"`
	MRP       *decimal.Decimal `json:"mrp,omitempty"`
}

// Savings is the per-unit saving against MRP, or zero when the item sells at
// or above MRP.
func (i LineItem) Savings() decimal.Decimal {
	if i.MRP == nil || !i.MRP.GreaterThan(i.UnitPrice) {
		return decimal.Zero
	}
	return i.MRP.Sub(i.UnitPrice)
}

// Discount is an order-level reduction. Amount is the precomputed value
// subtracted from the subtotal.
type Discount struct {
	Kind   DiscountKind    `json:"kind"`
	Value  decimal.Decimal `json:"value"`
	Amount decimal.Decimal `json:"amount"`
}

// TaxLine is one precomputed component of the tax, such as CGST or SGST.
type TaxLine struct {
	Label  string          `json:"label"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// IsReturn reports whether the transaction is a return.
func (t Transaction) IsReturn() bool {
	return t.Kind == KindReturn
}

// ItemCount returns the number of item rows and the summed quantity.
func (t Transaction) ItemCount() (int, decimal.Decimal) {
	qty := decimal.Zero
	for _, it := range t.Items {
		qty = qty.Add(it.Quantity)
	}
	return len(t.Items), qty
}

// TotalSavings sums (MRP - price) x quantity over items sold below MRP.
func (t Transaction) TotalSavings() decimal.Decimal {
	total := decimal.Zero
	for _, it := range t.Items {
		total = total.Add(it.Savings().Mul(it.Quantity))
	}
	return total
}

// Validate checks the mandatory data and reports every missing or invalid
// field.
func (t Transaction) Validate() error {
	var fields []FieldError
	missing := func(field string) {
		fields = append(fields, FieldError{Field: field, Message: "is required"})
	}

	if strings.TrimSpace(t.Number) == "" {
		missing("number")
	}
	if len(t.Items) == 0 {
		fields = append(fields, FieldError{Field: "items", Message: "must contain at least one item"})
	}
	for i, it := range t.Items {
		if strings.TrimSpace(it.Name) == "" {
			missing(fmt.Sprintf("items[%d].name", i))
		}
	}
	if t.Subtotal == nil {
		missing("subtotal")
	}
	if d := t.Discount; d != nil && d.Kind != DiscountFixed && d.Kind != DiscountPercentage {
		fields = append(fields, FieldError{Field: "discount.kind", Message: "must be fixed or percentage"})
	}
	if t.TaxAmount == nil {
		missing("taxAmount")
	}
	if t.GrandTotal == nil {
		missing("grandTotal")
	}
	if strings.TrimSpace(t.PaymentMethod) == "" {
		missing("paymentMethod")
	}
	if t.AmountPaid == nil {
		missing("amountPaid")
	}

	if len(fields) > 0 {
		return &DataError{Fields: fields}
	}
	return nil
}

// totalsMismatch returns the difference between the grand total and
// subtotal - discount + tax when it exceeds one rounding unit.
func (t Transaction) totalsMismatch() (decimal.Decimal, bool) {
	expected := t.Subtotal.Add(*t.TaxAmount)
	if t.Discount != nil {
		expected = expected.Sub(t.Discount.Amount)
	}
	diff := t.GrandTotal.Sub(expected)
	return diff, diff.Abs().GreaterThan(totalsTolerance)
}
