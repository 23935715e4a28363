package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-engine/internal/domain/enum"
	"github.com/sangkips/receipt-engine/pkg/receipt"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is a completed sale or return captured by the point of sale. Money is
// stored in cents and rates in basis points.
type Sale struct {
	ID              uuid.UUID         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Type            enum.SaleType     `gorm:"default:0" json:"type"`
	InvoiceNo       string            `gorm:"size:100;uniqueIndex;not null" json:"invoice_no"`
	SaleDate        time.Time         `gorm:"not null" json:"sale_date"`
	Cashier         string            `gorm:"size:100" json:"cashier"`
	CustomerName    string            `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerContact string            `gorm:"size:100" json:"customer_contact,omitempty"`
	SubTotal        int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountType    enum.DiscountType `gorm:"default:0" json:"discount_type"`
	DiscountValue   int64             `gorm:"default:0" json:"-"` // Cents for fixed, basis points for percentage
	Discount        int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxRate         *int64            `json:"-"`                  // Basis points; nil when not recorded
	Tax             int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total           int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Paid            int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Change          *int64            `json:"-"`                  // Stored in cents, excluded from JSON
	PaymentMethod   string            `gorm:"size:50;not null" json:"payment_method"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Items    []SaleItem    `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	TaxLines []SaleTaxLine `gorm:"foreignKey:SaleID" json:"tax_lines,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SubTotal string `json:"sub_total"`
		Discount string `json:"discount"`
		Tax      string `json:"tax"`
		Total    string `json:"total"`
		Paid     string `json:"paid"`
	}{
		Alias:    Alias(s),
		SubTotal: cents(s.SubTotal).StringFixed(2),
		Discount: cents(s.Discount).StringFixed(2),
		Tax:      cents(s.Tax).StringFixed(2),
		Total:    cents(s.Total).StringFixed(2),
		Paid:     cents(s.Paid).StringFixed(2),
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// ToTransaction converts the stored sale into receipt engine input.
func (s *Sale) ToTransaction() receipt.Transaction {
	kind := receipt.KindSale
	if s.Type == enum.SaleTypeReturn {
		kind = receipt.KindReturn
	}

	txn := receipt.Transaction{
		Kind:          kind,
		Number:        s.InvoiceNo,
		Date:          s.SaleDate,
		Cashier:       s.Cashier,
		Subtotal:      centsPtr(s.SubTotal),
		TaxAmount:     centsPtr(s.Tax),
		GrandTotal:    centsPtr(s.Total),
		AmountPaid:    centsPtr(s.Paid),
		PaymentMethod: s.PaymentMethod,
		Notes:         s.Notes,
	}
	if s.CustomerName != "" || s.CustomerContact != "" {
		txn.Customer = &receipt.Customer{Name: s.CustomerName, Contact: s.CustomerContact}
	}
	if s.TaxRate != nil {
		rate := basisPoints(*s.TaxRate)
		txn.TaxRate = &rate
	}
	if s.Change != nil {
		txn.ChangeDue = centsPtr(*s.Change)
	}

	switch s.DiscountType {
	case enum.DiscountTypeFixed:
		txn.Discount = &receipt.Discount{Kind: receipt.DiscountFixed, Value: cents(s.DiscountValue), Amount: cents(s.Discount)}
	case enum.DiscountTypePercentage:
		txn.Discount = &receipt.Discount{Kind: receipt.DiscountPercentage, Value: basisPoints(s.DiscountValue), Amount: cents(s.Discount)}
	}

	for _, it := range s.Items {
		txn.Items = append(txn.Items, it.toLineItem())
	}
	for _, tl := range s.TaxLines {
		txn.TaxBreakdown = append(txn.TaxBreakdown, receipt.TaxLine{
			Label:  tl.Label,
			Rate:   basisPoints(tl.Rate),
			Amount: cents(tl.Amount),
		})
	}
	return txn
}

// SaleItem represents a line item in a sale
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	SaleID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"sale_id"`
	Position  int       `gorm:"default:0" json:"position"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	SKU       string    `gorm:"size:100" json:"sku,omitempty"`
	Quantity  int64     `gorm:"not null" json:"quantity"` // Thousandths of a unit
	UnitPrice int64     `gorm:"not null" json:"-"`        // Stored in cents, excluded from JSON
	Total     int64     `gorm:"not null" json:"-"`        // Stored in cents, excluded from JSON
	MRP       *int64    `json:"-"`                        // Stored in cents, excluded from JSON
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

func (i SaleItem) toLineItem() receipt.LineItem {
	li := receipt.LineItem{
		Name:      i.Name,
		SKU:       i.SKU,
		Quantity:  decimal.New(i.Quantity, -3),
		UnitPrice: cents(i.UnitPrice),
		Total:     cents(i.Total),
	}
	if i.MRP != nil {
		li.MRP = centsPtr(*i.MRP)
	}
	return li
}

// SaleTaxLine is one precomputed tax component such as CGST or SGST
type SaleTaxLine struct {
	ID     uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	SaleID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"sale_id"`
	Label  string    `gorm:"size:50;not null" json:"label"`
	Rate   int64     `gorm:"not null" json:"rate"` // Basis points
	Amount int64     `gorm:"not null" json:"-"`    // Stored in cents, excluded from JSON
}

// BeforeCreate generates a UUID before creating a new tax line
func (l *SaleTaxLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleTaxLine model
func (SaleTaxLine) TableName() string {
	return "sale_tax_lines"
}

func cents(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}

func centsPtr(v int64) *decimal.Decimal {
	d := cents(v)
	return &d
}

func basisPoints(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}
