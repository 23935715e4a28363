package entity

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/receipt-engine/internal/domain/enum"
	"github.com/sangkips/receipt-engine/pkg/receipt"
)

func TestSale_ToTransaction(t *testing.T) {
	rate := int64(1800)
	change := int64(5000)
	mrp := int64(15000)
	s := &Sale{
		Type:            enum.SaleTypeSale,
		InvoiceNo:       "INV-9",
		SaleDate:        time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC),
		Cashier:         "Asha",
		CustomerName:    "Ravi",
		CustomerContact: "98450 00000",
		SubTotal:        32550,
		DiscountType:    enum.DiscountTypePercentage,
		DiscountValue:   1000,
		Discount:        3255,
		TaxRate:         &rate,
		Tax:             5273,
		Total:           34568,
		Paid:            39568,
		Change:          &change,
		PaymentMethod:   "Cash",
		Items: []SaleItem{
			{Name: "Sample Product 1", SKU: "SP-1", Quantity: 2000, UnitPrice: 12500, Total: 25000, MRP: &mrp},
			{Name: "Loose Rice", Quantity: 1250, UnitPrice: 6040, Total: 7550},
		},
		TaxLines: []SaleTaxLine{
			{Label: "CGST", Rate: 900, Amount: 2637},
			{Label: "SGST", Rate: 900, Amount: 2636},
		},
	}

	txn := s.ToTransaction()
	if txn.Kind != receipt.KindSale || txn.Number != "INV-9" || txn.Customer == nil || txn.Customer.Name != "Ravi" {
		t.Fatalf("header fields = %+v", txn)
	}
	if txn.Subtotal.StringFixed(2) != "325.50" || txn.GrandTotal.StringFixed(2) != "345.68" || txn.ChangeDue.StringFixed(2) != "50.00" {
		t.Fatalf("money = %s %s %s", txn.Subtotal, txn.GrandTotal, txn.ChangeDue)
	}
	if txn.TaxRate.String() != "18" {
		t.Errorf("tax rate = %s", txn.TaxRate)
	}
	if d := txn.Discount; d == nil || d.Kind != receipt.DiscountPercentage || d.Value.String() != "10" || d.Amount.StringFixed(2) != "32.55" {
		t.Errorf("discount = %+v", txn.Discount)
	}
	if got := txn.Items[1].Quantity.String(); got != "1.25" {
		t.Errorf("quantity = %s", got)
	}
	if txn.Items[0].MRP == nil || txn.Items[0].MRP.StringFixed(2) != "150.00" || txn.Items[1].MRP != nil {
		t.Errorf("mrp = %v %v", txn.Items[0].MRP, txn.Items[1].MRP)
	}
	if len(txn.TaxBreakdown) != 2 || txn.TaxBreakdown[0].Rate.String() != "9" {
		t.Errorf("tax lines = %+v", txn.TaxBreakdown)
	}
	if err := txn.Validate(); err != nil {
		t.Fatalf("converted sale should be complete: %v", err)
	}
}

func TestSale_ToTransactionReturnWithoutOptionalFields(t *testing.T) {
	s := &Sale{Type: enum.SaleTypeReturn, InvoiceNo: "RET-1", DiscountType: enum.DiscountTypeNone}
	txn := s.ToTransaction()
	if !txn.IsReturn() || txn.Customer != nil || txn.Discount != nil || txn.TaxRate != nil || txn.ChangeDue != nil {
		t.Fatalf("optional fields should stay unset: %+v", txn)
	}
}

func TestSale_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(Sale{InvoiceNo: "INV-1", SubTotal: 32550, Total: 30000, Type: enum.SaleTypeReturn})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"sub_total":"325.50"`, `"total":"300.00"`, `"type":"Return"`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("missing %s in %s", want, raw)
		}
	}
}
