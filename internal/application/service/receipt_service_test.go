package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-engine/internal/domain/entity"
	"github.com/sangkips/receipt-engine/internal/domain/enum"
	"github.com/sangkips/receipt-engine/pkg/apperror"
	"github.com/sangkips/receipt-engine/pkg/printer"
	"github.com/sangkips/receipt-engine/pkg/receipt"
	"github.com/shopspring/decimal"
)

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sampleTxn() receipt.Transaction {
	return receipt.Transaction{
		Kind:    receipt.KindSale,
		Number:  "INV-2024-0001",
		Date:    time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC),
		Cashier: "Asha",
		Items: []receipt.LineItem{
			{
				Name:      "Sample Product 1",
				Quantity:  decimal.NewFromInt(2),
				UnitPrice: decimal.RequireFromString("125.00"),
				Total:     decimal.RequireFromString("250.00"),
				MRP:       money("150.00"),
			},
		},
		Subtotal:      money("250.00"),
		TaxAmount:     money("0"),
		GrandTotal:    money("250.00"),
		AmountPaid:    money("250.00"),
		PaymentMethod: "Cash",
	}
}

type fixture struct {
	svc     *ReceiptService
	repo    *memProfileRepo
	sales   *memSaleRepo
	printer *recordingPrinter
	mailer  *recordingMailer
}

func newFixture(output string) *fixture {
	f := &fixture{
		repo:    newMemProfileRepo(),
		sales:   &memSaleRepo{sales: map[uuid.UUID]*entity.Sale{}},
		printer: &recordingPrinter{},
		mailer:  &recordingMailer{enabled: true},
	}
	f.svc = NewReceiptService(f.printer, NewProfileService(f.repo, "default"), f.sales, f.mailer, output)
	return f
}

func TestReceiptService_Preview(t *testing.T) {
	f := newFixture(OutputESCPOS)

	res, err := f.svc.Preview(context.Background(), RenderInput{Transaction: sampleTxn()})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if res.Receipt.CharsPerLine != 48 {
		t.Fatalf("chars per line = %d", res.Receipt.CharsPerLine)
	}
	if !strings.Contains(res.Text, "GRAND TOTAL: ₹250.00") {
		t.Errorf("text missing grand total:\n%s", res.Text)
	}
	if !strings.Contains(res.HTML, "<html") || !strings.Contains(res.HTML, "Sample Product 1") {
		t.Errorf("html preview incomplete")
	}
	if len(f.printer.jobs) != 0 {
		t.Fatal("preview must not print")
	}
}

func TestReceiptService_PreviewUsesSavedProfile(t *testing.T) {
	f := newFixture(OutputESCPOS)
	ctx := context.Background()
	if _, err := f.svc.profiles.Save(ctx, "counter", receipt.Overrides{
		PaperWidth:   ptr(receipt.Paper58mm),
		BusinessName: ptr("Corner Mart"),
	}); err != nil {
		t.Fatal(err)
	}

	res, err := f.svc.Preview(ctx, RenderInput{Transaction: sampleTxn(), ProfileName: "counter"})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if res.Receipt.CharsPerLine != 32 || !strings.Contains(res.Text, "Corner Mart") {
		t.Fatalf("saved profile not applied:\n%s", res.Text)
	}
}

func TestReceiptService_RenderErrors(t *testing.T) {
	f := newFixture(OutputESCPOS)
	ctx := context.Background()

	incomplete := sampleTxn()
	incomplete.Number = ""
	incomplete.GrandTotal = nil

	tests := []struct {
		name   string
		input  RenderInput
		code   int
		fields []string
	}{
		{"invalid overrides", RenderInput{Transaction: sampleTxn(), Overrides: receipt.Overrides{MarginRight: ptr(-1)}}, http.StatusUnprocessableEntity, []string{"marginRight"}},
		{"incomplete transaction", RenderInput{Transaction: incomplete}, http.StatusUnprocessableEntity, []string{"number", "grandTotal"}},
		{"unknown profile", RenderInput{Transaction: sampleTxn(), ProfileName: "nope"}, http.StatusNotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Print(ctx, tt.input)
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) || appErr.Code != tt.code {
				t.Fatalf("err = %v, want code %d", err, tt.code)
			}
			if len(appErr.Errors) != len(tt.fields) {
				t.Fatalf("field errors = %+v", appErr.Errors)
			}
			for i, field := range tt.fields {
				if appErr.Errors[i].Field != field {
					t.Errorf("field[%d] = %s, want %s", i, appErr.Errors[i].Field, field)
				}
			}
			if len(f.printer.jobs) != 0 {
				t.Fatal("nothing should be printed on error")
			}
		})
	}
}

func TestReceiptService_PrintESCPOS(t *testing.T) {
	f := newFixture(OutputESCPOS)

	r, err := f.svc.Print(context.Background(), RenderInput{Transaction: sampleTxn()})
	if err != nil {
		t.Fatalf("Print: %v", err)
	}
	if r == nil || len(f.printer.jobs) != 1 {
		t.Fatalf("jobs = %d", len(f.printer.jobs))
	}
	job := f.printer.jobs[0]
	if !bytes.HasPrefix(job, []byte{0x1B, 0x40}) {
		t.Fatalf("job should start with ESC @, got % x", job[:4])
	}
	if !bytes.HasSuffix(job, []byte{0x1D, 0x56, 0x01}) {
		t.Fatal("default profile should end with a partial cut")
	}
}

func TestReceiptService_PrintText(t *testing.T) {
	f := newFixture(OutputText)

	if _, err := f.svc.Print(context.Background(), RenderInput{
		Transaction: sampleTxn(),
		Overrides:   receipt.Overrides{AutoCut: ptr(false)},
	}); err != nil {
		t.Fatalf("Print: %v", err)
	}
	job := string(f.printer.jobs[0])
	if bytes.Contains(f.printer.jobs[0], []byte{0x1B}) {
		t.Fatal("text output must not contain escape sequences")
	}
	if !strings.Contains(job, "GRAND TOTAL: ₹250.00") {
		t.Fatalf("job:\n%s", job)
	}
}

func TestReceiptService_PrinterFailureReturnsReceipt(t *testing.T) {
	f := newFixture(OutputESCPOS)
	f.printer.err = errors.New("device not ready")

	r, err := f.svc.Print(context.Background(), RenderInput{Transaction: sampleTxn()})
	if err == nil || !strings.Contains(err.Error(), "device not ready") {
		t.Fatalf("err = %v", err)
	}
	if r == nil || len(r.Lines) == 0 {
		t.Fatal("rendered receipt should be returned with the printer error")
	}
}

func TestReceiptService_PrintSale(t *testing.T) {
	f := newFixture(OutputText)
	id := uuid.New()
	mrp := int64(15000)
	f.sales.sales[id] = &entity.Sale{
		ID:            id,
		Type:          enum.SaleTypeReturn,
		InvoiceNo:     "RET-7",
		SaleDate:      time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC),
		Cashier:       "Asha",
		SubTotal:      25000,
		Total:         25000,
		Paid:          25000,
		PaymentMethod: "Cash",
		Items: []entity.SaleItem{
			{Name: "Sample Product 1", Quantity: 2000, UnitPrice: 12500, Total: 25000, MRP: &mrp},
		},
	}

	r, err := f.svc.PrintSale(context.Background(), id, "", receipt.Overrides{})
	if err != nil {
		t.Fatalf("PrintSale: %v", err)
	}
	text := r.Text()
	for _, want := range []string{"*** RETURN ***", "Return No:", "RET-7", "MRP ₹150.00 (Save ₹25.00)"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}

	_, err = f.svc.PrintSale(context.Background(), uuid.New(), "", receipt.Overrides{})
	if code := appCode(t, err); code != http.StatusNotFound {
		t.Fatalf("missing sale: code = %d", code)
	}
}

func TestReceiptService_EmailReceipt(t *testing.T) {
	f := newFixture(OutputESCPOS)

	_, err := f.svc.EmailReceipt(context.Background(), EmailInput{
		RenderInput: RenderInput{Transaction: sampleTxn()},
		To:          "ravi@example.com",
	})
	if err != nil {
		t.Fatalf("EmailReceipt: %v", err)
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("sent = %d", len(f.mailer.sent))
	}
	msg := f.mailer.sent[0]
	if msg.Subject != "Receipt INV-2024-0001 from My Store" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Text, "GRAND TOTAL") || !strings.Contains(msg.HTML, "<html") {
		t.Error("message should carry both text and html views")
	}
	if len(f.printer.jobs) != 0 {
		t.Fatal("email must not print")
	}
}

func TestReceiptService_EmailDisabled(t *testing.T) {
	f := newFixture(OutputESCPOS)
	f.mailer.enabled = false

	_, err := f.svc.EmailReceipt(context.Background(), EmailInput{
		RenderInput: RenderInput{Transaction: sampleTxn()},
		To:          "ravi@example.com",
	})
	if code := appCode(t, err); code != http.StatusServiceUnavailable {
		t.Fatalf("code = %d", code)
	}
}

func TestReceiptService_TestPrint(t *testing.T) {
	f := newFixture(OutputText)

	r, err := f.svc.TestPrint(context.Background())
	if err != nil {
		t.Fatalf("TestPrint: %v", err)
	}
	if len(f.printer.jobs) != 1 || !strings.Contains(r.Text(), "Test Item 2") {
		t.Fatalf("test page not printed:\n%s", r.Text())
	}
}

func TestReceiptService_TestPrintWithoutPrinter(t *testing.T) {
	f := newFixture(OutputText)
	svc := NewReceiptService(printer.NewNullPrinter(), NewProfileService(f.repo, ""), f.sales, f.mailer, OutputText)

	r, err := svc.TestPrint(context.Background())
	if !errors.Is(err, apperror.ErrPrinterUnavailable) || r != nil {
		t.Fatalf("TestPrint = %v, %v; want printer unavailable", r, err)
	}
	if code := appCode(t, err); code != http.StatusServiceUnavailable {
		t.Fatalf("code = %d", code)
	}
}

func TestReceiptService_Status(t *testing.T) {
	f := newFixture(OutputESCPOS)
	st := f.svc.Status()
	if !st.Configured || !st.Connected || st.Type != printer.TypeFile {
		t.Fatalf("status = %+v", st)
	}

	none := NewReceiptService(printer.NewNullPrinter(), NewProfileService(newMemProfileRepo(), ""), f.sales, nil, OutputESCPOS)
	if st := none.Status(); st.Configured {
		t.Fatalf("null printer should not be configured: %+v", st)
	}
}
