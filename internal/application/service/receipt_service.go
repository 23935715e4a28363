package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-engine/internal/domain/repository"
	"github.com/sangkips/receipt-engine/pkg/apperror"
	"github.com/sangkips/receipt-engine/pkg/email"
	"github.com/sangkips/receipt-engine/pkg/printer"
	"github.com/sangkips/receipt-engine/pkg/receipt"
	"github.com/sangkips/receipt-engine/pkg/utils"
	"github.com/shopspring/decimal"
)

// Output formats for print jobs.
const (
	OutputESCPOS = "escpos"
	OutputText   = "text"
)

// Mailer delivers rendered receipts by email.
type Mailer interface {
	Enabled() bool
	SendReceipt(msg email.ReceiptMessage) error
}

// ReceiptService renders receipts and sends them to the printer or by email.
type ReceiptService struct {
	printer     printer.Printer
	profiles    *ProfileService
	saleRepo    repository.SaleRepository
	mailer      Mailer
	job         receipt.Renderer
	printerType string
}

// NewReceiptService creates a new receipt service. output selects the bytes
// sent to the printer: raw ESC/POS or encoded plain text.
func NewReceiptService(
	p printer.Printer,
	profiles *ProfileService,
	saleRepo repository.SaleRepository,
	mailer Mailer,
	output string,
) *ReceiptService {
	var job receipt.Renderer = printer.ESCPOS{}
	if output == OutputText {
		job = receipt.PlainText{}
	}
	return &ReceiptService{
		printer:     p,
		profiles:    profiles,
		saleRepo:    saleRepo,
		mailer:      mailer,
		job:         job,
		printerType: p.Type(),
	}
}

// RenderInput selects the transaction and how it is customized.
type RenderInput struct {
	Transaction receipt.Transaction
	ProfileName string
	Overrides   receipt.Overrides
}

// EmailInput is a render request plus its recipient.
type EmailInput struct {
	RenderInput
	To      string
	Subject string
}

// PreviewResult holds the three views of one render.
type PreviewResult struct {
	Receipt *receipt.Receipt `json:"receipt"`
	Text    string           `json:"text"`
	HTML    string           `json:"html"`
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// Status returns printer connection status.
func (s *ReceiptService) Status() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// Render resolves the profile and renders the transaction.
func (s *ReceiptService) Render(ctx context.Context, input RenderInput) (*receipt.Receipt, error) {
	profile, err := s.profiles.Resolve(ctx, input.ProfileName, input.Overrides)
	if err != nil {
		return nil, err
	}

	r, err := receipt.Render(input.Transaction, profile)
	if err != nil {
		return nil, mapRenderError(err)
	}
	for _, w := range r.Warnings {
		log.Printf("Receipt warning (%s): %s: %s", input.Transaction.Number, w.Code, w.Message)
	}
	return r, nil
}

// Preview renders once and returns the line model, plain text and HTML.
func (s *ReceiptService) Preview(ctx context.Context, input RenderInput) (*PreviewResult, error) {
	r, err := s.Render(ctx, input)
	if err != nil {
		return nil, err
	}

	html, err := receipt.Preview{}.Render(r)
	if err != nil {
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}
	return &PreviewResult{Receipt: r, Text: r.Text(), HTML: string(html)}, nil
}

// Print renders the transaction and sends it to the printer. When printing
// fails the rendered receipt is still returned alongside the error.
func (s *ReceiptService) Print(ctx context.Context, input RenderInput) (*receipt.Receipt, error) {
	r, err := s.Render(ctx, input)
	if err != nil {
		return nil, err
	}
	return r, s.dispatch(ctx, r, input.Transaction.Number)
}

// PrintSale loads a stored sale and prints its receipt.
func (s *ReceiptService) PrintSale(ctx context.Context, saleID uuid.UUID, profileName string, overrides receipt.Overrides) (*receipt.Receipt, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	return s.Print(ctx, RenderInput{
		Transaction: sale.ToTransaction(),
		ProfileName: profileName,
		Overrides:   overrides,
	})
}

// EmailReceipt renders once and mails the text and HTML views.
func (s *ReceiptService) EmailReceipt(ctx context.Context, input EmailInput) (*receipt.Receipt, error) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return nil, apperror.ErrMailerDisabled
	}

	preview, err := s.Preview(ctx, input.RenderInput)
	if err != nil {
		return nil, err
	}

	subject := input.Subject
	if subject == "" {
		subject = defaultSubject(preview.Receipt, input.Transaction)
	}

	if err := s.mailer.SendReceipt(email.ReceiptMessage{
		To:      input.To,
		Subject: subject,
		Text:    preview.Text,
		HTML:    preview.HTML,
	}); err != nil {
		log.Printf("Email error (receipt %s): %v", input.Transaction.Number, err)
		return preview.Receipt, fmt.Errorf("failed to email receipt: %w", err)
	}
	return preview.Receipt, nil
}

// TestPrint sends a test receipt to the printer using the default profile.
// Returns the receipt so the handler can show it when the printer is disabled.
func (s *ReceiptService) TestPrint(ctx context.Context) (*receipt.Receipt, error) {
	if !s.Status().Configured {
		return nil, apperror.ErrPrinterUnavailable
	}

	r, err := s.Render(ctx, RenderInput{Transaction: testTransaction(time.Now())})
	if err != nil {
		return nil, err
	}

	data, err := s.job.Render(r)
	if err != nil {
		return r, fmt.Errorf("failed to encode receipt: %w", err)
	}
	if err := s.printer.Print(ctx, data); err != nil {
		return r, fmt.Errorf("test print failed: %w", err)
	}
	return r, nil
}

func (s *ReceiptService) dispatch(ctx context.Context, r *receipt.Receipt, number string) error {
	data, err := s.job.Render(r)
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}
	if err := s.printer.Print(ctx, data); err != nil {
		log.Printf("Printer error (receipt %s): %v", number, err)
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

func defaultSubject(r *receipt.Receipt, txn receipt.Transaction) string {
	kind := "Receipt"
	if txn.IsReturn() {
		kind = "Return receipt"
	}
	if name := strings.TrimSpace(r.Profile.BusinessName); name != "" {
		return fmt.Sprintf("%s %s from %s", kind, txn.Number, name)
	}
	return fmt.Sprintf("%s %s", kind, txn.Number)
}

func testTransaction(now time.Time) receipt.Transaction {
	money := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}
	return receipt.Transaction{
		Kind:    receipt.KindSale,
		Number:  utils.GenerateReferenceNo("TEST"),
		Date:    now,
		Cashier: "System",
		Items: []receipt.LineItem{
			{Name: "Test Item 1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("10.00"), Total: decimal.RequireFromString("10.00")},
			{Name: "Test Item 2", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("5.00"), Total: decimal.RequireFromString("10.00")},
		},
		Subtotal:      money("20.00"),
		TaxAmount:     money("0.00"),
		GrandTotal:    money("20.00"),
		AmountPaid:    money("20.00"),
		ChangeDue:     money("0.00"),
		PaymentMethod: "Cash",
	}
}
