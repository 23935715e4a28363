package request

import "github.com/sangkips/receipt-engine/pkg/receipt"

// RenderReceiptRequest is the request body for previewing or printing a receipt.
type RenderReceiptRequest struct {
	Transaction receipt.Transaction `json:"transaction"`
	Profile     string              `json:"profile" binding:"omitempty,max=100"`
	Overrides   receipt.Overrides   `json:"overrides"`
}

// EmailReceiptRequest is the request body for emailing a receipt.
type EmailReceiptRequest struct {
	RenderReceiptRequest
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"omitempty,max=200"`
}

// PrintSaleRequest optionally customizes a stored sale's receipt.
type PrintSaleRequest struct {
	Profile   string            `json:"profile" binding:"omitempty,max=100"`
	Overrides receipt.Overrides `json:"overrides"`
}
