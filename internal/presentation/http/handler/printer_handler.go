package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/receipt-engine/internal/application/service"
	"github.com/sangkips/receipt-engine/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	receiptService *service.ReceiptService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(receiptService *service.ReceiptService) *PrinterHandler {
	return &PrinterHandler{receiptService: receiptService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.receiptService.Status()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	r, err := h.receiptService.TestPrint(c.Request.Context())
	if err != nil {
		if r == nil {
			response.Error(c, err)
			return
		}
		// The page rendered but the printer rejected it
		response.OK(c, "Test page generated but printing failed", gin.H{
			"receipt": r,
			"text":    r.Text(),
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"receipt": r,
		"text":    r.Text(),
	})
}
