package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/receipt-engine/internal/application/service"
	"github.com/sangkips/receipt-engine/internal/presentation/http/dto/request"
	"github.com/sangkips/receipt-engine/internal/presentation/http/dto/response"
	"github.com/sangkips/receipt-engine/pkg/apperror"
	"github.com/sangkips/receipt-engine/pkg/receipt"
	"github.com/sangkips/receipt-engine/pkg/utils"
)

// ReceiptHandler handles receipt rendering HTTP requests.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

func renderInput(req request.RenderReceiptRequest) service.RenderInput {
	return service.RenderInput{
		Transaction: req.Transaction,
		ProfileName: req.Profile,
		Overrides:   req.Overrides,
	}
}

// Preview renders a receipt and returns its lines, plain text and HTML.
func (h *ReceiptHandler) Preview(c *gin.Context) {
	var req request.RenderReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	res, err := h.receiptService.Preview(c.Request.Context(), renderInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt rendered", gin.H{
		"receipt":  res.Receipt,
		"text":     res.Text,
		"html":     res.HTML,
		"warnings": res.Receipt.Warnings,
	})
}

// PreviewHTML renders a receipt as a standalone HTML page.
func (h *ReceiptHandler) PreviewHTML(c *gin.Context) {
	var req request.RenderReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	res, err := h.receiptService.Preview(c.Request.Context(), renderInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.HTML(c, receipt.Preview{}.ContentType(), []byte(res.HTML))
}

// Print renders a receipt and sends it to the printer.
func (h *ReceiptHandler) Print(c *gin.Context) {
	var req request.RenderReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	r, err := h.receiptService.Print(c.Request.Context(), renderInput(req))
	respondPrinted(c, r, err, "Receipt printed successfully")
}

// Email renders a receipt and emails it to the customer.
func (h *ReceiptHandler) Email(c *gin.Context) {
	var req request.EmailReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	r, err := h.receiptService.EmailReceipt(c.Request.Context(), service.EmailInput{
		RenderInput: renderInput(req.RenderReceiptRequest),
		To:          req.To,
		Subject:     req.Subject,
	})
	if err != nil {
		if r != nil && !apperror.IsAppError(err) {
			response.ErrorWithCode(c, http.StatusBadGateway, "Receipt generated but email delivery failed")
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt emailed to "+req.To, gin.H{
		"receipt":  r,
		"warnings": r.Warnings,
	})
}

// PrintSale prints the receipt of a stored sale.
func (h *ReceiptHandler) PrintSale(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return
	}

	var req request.PrintSaleRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	r, err := h.receiptService.PrintSale(c.Request.Context(), id, req.Profile, req.Overrides)
	respondPrinted(c, r, err, "Sale receipt printed successfully")
}
