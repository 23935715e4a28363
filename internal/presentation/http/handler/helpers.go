package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/receipt-engine/internal/presentation/http/dto/response"
	"github.com/sangkips/receipt-engine/internal/presentation/http/middleware"
	"github.com/sangkips/receipt-engine/pkg/receipt"
)

// bindOptionalJSON binds the body only when one was sent
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(obj)
}

// respondPrinted reports a print attempt. A receipt that rendered but did not
// reach the printer is still returned, with the failure as a warning, and the
// response is not cached so the client can retry.
func respondPrinted(c *gin.Context, r *receipt.Receipt, err error, message string) {
	if err != nil {
		if r != nil {
			c.Set(middleware.SkipIdempotencyKey, true)
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt":  r,
				"warnings": r.Warnings,
				"warning":  err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, message, gin.H{
		"receipt":  r,
		"warnings": r.Warnings,
	})
}
