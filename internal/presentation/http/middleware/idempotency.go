package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/receipt-engine/internal/domain/entity"
	"github.com/sangkips/receipt-engine/internal/domain/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// TerminalIDHeader identifies the till sending the request
	TerminalIDHeader = "X-Terminal-ID"
	// ReplayedHeader marks a response served from the idempotency cache
	ReplayedHeader = "X-Idempotency-Replayed"
	// SkipIdempotencyKey is set by handlers whose response must not be replayed
	SkipIdempotencyKey = "idempotency_skip"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// ClientID identifies the caller: the terminal header when sent, else the
// client IP.
func ClientID(c *gin.Context) string {
	if id := c.GetHeader(TerminalIDHeader); id != "" {
		return id
	}
	return c.ClientIP()
}

// Idempotency middleware replays the stored response when a client retries a
// request with the same key, so a flaky connection never prints twice.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}
		clientID := ClientID(c)

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Failed to read request body",
			})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		requestHash := hex.EncodeToString(sum[:])

		ctx := c.Request.Context()
		ikey := &entity.IdempotencyKey{
			Key:         idempotencyKey,
			ClientID:    clientID,
			Endpoint:    c.Request.Method + " " + c.FullPath(),
			RequestHash: requestHash,
			ExpiresAt:   time.Now().Add(IdempotencyKeyTTL),
		}

		// Reserve the key before handling so concurrent retries cannot both
		// reach the printer. An expired key is purged and reserved once more.
		reserved := false
		for attempt := 0; attempt < 2 && !reserved; attempt++ {
			reserved, err = config.Repo.Reserve(ctx, ikey)
			if err != nil {
				log.Printf("Idempotency reserve failed (%s): %v", clientID, err)
				c.Next()
				return
			}
			existing, err := config.Repo.GetByKey(ctx, idempotencyKey, clientID)
			if err != nil {
				log.Printf("Idempotency lookup failed (%s): %v", clientID, err)
				c.Next()
				return
			}
			if existing == nil || existing.IsExpired() {
				if err := config.Repo.DeleteExpired(ctx); err != nil {
					log.Printf("Idempotency cleanup failed: %v", err)
				}
				continue
			}
			if existing.RequestHash != "" && existing.RequestHash != requestHash {
				abortConflict(c, "Idempotency-Key was already used with a different request")
				return
			}
			if existing.IsPending() {
				abortConflict(c, "A request with this Idempotency-Key is still in progress")
				return
			}
			c.Header(ReplayedHeader, "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}
		if !reserved {
			abortConflict(c, "A request with this Idempotency-Key is still in progress")
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// The client may have gone away; the outcome is still recorded.
		ctx = context.WithoutCancel(ctx)

		// Only successful responses are kept so failed requests can be retried
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 || c.GetBool(SkipIdempotencyKey) {
			if err := config.Repo.Release(ctx, ikey); err != nil {
				log.Printf("Idempotency release failed (%s): %v", clientID, err)
			}
			return
		}
		ikey.ResponseCode = c.Writer.Status()
		ikey.ResponseBody = blw.body.String()
		if err := config.Repo.Complete(ctx, ikey); err != nil {
			log.Printf("Idempotency store failed (%s): %v", clientID, err)
		}
	}
}

func abortConflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, gin.H{
		"success": false,
		"message": message,
	})
}
