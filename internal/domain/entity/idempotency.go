package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores processed requests to prevent duplicate print jobs
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_client_key"` // The idempotency key from client
	ClientID     string    `gorm:"size:64;not null;uniqueIndex:idx_idempotency_client_key"`  // Terminal or client IP that made the request
	Endpoint     string    `gorm:"size:255;not null"`                                        // API endpoint (e.g., "POST /receipts/print")
	RequestHash  string    `gorm:"size:64"`                                                  // SHA256 hash of request body
	ResponseCode int       `gorm:"not null;default:0"`                                       // HTTP status code of original response, 0 while pending
	ResponseBody string    `gorm:"type:text"`                                                // JSON response body (cached)
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"` // Keys expire after 24 hours
}

// BeforeCreate generates a UUID before creating a new key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsPending reports whether the original request is still being handled
func (i *IdempotencyKey) IsPending() bool {
	return i.ResponseCode == 0
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
