package repository

import (
	"context"

	"github.com/sangkips/receipt-engine/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and client
	GetByKey(ctx context.Context, key, clientID string) (*entity.IdempotencyKey, error)
	// Reserve inserts a pending key and reports false when the key and client
	// pair already exists
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error)
	// Complete stores the response for a reserved key
	Complete(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Release removes a reserved key so the request can be retried
	Release(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) error
}
