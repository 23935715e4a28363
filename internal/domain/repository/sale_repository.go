package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-engine/internal/domain/entity"
)

// SaleRepository reads completed sales for reprinting receipts
type SaleRepository interface {
	// GetWithItems loads a sale with its items and tax lines; nil, nil when missing
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
}
