package repository

import (
	"context"

	"github.com/sangkips/receipt-engine/internal/domain/entity"
	"github.com/sangkips/receipt-engine/pkg/pagination"
)

// PrintProfileRepository defines the interface for saved print profiles
type PrintProfileRepository interface {
	// GetByName returns nil, nil when no profile has that name
	GetByName(ctx context.Context, name string) (*entity.PrintProfile, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.PrintProfile, int64, error)
	Create(ctx context.Context, profile *entity.PrintProfile) error
	Update(ctx context.Context, profile *entity.PrintProfile) error
	Delete(ctx context.Context, name string) error
}
