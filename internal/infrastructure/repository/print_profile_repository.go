package repository

import (
	"context"
	"errors"

	"github.com/sangkips/receipt-engine/internal/domain/entity"
	domainRepo "github.com/sangkips/receipt-engine/internal/domain/repository"
	"github.com/sangkips/receipt-engine/pkg/pagination"
	"gorm.io/gorm"
)

type printProfileRepository struct {
	db *gorm.DB
}

// NewPrintProfileRepository creates a new print profile repository
func NewPrintProfileRepository(db *gorm.DB) domainRepo.PrintProfileRepository {
	return &printProfileRepository{db: db}
}

func (r *printProfileRepository) GetByName(ctx context.Context, name string) (*entity.PrintProfile, error) {
	var profile entity.PrintProfile
	err := r.db.WithContext(ctx).First(&profile, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *printProfileRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.PrintProfile, int64, error) {
	var profiles []entity.PrintProfile
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PrintProfile{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("name ASC").
		Find(&profiles).Error

	return profiles, total, err
}

func (r *printProfileRepository) Create(ctx context.Context, profile *entity.PrintProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *printProfileRepository) Update(ctx context.Context, profile *entity.PrintProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// Delete removes the row outright so the name can be reused.
func (r *printProfileRepository) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&entity.PrintProfile{}, "name = ?", name).Error
}
