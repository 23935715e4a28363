package repository

import (
	"github.com/sangkips/receipt-engine/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate returns a GORM scope that applies offset/limit from params.
// Params are clamped to valid ranges first.
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			params = pagination.DefaultPagination()
		}
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}
