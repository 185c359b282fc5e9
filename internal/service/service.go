package service

import (
	"errors"

	"flowershop-api/internal/apperror"

	"gorm.io/gorm"
)

// wrapDBErr translates store-level failures into the boundary taxonomy.
func wrapDBErr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(resource)
	}
	return apperror.Persistence(err)
}
