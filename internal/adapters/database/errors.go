package database

import (
	"errors"

	"socialgraph/internal/core/apperr"

	"gorm.io/gorm"
)

// translate maps driver errors (already normalized by gorm's TranslateError)
// onto the application error kinds.
func translate(err error, onDuplicate func() error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		if onDuplicate != nil {
			return onDuplicate()
		}
		return apperr.Constraint(err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return apperr.Constraint(err)
	default:
		return apperr.Internal(err)
	}
}

// firstOrNil returns nil, nil on gorm.ErrRecordNotFound.
func firstOrNil[T any](tx *gorm.DB) (*T, error) {
	var out T
	if err := tx.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal(err)
	}
	return &out, nil
}
