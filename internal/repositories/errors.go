package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an operation targets a row that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConstraintViolation is returned when a write would break referential
	// integrity or a uniqueness rule.
	ErrConstraintViolation = errors.New("constraint violation")
)

// translate maps driver-level errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(ErrConstraintViolation, err)
	default:
		return err
	}
}
