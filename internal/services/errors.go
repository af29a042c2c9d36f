package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference is returned when a mutation names a sauce or topping that does not exist
	ErrInvalidReference = errors.New("invalid reference")
	// ErrValidation is returned when caller input fails validation
	ErrValidation = errors.New("validation failed")
	// ErrAmbiguousResult is returned when a lookup by primary key matches more than one row
	ErrAmbiguousResult = errors.New("ambiguous result")
)

// lookupError translates a gorm lookup failure, using sentinel for a missing row
func lookupError(sentinel error, entity string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", sentinel, entity, id)
	}
	return fmt.Errorf("load %s %d: %w", entity, id, err)
}
