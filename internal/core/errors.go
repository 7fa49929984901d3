package core

import (
	"errors"
	"fmt"

	"homeinventory/pkg/domain"
)

var (
	// ErrNotFound is returned when an update or lookup names an unknown id.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks input rejected before it reaches the collections.
	ErrValidation = errors.New("validation failed")
	// ErrImport marks a backup document that could not be decoded.
	ErrImport = errors.New("import failed")
	// ErrPersist marks a mutation that was applied in memory but could not be saved.
	ErrPersist = errors.New("persist failed")
)

func notFound(entity domain.EntityType, id string) error {
	return fmt.Errorf("%s %q: %w", entity, id, ErrNotFound)
}
