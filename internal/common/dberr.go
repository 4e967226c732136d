package common

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// FromGorm maps gorm errors onto the shared sentinels: a missing row becomes
// ErrNotFound and a lost connection becomes ErrDatabaseUnavailable.
func FromGorm(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case IsConnectivity(err):
		return fmt.Errorf("%w: %v", ErrDatabaseUnavailable, err)
	}
	return err
}

// IsDuplicateKey reports a unique-constraint violation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}
