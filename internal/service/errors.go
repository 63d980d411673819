package service

import (
	"errors"
	"fmt"

	"salonpos-backend/internal/db"
	"salonpos-backend/internal/domain"
)

// upstream marks connectivity failures as domain.ErrUpstreamUnavailable and
// leaves every other error untouched.
func upstream(err error) error {
	if err == nil || !db.IsConnectionError(err) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
}

// isDomainError reports whether err already carries one of the domain sentinels.
func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidInput,
		domain.ErrNotFound,
		domain.ErrConflict,
		domain.ErrUpstreamUnavailable,
		domain.ErrForbidden,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
