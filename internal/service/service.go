// Package service implements the dashboard's operations on top of the stores.
//
// Services validate input, translate store errors into coded domain errors
// from internal/errors, and log state changes. HTTP concerns stay in internal/api.
package service

import (
	"errors"
	"fmt"

	domainerrors "github.com/leadboard/leadboard-server/internal/errors"
	"github.com/leadboard/leadboard-server/internal/store"
	"github.com/leadboard/leadboard-server/internal/validation"
)

// validate is a shared validator instance for request validation.
var validate = validation.New()

// storeError maps well-known store errors to domain errors and wraps the rest
// with op for context.
func storeError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.Wrap(err, domainerrors.CodeNotFound, op+": not found")
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Wrap(err, domainerrors.CodeAlreadyExists, op+": already exists")
	case errors.Is(err, store.ErrInvalidReference):
		return domainerrors.Wrap(err, domainerrors.CodeValidation, op+": referenced record does not exist")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
