// Package common defines the error taxonomy shared by the repslog client
// layers. Callers match the kinds with errors.Is.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a failed local precondition. It never reaches the network.
	ErrValidation = errors.New("validation error")
	// ErrRemote marks a failed data gateway call.
	ErrRemote = errors.New("remote error")
	// ErrStorage marks a failed blob store call.
	ErrStorage = errors.New("storage error")

	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Validation builds an ErrValidation with a formatted reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Remote wraps err as ErrRemote for operation op. An error that already
// carries ErrRemote is only annotated.
func Remote(op string, err error) error {
	return wrapKind(ErrRemote, op, err)
}

// Storage wraps err as ErrStorage for operation op.
func Storage(op string, err error) error {
	return wrapKind(ErrStorage, op, err)
}

func wrapKind(kind error, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kind) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", kind, op, err)
}

// Kind reports which taxonomy kind err belongs to, or nil when it carries none.
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrStorage, ErrRemote} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
