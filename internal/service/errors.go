package service

import (
	"errors"

	"github.com/lfpcrew/lfp-admin/internal/repository"
)

var notFoundErrors = []error{
	repository.ErrUserNotFound,
	repository.ErrRoleNotFound,
	repository.ErrMemberNotFound,
	repository.ErrCarNotFound,
	repository.ErrEventNotFound,
}

// IsNotFound reports whether err names a missing record.
func IsNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ValidationError marks input the caller must fix. Handlers map it to 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalid(msg string) error { return &ValidationError{msg: msg} }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsNotFound(err):
		return "not_found"
	case IsValidation(err),
		errors.Is(err, ErrProtectedRole),
		errors.Is(err, ErrSelfDelete),
		errors.Is(err, ErrCredentialAlreadySet),
		errors.Is(err, ErrCredentialNotSet):
		return "bad_request"
	default:
		var inUse *RoleInUseError
		if errors.As(err, &inUse) {
			return "bad_request"
		}
		return "error"
	}
}
