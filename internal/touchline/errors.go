package touchline

import (
	"errors"

	"github.com/containerd/errdefs"
)

var (
	ErrZoneNotFound     = errors.New("zone not found")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrModuleNotFound   = errors.New("module not found")
)

// IsNotFound reports a lookup miss surfaced as an error, either local or remote.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrZoneNotFound) ||
		errors.Is(err, ErrScheduleNotFound) ||
		errors.Is(err, ErrModuleNotFound) ||
		errdefs.IsNotFound(err)
}

// IsTransportError reports a network failure or an unavailable upstream.
func IsTransportError(err error) bool {
	return errdefs.IsUnavailable(err)
}

// IsAuthError reports rejected credentials or a forbidden call.
func IsAuthError(err error) bool {
	return errdefs.IsUnauthorized(err) || errdefs.IsPermissionDenied(err)
}

// IsSchemaError reports a remote payload that failed decoding or validation.
func IsSchemaError(err error) bool {
	return errdefs.IsDataLoss(err)
}

// IsPreconditionError reports a mutation whose inputs do not exist in the current snapshot.
func IsPreconditionError(err error) bool {
	return errdefs.IsFailedPrecondition(err)
}
