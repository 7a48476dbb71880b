package subscription

import (
	"errors"
	"fmt"
)

// Bridge errors.
var (
	ErrNotInitialized  = errors.New("bridge not initialized")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrBackend         = errors.New("backend error")
	ErrNotFound        = errors.New("location not found")
	ErrNotImplemented  = errors.New("not implemented")
)

// Backend operation names carried by BackendError.
const (
	OpStart           = "start"
	OpSetLocation     = "setLocation"
	OpRemoveLocation  = "removeLocation"
	OpGetLocation     = "getLocation"
	OpQueryAtLocation = "queryAtLocation"
	OpRemoveListener  = "removeListener"
)

// BackendError wraps a failure reported by the geo backend.
type BackendError struct {
	Op  string
	Err error
}

// Error returns the backend message. Location reads carry the fixed prefix
// hosts show to users.
func (e *BackendError) Error() string {
	msg := "<nil>"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op == OpGetLocation {
		return "There was an error getting the GeoFire location: " + msg
	}
	return msg
}

// Unwrap returns the backend cause.
func (e *BackendError) Unwrap() error { return e.Err }

// Is reports ErrBackend.
func (e *BackendError) Is(target error) bool { return target == ErrBackend }

// NotFoundError reports a point without a recorded location.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("There is no location for key %s in GeoFire", e.Key)
}

// Is reports ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func wrapBackend(op string, err error) error {
	if err == nil {
		return nil
	}
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	return &BackendError{Op: op, Err: err}
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
