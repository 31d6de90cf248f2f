package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors. Failures returned by this package wrap one of them.
var (
	// ErrInvalidOperation is returned when a type does not satisfy the base.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrAlreadyRegistered is returned for a duplicate type or name.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrNotFound is returned when unregistering or looking up an absent key.
	ErrNotFound = errors.New("not found")
	// ErrImproperlyConfigured is returned when a base path cannot be resolved.
	ErrImproperlyConfigured = errors.New("improperly configured")
)

// Error describes a failed registry operation.
type Error struct {
	Op       string // register, unregister, lookup, resolve, publish
	Registry string // registry name, may be empty
	Key      string // type path or entry name
	Err      error  // one of the sentinel errors, possibly wrapped
	Detail   string
}

func (e *Error) Error() string {
	msg := "registry"
	if e.Registry != "" {
		msg += " " + e.Registry
	}
	msg = fmt.Sprintf("%s: %s %q: %v", msg, e.Op, e.Key, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
