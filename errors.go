package sway

import (
	"errors"
	"fmt"
)

// ErrInvalidTween is reported when an operation needs a setter or values the
// tween does not have.
var ErrInvalidTween = errors.New("sway: tween is not valid")

// CallbackError wraps a panic raised by a user callback.
type CallbackError struct {
	Hook  string
	Value any
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("sway: %s callback panicked: %v", e.Hook, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *CallbackError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// safeCall runs fn and converts a panic into a *CallbackError.
func safeCall(hook string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CallbackError{Hook: hook, Value: r}
		}
	}()
	fn()
	return nil
}
